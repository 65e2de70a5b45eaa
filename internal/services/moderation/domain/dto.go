package domain

import "skillreel/internal/core/moderation"

// ModerateInput asks the service to moderate one uploaded video
type ModerateInput struct {
	VideoID     string `json:"video_id"              validate:"required,uuid" example:"3f1c9b8e-5a0d-4c55-9d5f-0b7c2a1e9f10"`
	VideoURL    string `json:"video_url"             validate:"required,media_url,max=2048" example:"https://cdn.example.com/v/3f1c9b8e.mp4"` //nolint:lll
	Title       string `json:"title,omitempty"       validate:"omitempty,max=300" example:"Modern Haircut Tutorial"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000" example:"Fade with clippers and scissor over comb"`
}

// Request maps the input onto the pipeline request
func (in ModerateInput) Request() moderation.Request {
	return moderation.Request{VideoURL: in.VideoURL, Title: in.Title, Description: in.Description}
}

// LookupInput fetches the current record for a video
// lookup is POST in this module so we bind from json not form
type LookupInput struct {
	VideoID string `json:"video_id" validate:"required,uuid" example:"3f1c9b8e-5a0d-4c55-9d5f-0b7c2a1e9f10"`
}

// ReviewQuery lists records whose analysis degraded and need a human look
type ReviewQuery struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"50"`
}

// EnqueueOutput returns the id of the queued job
type EnqueueOutput struct {
	JobID string `json:"job_id" example:"9b2f6a7e-1c4d-4e0a-8f1b-2d3c4e5f6a7b"`
}

// ReviewOutput wraps the review list
type ReviewOutput struct {
	Items []Record `json:"items"`
}
