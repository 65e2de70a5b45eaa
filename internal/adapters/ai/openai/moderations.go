package openai

import (
	"context"
	"encoding/json"
	"strings"

	perr "skillreel/internal/platform/errors"
)

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Results []struct {
		Flagged    bool            `json:"flagged"`
		Categories map[string]bool `json:"categories"`
	} `json:"results"`
}

// Moderate classifies text against the provider moderation taxonomy
// flags holds every category name the provider returned; raw is the untouched response body
func (c *Client) Moderate(ctx context.Context, text string) (flags map[string]bool, raw json.RawMessage, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, perr.InvalidArgf("openai moderate: input required")
	}

	body, err := c.postJSON(ctx, "/moderations", moderationRequest{Model: c.opts.ModerationModel, Input: text})
	if err != nil {
		return nil, nil, err
	}

	var resp moderationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeJSON, "openai moderate: decode response")
	}
	if len(resp.Results) == 0 {
		return nil, nil, perr.JSONErrf("openai moderate: empty results")
	}

	// one input normally yields one result; fold them if the provider splits it
	flags = make(map[string]bool)
	for _, r := range resp.Results {
		for k, v := range r.Categories {
			flags[k] = flags[k] || v
		}
	}
	return flags, json.RawMessage(body), nil
}
