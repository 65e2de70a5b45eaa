package openai

import (
	"context"
	"encoding/json"
	"strings"

	perr "skillreel/internal/platform/errors"
)

const jsonResponseType = "json_object"

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// CompleteJSON issues a JSON-mode chat completion and returns the message content verbatim
func (c *Client) CompleteJSON(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	system = strings.TrimSpace(system)
	user = strings.TrimSpace(user)
	if system == "" || user == "" {
		return "", perr.InvalidArgf("openai complete: system and user prompts required")
	}

	body, err := c.postJSON(ctx, "/chat/completions", chatRequest{
		Model: c.opts.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: map[string]string{"type": jsonResponseType},
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "openai complete: decode response")
	}
	if len(resp.Choices) == 0 {
		return "", perr.JSONErrf("openai complete: empty choices")
	}
	ch := resp.Choices[0]
	if content := strings.TrimSpace(ch.Message.Content); content != "" {
		return content, nil
	}
	return "", perr.JSONErrf("openai complete: empty content (finish_reason=%q, refusal=%q)", ch.FinishReason, ch.Message.Refusal)
}
