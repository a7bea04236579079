package dto

import "encoding/json"

// ScholarRequest keeps messages raw so a non-array value can be reported
// as bad input instead of a decode failure.
type ScholarRequest struct {
	Messages   json.RawMessage `json:"messages"`
	UserPrompt string          `json:"userPrompt,omitempty"`
}

type ScholarMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ScholarResponse struct {
	Result json.RawMessage `json:"result"`
	Role   string          `json:"role"`
}
