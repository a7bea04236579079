// Package scholar turns raw model output into resource lists.
package scholar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"eduease-be/internal/entity"
)

var ErrNotJSONArray = errors.New("invalid JSON format in model response")

// Result is a decoded model answer. Raw holds the array exactly as the model
// produced it; no field of any element is checked.
type Result struct {
	Raw json.RawMessage
}

// Decode accepts the model text only if, once trimmed, it is a JSON array.
// Any schema hardening of individual entries belongs here.
func Decode(text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return Result{}, ErrNotJSONArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return Result{}, fmt.Errorf("parse model response: %w", err)
	}
	return Result{Raw: json.RawMessage(trimmed)}, nil
}

// Content converts the result for the chat log: a resource list when every
// element is an object, otherwise the raw text.
func (r Result) Content() entity.Content {
	var items []json.RawMessage
	if err := json.Unmarshal(r.Raw, &items); err != nil {
		return entity.TextContent(string(r.Raw))
	}

	resources := make([]entity.Resource, 0, len(items))
	for _, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			return entity.TextContent(string(r.Raw))
		}
		var res entity.Resource
		if err := json.Unmarshal(item, &res); err != nil {
			return entity.TextContent(string(r.Raw))
		}
		resources = append(resources, res)
	}
	return entity.ResourceContent(resources)
}
