package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

type ContentKind int

const (
	ContentText ContentKind = iota
	ContentResources
)

// Content is either plain text or an ordered list of resources.
// The zero value is empty text.
type Content struct {
	kind      ContentKind
	text      string
	resources []Resource
}

func TextContent(text string) Content {
	return Content{kind: ContentText, text: text}
}

func ResourceContent(resources []Resource) Content {
	if resources == nil {
		resources = []Resource{}
	}
	return Content{kind: ContentResources, resources: resources}
}

func (c Content) Kind() ContentKind { return c.kind }

func (c Content) Text() string { return c.text }

func (c Content) Resources() []Resource { return c.resources }

// String renders the content the way it is sent back to the model:
// text as-is, resource lists as their JSON encoding.
func (c Content) String() string {
	switch c.kind {
	case ContentResources:
		b, err := json.Marshal(c.resources)
		if err != nil {
			return ""
		}
		return string(b)
	case ContentText:
		return c.text
	default:
		return ""
	}
}

func (c Content) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case ContentResources:
		return json.Marshal(c.resources)
	case ContentText:
		return json.Marshal(c.text)
	default:
		return nil, fmt.Errorf("unknown content kind %d", c.kind)
	}
}

func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var resources []Resource
		if err := json.Unmarshal(trimmed, &resources); err != nil {
			return err
		}
		*c = ResourceContent(resources)
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	*c = TextContent(text)
	return nil
}

type Message struct {
	Id        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
