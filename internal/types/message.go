// Package types provides the OpenAI-compatible wire types shared by the
// gateway: chat and legacy text completions, stream chunks and token usage.
package types

import (
	"encoding/json"
	"strings"
)

// Role constants for message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a chat message with polymorphic content support.
type Message struct {
	Role       string          `json:"role,omitempty"`
	Content    Content         `json:"content"`
	Name       string          `json:"name,omitempty"`
	ToolCalls  json.RawMessage `json:"tool_calls,omitempty"`   // For assistant messages
	ToolCallID string          `json:"tool_call_id,omitempty"` // For tool messages
}

// Content represents message content that can be absent, a string or an
// array of parts.
type Content struct {
	Text  string        // Simple string content
	Parts []ContentPart // Multimodal content parts
	Set   bool          // False when the content was null or missing
}

// MarshalJSON implements custom JSON marshaling for Content.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.Parts) > 0 {
		return json.Marshal(c.Parts)
	}
	if !c.Set && c.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts string, array and null content.
func (c *Content) UnmarshalJSON(data []byte) error {
	*c = Content{}
	if string(data) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Set = true
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err == nil {
		c.Parts = parts
		c.Set = true
		return nil
	}

	return nil // Allow null/unknown content
}

// String returns the text content, concatenating text parts if multimodal.
func (c Content) String() string {
	if c.Text != "" || len(c.Parts) == 0 {
		return c.Text
	}
	var b strings.Builder
	for _, part := range c.Parts {
		if part.Type == ContentTypeText {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// ContentPart represents a single part of multimodal content.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// Content type constants
const (
	ContentTypeText     = "text"
	ContentTypeImageURL = "image_url"
)

// ImageURL represents an image reference in multimodal content.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"` // "auto", "low", "high"
}

// NewTextMessage creates a simple text message.
func NewTextMessage(role, content string) Message {
	return Message{
		Role:    role,
		Content: TextContent(content),
	}
}

// TextContent wraps a plain string as present content.
func TextContent(text string) Content {
	return Content{Text: text, Set: true}
}
