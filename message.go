package tracefetch

import (
	"encoding/json"
	"strings"
)

// Message is one chat message as recorded by the tracing service. The
// service is not consistent about the discriminator field, so both role and
// type are kept; whichever is present identifies the speaker.
type Message struct {
	Role      string          `json:"role,omitempty"`
	Type      string          `json:"type,omitempty"`
	Name      string          `json:"name,omitempty"`
	Content   *MessageContent `json:"content,omitempty"`
	ToolCalls []ToolCall      `json:"tool_calls,omitempty"`
}

// Speaker returns the role/type discriminator, preferring role.
func (m *Message) Speaker() string {
	if m.Role != "" {
		return m.Role
	}
	return m.Type
}

// ToolCall is a function invocation requested by an assistant message.
type ToolCall struct {
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type,omitempty"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the function name and its string-encoded
// arguments blob, kept verbatim.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ContentBlock is one typed item of a structured message content sequence.
type ContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// MessageContent is either plain text or an ordered sequence of typed
// blocks. Shapes we do not model are preserved verbatim so re-serialization
// is lossless.
type MessageContent struct {
	Text   string
	Blocks []ContentBlock

	raw json.RawMessage
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = MessageContent{Text: text}
		return nil
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err == nil {
		*c = MessageContent{Blocks: blocks}
		return nil
	}

	*c = MessageContent{raw: append(json.RawMessage(nil), data...)}
	return nil
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	if c.Blocks != nil {
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// PlainText flattens the content to displayable text. Tool-use blocks are
// skipped; text blocks are joined in order.
func (c *MessageContent) PlainText() string {
	if c == nil {
		return ""
	}
	if c.Blocks == nil {
		return c.Text
	}
	var parts []string
	for _, b := range c.Blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ParseMessageBlob reconstructs an ordered message sequence from a blob of
// independently serialized messages separated by a blank line. Thread
// history may contain malformed or partial entries; any segment that does
// not decode is dropped without affecting the rest.
func ParseMessageBlob(blob string) []Message {
	segments := strings.Split(blob, "\n\n")
	messages := make([]Message, 0, len(segments))

	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(seg), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	return messages
}
