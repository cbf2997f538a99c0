package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/tracefetch"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTrace(w io.Writer, trace *tracefetch.TraceData) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Trace %s ===\n", trace.ID)
	renderMessages(&b, trace.Messages)

	if meta := trace.Metadata; meta != nil {
		fmt.Fprintf(&b, "--- metadata ---\n")
		if meta.Status != nil {
			fmt.Fprintf(&b, "status: %s\n", *meta.Status)
		}
		if meta.DurationMS != nil {
			fmt.Fprintf(&b, "duration: %dms\n", *meta.DurationMS)
		}
		if meta.TotalTokens != nil {
			fmt.Fprintf(&b, "tokens: %d\n", *meta.TotalTokens)
		}
		if meta.TotalCost != nil {
			fmt.Fprintf(&b, "cost: $%g\n", *meta.TotalCost)
		}
	}

	for _, fb := range trace.Feedback {
		if fb.Score != nil {
			fmt.Fprintf(&b, "feedback %s: %g\n", fb.Key, *fb.Score)
		} else {
			fmt.Fprintf(&b, "feedback %s\n", fb.Key)
		}
		if fb.Comment != nil {
			fmt.Fprintf(&b, "  comment: %s\n", *fb.Comment)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderThread(w io.Writer, thread *tracefetch.ThreadData) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Thread %s ===\n", thread.ID)
	renderMessages(&b, thread.Messages)

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMessages(b *strings.Builder, messages []tracefetch.Message) {
	for i := range messages {
		msg := &messages[i]

		speaker := msg.Speaker()
		if speaker == "" {
			speaker = "unknown"
		}
		fmt.Fprintf(b, "[%s] %s\n", speaker, msg.Content.PlainText())

		for _, call := range msg.ToolCalls {
			fmt.Fprintf(b, "  tool: %s(%s)\n", call.Function.Name, call.Function.Arguments)
		}
	}
}
