package tracefetch

import "time"

// Timestamp layouts the service has been observed to emit. Anything else is
// treated as unparseable and the derived duration stays null.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// RunMetadata is the normalized, derived view of a Run.
type RunMetadata struct {
	Status           *string        `json:"status,omitempty"`
	StartTime        *string        `json:"start_time,omitempty"`
	EndTime          *string        `json:"end_time,omitempty"`
	DurationMS       *int64         `json:"duration_ms"`
	PromptTokens     *int           `json:"prompt_tokens,omitempty"`
	CompletionTokens *int           `json:"completion_tokens,omitempty"`
	TotalTokens      *int           `json:"total_tokens,omitempty"`
	PromptCost       *float64       `json:"prompt_cost,omitempty"`
	CompletionCost   *float64       `json:"completion_cost,omitempty"`
	TotalCost        *float64       `json:"total_cost,omitempty"`
	FirstTokenTime   *string        `json:"first_token_time,omitempty"`
	FeedbackStats    map[string]any `json:"feedback_stats"`
	Metadata         map[string]any `json:"metadata"`
}

// HasFeedback reports whether at least one feedback stat is a positive
// number, the gate for the separate feedback lookup.
func (m *RunMetadata) HasFeedback() bool {
	for _, v := range m.FeedbackStats {
		if n, ok := v.(float64); ok && n > 0 {
			return true
		}
	}
	return false
}

// extractRunMetadata derives RunMetadata from a raw run. Duration is
// computed only when both timestamps are present and parseable; upstream
// timestamp formats are not contractually guaranteed, so a parse failure
// yields a null duration instead of an error.
func extractRunMetadata(run *Run) *RunMetadata {
	meta := &RunMetadata{
		Status:           run.Status,
		StartTime:        run.StartTime,
		EndTime:          run.EndTime,
		DurationMS:       durationMS(run.StartTime, run.EndTime),
		PromptTokens:     run.PromptTokens,
		CompletionTokens: run.CompletionTokens,
		TotalTokens:      run.TotalTokens,
		PromptCost:       run.PromptCost,
		CompletionCost:   run.CompletionCost,
		TotalCost:        run.TotalCost,
		FirstTokenTime:   run.FirstTokenTime,
		FeedbackStats:    run.FeedbackStats,
		Metadata:         run.customMetadata(),
	}

	// Downstream consumers iterate these unconditionally.
	if meta.FeedbackStats == nil {
		meta.FeedbackStats = map[string]any{}
	}
	if meta.Metadata == nil {
		meta.Metadata = map[string]any{}
	}

	return meta
}

func durationMS(start, end *string) *int64 {
	if start == nil || end == nil {
		return nil
	}
	startAt, ok := parseTimestamp(*start)
	if !ok {
		return nil
	}
	endAt, ok := parseTimestamp(*end)
	if !ok {
		return nil
	}
	ms := endAt.Sub(startAt).Milliseconds()
	return &ms
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
