package tracefetch

// Run is the raw record shape the tracing service returns for one execution.
// Only the identifier is guaranteed; every other field may be absent and
// absence must stay distinguishable from a zero value.
type Run struct {
	ID               string         `json:"id"`
	Status           *string        `json:"status,omitempty"`
	StartTime        *string        `json:"start_time,omitempty"`
	EndTime          *string        `json:"end_time,omitempty"`
	PromptTokens     *int           `json:"prompt_tokens,omitempty"`
	CompletionTokens *int           `json:"completion_tokens,omitempty"`
	TotalTokens      *int           `json:"total_tokens,omitempty"`
	PromptCost       *float64       `json:"prompt_cost,omitempty"`
	CompletionCost   *float64       `json:"completion_cost,omitempty"`
	TotalCost        *float64       `json:"total_cost,omitempty"`
	FirstTokenTime   *string        `json:"first_token_time,omitempty"`
	FeedbackStats    map[string]any `json:"feedback_stats,omitempty"`
	Extra            *RunExtra      `json:"extra,omitempty"`

	// A run carries its messages either directly or nested under outputs.
	Messages []Message   `json:"messages,omitempty"`
	Outputs  *RunOutputs `json:"outputs,omitempty"`
}

// RunExtra holds the free-form envelope the service nests custom metadata in.
type RunExtra struct {
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RunOutputs is the nested container some run types put their messages in.
type RunOutputs struct {
	Messages []Message `json:"messages,omitempty"`
}

// messageStream returns the run's message sequence, preferring the direct
// field over the nested outputs field. The two are never merged.
func (r *Run) messageStream() []Message {
	if r.Messages != nil {
		return r.Messages
	}
	if r.Outputs != nil {
		return r.Outputs.Messages
	}
	return nil
}

// customMetadata returns the run's custom metadata, or nil when absent.
func (r *Run) customMetadata() map[string]any {
	if r.Extra == nil {
		return nil
	}
	return r.Extra.Metadata
}
