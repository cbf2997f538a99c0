package tracefetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// Feedback is one annotation attached to a run.
type Feedback struct {
	ID         string   `json:"id"`
	Key        string   `json:"key"`
	Score      *float64 `json:"score,omitempty"`
	Value      any      `json:"value,omitempty"`
	Comment    *string  `json:"comment,omitempty"`
	Correction any      `json:"correction,omitempty"`
	CreatedAt  *string  `json:"created_at,omitempty"`
}

// listFeedback fetches the feedback attached to one run. The endpoint
// answers either a bare array or an object wrapping it under "feedback".
func (c *Client) listFeedback(ctx context.Context, runID string) ([]Feedback, error) {
	query := url.Values{"run_id": {runID}}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/feedback", query, nil, &raw); err != nil {
		return nil, err
	}

	var list []Feedback
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Feedback []Feedback `json:"feedback"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, goerr.Wrap(err, "unexpected feedback response shape", goerr.Value("runID", runID))
	}

	return wrapped.Feedback, nil
}
