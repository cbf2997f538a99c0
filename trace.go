package tracefetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

// TraceData is a fetched run reshaped for consumers. Metadata and Feedback
// are nil unless the corresponding option requested them; a requested but
// empty feedback list is non-nil.
type TraceData struct {
	ID       string       `json:"id"`
	Messages []Message    `json:"messages"`
	Metadata *RunMetadata `json:"metadata,omitempty"`
	Feedback []Feedback   `json:"feedback,omitempty"`
}

// TraceOptions selects the optional derived fields of a trace fetch.
type TraceOptions struct {
	IncludeMetadata bool
	IncludeFeedback bool
}

// FetchTrace retrieves one run by id with its messages inline.
//
// Feedback is best-effort: it is looked up only when requested and the run's
// feedback stats indicate feedback exists, and a failed lookup degrades to an
// empty list with a warning instead of failing the trace.
func (c *Client) FetchTrace(ctx context.Context, id string, opts TraceOptions) (*TraceData, error) {
	query := url.Values{"include_messages": {"true"}}

	var run Run
	if err := c.do(ctx, http.MethodGet, "/runs/"+id, query, nil, &run); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch run", goerr.Value("runID", id))
	}

	data := &TraceData{
		ID:       id,
		Messages: run.messageStream(),
	}
	if data.Messages == nil {
		data.Messages = []Message{}
	}

	if !opts.IncludeMetadata && !opts.IncludeFeedback {
		return data, nil
	}

	data.Metadata = extractRunMetadata(&run)

	if opts.IncludeFeedback {
		data.Feedback = []Feedback{}
		if data.Metadata.HasFeedback() {
			feedback, err := c.listFeedback(ctx, id)
			if err != nil {
				c.logger.Warn("failed to fetch feedback",
					slog.String("runID", id),
					slog.Any("error", err),
				)
			} else if feedback != nil {
				data.Feedback = feedback
			}
		}
	}

	return data, nil
}
