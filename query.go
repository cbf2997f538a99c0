package tracefetch

import (
	"context"
	"net/http"
	"time"
)

const (
	defaultQueryLimit = 10
	// Thread discovery scans plain runs, many of which share a thread, so
	// the candidate query over-fetches relative to the requested limit.
	threadScanMultiplier = 10
	threadScanDefault    = 100
	threadScanMax        = 1000
)

// timeWindow is the mutually exclusive time filter of a search request:
// either a relative window of the last N minutes or an absolute lower bound.
type timeWindow struct {
	LastMinutes int
	Since       time.Time
}

// startTime converts the window to the absolute RFC3339 start bound the
// query body wants, or "" when unfiltered. Supplying both bounds is a usage
// error, rejected before any request is issued.
func (w timeWindow) startTime(now func() time.Time) (string, error) {
	relative := w.LastMinutes > 0
	absolute := !w.Since.IsZero()

	switch {
	case relative && absolute:
		return "", ErrConflictingTimeWindow
	case relative:
		return now().Add(-time.Duration(w.LastMinutes) * time.Minute).UTC().Format(time.RFC3339), nil
	case absolute:
		return w.Since.UTC().Format(time.RFC3339), nil
	default:
		return "", nil
	}
}

// runQuery is the request body of POST /runs/query.
type runQuery struct {
	IsRoot    bool     `json:"is_root"`
	Filter    string   `json:"filter,omitempty"`
	Limit     int      `json:"limit"`
	Session   []string `json:"session,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
}

// queryRuns asks the remote index for root runs matching the query.
func (c *Client) queryRuns(ctx context.Context, query runQuery) ([]Run, error) {
	var resp struct {
		Runs []Run `json:"runs"`
	}
	if err := c.do(ctx, http.MethodPost, "/runs/query", nil, query, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}

// buildTraceQuery assembles the search request for trace discovery. Runs
// still in flight are excluded.
func buildTraceQuery(projectID, startTime string, limit int) runQuery {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	q := runQuery{
		IsRoot:    true,
		Filter:    `neq(status, "pending")`,
		Limit:     limit,
		StartTime: startTime,
	}
	if projectID != "" {
		q.Session = []string{projectID}
	}
	return q
}

// buildThreadQuery assembles the search request for thread discovery. The
// limit here bounds the candidate runs scanned, not the threads returned.
func buildThreadQuery(projectID, startTime string, threadLimit int) runQuery {
	scan := threadScanDefault
	if threadLimit > 0 {
		scan = threadLimit * threadScanMultiplier
		if scan > threadScanMax {
			scan = threadScanMax
		}
	}
	return runQuery{
		IsRoot:    true,
		Limit:     scan,
		Session:   []string{projectID},
		StartTime: startTime,
	}
}
