package tracefetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ProgressFunc observes bulk-fetch progress. It is invoked exactly once per
// settled item, success or failure, with a strictly increasing done count.
type ProgressFunc func(done, total int)

// fetchAll fans fetch out over ids with at most maxConcurrent calls in
// flight and fans the results back in. Per-item failures are isolated: the
// item is logged and omitted, the batch never fails. Output preserves the
// relative order of ids.
func fetchAll[T any](ctx context.Context, ids []string, maxConcurrent int, progress ProgressFunc, logger *slog.Logger, kind string, fetch func(ctx context.Context, id string) (*T, error)) []*T {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	results := make([]*T, len(ids))
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			item, err := fetch(ctx, id)
			if err != nil {
				logger.Warn("failed to fetch "+kind,
					slog.String("id", id),
					slog.Any("error", err),
				)
			} else {
				results[i] = item
			}

			// The counter and the callback advance together so every
			// observer sees a distinct count from 1 to total.
			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(ids))
			}
			mu.Unlock()
		}(i, id)
	}

	wg.Wait()

	out := make([]*T, 0, len(ids))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// TraceQueryOptions controls a bulk trace fetch. LastMinutes and Since are
// mutually exclusive; leaving both unset means unfiltered up to Limit.
type TraceQueryOptions struct {
	Project         string
	Limit           int
	LastMinutes     int
	Since           time.Time
	IncludeMetadata bool
	IncludeFeedback bool
	MaxConcurrent   int
	Progress        ProgressFunc
}

// FetchTraces discovers matching root runs and fetches each as a trace. A
// query matching nothing yields an empty, non-nil result.
func (c *Client) FetchTraces(ctx context.Context, opts TraceQueryOptions) ([]*TraceData, error) {
	startTime, err := timeWindow{LastMinutes: opts.LastMinutes, Since: opts.Since}.startTime(time.Now)
	if err != nil {
		return nil, err
	}

	var projectID string
	if opts.Project != "" {
		if projectID, err = c.ResolveProject(ctx, opts.Project); err != nil {
			return nil, err
		}
	}

	runs, err := c.queryRuns(ctx, buildTraceQuery(projectID, startTime, opts.Limit))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query runs")
	}

	ids := make([]string, 0, len(runs))
	for _, run := range runs {
		ids = append(ids, run.ID)
	}

	itemOpts := TraceOptions{
		IncludeMetadata: opts.IncludeMetadata,
		IncludeFeedback: opts.IncludeFeedback,
	}
	return fetchAll(ctx, ids, c.concurrency(opts.MaxConcurrent), opts.Progress, c.logger, "trace",
		func(ctx context.Context, id string) (*TraceData, error) {
			return c.FetchTrace(ctx, id, itemOpts)
		}), nil
}

// ThreadQueryOptions controls a bulk thread fetch. Project is required
// because thread previews are scoped to one project.
type ThreadQueryOptions struct {
	Project       string
	Limit         int
	LastMinutes   int
	Since         time.Time
	MaxConcurrent int
	Progress      ProgressFunc
}

// FetchThreads discovers recently active threads in a project and
// reconstructs each one's conversation. Thread ids are deduplicated in
// first-seen order, capped at Limit.
func (c *Client) FetchThreads(ctx context.Context, opts ThreadQueryOptions) ([]*ThreadData, error) {
	startTime, err := timeWindow{LastMinutes: opts.LastMinutes, Since: opts.Since}.startTime(time.Now)
	if err != nil {
		return nil, err
	}

	projectID, err := c.ResolveProject(ctx, opts.Project)
	if err != nil {
		return nil, err
	}

	runs, err := c.queryRuns(ctx, buildThreadQuery(projectID, startTime, opts.Limit))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query runs")
	}

	ids := collectThreadIDs(runs, opts.Limit)

	return fetchAll(ctx, ids, c.concurrency(opts.MaxConcurrent), opts.Progress, c.logger, "thread",
		func(ctx context.Context, id string) (*ThreadData, error) {
			return c.FetchThread(ctx, id, projectID)
		}), nil
}

func (c *Client) concurrency(override int) int {
	if override > 0 {
		return override
	}
	return c.maxConcurrent
}
