package tracefetch

import (
	"context"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ThreadData is a conversation reconstructed from a thread's consolidated
// message blob. ID is the caller's scoping key, not a remote-assigned id.
type ThreadData struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

// FetchThread retrieves the consolidated message history of one thread
// scoped to a project.
func (c *Client) FetchThread(ctx context.Context, threadID, projectID string) (*ThreadData, error) {
	if projectID == "" {
		return nil, ErrMissingProject
	}

	query := url.Values{
		"select":     {"all_messages"},
		"session_id": {projectID},
	}

	var resp struct {
		Previews struct {
			AllMessages string `json:"all_messages"`
		} `json:"previews"`
	}
	if err := c.do(ctx, http.MethodGet, "/runs/threads/"+threadID, query, nil, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch thread", goerr.Value("threadID", threadID))
	}

	return &ThreadData{
		ID:       threadID,
		Messages: ParseMessageBlob(resp.Previews.AllMessages),
	}, nil
}

// collectThreadIDs scans query results in arrival order and gathers the
// first occurrence of each thread identifier, stopping once limit unique ids
// are collected. A run names its thread under the metadata key "thread_id",
// falling back to "session_id".
func collectThreadIDs(runs []Run, limit int) []string {
	seen := orderedmap.New[string, struct{}]()

	for i := range runs {
		if limit > 0 && seen.Len() >= limit {
			break
		}
		id := threadIDOf(&runs[i])
		if id == "" {
			continue
		}
		seen.Set(id, struct{}{})
	}

	ids := make([]string, 0, seen.Len())
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

func threadIDOf(run *Run) string {
	meta := run.customMetadata()
	if meta == nil {
		return ""
	}
	if id, ok := meta["thread_id"].(string); ok && id != "" {
		return id
	}
	if id, ok := meta["session_id"].(string); ok && id != "" {
		return id
	}
	return ""
}
