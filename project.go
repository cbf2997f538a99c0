package tracefetch

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectCache memoizes project name to id lookups for the life of the
// process. It is caller-owned so tests can inject a fresh one per run.
type ProjectCache struct {
	mu  sync.Mutex
	ids map[string]string
}

// NewProjectCache creates an empty cache.
func NewProjectCache() *ProjectCache {
	return &ProjectCache{ids: map[string]string{}}
}

// resolve returns the cached id for name, populating it once via lookup.
func (pc *ProjectCache) resolve(ctx context.Context, name string, lookup func(ctx context.Context, name string) (string, error)) (string, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if id, ok := pc.ids[name]; ok {
		return id, nil
	}

	id, err := lookup(ctx, name)
	if err != nil {
		return "", err
	}
	pc.ids[name] = id
	return id, nil
}

// ResolveProject maps a human-readable project name to its remote id,
// consulting the process-lifetime cache first.
func (c *Client) ResolveProject(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrMissingProject
	}

	return c.projects.resolve(ctx, name, func(ctx context.Context, name string) (string, error) {
		query := url.Values{"name": {name}}

		var sessions []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := c.do(ctx, http.MethodGet, "/sessions", query, nil, &sessions); err != nil {
			return "", goerr.Wrap(err, "failed to look up project", goerr.Value("project", name))
		}

		for _, s := range sessions {
			if s.Name == name {
				return s.ID, nil
			}
		}
		return "", goerr.New("project not found", goerr.Value("project", name))
	})
}
