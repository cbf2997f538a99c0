package tracefetch_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tracefetch"
)

func TestProjectCachePopulatesOnce(t *testing.T) {
	var lookups atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions", func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		writeJSON(t, w, []map[string]any{{"id": "proj-1", "name": "my-project"}})
	})
	mux.HandleFunc("POST /runs/query", queryHandler(t, nil))

	client := newTestClient(t, mux, tracefetch.WithProjectCache(tracefetch.NewProjectCache()))

	for range 3 {
		_, err := client.FetchTraces(context.Background(), tracefetch.TraceQueryOptions{Project: "my-project"})
		gt.NoError(t, err)
	}

	gt.Equal(t, lookups.Load(), int32(1))
}

func TestProjectNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"id": "proj-2", "name": "other-project"}})
	})

	client := newTestClient(t, mux)
	_, err := client.FetchTraces(context.Background(), tracefetch.TraceQueryOptions{Project: "my-project"})
	gt.Error(t, err)
}
