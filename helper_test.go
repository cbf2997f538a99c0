package tracefetch_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tracefetch"
	"github.com/m-mizutani/tracefetch/internal"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...tracefetch.Option) *tracefetch.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	options := append([]tracefetch.Option{
		tracefetch.WithBaseURL(srv.URL),
		tracefetch.WithLogger(internal.TestLogger()),
	}, opts...)

	client, err := tracefetch.New("test-api-key", options...)
	gt.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	gt.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func strPtr(s string) *string { return &s }
