package tracefetch_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tracefetch"
)

func TestFetchTraceDirectMessages(t *testing.T) {
	var gotInclude string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotInclude = r.URL.Query().Get("include_messages")
		writeJSON(t, w, map[string]any{
			"id": r.PathValue("id"),
			"messages": []map[string]any{
				{"role": "user", "content": "hello"},
				{"role": "assistant", "content": "hi"},
			},
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{})
	gt.NoError(t, err)

	gt.Equal(t, gotInclude, "true")
	gt.Equal(t, trace.ID, "run-1")
	gt.Equal(t, len(trace.Messages), 2)
	gt.Equal(t, trace.Messages[0].Role, "user")

	// Neither metadata nor feedback was requested.
	gt.Value(t, trace.Metadata).Nil()
	gt.Value(t, trace.Feedback).Nil()
}

func TestFetchTraceOutputsFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id": r.PathValue("id"),
			"outputs": map[string]any{
				"messages": []map[string]any{
					{"role": "assistant", "content": "from outputs"},
				},
			},
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{})
	gt.NoError(t, err)
	gt.Equal(t, len(trace.Messages), 1)
	gt.Equal(t, trace.Messages[0].Content.PlainText(), "from outputs")
}

func TestFetchTraceDirectMessagesWinOverOutputs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id": r.PathValue("id"),
			"messages": []map[string]any{
				{"role": "user", "content": "direct"},
			},
			"outputs": map[string]any{
				"messages": []map[string]any{
					{"role": "assistant", "content": "nested"},
				},
			},
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{})
	gt.NoError(t, err)

	// First-present-wins, never merged.
	gt.Equal(t, len(trace.Messages), 1)
	gt.Equal(t, trace.Messages[0].Content.PlainText(), "direct")
}

func TestFetchTraceWithMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":         r.PathValue("id"),
			"status":     "success",
			"start_time": "2025-01-01T00:00:00Z",
			"end_time":   "2025-01-01T00:00:02Z",
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{IncludeMetadata: true})
	gt.NoError(t, err)

	gt.Value(t, trace.Metadata).NotNil()
	gt.Equal(t, *trace.Metadata.Status, "success")
	gt.Equal(t, *trace.Metadata.DurationMS, int64(2000))
	gt.Value(t, trace.Feedback).Nil()
}

func TestFetchTraceFeedbackGatedByStats(t *testing.T) {
	var feedbackCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":             r.PathValue("id"),
			"feedback_stats": map[string]any{"thumbs_up": 0},
		})
	})
	mux.HandleFunc("GET /feedback", func(w http.ResponseWriter, r *http.Request) {
		feedbackCalls.Add(1)
		writeJSON(t, w, []map[string]any{})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{IncludeFeedback: true})
	gt.NoError(t, err)

	// No positive stat, so the lookup is skipped and feedback is requested
	// but empty.
	gt.Equal(t, feedbackCalls.Load(), int32(0))
	gt.Value(t, trace.Feedback).NotNil()
	gt.Equal(t, len(trace.Feedback), 0)
}

func TestFetchTraceFeedback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":             r.PathValue("id"),
			"feedback_stats": map[string]any{"thumbs_up": 2},
		})
	})
	mux.HandleFunc("GET /feedback", func(w http.ResponseWriter, r *http.Request) {
		gt.Equal(t, r.URL.Query().Get("run_id"), "run-1")
		score := 1.0
		writeJSON(t, w, []tracefetch.Feedback{
			{ID: "fb-1", Key: "thumbs_up", Score: &score},
			{ID: "fb-2", Key: "thumbs_up", Score: &score},
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{IncludeFeedback: true})
	gt.NoError(t, err)
	gt.Equal(t, len(trace.Feedback), 2)
	gt.Equal(t, trace.Feedback[0].Key, "thumbs_up")
}

func TestFetchTraceFeedbackWrappedShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":             r.PathValue("id"),
			"feedback_stats": map[string]any{"stars": 1},
		})
	})
	mux.HandleFunc("GET /feedback", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"feedback": []map[string]any{{"id": "fb-1", "key": "stars"}},
		})
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{IncludeFeedback: true})
	gt.NoError(t, err)
	gt.Equal(t, len(trace.Feedback), 1)
	gt.Equal(t, trace.Feedback[0].ID, "fb-1")
}

func TestFetchTraceFeedbackFailureIsNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":             r.PathValue("id"),
			"feedback_stats": map[string]any{"thumbs_up": 1},
		})
	})
	mux.HandleFunc("GET /feedback", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client := newTestClient(t, mux)
	trace, err := client.FetchTrace(context.Background(), "run-1", tracefetch.TraceOptions{IncludeFeedback: true})
	gt.NoError(t, err)
	gt.Value(t, trace.Feedback).NotNil()
	gt.Equal(t, len(trace.Feedback), 0)
}
