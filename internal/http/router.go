package router

import (
	"net/http"
	"task-tracker/internal/http/handlers"
	"task-tracker/internal/logx"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// New wires the task routes. metrics may be nil, in which case /metrics is
// not served.
func New(handler *handlers.TaskHandler, metrics http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /tasks", handler.Create)
	mux.HandleFunc("GET /tasks", handler.List)
	mux.HandleFunc("GET /tasks/{position}", handler.Get)
	mux.HandleFunc("PUT /tasks/{position}/status", handler.UpdateStatus)
	mux.HandleFunc("GET /tasks/id/{id}", handler.GetByID)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return withRequestLogging(mux, logx.NewLogger("http").With("access"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLogging(next http.Handler, logger *logx.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("req_id=%s method=%s path=%s status=%d dur=%s",
			reqID, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
