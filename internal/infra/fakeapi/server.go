// Package fakeapi is an in-memory implementation of the board backend's REST
// contract. It backs the dev-server command and the gateway and mutation
// tests: identifiers are 64-bit snowflakes, non-empty buckets cannot be
// deleted, tasks are soft-deleted, and failures can be injected per request.
// Task writes are recorded in the project's activity feed.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/equilibra/eqboard/internal/domain"
)

// Server is the development backend. It implements http.Handler.
// Fields are ordered to minimize memory padding.
type Server struct {
	handler  http.Handler
	ids      *snowflake
	logger   domain.Logger
	now      func() time.Time
	onReq    func(*http.Request)
	projects   map[domain.EntityID]domain.Project
	hits       map[string]int
	buckets    []domain.Bucket
	tasks      []domain.Task
	members    []domain.ProjectMember
	alerts     []domain.Alert
	activities []domain.Activity
	failures   []failure
	latency    time.Duration
	mu         sync.Mutex
}

// failure is a scripted response for the next matching request.
type failure struct {
	method string
	path   string
	detail string
	status int
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every response by d.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithLogger logs each request.
func WithLogger(l domain.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock replaces time.Now for timestamps and identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithRequestHook calls fn before each request is handled, outside the
// server lock. Tests use it to hold requests in flight.
func WithRequestHook(fn func(*http.Request)) Option {
	return func(s *Server) { s.onReq = fn }
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   domain.NopLogger{},
		now:      time.Now,
		projects: make(map[domain.EntityID]domain.Project),
		hits:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = newSnowflake(1, func() time.Time { return s.now() })

	r := mux.NewRouter()
	r.HandleFunc("/projects/mine", s.listMyProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project}/activities", s.listActivities).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project}/board", s.getBoard).Methods(http.MethodGet)
	r.HandleFunc("/tasks/batch-review", s.batchReview).Methods(http.MethodPost)
	r.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{task}", s.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{task}", s.deleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{project}/buckets/{bucket}/tasks/reorder", s.reorderTasks).Methods(http.MethodPut)
	r.HandleFunc("/buckets", s.createBucket).Methods(http.MethodPost)
	r.HandleFunc("/projects/{project}/buckets/reorder", s.reorderBuckets).Methods(http.MethodPut)
	r.HandleFunc("/projects/{project}/buckets/{bucket}", s.deleteBucket).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{project}/members", s.listMembers).Methods(http.MethodGet)
	r.HandleFunc("/projects/{project}/members", s.addMember).Methods(http.MethodPost)
	r.HandleFunc("/projects/{project}/alerts", s.listAlerts).Methods(http.MethodGet)
	r.HandleFunc("/alerts/{alert}/resolve", s.resolveAlert).Methods(http.MethodPut)
	r.Use(s.intercept)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	s.handler = c.Handler(r)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// FailNext makes the next request matching method and path answer with
// status and a {"detail": ...} body. An empty detail sends no body.
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status, detail: detail})
}

// Hits returns how many requests reached method and path.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// intercept counts requests, applies latency and hooks, and serves scripted
// failures before the route handler runs.
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.onReq != nil {
			s.onReq(r)
		}
		if s.latency > 0 {
			time.Sleep(s.latency)
		}

		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		f, ok := s.takeFailure(r.Method, r.URL.Path)
		s.mu.Unlock()

		s.logger.Debug("", "fakeapi", fmt.Sprintf("%s %s (request %s)", r.Method, r.URL.Path, r.Header.Get("X-Request-ID")))
		if ok {
			if f.detail == "" {
				w.WriteHeader(f.status)
				return
			}
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// takeFailure pops the first scripted failure for the request.
// Callers must hold s.mu.
func (s *Server) takeFailure(method, path string) (failure, bool) {
	for i, f := range s.failures {
		if f.method == method && f.path == path {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			return f, true
		}
	}
	return failure{}, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail sends the backend's error shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// decodeBody reads a JSON request body into v, answering 422 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID reads a route variable as an identifier.
func pathID(r *http.Request, name string) domain.EntityID {
	return domain.ParseEntityID(mux.Vars(r)[name])
}
