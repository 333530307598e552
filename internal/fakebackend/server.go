// Package fakebackend is an in-memory implementation of the SchedulEase
// backend API with canned data. It backs the client tests and the
// devserver command.
package fakebackend

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
)

// Version is reported by GET /.
const Version = "1.0.0"

type user struct {
	NUID                  string
	Name                  string
	ProgrammingExperience map[string]int
	MathExperience        map[string]int
	Interests             []string
	CompletedCourses      []api.CompletedCourse
	CoreSubjects          []string
}

// Server holds the backend state. It is safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	users     map[string]*user
	schedules map[string][]*api.Schedule
	catalog   []api.Course
	now       func() time.Time

	logger *zap.Logger
	router *chi.Mux
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock fixes the clock used for schedule timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a Server seeded with one user and the default catalog.
func New(opts ...Option) *Server {
	seed := seedUser()
	s := &Server{
		users:     map[string]*user{seed.NUID: seed},
		schedules: map[string][]*api.Schedule{},
		catalog:   seedCatalog(),
		now:       time.Now,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleRoot)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/check-user", s.handleCheckUser)
		r.Post("/register", s.handleRegister)
	})

	r.Get("/course-catalog/{nuid}", s.handleCourseCatalog)
	r.Get("/burnout-analysis/{nuid}", s.handleBurnout)
	r.Get("/progress/{nuid}", s.handleProgress)
	r.Get("/recommendations/{nuid}", s.handleRecommendations)
	r.Post("/recommend-full/{nuid}", s.handleRecommendFull)
	r.Post("/save-schedule/{nuid}", s.handleSaveSchedule)
	r.Get("/schedules/{nuid}", s.handleSchedules)
	r.Delete("/delete-schedule/{nuid}/{name}", s.handleDeleteSchedule)

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("client_request_id", r.Header.Get(api.RequestIDHeader)),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
