package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

// Server is the HTTP surface over the core chat use case. The core
// never depends on a transport format; the handlers here deserialize
// requests and serialize envelopes around it.
type Server struct {
	router *chi.Mux
	chatUC ChatUseCase
}

// New creates the HTTP server over the given chat use case
func New(chatUC ChatUseCase) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		chatUC: chatUC,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Post("/chat", chatHandler(s.chatUC))
	r.Get("/health", healthHandler(s.chatUC))
	r.Get("/api/services/search", searchHandler(s.chatUC))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
