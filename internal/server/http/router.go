package httpserver

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"skillchess/internal/server/game"
	"skillchess/internal/server/ws"
)

// Server bundles the API handler, the room event hub and the static web
// client behind one http.Handler.
type Server struct {
	h   http.Handler
	Hub *ws.Hub
}

type Options struct {
	WebDir       string
	MobileWebDir string
}

func NewServer(games *game.Manager, opts Options) *Server {
	hub := ws.NewHub()
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, hub))
	mux.Handle("/ws", hub)
	RegisterStaticRoutes(mux, opts.WebDir, opts.MobileWebDir)
	return &Server{h: logRequests(mux), Hub: hub}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"elapsed": time.Since(start),
		}).Debug("request")
	})
}
