package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	followservice "plume/contexts/community/follow-service"
	notificationservice "plume/contexts/community/notification-service"
	pollengine "plume/contexts/publishing/poll-engine"
	postservice "plume/contexts/publishing/post-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "plume/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	posts         postservice.Module
	polls         pollengine.Module
	follows       followservice.Module
	notifications notificationservice.Module
}

func New(
	posts postservice.Module,
	polls pollengine.Module,
	follows followservice.Module,
	notifications notificationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		posts:         posts,
		polls:         polls,
		follows:       follows,
		notifications: notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /posts", s.handleFeed)
	// Literal segment beats the {slug} wildcard, so this never shadows a post.
	s.mux.HandleFunc("GET /posts/home", s.handleHome)
	s.mux.HandleFunc("POST /posts", s.handleCreatePost)
	s.mux.HandleFunc("GET /posts/{slug}", s.handlePostDetail)
	s.mux.HandleFunc("PATCH /posts/{slug}", s.handleEditPost)
	s.mux.HandleFunc("DELETE /posts/{slug}", s.handleDeletePost)
	s.mux.HandleFunc("POST /posts/{slug}/likes", s.handleToggleLike)
	s.mux.HandleFunc("POST /posts/{slug}/comments", s.handleAddComment)

	s.mux.HandleFunc("GET /posts/{slug}/poll", s.handlePollTally)
	s.mux.HandleFunc("POST /posts/{slug}/poll/votes/{option_id}", s.handleCastVote)

	s.mux.HandleFunc("GET /people", s.handleSearchPeople)
	s.mux.HandleFunc("GET /people/{user_id}", s.handleProfile)
	s.mux.HandleFunc("POST /people/{user_id}/follow", s.handleToggleFollow)

	s.mux.HandleFunc("GET /notifications", s.handleInbox)
	s.mux.HandleFunc("GET /notifications/summary", s.handleNotificationSummary)
	s.mux.HandleFunc("POST /notifications/read-all", s.handleMarkAllRead)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveUserID trusts the gateway-injected identity header. An empty value
// means the request is anonymous.
func resolveUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}
