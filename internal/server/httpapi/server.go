// Package httpapi exposes the Aletheia services over a REST JSON surface.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/aletheia-net/aletheia/internal/logging"
	"github.com/aletheia-net/aletheia/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Server routes HTTP requests to the service layer.
type Server struct {
	address    string
	logger     logging.Logger
	jwtSecret  []byte
	users      *services.UserService
	quests     *services.QuestService
	posts      *services.PostService
	oracle     *services.OracleService
	moderation *services.ModerationService
	uploads    *services.UploadService
}

// NewServer constructs a Server over the given services.
func NewServer(address string, l logging.Logger, secretKey string,
	users *services.UserService, quests *services.QuestService, posts *services.PostService,
	oracle *services.OracleService, moderation *services.ModerationService, uploads *services.UploadService) *Server {
	return &Server{
		address:    address,
		logger:     l.With("module", "http_server"),
		jwtSecret:  []byte(secretKey),
		users:      users,
		quests:     quests,
		posts:      posts,
		oracle:     oracle,
		moderation: moderation,
		uploads:    uploads,
	}
}

// Handler builds the route table. Everything except health and auth
// requires a bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /profile/{id}", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("POST /profile/{id}/update", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("POST /profile/{id}/follow", s.requireAuth(s.handleFollowToggle))
	mux.HandleFunc("GET /leaderboard", s.requireAuth(s.handleLeaderboard))

	mux.HandleFunc("GET /posts", s.requireAuth(s.handleListPosts))
	mux.HandleFunc("POST /posts", s.requireAuth(s.handleCreatePost))
	mux.HandleFunc("GET /posts/{id}", s.requireAuth(s.handleGetPost))
	mux.HandleFunc("POST /posts/{id}/toggle-like", s.requireAuth(s.handleToggleLike))
	mux.HandleFunc("GET /posts/{id}/comments", s.requireAuth(s.handleListComments))
	mux.HandleFunc("POST /posts/{id}/comments", s.requireAuth(s.handleAddComment))

	mux.HandleFunc("GET /quests/{userId}", s.requireAuth(s.handleListQuests))
	mux.HandleFunc("POST /quests/{id}/complete", s.requireAuth(s.handleCompleteQuest))

	mux.HandleFunc("GET /notifications/{userId}", s.requireAuth(s.handleListNotifications))
	mux.HandleFunc("POST /notifications/{id}/read", s.requireAuth(s.handleMarkNotificationRead))
	mux.HandleFunc("GET /achievements/{userId}", s.requireAuth(s.handleListAchievements))

	mux.HandleFunc("POST /ai/quest/generate", s.requireAuth(s.handleGenerateQuests))
	mux.HandleFunc("POST /ai/mysterious-name", s.handleMysteriousName)
	mux.HandleFunc("POST /ai/feat", s.requireAuth(s.handleFeat))
	mux.HandleFunc("POST /ai/mirror/scenario", s.requireAuth(s.handleMirrorScenario))
	mux.HandleFunc("POST /ai/mirror/evaluate", s.requireAuth(s.handleMirrorEvaluate))
	mux.HandleFunc("GET /ai/wisdom", s.handleWisdom)

	mux.HandleFunc("POST /reports", s.requireAuth(s.handleReport))
	mux.HandleFunc("POST /uploads/presign", s.requireAuth(s.handlePresign))
	mux.HandleFunc("GET /uploads/url", s.requireAuth(s.handleUploadURL))

	return s.logRequests(mux)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
