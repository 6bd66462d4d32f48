package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/blogpessoal/blogapi/config"
	"github.com/blogpessoal/blogapi/internal/auth"
	"github.com/blogpessoal/blogapi/internal/db"
	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/internal/handlers"
	"github.com/blogpessoal/blogapi/internal/logging"
	"github.com/blogpessoal/blogapi/internal/mq"
	"github.com/blogpessoal/blogapi/internal/services"
	"github.com/blogpessoal/blogapi/internal/storage"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

// Dependencies are the collaborators the HTTP routes are built from.
type Dependencies struct {
	DB     handlers.Pinger
	Posts  services.PostRepository
	Themes services.ThemeRepository
	Users  services.UserRepository
	// Photos is optional; photo routes are only mounted when it is set.
	Photos services.PhotoStore
	Events events.Publisher
	Hasher services.PasswordHasher
	Tokens *auth.TokenIssuer
	Logger *slog.Logger
}

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
	logger     *slog.Logger
}

// New constructs a Server backed by Postgres and whichever storage and
// broker backends cfg selects.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	var publisher events.Publisher = events.Nop{}
	if broker != nil {
		publisher = events.NewMQPublisher(broker, cfg.MQ.EventsChannel, logger)
	}

	deps := Dependencies{
		DB:     dbConn,
		Posts:  store.NewPostRepository(dbConn),
		Themes: store.NewThemeRepository(dbConn),
		Users:  store.NewUserRepository(dbConn),
		Events: publisher,
		Hasher: auth.NewHasher(cfg.Auth.BcryptCost),
		Tokens: auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Logger: logger,
	}

	objectStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		closeQuietly(broker)
		_ = dbConn.Close()
		return nil, err
	}
	if objectStore != nil {
		deps.Photos = objectStore
	}

	router := NewRouter(deps)

	return &Server{
		httpServer: newHTTPServer(cfg.ServerPort, router),
		router:     router,
		db:         dbConn,
		broker:     broker,
		logger:     logger,
	}, nil
}

// NewRouter mounts the middleware stack and every route on a fresh router.
func NewRouter(deps Dependencies) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	postService := services.NewPostService(deps.Posts, deps.Events)
	themeService := services.NewThemeService(deps.Themes, deps.Events)
	userService := services.NewUserService(deps.Users)
	authService := services.NewAuthService(deps.Users, deps.Hasher, deps.Tokens, deps.Events, logger)

	authMiddleware := handlers.RequireAuth(deps.Tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		logging.RequestLogger(logger),
		middleware.Timeout(requestTimeout),
	)
	router.Get("/healthz", handlers.Healthz(deps.DB))

	router.Route("/api", func(r chi.Router) {
		r.Route("/Usuarios", func(r chi.Router) {
			handlers.UserRouter(r, userService, authService, authMiddleware, logger)
		})
		r.Route("/Postagens", func(r chi.Router) {
			r.Use(authMiddleware)
			handlers.PostRouter(r, postService, logger)
		})
		r.Route("/Temas", func(r chi.Router) {
			r.Use(authMiddleware)
			handlers.ThemeRouter(r, themeService, logger)
		})
		if deps.Photos != nil {
			r.Route("/Fotos", func(r chi.Router) {
				handlers.PhotoRouter(r, services.NewPhotoService(deps.Photos), authMiddleware, logger)
			})
		}
	})

	return router
}

// newHTTPServer builds the listener. Its write deadline matches the
// per-request timeout so handlers are cancelled before the connection is cut.
func newHTTPServer(port int, handler http.Handler) *http.Server {
	if port == 0 {
		port = 8080
	}
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout,
		IdleTimeout:  60 * time.Second,
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the broker and the
// database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	closeQuietly(s.broker)
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}

func closeQuietly(broker *mq.MQ) {
	if broker != nil {
		_ = broker.Close()
	}
}
