package v1

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/kurochkinivan/article_cleanup/internal/config"
	"github.com/kurochkinivan/article_cleanup/internal/controller/http/v1/view"
)

type Server struct {
	httpServer *http.Server
}

type Dependencies struct {
	Cleaner        Cleaner
	Sessions       SessionsRepository
	MetricsHandler http.Handler
}

type RouterConfig struct {
	MaxUploadSize int64
	CSRFKey       []byte
	SecureCookies bool
}

func NewServer(log *slog.Logger, cfg *config.Config, csrfKey []byte, deps Dependencies) *Server {
	routerCfg := RouterConfig{
		MaxUploadSize: cfg.App.MaxUploadSize,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.HTTP.SecureCookies,
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			Handler:      NewRouter(log, routerCfg, deps),
		},
	}
}

func NewRouter(log *slog.Logger, cfg RouterConfig, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	pages := NewPagesHandler(log, deps.Cleaner, deps.Sessions, cfg.MaxUploadSize)
	api := NewCleanupHandler(log, deps.Cleaner)

	r.Group(func(r chi.Router) {
		// The anti-forgery check parses form bodies, so the size limit goes first.
		r.Use(middleware.RequestSize(cfg.MaxUploadSize))
		if !cfg.SecureCookies {
			r.Use(plaintextHTTP)
		}
		r.Use(csrf.Protect(
			cfg.CSRFKey,
			csrf.Path("/"),
			csrf.Secure(cfg.SecureCookies),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.FieldName(view.CSRFFieldName),
			csrf.ErrorHandler(http.HandlerFunc(pages.CSRFError)),
		))

		r.Get("/", pages.Index)
		r.Post("/upload", pages.Upload)
		r.Post("/clean", pages.Clean)
		r.Get("/download/{name}", pages.Download)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestSize(cfg.MaxUploadSize))
		r.Post("/inspect", api.Inspect)
		r.Post("/clean", api.Clean)
		r.Post("/clean/csv", api.CleanCSV)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}

// plaintextHTTP marks requests without TLS, so the anti-forgery check skips
// its HTTPS Referer check.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil {
			r = csrf.PlaintextHTTPRequest(r)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
