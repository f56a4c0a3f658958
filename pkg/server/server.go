package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"esade-news/pkg/config"
	"esade-news/pkg/handlers"
	"esade-news/pkg/routes"
	"esade-news/pkg/web"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Article bodies are backend markup, so scripts are refused outright and
// images may come from any https origin.
const contentSecurityPolicy = "default-src 'self'; script-src 'none'; object-src 'none'; img-src 'self' https: data:; base-uri 'self'; frame-ancestors 'none'"

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	log    *slog.Logger
}

// New assembles the gin engine and mounts one handler per route in table.
// The table is frozen; no routes can be added afterwards.
func New(cfg *config.Config, table *routes.Table, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
	}
	if cfg.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	r.Use(secure.New(secureConfig))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		r.Static("/static", cfg.StaticDir)
	}

	r.GET("/healthz", handlers.Health)

	table.Freeze()
	articles := handlers.NewArticleHandler(table, log)
	mounted := map[string]bool{}
	for _, route := range table.Routes() {
		if tmpl.Lookup(route.Template) == nil {
			return nil, fmt.Errorf("route %s: unknown template %q", route.Pattern, route.Template)
		}
		path := ginPath(route.Pattern)
		if mounted[path] {
			continue
		}
		mounted[path] = true
		r.GET(path, articles.Serve)
		log.Info("route registered", "pattern", route.Pattern, "template", route.Template, "controller", route.Controller)
	}

	return &Server{cfg: cfg, engine: r, log: log}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server listening", "addr", s.cfg.ListenAddr, "backend", s.cfg.ContentBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ginPath converts a route pattern into gin syntax: ":name*" becomes "*name".
// Patterns sharing a literal prefix map onto the same gin path; the route
// table decides between them at request time.
func ginPath(pattern string) string {
	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") && strings.HasSuffix(part, "*") {
			parts[i] = "*" + strings.TrimSuffix(part[1:], "*")
		}
	}
	return "/" + strings.Join(parts, "/")
}
