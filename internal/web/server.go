// Package web serves the portfolio page, its JSON endpoints and the admin
// dashboard.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/nivar/journey/internal/animate"
	"github.com/nivar/journey/internal/config"
	"github.com/nivar/journey/internal/content"
	"github.com/nivar/journey/internal/mail"
	"github.com/nivar/journey/internal/scroll"
	"github.com/nivar/journey/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	cfg      config.Config
	store    *storage.Store
	content  *content.Content
	mailer   mail.Sender
	sampling scroll.Policy

	salt       string
	adminToken string

	engine  *gin.Engine
	now     func() time.Time
	pending sync.WaitGroup
}

// New builds a server. mailer may be nil, in which case contact messages
// are only stored.
func New(cfg config.Config, store *storage.Store, c *content.Content, mailer mail.Sender) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("storage is required")
	}
	if c == nil {
		return nil, fmt.Errorf("content is required")
	}
	policy, err := scroll.ParsePolicy(cfg.Sampling)
	if err != nil {
		return nil, err
	}
	salt, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		store:      store,
		content:    c,
		mailer:     mailer,
		sampling:   policy,
		salt:       salt,
		adminToken: token,
		now:        time.Now,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(s.funcs()).ParseFS(templateFS, "templates/*.html")))

	r.Static("/static", s.cfg.StaticDir)
	r.Static("/images", s.cfg.ImagesDir)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.Use(s.visitorTracking())

	r.GET("/", s.index)
	r.POST("/contact", s.contact)
	r.GET("/privacy", s.privacy)
	r.GET("/resume/:kind", s.resumeFragment)

	api := r.Group("/api")
	api.POST("/events", s.ingestEvents)
	api.GET("/a11y", s.getA11y)
	api.PUT("/a11y", s.putA11y)

	s.adminRoutes(r)
	return r
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"chars":     animate.SplitChars,
		"pathColor": s.content.PathColor,
		"pathWidth": content.PathWidth,
		"techTags":  techTags,
		"odd":       func(i int) bool { return i%2 == 1 },
		"section": func(id string, sections []content.Section) content.Section {
			for _, sec := range sections {
				if string(sec.ID) == id {
					return sec
				}
			}
			return content.Section{ID: scroll.SectionID(id)}
		},
	}
}

type techView struct {
	Shown  []string
	Hidden int
}

func techTags(p content.Project) techView {
	shown, hidden := p.VisibleTech()
	return techView{Shown: shown, Hidden: hidden}
}

// background runs fn outside the request, bounded by timeout.
func (s *Server) background(timeout time.Duration, fn func(ctx context.Context)) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fn(ctx)
	}()
}

// Wait blocks until background work started by handlers has finished.
func (s *Server) Wait() {
	s.pending.Wait()
}

// cleanup deletes visit and event records older than the retention window.
func (s *Server) cleanup(ctx context.Context) {
	removed, err := s.store.Cleanup(ctx, s.now().Add(-s.cfg.Retention))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Privacy cleanup: removed %d records older than %s", removed, s.cfg.Retention)
	}
}

func (s *Server) retentionLoop(ctx context.Context) {
	s.cleanup(ctx)
	interval := s.cfg.CleanupInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

// Run opens storage, serves HTTP on cfg.HTTPAddr and runs the retention
// cleanup until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		return fmt.Errorf("unknown gin mode %q", cfg.GinMode)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	c, err := content.Load()
	if err != nil {
		return err
	}
	if cfg.BaseURL != "" {
		c.Site.BaseURL = cfg.BaseURL
	}

	var mailer mail.Sender
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPSender(cfg.SMTP, nil)
	} else {
		log.Println("SMTP credentials not configured; contact messages are stored only")
	}

	srv, err := New(cfg, store, c, mailer)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Admin access available at: /admin/login")
	log.Println("Privacy: visitor tracking enabled with hashed IP addresses")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Listening on %s (scroll sampling: %s)", cfg.HTTPAddr, srv.sampling)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		srv.retentionLoop(gctx)
		return nil
	})

	err = g.Wait()
	srv.Wait()
	return err
}
