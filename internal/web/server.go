package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/lessonlab/internal/lesson"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Server wraps the gin engine serving the lesson page and API.
type Server struct {
	engine  *gin.Engine
	service *lesson.Service
	log     *zap.SugaredLogger
	srv     *http.Server

	// requestTimeout bounds a single generation call. The core
	// specifies no timeout policy; it is owned here, at the edge.
	requestTimeout time.Duration
}

// Options configures the web server.
type Options struct {
	Service        *lesson.Service
	Logger         *zap.SugaredLogger
	RequestTimeout time.Duration // default 90s
}

// New wires routes and templates and returns a Server.
func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(opts.Logger))

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		engine:         engine,
		service:        opts.Service,
		log:            opts.Logger,
		requestTimeout: opts.RequestTimeout,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.indexPage)
	s.engine.GET("/healthz", s.healthz)

	api := s.engine.Group("/api")
	{
		api.POST("/lesson", s.generateLesson)
	}
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Infow("web UI listening", "addr", addr)

	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// requestLogger records one structured line per request.
func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
