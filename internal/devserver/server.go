// Package devserver serves the browser front end during development: the
// built assets, the route table, and index.html for every client route so
// deep links survive a reload.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lobsternotes/lnrouter"
)

// ClientConfig is the part of the configuration the browser build reads.
// It is served as /config.js, which index.html loads before the wasm.
type ClientConfig struct {
	APIBaseURL  string `json:"apiBaseURL"`
	UseFragment bool   `json:"useFragment"`
}

// Server is the development HTTP server.
type Server struct {
	addr      string
	staticDir string
	routes    *lnrouter.RouteList
	client    ClientConfig
	logger    *slog.Logger

	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a server for the assets in staticDir.
// A nil routes uses lnrouter.DefaultRoutes().
func NewServer(addr, staticDir string, routes *lnrouter.RouteList, client ClientConfig, logger *slog.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	if routes == nil {
		routes = lnrouter.DefaultRoutes()
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		staticDir: staticDir,
		routes:    routes,
		client:    client,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/routes", s.handleRoutes)
	r.GET("/config.js", s.handleClientConfig)
	r.NoRoute(s.handleAsset)

	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()
	s.logger.Info("dev server listening", "addr", listener.Addr().String(), "static", s.staticDir)

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("dev server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"routes":   s.routes.Entries(),
		"fallback": s.routes.Fallback(),
	})
}

func (s *Server) handleClientConfig(c *gin.Context) {
	b, err := json.Marshal(s.client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode client config"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8",
		[]byte("window.lobsterConfig = "+string(b)+";\n"))
}

// handleAsset serves the file at the request path if there is one and
// index.html otherwise.  Only GET and HEAD are served.
func (s *Server) handleAsset(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown api endpoint"})
		return
	}

	if p != "/" {
		name := filepath.Join(s.staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			c.File(name)
			return
		}
	}

	index := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "index.html not found"})
		return
	}

	rt := s.routes.Parse(p)
	s.logger.Debug("serving client route", "path", p, "route", rt.String())
	c.Header("X-Lobster-View", string(rt.Name))
	c.File(index)
}
