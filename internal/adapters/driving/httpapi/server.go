package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/marcfields/internal/logger"
)

// maxRecordBytes caps request bodies.
const maxRecordBytes = 16 << 20

// Server is the HTTP front end.
type Server struct {
	ports   *Ports
	version string
	router  *gin.Engine
}

// NewServer creates the server and its routes.
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Content-Type")
	router.Use(cors.New(corsCfg))

	s := &Server{ports: ports, version: version, router: router}

	router.GET("/favicon.ico", ignoreHandler)
	router.GET("/version", s.versionHandler)
	router.GET("/healthcheck", s.healthCheckHandler)

	if api := router.Group("/api"); api != nil {
		api.POST("/fields", s.fieldsHandler)
		api.POST("/index", s.indexHandler)
		api.GET("/rules", s.rulesHandler)
		api.GET("/records/:id", s.recordHandler)
	}

	return s, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("serving on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
