package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-export/internal/importers"
	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/sources"
)

// multipartOverhead is allowed on top of the upload limit for form
// boundaries and headers.
const multipartOverhead = 1 << 20

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	Pipeline       *importers.Pipeline
	Logger         logger.Logger
	Version        string
	MaxUploadBytes int64
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	pipeline := cfg.Pipeline
	if pipeline == nil {
		pipeline = importers.NewPipeline(log)
	}

	router := gin.New()
	router.Use(RequestLogger(log))
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Version, "")
	exporter := NewExportController(pipeline, cfg.MaxUploadBytes, log)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	api.GET("/input-types", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"input_types": sources.InputTypes()})
	})
	api.POST("/export/:type", BodySizeLimiter(cfg.MaxUploadBytes+multipartOverhead), exporter.Export)

	return router
}

// RequestLogger logs one line per request through log.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log.Info("request completed",
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"status_code", c.Writer.Status(),
			"body_size", c.Writer.Size(),
			"path", path,
		)
	}
}

// BodySizeLimiter limits the request body size for a route.
func BodySizeLimiter(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
