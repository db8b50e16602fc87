package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mealbridge/mealbridge-api/internal/handler"
	"github.com/mealbridge/mealbridge-api/internal/middleware"
	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

// Handler registers a route group
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Config holds router settings
type Config struct {
	RateLimit   middleware.RateLimiterConfig
	CORS        middleware.CORSConfig
	MetricsPath string
}

type Router struct {
	engine   *gin.Engine
	config   Config
	metrics  *metrics.Metrics
	h        *handler.Handler
	handlers []Handler
}

func NewRouter(config Config, m *metrics.Metrics, h *handler.Handler, handlers ...Handler) (*Router, error) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := model.RegisterValidations(v); err != nil {
			return nil, err
		}
	}

	return &Router{
		engine:   gin.New(),
		config:   config,
		metrics:  m,
		h:        h,
		handlers: handlers,
	}, nil
}

// Setup installs middleware and registers every handler under /api/v1
func (r *Router) Setup() {
	r.engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(r.config.CORS),
		middleware.NewRateLimiter(r.config.RateLimit).RateLimit(),
		r.metricsMiddleware(),
	)

	r.engine.GET("/health", r.h.Health)

	path := r.config.MetricsPath
	if path == "" {
		path = "/metrics"
	}
	r.engine.GET(path, gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
