package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies of the
// route tree.  Nil handlers are skipped.
type RouterConfig struct {
	Mode string // gin mode; empty keeps the current one

	SurveyHandler *handlers.SurveyHandler
	HealthHandler *handlers.HealthHandler

	// MetricsHandler is mounted at MetricsPath when non-nil.
	MetricsHandler http.Handler
	MetricsPath    string

	// RequestTimeout bounds each request's context; zero disables it.
	RequestTimeout time.Duration

	CORS     *middleware.CORSConfig
	Logging  middleware.LoggingConfig
	Recorder middleware.RequestRecorder
	Logger   logging.Logger
}

// NewRouter builds the gin engine: global middleware, probes, metrics and
// the /api/v1 group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(cfg.Logger.Named("http"), cfg.Logging, cfg.Recorder))
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(r)
	}
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	if cfg.SurveyHandler != nil {
		cfg.SurveyHandler.RegisterRoutes(api)
	}
	return r
}

//Personal.AI order the ending
