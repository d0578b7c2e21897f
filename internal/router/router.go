package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/detailerhq/booking-api/internal/handler/account"
	"github.com/detailerhq/booking-api/internal/handler/auth"
	"github.com/detailerhq/booking-api/internal/handler/booking"
	"github.com/detailerhq/booking-api/internal/handler/catalog"
	"github.com/detailerhq/booking-api/internal/handler/detailer"
	"github.com/detailerhq/booking-api/internal/handler/garage"
	"github.com/detailerhq/booking-api/internal/handler/health"
	"github.com/detailerhq/booking-api/internal/middleware"
	"github.com/detailerhq/booking-api/internal/model"
	"github.com/detailerhq/booking-api/pkg/logger"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsPrefix  string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	authH    *auth.Handler
	accountH *account.Handler
	catalogH *catalog.Handler
	bookingH *booking.Handler
	garageH  *garage.Handler
	detailH  *detailer.Handler
	healthH  *health.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	authMw *middleware.AuthMiddleware,
	authH *auth.Handler,
	accountH *account.Handler,
	catalogH *catalog.Handler,
	bookingH *booking.Handler,
	garageH *garage.Handler,
	detailH *detailer.Handler,
	healthH *health.Handler,
	log *logger.Logger,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     authMw,
		authH:    authH,
		accountH: accountH,
		catalogH: catalogH,
		bookingH: bookingH,
		garageH:  garageH,
		detailH:  detailH,
		healthH:  healthH,
		metrics:  newRouterMetrics(cfg.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		r.metricsMiddleware(),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)

	// Public surface
	r.authH.RegisterRoutes(api)
	r.catalogH.RegisterRoutes(api)

	// Any authenticated user
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.accountH.RegisterRoutes(protected)

	// Role-gated surfaces
	client := protected.Group("/client")
	client.Use(r.auth.RequireRole(model.RoleClient))
	r.bookingH.RegisterClientRoutes(client)
	r.garageH.RegisterRoutes(client)

	det := protected.Group("/detailer")
	det.Use(r.auth.RequireRole(model.RoleDetailer))
	r.catalogH.RegisterDetailerRoutes(det)
	r.bookingH.RegisterDetailerRoutes(det)
	r.detailH.RegisterRoutes(det)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
