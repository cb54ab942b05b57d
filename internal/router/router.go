package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beautysalon/salon-api/config"
	"github.com/beautysalon/salon-api/internal/handler"
	authhandler "github.com/beautysalon/salon-api/internal/handler/auth"
	bookinghandler "github.com/beautysalon/salon-api/internal/handler/booking"
	cataloghandler "github.com/beautysalon/salon-api/internal/handler/catalog"
	dashboardhandler "github.com/beautysalon/salon-api/internal/handler/dashboard"
	profilehandler "github.com/beautysalon/salon-api/internal/handler/profile"
	stylisthandler "github.com/beautysalon/salon-api/internal/handler/stylist"
	"github.com/beautysalon/salon-api/internal/middleware"
	pkgauth "github.com/beautysalon/salon-api/pkg/auth"
	"github.com/beautysalon/salon-api/pkg/logger"
)

// Handlers bundles the endpoint groups the router mounts.
type Handlers struct {
	Auth      *authhandler.Handler
	Booking   *bookinghandler.Handler
	Catalog   *cataloghandler.Handler
	Profile   *profilehandler.Handler
	Stylist   *stylisthandler.Handler
	Dashboard *dashboardhandler.Handler
}

func New(cfg *config.Config, log *logger.Logger, db *sqlx.DB, jwt pkgauth.JWTService, h Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidators()

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(),
		middleware.Timeout(cfg.Server.RequestTimeout),
		middleware.ErrorHandler(log),
	)
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	if cfg.Monitoring.Enabled {
		engine.Use(requestMetrics())
		engine.GET(cfg.Monitoring.Path, gin.WrapH(promhttp.Handler()))
	}

	engine.GET("/health", handler.Health(db))

	api := engine.Group("/api/v1")
	h.Auth.RegisterPublicRoutes(api)
	h.Booking.RegisterPublicRoutes(api)
	h.Catalog.RegisterPublicRoutes(api)
	h.Stylist.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwt))
	h.Auth.RegisterProtectedRoutes(protected)
	h.Booking.RegisterProtectedRoutes(protected)
	h.Profile.RegisterProtectedRoutes(protected)

	admin := api.Group("/admin")
	admin.Use(middleware.Auth(jwt), middleware.RequireAdmin())
	h.Booking.RegisterAdminRoutes(admin)
	h.Catalog.RegisterAdminRoutes(admin)
	h.Dashboard.RegisterAdminRoutes(admin)

	return engine
}
