package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmmitra/FarmMitraGo/internal/auth"
	"github.com/farmmitra/FarmMitraGo/internal/catalog"
	"github.com/farmmitra/FarmMitraGo/internal/service"
	"github.com/farmmitra/FarmMitraGo/pkg/health"
	"github.com/farmmitra/FarmMitraGo/pkg/middleware"
)

// cropCacheMaxAge is the Cache-Control max-age for the static crop
// encyclopedia, in seconds.
const cropCacheMaxAge = 3600

// RouterConfig bundles the dependencies of the HTTP router.
type RouterConfig struct {
	UserService     *service.UserService
	ReviewService   *service.ReviewService
	MarketService   *service.MarketService
	WeatherService  *service.WeatherService
	AdvisoryService *service.AdvisoryService
	OutreachService *service.OutreachService
	Catalog         *catalog.Catalog
	JWTManager      *auth.JWTManager
	HealthHandler   *health.Handler
	Logger          *slog.Logger

	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all farmmitra routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.PrometheusMetrics("farmmitra"))

	// Operational endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, cfg.Logger)
	}

	// Token validator that bridges to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.JWTManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Phone:  claims.Phone,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(cfg.UserService, cfg.Logger)
	userHandler := NewUserHandler(cfg.UserService, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.ReviewService, cfg.Logger)
	cropHandler := NewCropHandler(cfg.Catalog, cfg.Logger)
	marketHandler := NewMarketHandler(cfg.MarketService, cfg.Logger)
	weatherHandler := NewWeatherHandler(cfg.WeatherService, cfg.Logger)
	advisoryHandler := NewAdvisoryHandler(cfg.AdvisoryService, cfg.Logger)
	outreachHandler := NewOutreachHandler(cfg.OutreachService, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public)
		r.Route("/auth", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Profile endpoints (auth required)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))

			r.Get("/me", userHandler.GetProfile)
			r.With(ContentTypeJSON).Put("/me", userHandler.UpdateProfile)
			r.Delete("/me", userHandler.DeleteAccount)
		})

		// Reviews: listing is public, submission requires auth.
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)
			r.With(middleware.Auth(tokenValidator), ContentTypeJSON).Post("/", reviewHandler.Submit)
		})

		// Crop encyclopedia (public, cacheable)
		r.Route("/crops", func(r chi.Router) {
			r.Use(middleware.CacheControl(cropCacheMaxAge))

			r.Get("/", cropHandler.List)
			r.Get("/{name}", cropHandler.Get)
			r.Get("/{name}/pests", cropHandler.Pests)
		})

		r.Get("/market/prices", marketHandler.Prices)
		r.Get("/weather", weatherHandler.Get)

		r.Post("/scanner", advisoryHandler.Scan)
		r.With(ContentTypeJSON).Post("/dbt/status", advisoryHandler.DBTStatus)

		r.Route("/outreach", func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/register", outreachHandler.RegisterFarmer)
			r.Post("/connect", outreachHandler.ConnectCompany)
		})
	})

	return r
}
