package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/api/controllers"
	"github.com/storegrade/storegrade-backend/api/middleware"
	"github.com/storegrade/storegrade-backend/internal/auth"
	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/internal/profiles"
	"github.com/storegrade/storegrade-backend/internal/provisioning"
	"github.com/storegrade/storegrade-backend/internal/ratings"
	"github.com/storegrade/storegrade-backend/internal/stores"
	"github.com/storegrade/storegrade-backend/pkg/auth/session"
	"github.com/storegrade/storegrade-backend/pkg/config"
	"github.com/storegrade/storegrade-backend/pkg/db"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	"github.com/storegrade/storegrade-backend/pkg/logger"
	"github.com/storegrade/storegrade-backend/pkg/metrics"
	"github.com/storegrade/storegrade-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// roleStore is the slice of internal/roles.Repository the router wires into
// handlers: reads feed the admin console, Replace backs role overwrites.
type roleStore interface {
	authz.RoleReader
	Replace(ctx context.Context, userID uuid.UUID, role enums.Role) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionMgr sessionManager,
	httpMetrics *metrics.HTTPMetrics,
	checker *authz.Checker,
	roleRepo roleStore,
	authService auth.Service,
	bootstrapService auth.BootstrapService,
	profileService profiles.Service,
	storeService stores.Service,
	ratingService ratings.Service,
	provisioningService provisioning.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// skip redis-backed checks when no client is wired
	var redisPing interface{ Ping(context.Context) error }
	var rateStore interface {
		IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	}
	if redisClient != nil {
		redisPing = redisClient
		rateStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPing))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	// bespoke protocol; the handler owns method and key checks
	r.Handle("/api/create-user", controllers.ProvisionCreateUser(provisioningService, cfg.Provisioning.ServiceKey, logg))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(bootstrapService, authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionMgr, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", controllers.StoreList(storeService, logg))
		r.Get("/{storeId}", controllers.StoreDetail(storeService, logg))
		r.Get("/{storeId}/ratings", controllers.StoreRatingsList(ratingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionMgr, logg))
			r.Put("/{storeId}", controllers.StoreUpdate(storeService, checker, logg))
			r.Put("/{storeId}/rating", controllers.RatingSubmit(ratingService, checker, logg))
			r.Delete("/{storeId}/rating", controllers.RatingDelete(ratingService, checker, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionMgr, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/me", controllers.ProfileMe(profileService, checker, logg))
			r.Put("/me", controllers.ProfileUpdateMe(profileService, checker, logg))
		})

		r.Get("/owner/stores", controllers.OwnerStores(storeService, ratingService, checker, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionMgr, logg))
		r.Use(middleware.RequireRole(string(enums.RoleSystemAdmin), logg))
		r.Get("/ping", controllers.AdminPing())

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(profileService, roleRepo, checker, logg))
			r.Get("/{userId}", controllers.AdminProfileGet(profileService, checker, logg))
			r.Put("/{userId}", controllers.AdminProfileUpdate(profileService, checker, logg))
			r.Put("/{userId}/role", controllers.AdminUserRoleUpdate(roleRepo, checker, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.AdminStoreList(storeService, logg))
			r.Post("/", controllers.AdminStoreCreate(storeService, checker, logg))
			r.Delete("/{storeId}", controllers.AdminStoreDelete(storeService, checker, logg))
		})
	})

	return r
}
