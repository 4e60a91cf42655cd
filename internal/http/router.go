package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merrickb/recipebox/internal/auth"
	"github.com/merrickb/recipebox/internal/config"
	"github.com/merrickb/recipebox/internal/http/handlers"
	"github.com/merrickb/recipebox/internal/http/middlewares"
	"github.com/merrickb/recipebox/internal/observability"
	"github.com/merrickb/recipebox/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// POST to a GET/PATCH-only resource should say 405, not 404
	r.HandleMethodNotAllowed = true

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("recipebox"))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)
	r.Use(prom.GinHandleMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	tokensRepo := postgres.NewAuthTokensRepo(pool)
	recipesRepo := postgres.NewRecipesRepo(pool, prom)
	tagsRepo := postgres.NewTagsRepo(pool)

	authManager := auth.NewManager(cfg.AuthSecret)
	authMw := middlewares.NewAuthMiddleware(authManager, tokensRepo)

	usersHandler := handlers.NewUsersHandler(usersRepo, tokensRepo, authManager)
	recipesHandler := handlers.NewRecipesHandler(recipesRepo)
	tagsHandler := handlers.NewTagsHandler(tagsRepo)

	// the public auth endpoints are the brute-force surface
	limiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	limit := limiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP)

	r.POST("/users", limit, usersHandler.CreateUser)
	r.POST("/users/token", limit, usersHandler.CreateToken)
	r.DELETE("/users/token", authMw.RequireAuth(), usersHandler.RevokeToken)

	me := r.Group("/users/me", authMw.RequireAuth())
	me.GET("", usersHandler.Me)
	me.PATCH("", usersHandler.UpdateMe)

	recipes := r.Group("/recipes", authMw.RequireAuth())
	recipes.GET("", recipesHandler.ListRecipes)
	recipes.POST("", recipesHandler.CreateRecipe)
	recipes.GET("/:id", recipesHandler.GetRecipeByID)
	recipes.PATCH("/:id", recipesHandler.UpdateRecipe)
	recipes.PUT("/:id", recipesHandler.ReplaceRecipe)
	recipes.DELETE("/:id", recipesHandler.DeleteRecipe)

	tags := r.Group("/tags", authMw.RequireAuth())
	tags.GET("", tagsHandler.ListTags)
	tags.POST("", tagsHandler.CreateTag)

	return r
}
