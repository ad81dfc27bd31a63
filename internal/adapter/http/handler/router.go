package handler

import (
	"cokilo-admin/internal/adapter/http/middleware"
	redisStore "cokilo-admin/internal/adapter/storage/redis"
	"cokilo-admin/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WithdrawalSvc  ports.WithdrawalService
	WalletSvc      ports.WalletReportingService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	admin := r.Group("/api/admin")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	admin.POST("/login", rl("login"), authHandler.Login)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	withdrawalHandler := NewWithdrawalHandler(deps.WithdrawalSvc)
	walletHandler := NewWalletHandler(deps.WalletSvc)

	users := admin.Group("/users", jwtAuth)
	{
		users.GET("/:userId/withdrawals", rl("reports"), withdrawalHandler.ListForUser)
	}

	wallet := admin.Group("/wallet", jwtAuth)
	{
		wallet.GET("/withdrawal/:id", rl("reports"), withdrawalHandler.GetDetail)
		wallet.POST("/withdrawal/:id/approve", rl("decisions"), withdrawalHandler.Approve)
		wallet.POST("/withdrawal/:id/reject", rl("decisions"), withdrawalHandler.Reject)
		wallet.GET("/user/:userId/history", rl("reports"), walletHandler.UserHistory)
		wallet.GET("/dzd", rl("reports"), walletHandler.ListDZDWallets)
		wallet.GET("/stats", rl("reports"), walletHandler.Stats)
	}

	return r
}
