package handler

import (
	"hopechain/internal/adapter/http/middleware"
	redisStore "hopechain/internal/adapter/storage/redis"
	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	CampaignSvc    ports.CampaignService
	DonationSvc    ports.DonationService
	CommentSvc     ports.CommentService
	TokenSvc       ports.TokenService
	AuditSvc       ports.AuditService // nil = audit trail disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Deep health check (PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

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

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	ngoOnly := middleware.RequireRole(domain.RoleNGO)
	donorOnly := middleware.RequireRole(domain.RoleDonor)

	campaignHandler := NewCampaignHandler(deps.CampaignSvc)
	donationHandler := NewDonationHandler(deps.DonationSvc)
	commentHandler := NewCommentHandler(deps.CommentSvc)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	campaigns := v1.Group("/campaigns")
	{
		campaigns.GET("", rl("reads"), campaignHandler.List)
		campaigns.GET("/:id", rl("reads"), campaignHandler.Get)
		campaigns.GET("/:id/raised", rl("reads"), campaignHandler.Raised)
		campaigns.GET("/:id/comments", rl("reads"), commentHandler.List)
	}

	// --- NGO routes ---
	campaigns.POST("", jwtAuth, ngoOnly, rl("campaigns_create"), campaignHandler.Create)
	campaigns.GET("/mine", jwtAuth, ngoOnly, rl("reads"), campaignHandler.ListMine)

	// --- Donor routes ---
	donations := v1.Group("/donations", jwtAuth, donorOnly)
	{
		donations.POST("", rl("donations"), donationHandler.Donate)
		donations.POST("/confirmed", rl("donations"), donationHandler.RecordConfirmed)
		donations.GET("/mine", rl("reads"), donationHandler.ListMine)
	}

	// --- Any authenticated role ---
	campaigns.POST("/:id/comments", jwtAuth, rl("comments"), commentHandler.Post)

	return r
}
