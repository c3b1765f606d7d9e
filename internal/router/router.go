package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/handler"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/response"
)

// imageMaxAge is the Cache-Control max-age of exam-set images (one year).
const imageMaxAge = 31536000

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Solve  *handler.SolveHandler
	CBT    *handler.CBTHandler
	Result *handler.ResultHandler
	MyPage *handler.MyPageHandler
	Health *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background helpers such as the rate limiter's sweeper.
func SetupRouter(
	ctx context.Context,
	auth middleware.Authenticator,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.GinMode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to AllowedOrigins when set; otherwise allow all for local dev.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	// Images are already compressed.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		SkipPrefixes: []string{"/api/solve/img"},
	}))

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api")

	// ─── 1. Auth (rate limited) ────────────────────────────────────────
	authLimiter := middleware.NewRateLimiter(ctx, 30, time.Minute)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authLimiter.Middleware(), handlers.Auth.SignUp)
		authGroup.POST("/token", authLimiter.Middleware(), handlers.Auth.Token)
		authGroup.GET("/me", middleware.RequireUserJWT(auth), handlers.Auth.Me)
	}

	// ─── 2. Question serving (anonymous allowed) ───────────────────────
	solve := api.Group("/solve")
	{
		solve.GET("", middleware.OptionalUserJWT(auth), handlers.Solve.Retrieve)
		solve.GET("/img/*path", middleware.ImmutableCache(imageMaxAge), handlers.Solve.Image)
	}
	api.GET("/cbt", middleware.OptionalUserJWT(auth), handlers.CBT.Generate)

	// ─── 3. Results (signed in) ────────────────────────────────────────
	results := api.Group("/results")
	results.Use(middleware.RequireUserJWT(auth))
	{
		results.POST("/save", handlers.Result.Save)
		results.POST("/savemany", handlers.Result.SaveMany)
		results.GET("/:id", handlers.Result.Detail)
		results.DELETE("/:id", handlers.Result.Hide)
	}

	// ─── 4. My page (signed in) ────────────────────────────────────────
	mypage := api.Group("/mypage")
	mypage.Use(middleware.RequireUserJWT(auth))
	{
		mypage.GET("/odaps", handlers.MyPage.Odaps)
		mypage.GET("/exam_results", handlers.MyPage.ExamResults)
		mypage.GET("/cbt_results", handlers.MyPage.CBTResults)
		mypage.GET("/practice_results", handlers.MyPage.PracticeResults)
		mypage.GET("/results.xlsx", handlers.MyPage.ExportResults)
	}

	return router
}
