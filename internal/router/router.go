package router

import (
	"fmt"
	"strings"

	"github.com/bonus-office/internal/cache"
	"github.com/bonus-office/internal/config"
	adminhandlers "github.com/bonus-office/internal/http/handlers/admin"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bo"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), adminHandler.Login)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.Me)
				authorized.PUT("/password", adminHandler.ChangePassword)

				// 奖金管理
				authorized.GET("/bonuses", adminHandler.ListBonuses)
				authorized.GET("/bonuses/:id", adminHandler.GetBonus)
				authorized.POST("/bonuses", adminHandler.CreateBonus)
				authorized.PUT("/bonuses/:id", adminHandler.UpdateBonus)
				authorized.DELETE("/bonuses/:id", adminHandler.DeleteBonus)
				authorized.POST("/bonuses/:id/activate", adminHandler.ActivateBonus)
				authorized.POST("/bonuses/:id/deactivate", adminHandler.DeactivateBonus)
				authorized.POST("/bonuses/:id/expire", adminHandler.ExpireBonus)
				authorized.POST("/bonuses/bulk", adminHandler.BulkBonusAction)
				authorized.POST("/bonuses/expire-sweep", adminHandler.ExpireSweep)
				authorized.POST("/bonuses/from-template", adminHandler.CreateBonusFromTemplate)
				authorized.POST("/bonuses/:id/apply-template", adminHandler.ApplyTemplateToBonus)

				// 奖励管理
				authorized.GET("/bonuses/:id/rewards", adminHandler.ListBonusRewards)
				authorized.POST("/bonuses/:id/rewards", adminHandler.CreateBonusReward)
				authorized.GET("/rewards/:type/:id", adminHandler.GetReward)
				authorized.PUT("/rewards/:type/:id", adminHandler.UpdateReward)
				authorized.DELETE("/rewards/:type/:id", adminHandler.DeleteReward)

				// 模板管理
				authorized.GET("/bonus-templates", adminHandler.ListBonusTemplates)
				authorized.GET("/bonus-templates/resolve", adminHandler.ResolveBonusTemplate)
				authorized.GET("/bonus-templates/:id", adminHandler.GetBonusTemplate)
				authorized.POST("/bonus-templates", adminHandler.CreateBonusTemplate)
				authorized.PUT("/bonus-templates/:id", adminHandler.UpdateBonusTemplate)
				authorized.DELETE("/bonus-templates/:id", adminHandler.DeleteBonusTemplate)

				// 营销合作申请
				authorized.GET("/marketing-requests", adminHandler.ListMarketingRequests)
				authorized.GET("/marketing-requests/:id", adminHandler.GetMarketingRequest)
				authorized.POST("/marketing-requests", adminHandler.CreateMarketingRequest)
				authorized.PUT("/marketing-requests/:id", adminHandler.UpdateMarketingRequest)
				authorized.DELETE("/marketing-requests/:id", adminHandler.DeleteMarketingRequest)
				authorized.POST("/marketing-requests/:id/activate", adminHandler.ActivateMarketingRequest)
				authorized.POST("/marketing-requests/:id/reject", adminHandler.RejectMarketingRequest)
				authorized.POST("/marketing-requests/:id/reset", adminHandler.ResetMarketingRequest)

				// DSL 标签
				authorized.GET("/dsl-tags", adminHandler.ListDslTags)
				authorized.GET("/dsl-tags/:id", adminHandler.GetDslTag)
				authorized.POST("/dsl-tags", adminHandler.CreateDslTag)
				authorized.PUT("/dsl-tags/:id", adminHandler.UpdateDslTag)
				authorized.DELETE("/dsl-tags/:id", adminHandler.DeleteDslTag)

				// 项目管理
				authorized.GET("/projects", adminHandler.ListProjects)
				authorized.GET("/projects/:id", adminHandler.GetProject)
				authorized.POST("/projects", adminHandler.CreateProject)
				authorized.PUT("/projects/:id", adminHandler.UpdateProject)
				authorized.DELETE("/projects/:id", adminHandler.DeleteProject)

				// 常驻奖励
				authorized.GET("/permanent-bonuses", adminHandler.ListPermanentBonuses)
				authorized.GET("/permanent-bonuses/active", adminHandler.ActivePermanentBonus)
				authorized.GET("/permanent-bonuses/previews", adminHandler.PermanentBonusPreviews)
				authorized.POST("/permanent-bonuses", adminHandler.AddPermanentBonus)
				authorized.DELETE("/permanent-bonuses/:id", adminHandler.RemovePermanentBonus)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
