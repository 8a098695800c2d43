package app

import (
	"critical_thinking_backend/docs"
	"critical_thinking_backend/internal/config"
	"critical_thinking_backend/internal/middleware"
	"critical_thinking_backend/internal/model"
	"critical_thinking_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	router.GET("/health", c.health.HealthCheck)
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 学生/通用 授权接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		assessment := authGroup.Group("/assessment")
		{
			assessment.POST("/tests", c.assessment.GenerateTest)
			assessment.GET("/tests", c.assessment.ListMyTests)
			assessment.GET("/tests/:id/questions", c.assessment.GetQuestions)
			assessment.POST("/evaluate", c.assessment.EvaluateTest)
			assessment.GET("/tests/:id/result", c.assessment.GetResult)
		}

		// 教师接口
		teacher := authGroup.Group("/assessment")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.GET("/evaluated", c.assessment.ListEvaluated)
		}
	}

	// 管理员接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/models/strength/retrain", c.model.RetrainStrength)
		admin.POST("/models/score/retrain", c.model.RetrainScore)
		admin.GET("/models/status", c.model.Status)
		admin.DELETE("/assessment/tests/:id", c.assessment.DeleteTest)
	}
}
