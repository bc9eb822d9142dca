package app

import (
	"aura_edu_backend/docs"
	"aura_edu_backend/internal/config"
	"aura_edu_backend/internal/middleware"
	"aura_edu_backend/internal/model"
	"aura_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的学生接口
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActivityMiddleware(repos.user))
	a.registerStudentRoutes(authGroup, c)

	// 3. 管理员相关接口
	admin := router.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.RoleMiddleware(model.Admin),
		middleware.ActivityMiddleware(repos.user),
	)
	a.registerAdminRoutes(admin, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/lessons/:id", c.course.GetLesson)
		public.GET("/lessons/:id/activities", c.course.ListActivities)
		public.GET("/topics/:id", c.course.GetTopic)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	activities := rg.Group("/activities")
	{
		activities.GET("/:id", c.activity.GetActivity)
		activities.POST("/:id/lint", c.activity.Lint)
		activities.POST("/:id/submit", c.activity.Submit)
		activities.GET("/:id/status", c.activity.Status)
	}

	achievements := rg.Group("/achievements")
	{
		achievements.GET("/summary", c.achievement.GetSummary)
		achievements.GET("/leaderboard", c.achievement.GetLeaderboard)
	}

	analytics := rg.Group("/analytics")
	{
		analytics.POST("/sessions/start", c.analytics.StartSession)
		analytics.POST("/sessions/:id/end", c.analytics.EndSession)
		analytics.POST("/sessions", c.analytics.RecordSession)
		analytics.GET("/dashboard", c.analytics.GetDashboard)
	}

	auraBot := rg.Group("/aurabot")
	{
		auraBot.POST("/ask", c.auraBot.Ask)
		auraBot.GET("/sessions/:sessionId/quota", c.auraBot.GetQuota)
		auraBot.GET("/sessions/:sessionId/history", c.auraBot.GetHistory)
	}

	user := rg.Group("/user")
	{
		user.GET("/settings", c.user.GetSettings)
		user.PUT("/settings", c.user.UpdateSettings)
		user.GET("/storage", c.user.GetStorageUsage)
		user.POST("/export", c.user.ExportData)
		user.DELETE("/data", c.user.ClearData)
	}
}

func (a *App) registerAdminRoutes(admin *gin.RouterGroup, c *controllers) {
	// 课程内容
	admin.GET("/courses", c.adminContent.ListCourses)
	admin.GET("/courses/:id", c.adminContent.GetCourse)
	admin.POST("/courses", c.adminContent.CreateCourse)
	admin.PUT("/courses/:id", c.adminContent.UpdateCourse)
	admin.DELETE("/courses/:id", c.adminContent.DeleteCourse)
	admin.POST("/courses/:id/lessons", c.adminContent.CreateLesson)

	admin.PUT("/lessons/:id", c.adminContent.UpdateLesson)
	admin.DELETE("/lessons/:id", c.adminContent.DeleteLesson)
	admin.POST("/lessons/:id/topics", c.adminContent.CreateTopic)
	admin.POST("/lessons/:id/activities", c.adminContent.CreateActivity)

	admin.PUT("/topics/:id", c.adminContent.UpdateTopic)
	admin.DELETE("/topics/:id", c.adminContent.DeleteTopic)
	admin.POST("/topics/:id/examples", c.adminContent.CreateCodeExample)

	admin.PUT("/examples/:id", c.adminContent.UpdateCodeExample)
	admin.DELETE("/examples/:id", c.adminContent.DeleteCodeExample)

	admin.PUT("/activities/:id", c.adminContent.UpdateActivity)
	admin.DELETE("/activities/:id", c.adminContent.DeleteActivity)
	admin.GET("/activities/:id/submissions", c.adminContent.ListSubmissions)

	// 用户管理
	admin.GET("/users", c.adminUser.ListUsers)
	admin.GET("/users/:id", c.adminUser.GetUser)
	admin.PUT("/users/:id", c.adminUser.UpdateUser)
	admin.DELETE("/users/:id", c.adminUser.DeleteUser)
	admin.POST("/users/:id/reset-password", c.adminUser.ResetPassword)

	// HTML 输出对比
	admin.POST("/compare", c.compare.Compare)
	admin.GET("/submissions/:id/compare", c.compare.CompareSubmission)
}
