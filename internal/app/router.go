package app

import (
	"bootcamp_lms_backend/docs"
	"bootcamp_lms_backend/internal/config"
	"bootcamp_lms_backend/internal/middleware"
	"bootcamp_lms_backend/internal/model"
	"bootcamp_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/profile", c.auth.GetProfile)

		// course catalog and lesson reads
		authed.GET("/courses", c.course.GetCourses)
		authed.GET("/courses/:id", c.course.GetCourse)
		authed.GET("/lessons/:id", c.course.GetLesson)

		// progress
		authed.GET("/courses/:id/progress", c.course.GetCourseProgress)
		authed.POST("/lessons/:id/complete", c.course.CompleteLesson)
		authed.GET("/modules/:id/project", c.course.GetModuleProject)

		// submissions
		authed.POST("/projects/:id/submissions", c.submission.SubmitProject)
		authed.GET("/projects/:id/submissions", c.submission.ListMySubmissions)
		authed.POST("/lessons/:id/quiz-attempts", c.submission.SubmitQuizAttempt)
		authed.POST("/lessons/:id/activity-submissions", c.submission.SubmitActivity)

		// study assistant
		authed.POST("/assistant/conversations", c.assistant.CreateConversation)
		authed.GET("/assistant/conversations", c.assistant.ListConversations)
		authed.GET("/assistant/conversations/:id/messages", c.assistant.GetMessages)
		authed.POST("/assistant/conversations/:id/messages", c.assistant.SendMessage)

		authed.POST("/uploads/attachments", c.upload.UploadAttachment)

		instructor := authed.Group("/instructor")
		instructor.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructor.GET("/submissions", c.review.ListQueue)
			instructor.GET("/submissions/:id", c.review.GetSubmission)
			instructor.POST("/submissions/:id/claim", c.review.ClaimSubmission)
			instructor.POST("/submissions/:id/review", c.review.ReviewSubmission)
			instructor.GET("/cohorts/:id/progress", c.review.CohortProgress)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/courses", c.content.ListCourses)
			admin.POST("/courses", c.content.CreateCourse)
			admin.PUT("/courses/:id", c.content.UpdateCourse)
			admin.DELETE("/courses/:id", c.content.DeleteCourse)
			admin.POST("/courses/:id/modules", c.content.CreateModule)

			admin.PUT("/modules/:id", c.content.UpdateModule)
			admin.DELETE("/modules/:id", c.content.DeleteModule)
			admin.POST("/modules/:id/lessons", c.content.CreateLesson)
			admin.PUT("/modules/:id/project", c.content.UpsertProject)
			admin.DELETE("/modules/:id/project", c.content.DeleteProject)

			admin.PUT("/lessons/:id", c.content.UpdateLesson)
			admin.DELETE("/lessons/:id", c.content.DeleteLesson)

			admin.GET("/cohorts", c.cohort.List)
			admin.POST("/cohorts", c.cohort.Create)
			admin.PUT("/cohorts/:id", c.cohort.Update)
			admin.DELETE("/cohorts/:id", c.cohort.Delete)

			admin.GET("/users", c.user.List)
			admin.PATCH("/users/:id", c.user.Update)

			admin.POST("/uploads/videos", c.upload.UploadVideo)
		}
	}
}
