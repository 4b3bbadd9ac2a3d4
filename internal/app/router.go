package app

import (
	"quizzer_backend/internal/config"
	"quizzer_backend/internal/middleware"
	"quizzer_backend/internal/model"
	"quizzer_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerAttemptRoutes(router, c)
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Anyone holding a certificate link can verify it.
		public.GET("/public/certificates/:certificate_id", c.certificate.GetPublic)
	}
}

// registerAttemptRoutes is the candidate-facing surface. Identity comes from
// the email query parameter and access is decided against the convocatory
// roster, so no JWT is required here.
func (a *App) registerAttemptRoutes(router *gin.Engine, c *controllers) {
	attempts := router.Group("/api/convocatories/:convocatory_id/attempts/current")
	{
		attempts.GET("", c.attempt.Current)
		attempts.POST("", c.attempt.Start)
		attempts.PUT("", c.attempt.Autosave)
		attempts.DELETE("", c.attempt.Finalize)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.UserRoleAdmin))
	{
		admin.GET("/me", c.auth.Me)

		admin.GET("/users", c.user.List)
		admin.POST("/users", c.user.Create)
		admin.POST("/users/upsert", c.user.Upsert)
		admin.GET("/users/:user_id", c.user.Get)
		admin.PUT("/users/:user_id", c.user.Update)
		admin.DELETE("/users/:user_id", c.user.Delete)

		admin.GET("/quizzes", c.quiz.ListQuizzes)
		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes/:quiz_id", c.quiz.GetQuiz)
		admin.PUT("/quizzes/:quiz_id", c.quiz.UpdateQuiz)
		admin.DELETE("/quizzes/:quiz_id", c.quiz.DeleteQuiz)
		admin.POST("/quizzes/:quiz_id/versions", c.quiz.CreateVersion)

		admin.GET("/versions", c.quiz.ListVersions)
		admin.GET("/versions/:version_id", c.quiz.GetVersion)
		admin.PUT("/versions/:version_id", c.quiz.UpdateVersion)
		admin.DELETE("/versions/:version_id", c.quiz.DeleteVersion)
		admin.GET("/versions/:version_id/questions", c.quiz.ListQuestions)
		admin.POST("/versions/:version_id/questions", c.quiz.CreateQuestion)
		admin.PUT("/versions/:version_id/questions", c.quiz.UpsertQuestions)

		admin.GET("/questions/:question_id", c.quiz.GetQuestion)
		admin.PUT("/questions/:question_id", c.quiz.UpdateQuestion)
		admin.DELETE("/questions/:question_id", c.quiz.DeleteQuestion)

		admin.GET("/convocatories", c.convocatory.List)
		admin.POST("/convocatories", c.convocatory.Create)
		admin.GET("/convocatories/:convocatory_id", c.convocatory.Get)
		admin.PUT("/convocatories/:convocatory_id", c.convocatory.Update)
		admin.DELETE("/convocatories/:convocatory_id", c.convocatory.Delete)
		admin.GET("/convocatories/:convocatory_id/submissions", c.convocatory.ListSubmissions)
		admin.GET("/convocatories/:convocatory_id/certificates", c.certificate.ListByConvocatory)

		admin.GET("/submissions/:submission_id", c.convocatory.GetSubmission)
		admin.DELETE("/submissions/:submission_id", c.convocatory.DeleteSubmission)

		admin.POST("/certificates", c.certificate.Grant)
		admin.GET("/certificates/:certificate_id", c.certificate.Get)
		admin.DELETE("/certificates/:certificate_id", c.certificate.Revoke)
	}
}
