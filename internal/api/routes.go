package api

import (
	"net/http"

	"github.com/prpradhan13/myBuddy-sub000/internal/metrics"
	"github.com/prpradhan13/myBuddy-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the handlers call into.
type Services struct {
	Plans        service.PlanService
	Shares       service.ShareService
	Achievements service.AchievementService
	Comments     service.CommentService
	Reviews      service.ReviewService
	Profiles     service.ProfileService
}

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	services Services,
	m *metrics.Manager,
	gatherer prometheus.Gatherer,
) {
	planHandler := NewPlanHandler(services.Plans)
	shareHandler := NewShareHandler(services.Shares, services.Achievements)
	commentHandler := NewCommentHandler(services.Comments)
	reviewHandler := NewReviewHandler(services.Reviews)
	profileHandler := NewProfileHandler(services.Profiles)

	// metrics wrap recovery so panics are counted as 500s
	router.Use(RequestMetrics(m), Recovery(m))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		protected.GET("/me/profile", profileHandler.GetMyProfile)
		protected.PUT("/me/profile", profileHandler.UpdateMyProfile)
		protected.GET("/profiles/:userId", profileHandler.GetProfile)

		// --- Plans, days, exercises ---
		protected.POST("/plans", planHandler.CreatePlan)
		protected.GET("/plans", planHandler.ListMyPlans)
		protected.GET("/plans/public", planHandler.ListPublicPlans)
		protected.GET("/plans/:planId", planHandler.GetPlan)
		protected.PUT("/plans/:planId", planHandler.UpdatePlan)
		protected.DELETE("/plans/:planId", planHandler.DeletePlan)
		protected.POST("/plans/:planId/days", planHandler.AddDay)
		protected.GET("/plans/:planId/days", planHandler.ListDays)
		protected.POST("/days/:dayId/exercises", planHandler.AddExercise)
		protected.GET("/days/:dayId/exercises", planHandler.ListExercises)

		// --- Shares & achievements ---
		protected.POST("/plans/:planId/shares", shareHandler.SharePlan)
		protected.GET("/plans/:planId/shares", shareHandler.ListPlanShares)
		protected.GET("/shares/received", shareHandler.ListReceivedShares)
		protected.DELETE("/shares/:shareId", shareHandler.RevokeShare)
		protected.POST("/shares/:shareId/achievements", shareHandler.LogAchievement)
		protected.GET("/shares/:shareId/achievements", shareHandler.GetAchievements)
		protected.POST("/shares/:shareId/achievements/export", shareHandler.ExportAchievements)

		// --- Comments & reviews ---
		protected.POST("/plans/:planId/comments", commentHandler.AddComment)
		protected.GET("/plans/:planId/comments", commentHandler.GetComments)
		protected.DELETE("/comments/:commentId", commentHandler.DeleteComment)
		protected.POST("/plans/:planId/reviews", reviewHandler.AddReview)
		protected.GET("/plans/:planId/reviews", reviewHandler.GetReviews)
	}
}
