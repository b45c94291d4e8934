package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/handler"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Course       *handler.CourseHandler
	Question     *handler.QuestionHandler
	Answer       *handler.AnswerHandler
	Reply        *handler.ReplyHandler
	Report       *handler.ReportHandler
	Admin        *handler.AdminHandler
	Notification *handler.NotificationHandler
	Upload       *handler.UploadHandler
	WS           *handler.WSHandler
}

// Options carries the shared dependencies of the route middleware
type Options struct {
	JWT               *jwt.Manager
	Roles             middleware.RoleResolver
	Redis             *redis.Client // optional; rate limiting is off without it
	RequestsPerMinute int
	MaxUploadBytes    int64
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, opts Options) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if h.WS != nil {
		router.GET("/ws/notifications", h.WS.Connect)
	}

	ipLimit := middleware.RateLimit(opts.Redis, middleware.RateLimitConfig{
		RequestsPerMinute: opts.RequestsPerMinute,
		KeyPrefix:         middleware.DefaultRateLimitConfig().KeyPrefix,
		Message:           middleware.DefaultRateLimitConfig().Message,
	})
	userLimit := middleware.RateLimitPerUser(opts.Redis, opts.RequestsPerMinute)

	// every request resolves its user and role when a token is present
	api := router.Group("/api/v1", ipLimit, middleware.OptionalAuth(opts.JWT), middleware.ResolveRole(opts.Roles))
	auth := middleware.JWTAuth(opts.JWT)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.GET("/me", auth, h.Auth.Me)

	// Profiles and karma
	profiles := api.Group("/profiles")
	profiles.PUT("/me", auth, h.Profile.UpdateMe)
	profiles.GET("/:id", h.Profile.Get)
	profiles.GET("/:id/karma", h.Profile.Karma)
	api.GET("/leaderboard", h.Profile.Leaderboard)

	// Courses
	courses := api.Group("/courses")
	courses.GET("", h.Course.List)
	courses.GET("/:id", h.Course.Get)
	courses.POST("/:id/enroll", auth, h.Course.Enroll)
	courses.DELETE("/:id/enroll", auth, h.Course.Unenroll)
	api.GET("/me/enrollments", auth, h.Course.MyEnrollments)

	// Questions
	questions := api.Group("/questions")
	questions.GET("", h.Question.List)
	questions.POST("", auth, userLimit, h.Question.Create)
	questions.GET("/:id", h.Question.Get)
	questions.PUT("/:id", auth, h.Question.Update)
	questions.DELETE("/:id", auth, h.Question.Delete)
	questions.POST("/:id/resolve", auth, h.Question.Resolve)
	questions.POST("/:id/vote", auth, userLimit, h.Question.Vote)
	questions.GET("/:id/answers", h.Answer.List)
	questions.POST("/:id/answers", auth, userLimit, h.Answer.Create)

	// Answers
	answers := api.Group("/answers")
	answers.PUT("/:id", auth, h.Answer.Update)
	answers.DELETE("/:id", auth, h.Answer.Delete)
	answers.POST("/:id/vote", auth, userLimit, h.Answer.Vote)
	answers.POST("/:id/accept", auth, h.Answer.Accept)
	answers.POST("/:id/best", auth, h.Answer.MarkBest)
	answers.GET("/:id/replies", h.Reply.List)
	answers.POST("/:id/replies", auth, userLimit, h.Reply.Create)

	// Replies
	replies := api.Group("/replies")
	replies.PUT("/:id", auth, h.Reply.Update)
	replies.DELETE("/:id", auth, h.Reply.Delete)

	// Reports
	api.POST("/reports", auth, userLimit, h.Report.Create)

	// Notifications
	notifications := api.Group("/notifications", auth)
	notifications.GET("", h.Notification.List)
	notifications.GET("/unread-count", h.Notification.UnreadCount)
	notifications.POST("/seen-all", h.Notification.MarkAllSeen)
	notifications.POST("/:id/seen", h.Notification.MarkSeen)
	notifications.DELETE("/:id", h.Notification.Delete)

	// Uploads
	api.POST("/uploads", auth, userLimit, middleware.BodyLimit(opts.MaxUploadBytes+(1<<20)), h.Upload.UploadImage)

	// Admin
	admin := router.Group("/api/admin", ipLimit, auth, middleware.ResolveRole(opts.Roles), middleware.RequireStaff())
	admin.GET("/reports", h.Admin.ListReports)
	admin.POST("/reports/:id/dismiss", h.Admin.DismissReport)
	admin.POST("/questions/:id/delete", h.Admin.DeleteQuestion)
	admin.POST("/questions/:id/resolve", h.Admin.ResolveQuestion)
	admin.POST("/answers/:id/delete", h.Admin.DeleteAnswer)
	admin.POST("/replies/:id/delete", h.Admin.DeleteReply)

	adminCourses := admin.Group("/courses")
	adminCourses.POST("", h.Course.Create)
	adminCourses.PUT("/:id", h.Course.Update)
	adminCourses.DELETE("/:id", h.Course.Delete)
	adminCourses.POST("/:id/assign", h.Course.Assign)
	adminCourses.POST("/:id/enrollments", h.Course.AddEnrollment)
	adminCourses.DELETE("/:id/enrollments/:studentId", h.Course.RemoveEnrollment)

	admin.PUT("/profiles/:id/role", middleware.RequireSuperAdmin(), h.Profile.SetRole)
}
