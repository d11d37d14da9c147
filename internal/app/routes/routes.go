package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/schoolhub/internal/app/auth"
	"github.com/yigit/schoolhub/internal/app/controllers"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/metrics"
)

// Controllers groups every HTTP controller mounted by SetupRouter
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Students      *controllers.StudentController
	Lifecycle     *controllers.LifecycleController
	Classes       *controllers.ClassController
	AcademicYears *controllers.AcademicYearController
	Notifications *controllers.NotificationController
	ActivityLogs  *controllers.ActivityLogController
	Health        *controllers.HealthController
}

// SetupRouter configures all application routes. notificationSocket may be nil.
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware, notificationSocket gin.HandlerFunc) {
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/api/v1")
	v1.GET("/health", c.Health.Health)

	// --- Public auth routes ---
	v1.POST("/login", c.Auth.Login)
	v1.POST("/refresh-token", c.Auth.RefreshToken)

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	allow := authMiddleware.Authorize

	// --- Auth ---
	authenticated.GET("/logout", c.Auth.Logout)
	authenticated.GET("/me", c.Auth.Me)
	authenticated.PUT("/change-password", c.Auth.ChangePassword)
	authenticated.POST("/register", allow(appauth.ResourceUser, appauth.ActionCreate), c.Auth.Register)

	// --- Accounts ---
	authenticated.GET("/users", allow(appauth.ResourceUser, appauth.ActionList), c.Users.ListUsers)
	authenticated.GET("/user/:id", allow(appauth.ResourceUser, appauth.ActionRead), c.Users.GetUser)
	authenticated.PUT("/update-user-status/:id", allow(appauth.ResourceUser, appauth.ActionUpdate), c.Users.UpdateUserStatus)

	// --- Students ---
	authenticated.POST("/create-student", allow(appauth.ResourceStudent, appauth.ActionCreate), c.Students.CreateStudent)
	authenticated.GET("/students", allow(appauth.ResourceStudent, appauth.ActionList), c.Students.ListStudents)
	authenticated.GET("/student/:id", allow(appauth.ResourceStudent, appauth.ActionRead), c.Students.GetStudent)
	authenticated.PUT("/update-student/:id", allow(appauth.ResourceStudent, appauth.ActionUpdate), c.Students.UpdateStudent)
	authenticated.DELETE("/delete-student/:id", allow(appauth.ResourceStudent, appauth.ActionDelete), c.Students.DeleteStudent)
	authenticated.POST("/bulk-upload-students", allow(appauth.ResourceStudent, appauth.ActionCreate), c.Students.BulkUpload)
	authenticated.PUT("/bulk-update-students", allow(appauth.ResourceStudent, appauth.ActionUpdate), c.Students.BulkUpdate)

	// --- Lifecycle ---
	authenticated.PUT("/promote-student/:studentId", allow(appauth.ResourcePromotion, appauth.ActionUpdate), c.Lifecycle.PromoteStudent)
	authenticated.POST("/bulk-promote-students", allow(appauth.ResourcePromotion, appauth.ActionCreate), c.Lifecycle.BulkPromote)
	authenticated.POST("/graduate-students", allow(appauth.ResourcePromotion, appauth.ActionCreate), c.Lifecycle.GraduateStudents)
	authenticated.PUT("/transfer-student/:studentId", allow(appauth.ResourcePromotion, appauth.ActionUpdate), c.Lifecycle.TransferStudent)
	authenticated.GET("/promotion-preview", allow(appauth.ResourcePromotion, appauth.ActionRead), c.Lifecycle.PromotionPreview)

	// --- Classes & sections ---
	authenticated.POST("/create-class", allow(appauth.ResourceClass, appauth.ActionCreate), c.Classes.CreateClass)
	authenticated.GET("/classes", allow(appauth.ResourceClass, appauth.ActionList), c.Classes.ListClasses)
	authenticated.PUT("/assign-class-teacher/:classId", allow(appauth.ResourceClass, appauth.ActionUpdate), c.Classes.AssignClassTeacher)
	authenticated.POST("/create-sections", allow(appauth.ResourceSection, appauth.ActionCreate), c.Classes.CreateSection)
	authenticated.GET("/class-section/:classId", allow(appauth.ResourceSection, appauth.ActionList), c.Classes.ListSections)
	authenticated.GET("/section/:id", allow(appauth.ResourceSection, appauth.ActionRead), c.Classes.GetSection)

	// --- Academic years ---
	authenticated.POST("/create-academic-year", allow(appauth.ResourceAcademicYear, appauth.ActionCreate), c.AcademicYears.CreateAcademicYear)
	authenticated.GET("/academic-years", allow(appauth.ResourceAcademicYear, appauth.ActionList), c.AcademicYears.ListAcademicYears)
	authenticated.GET("/current-academic-year", allow(appauth.ResourceAcademicYear, appauth.ActionRead), c.AcademicYears.GetCurrentAcademicYear)
	authenticated.GET("/academic-year/:id", allow(appauth.ResourceAcademicYear, appauth.ActionRead), c.AcademicYears.GetAcademicYear)
	authenticated.PUT("/update-academic-year/:id", allow(appauth.ResourceAcademicYear, appauth.ActionUpdate), c.AcademicYears.UpdateAcademicYear)
	authenticated.PUT("/set-current-academic-year/:id", allow(appauth.ResourceAcademicYear, appauth.ActionUpdate), c.AcademicYears.SetCurrentAcademicYear)
	authenticated.DELETE("/delete-academic-year/:id", allow(appauth.ResourceAcademicYear, appauth.ActionDelete), c.AcademicYears.DeleteAcademicYear)

	// --- Notifications ---
	authenticated.GET("/notifications", allow(appauth.ResourceNotification, appauth.ActionList), c.Notifications.ListNotifications)
	authenticated.PUT("/notification/:id/read", allow(appauth.ResourceNotification, appauth.ActionUpdate), c.Notifications.MarkRead)
	authenticated.PUT("/notifications/read-all", allow(appauth.ResourceNotification, appauth.ActionUpdate), c.Notifications.MarkAllRead)
	if notificationSocket != nil {
		authenticated.GET("/ws/notifications", allow(appauth.ResourceNotification, appauth.ActionList), notificationSocket)
	}

	// --- Activity log ---
	authenticated.GET("/activity-logs", allow(appauth.ResourceActivityLog, appauth.ActionList), c.ActivityLogs.ListActivityLogs)
	authenticated.GET("/activity-log/:id", allow(appauth.ResourceActivityLog, appauth.ActionRead), c.ActivityLogs.GetActivityLog)
}
