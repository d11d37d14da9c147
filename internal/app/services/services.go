package services

import (
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/auth"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID    int64
	Role      models.Role
	IPAddress string
}

// Services holds every service of the API
type Services struct {
	Auth          AuthService
	Users         UserService
	Students      StudentService
	Lifecycle     LifecycleService
	Classes       ClassService
	AcademicYears AcademicYearService
	Notifications NotificationService
	Activity      ActivityService
}

// New wires all services over one set of repositories
func New(repos *repositories.Repositories, jwtService *auth.JWTService, publisher Publisher) *Services {
	activity := NewActivityService(repos.ActivityLogs)
	notifications := NewNotificationService(repos.Notifications, publisher)

	return &Services{
		Auth:          NewAuthService(repos, jwtService, activity),
		Users:         NewUserService(repos, activity),
		Students:      NewStudentService(repos, activity),
		Lifecycle:     NewLifecycleService(repos, notifications, activity),
		Classes:       NewClassService(repos),
		AcademicYears: NewAcademicYearService(repos, activity),
		Notifications: notifications,
		Activity:      activity,
	}
}
