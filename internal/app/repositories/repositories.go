package repositories

import (
	"context"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
)

// TxManager runs a unit of work atomically. Repositories called with the ctx handed to fn join it.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IUserRepository stores login accounts
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// List returns one page ordered by email plus the total match count.
	List(ctx context.Context, filter models.UserFilter, offset uint64, limit int) ([]models.User, int64, error)
	SetProfileID(ctx context.Context, userID, profileID int64) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdatePassword(ctx context.Context, userID int64, hash string) error
	Delete(ctx context.Context, userID int64) error
}

// ITokenRepository stores refresh tokens
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// IStudentRepository stores student profiles
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error)
	// List returns one page ordered by creation time, newest first, plus the total match count.
	List(ctx context.Context, filter models.StudentFilter, offset uint64, limit int) ([]models.Student, int64, error)
	// FindAll returns every match ordered by roll number, then id.
	FindAll(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePlacement(ctx context.Context, id int64, placement models.Placement) error
	// TransitionStatus moves a student from one status to another and reports whether the row was still in "from".
	TransitionStatus(ctx context.Context, id int64, from, to models.StudentStatus) (bool, error)
	// BulkUpdate applies column updates to the given ids and returns the number of rows changed.
	BulkUpdate(ctx context.Context, ids []int64, columns map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// ISectionRepository stores sections and owns their strength counters
type ISectionRepository interface {
	Create(ctx context.Context, section *models.Section) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Section, error)
	ListByClass(ctx context.Context, classID int64) ([]models.Section, error)
	// Reserve adds n to the strength only if the result stays within capacity.
	// On apperrors.ErrSectionFull the returned section is the unchanged snapshot.
	Reserve(ctx context.Context, id int64, n int) (*models.Section, error)
	// Release subtracts n from the strength, never going below zero.
	Release(ctx context.Context, id int64, n int) error
	// Reconcile recomputes every strength from active students and returns the sections that drifted.
	Reconcile(ctx context.Context) ([]models.SectionDrift, error)
}

// IClassRepository stores classes
type IClassRepository interface {
	Create(ctx context.Context, class *models.Class) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context) ([]models.Class, error)
	AssignTeacher(ctx context.Context, classID, teacherID int64) error
	CountByAcademicYear(ctx context.Context, academicYearID int64) (int64, error)
}

// IAcademicYearRepository stores academic years and the current-year pointer
type IAcademicYearRepository interface {
	Create(ctx context.Context, year *models.AcademicYear) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	GetByYear(ctx context.Context, year string) (*models.AcademicYear, error)
	List(ctx context.Context) ([]models.AcademicYear, error)
	GetCurrent(ctx context.Context) (*models.AcademicYear, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	SetCurrent(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// INotificationRepository stores user notifications
type INotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// IActivityLogRepository stores audit entries
type IActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter models.ActivityLogFilter, offset uint64, limit int) ([]models.ActivityLog, int64, error)
	GetByID(ctx context.Context, id string) (*models.ActivityLog, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Tx            TxManager
	Users         IUserRepository
	Tokens        ITokenRepository
	Students      IStudentRepository
	Sections      ISectionRepository
	Classes       IClassRepository
	AcademicYears IAcademicYearRepository
	Notifications INotificationRepository
	ActivityLogs  IActivityLogRepository
}
