package repositories

import "github.com/yigit/schoolhub/internal/db"

// NewPostgresRepositories wires the PostgreSQL repositories; audit entries go to activityLogs.
func NewPostgresRepositories(pg *db.PostgresDB, activityLogs IActivityLogRepository) *Repositories {
	return &Repositories{
		Tx:            pg,
		Users:         NewUserRepository(pg),
		Tokens:        NewTokenRepository(pg),
		Students:      NewStudentRepository(pg),
		Sections:      NewSectionRepository(pg),
		Classes:       NewClassRepository(pg),
		AcademicYears: NewAcademicYearRepository(pg),
		Notifications: NewNotificationRepository(pg),
		ActivityLogs:  activityLogs,
	}
}
