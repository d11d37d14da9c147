// Package memory is an in-process implementation of every repository, used by the memory driver and by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
)

type txKey struct{ db *DB }

// DB holds all tables behind one mutex. A transaction holds the mutex for its whole duration
// and restores a snapshot when it fails.
type DB struct {
	mu  sync.Mutex
	now func() time.Time

	userSeq, studentSeq, sectionSeq, classSeq, yearSeq, notificationSeq, tokenSeq int64

	users         map[int64]*models.User
	tokens        map[string]*models.RefreshToken
	students      map[int64]*models.Student
	sections      map[int64]*models.Section
	classes       map[int64]*models.Class
	years         map[int64]*models.AcademicYear
	currentYearID int64
	notifications map[int64]*models.Notification
	logs          []models.ActivityLog
}

// Open creates an empty store
func Open() *DB {
	return &DB{
		now:           time.Now,
		users:         make(map[int64]*models.User),
		tokens:        make(map[string]*models.RefreshToken),
		students:      make(map[int64]*models.Student),
		sections:      make(map[int64]*models.Section),
		classes:       make(map[int64]*models.Class),
		years:         make(map[int64]*models.AcademicYear),
		notifications: make(map[int64]*models.Notification),
	}
}

// SetClock overrides the time source
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// Repositories returns every repository backed by this store
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Tx:            db,
		Users:         &UserRepository{db: db},
		Tokens:        &TokenRepository{db: db},
		Students:      &StudentRepository{db: db},
		Sections:      &SectionRepository{db: db},
		Classes:       &ClassRepository{db: db},
		AcademicYears: &AcademicYearRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		ActivityLogs:  &ActivityLogRepository{db: db},
	}
}

// lock acquires the store mutex unless ctx already belongs to a transaction of this store
func (db *DB) lock(ctx context.Context) func() {
	if ctx.Value(txKey{db: db}) != nil {
		return func() {}
	}
	db.mu.Lock()
	return db.mu.Unlock
}

// WithinTransaction runs fn with exclusive access and rolls back every change if fn fails or panics
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{db: db}) != nil {
		return fn(ctx)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	snap := db.snapshot()
	defer func() {
		if r := recover(); r != nil {
			db.restore(snap)
			panic(r)
		}
		if err != nil {
			db.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{db: db}, true))
}

type snapshot struct {
	seqs          [7]int64
	users         map[int64]*models.User
	tokens        map[string]*models.RefreshToken
	students      map[int64]*models.Student
	sections      map[int64]*models.Section
	classes       map[int64]*models.Class
	years         map[int64]*models.AcademicYear
	currentYearID int64
	notifications map[int64]*models.Notification
	logs          []models.ActivityLog
}

func (db *DB) snapshot() snapshot {
	s := snapshot{
		seqs:          [7]int64{db.userSeq, db.studentSeq, db.sectionSeq, db.classSeq, db.yearSeq, db.notificationSeq, db.tokenSeq},
		users:         make(map[int64]*models.User, len(db.users)),
		tokens:        make(map[string]*models.RefreshToken, len(db.tokens)),
		students:      make(map[int64]*models.Student, len(db.students)),
		sections:      make(map[int64]*models.Section, len(db.sections)),
		classes:       make(map[int64]*models.Class, len(db.classes)),
		years:         make(map[int64]*models.AcademicYear, len(db.years)),
		currentYearID: db.currentYearID,
		notifications: make(map[int64]*models.Notification, len(db.notifications)),
		logs:          append([]models.ActivityLog(nil), db.logs...),
	}
	for k, v := range db.users {
		c := *v
		s.users[k] = &c
	}
	for k, v := range db.tokens {
		c := *v
		s.tokens[k] = &c
	}
	for k, v := range db.students {
		s.students[k] = copyStudent(v)
	}
	for k, v := range db.sections {
		c := *v
		s.sections[k] = &c
	}
	for k, v := range db.classes {
		c := *v
		s.classes[k] = &c
	}
	for k, v := range db.years {
		c := *v
		s.years[k] = &c
	}
	for k, v := range db.notifications {
		c := *v
		s.notifications[k] = &c
	}
	return s
}

func (db *DB) restore(s snapshot) {
	db.userSeq, db.studentSeq, db.sectionSeq, db.classSeq, db.yearSeq, db.notificationSeq, db.tokenSeq =
		s.seqs[0], s.seqs[1], s.seqs[2], s.seqs[3], s.seqs[4], s.seqs[5], s.seqs[6]
	db.users = s.users
	db.tokens = s.tokens
	db.students = s.students
	db.sections = s.sections
	db.classes = s.classes
	db.years = s.years
	db.currentYearID = s.currentYearID
	db.notifications = s.notifications
	db.logs = s.logs
}

func copyStudent(s *models.Student) *models.Student {
	c := *s
	c.ParentIDs = append([]int64{}, s.ParentIDs...)
	c.MedicalInfo = models.MedicalInfo{
		Allergies:   append([]string(nil), s.MedicalInfo.Allergies...),
		Medications: append([]string(nil), s.MedicalInfo.Medications...),
		Conditions:  append([]string(nil), s.MedicalInfo.Conditions...),
	}
	c.Class, c.Section = nil, nil
	return &c
}
