package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/app/repositories/memory"
	"github.com/yigit/schoolhub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type published struct {
	userID  int64
	msgType string
	payload interface{}
}

type recordingPublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingPublisher) SendToUser(userID int64, msgType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{userID: userID, msgType: msgType, payload: payload})
}

func (p *recordingPublisher) forUser(userID int64) []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []published
	for _, m := range p.sent {
		if m.userID == userID {
			out = append(out, m)
		}
	}
	return out
}

type fixture struct {
	ctx       context.Context
	repos     *repositories.Repositories
	svc       *Services
	publisher *recordingPublisher
	admin     Actor

	year     *models.AcademicYear
	grade5   *models.Class
	grade6   *models.Class
	sectionA *models.Section // grade 5
	sectionB *models.Section // grade 5
	sectionC *models.Section // grade 6

	seq int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos := memory.Open().Repositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolhub-test",
	})
	publisher := &recordingPublisher{}

	f := &fixture{
		ctx:       context.Background(),
		repos:     repos,
		svc:       New(repos, jwtService, publisher),
		publisher: publisher,
		admin:     Actor{UserID: 1, Role: models.RoleAdmin, IPAddress: "127.0.0.1"},
	}

	var err error
	f.year, err = f.svc.AcademicYears.CreateAcademicYear(f.ctx, f.admin, &dto.CreateAcademicYearRequest{
		Year: "2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30", IsCurrent: true,
	})
	require.NoError(t, err)

	f.grade5 = f.createClass(t, "Grade 5", 5)
	f.grade6 = f.createClass(t, "Grade 6", 6)
	f.sectionA = f.createSection(t, f.grade5.ID, "A", 30)
	f.sectionB = f.createSection(t, f.grade5.ID, "B", 30)
	f.sectionC = f.createSection(t, f.grade6.ID, "A", 30)
	return f
}

func (f *fixture) createClass(t *testing.T, name string, level int) *models.Class {
	t.Helper()
	class, err := f.svc.Classes.CreateClass(f.ctx, &dto.CreateClassRequest{
		Name: name, Level: level, Capacity: 120, AcademicYearID: f.year.ID,
	})
	require.NoError(t, err)
	return class
}

func (f *fixture) createSection(t *testing.T, classID int64, name string, capacity int) *models.Section {
	t.Helper()
	section, err := f.svc.Classes.CreateSection(f.ctx, &dto.CreateSectionRequest{
		ClassID: classID, Name: name, Capacity: capacity,
	})
	require.NoError(t, err)
	return section
}

func (f *fixture) studentRequest(classID, sectionID int64) *dto.CreateStudentRequest {
	f.seq++
	return &dto.CreateStudentRequest{
		AdmissionNumber: fmt.Sprintf("A%04d", 1000+f.seq),
		Email:           fmt.Sprintf("student%d@school.edu", f.seq),
		Password:        "secret123",
		FirstName:       "Student",
		LastName:        fmt.Sprintf("No%d", f.seq),
		DateOfBirth:     "2012-03-14",
		Gender:          models.GenderFemale,
		ClassID:         classID,
		SectionID:       sectionID,
		RollNumber:      f.seq,
	}
}

func (f *fixture) enroll(t *testing.T, section *models.Section) *models.Student {
	t.Helper()
	student, err := f.svc.Students.CreateStudent(f.ctx, f.admin, f.studentRequest(section.ClassID, section.ID))
	require.NoError(t, err)
	return student
}

func (f *fixture) strength(t *testing.T, sectionID int64) int {
	t.Helper()
	section, err := f.repos.Sections.GetByID(f.ctx, sectionID)
	require.NoError(t, err)
	return section.CurrentStrength
}

func (f *fixture) student(t *testing.T, id int64) *models.Student {
	t.Helper()
	student, err := f.repos.Students.GetByID(f.ctx, id)
	require.NoError(t, err)
	return student
}

func (f *fixture) logs(t *testing.T, action string) []models.ActivityLog {
	t.Helper()
	logs, _, err := f.repos.ActivityLogs.List(f.ctx, models.ActivityLogFilter{Action: action}, 0, 100)
	require.NoError(t, err)
	return logs
}
