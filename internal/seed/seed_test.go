package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories/memory"
	"github.com/yigit/schoolhub/internal/pkg/auth"
)

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	auth.BcryptCost = bcrypt.MinCost
	repos := memory.Open().Repositories()
	ctx := context.Background()
	opts := Options{
		AdminEmail:    " Root@School.edu ",
		AdminPassword: "secret123",
		Now:           time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	}

	result, err := CreateDefaultData(ctx, repos, opts, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, result.AdminCreated)
	assert.True(t, result.YearCreated)
	assert.Equal(t, "2024-2025", result.AcademicYear.Year)
	assert.True(t, result.AcademicYear.IsCurrent)

	admin, err := repos.Users.GetByEmail(ctx, "root@school.edu")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.Password, "secret123"))

	result, err = CreateDefaultData(ctx, repos, opts, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, result.AdminCreated)
	assert.False(t, result.YearCreated)
	assert.Equal(t, "2024-2025", result.AcademicYear.Year)

	years, err := repos.AcademicYears.List(ctx)
	require.NoError(t, err)
	assert.Len(t, years, 1)
}

func TestCreateDefaultDataReusesExistingYear(t *testing.T) {
	repos := memory.Open().Repositories()
	ctx := context.Background()

	existing := &models.AcademicYear{Year: "2030-2031"}
	_, err := repos.AcademicYears.Create(ctx, existing)
	require.NoError(t, err)

	result, err := CreateDefaultData(ctx, repos, Options{AcademicYear: "2030-2031"}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, result.AdminCreated, "no admin email configured")
	assert.False(t, result.YearCreated)
	assert.Equal(t, existing.ID, result.AcademicYear.ID)

	current, err := repos.AcademicYears.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, current.ID)
}

func TestCreateDefaultDataSkipsAdminWithoutPassword(t *testing.T) {
	repos := memory.Open().Repositories()

	result, err := CreateDefaultData(context.Background(), repos, Options{AdminEmail: "root@school.edu"}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, result.AdminCreated)

	exists, err := repos.Users.EmailExists(context.Background(), "root@school.edu")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAcademicYearSpan(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		now       time.Time
		wantName  string
		wantStart string
		wantErr   bool
	}{
		{name: "explicit", input: "2024-2025", wantName: "2024-2025", wantStart: "2024-09-01"},
		{name: "spring derives previous", now: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), wantName: "2024-2025", wantStart: "2024-09-01"},
		{name: "august rolls over", now: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), wantName: "2025-2026", wantStart: "2025-09-01"},
		{name: "not consecutive", input: "2024-2026", wantErr: true},
		{name: "garbage", input: "next year", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, start, end, err := academicYearSpan(tt.input, tt.now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantStart, start.Format("2006-01-02"))
			assert.Equal(t, time.June, end.Month())
			assert.Equal(t, start.Year()+1, end.Year())
		})
	}
}

func TestCreateDefaultDataInvalidYear(t *testing.T) {
	repos := memory.Open().Repositories()
	_, err := CreateDefaultData(context.Background(), repos, Options{AcademicYear: "soon"}, zerolog.Nop())
	assert.Error(t, err)
}
