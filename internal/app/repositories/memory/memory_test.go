package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

func newSection(t *testing.T, repos *repositories.Repositories, capacity int) *models.Section {
	t.Helper()
	ctx := context.Background()

	year := &models.AcademicYear{Year: "2024-2025"}
	_, err := repos.AcademicYears.Create(ctx, year)
	require.NoError(t, err)
	class := &models.Class{Name: "Grade 5", Level: 5, Capacity: 100, AcademicYearID: year.ID}
	_, err = repos.Classes.Create(ctx, class)
	require.NoError(t, err)
	section := &models.Section{ClassID: class.ID, Name: "A", Capacity: capacity, CurrentStrength: 99}
	_, err = repos.Sections.Create(ctx, section)
	require.NoError(t, err)
	return section
}

func TestSectionCountersStayInBounds(t *testing.T) {
	repos := Open().Repositories()
	ctx := context.Background()
	section := newSection(t, repos, 10)
	assert.Zero(t, section.CurrentStrength, "strength starts at zero")

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted, full := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Sections.Reserve(ctx, section.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				granted++
			case errors.Is(err, apperrors.ErrSectionFull):
				full++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, granted)
	assert.Equal(t, 15, full)

	snapshot, err := repos.Sections.Reserve(ctx, section.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrSectionFull)
	assert.Equal(t, 10, snapshot.CurrentStrength)

	_, err = repos.Sections.Reserve(ctx, section.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	require.NoError(t, repos.Sections.Release(ctx, section.ID, 25))
	got, err := repos.Sections.GetByID(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStrength)

	assert.ErrorIs(t, repos.Sections.Release(ctx, 999, 1), apperrors.ErrSectionNotFound)
}

func TestTransactionRollsBack(t *testing.T) {
	repos := Open().Repositories()
	ctx := context.Background()
	section := newSection(t, repos, 5)

	boom := errors.New("boom")
	err := repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repos.Sections.Reserve(ctx, section.ID, 3); err != nil {
			return err
		}
		if _, err := repos.Users.Create(ctx, &models.User{Email: "a@school.edu", Role: models.RoleStudent}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.Sections.GetByID(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStrength)
	exists, err := repos.Users.EmailExists(ctx, "a@school.edu")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Panics(t, func() {
		_ = repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
			_, _ = repos.Sections.Reserve(ctx, section.ID, 2)
			panic("fail")
		})
	})
	got, err = repos.Sections.GetByID(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStrength)

	// nested calls join the outer transaction
	err = repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := repos.Sections.Reserve(ctx, section.ID, 1)
			return err
		})
	})
	require.NoError(t, err)
	got, err = repos.Sections.GetByID(ctx, section.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStrength)
}

func TestCurrentAcademicYear(t *testing.T) {
	repos := Open().Repositories()
	ctx := context.Background()

	_, err := repos.AcademicYears.GetCurrent(ctx)
	assert.ErrorIs(t, err, apperrors.ErrAcademicYearNotFound)

	first := &models.AcademicYear{Year: "2024-2025"}
	second := &models.AcademicYear{Year: "2025-2026"}
	_, err = repos.AcademicYears.Create(ctx, first)
	require.NoError(t, err)
	_, err = repos.AcademicYears.Create(ctx, second)
	require.NoError(t, err)

	require.NoError(t, repos.AcademicYears.SetCurrent(ctx, first.ID))
	require.NoError(t, repos.AcademicYears.SetCurrent(ctx, second.ID))

	current, err := repos.AcademicYears.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", current.Year)

	years, err := repos.AcademicYears.List(ctx)
	require.NoError(t, err)
	currentCount := 0
	for _, y := range years {
		if y.IsCurrent {
			currentCount++
		}
	}
	assert.Equal(t, 1, currentCount)

	assert.ErrorIs(t, repos.AcademicYears.SetCurrent(ctx, 999), apperrors.ErrAcademicYearNotFound)
}

func TestCleanupExpiredTokens(t *testing.T) {
	db := Open()
	repos := db.Repositories()
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	db.SetClock(func() time.Time { return now.Add(-40 * 24 * time.Hour) })

	require.NoError(t, repos.Tokens.CreateToken(ctx, "old-revoked", 1, now.Add(time.Hour)))
	require.NoError(t, repos.Tokens.RevokeToken(ctx, "old-revoked"))

	db.SetClock(func() time.Time { return now })
	require.NoError(t, repos.Tokens.CreateToken(ctx, "expired", 1, now.Add(-time.Minute)))
	require.NoError(t, repos.Tokens.CreateToken(ctx, "live", 1, now.Add(time.Hour)))

	n, err := repos.Tokens.CleanupExpiredTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repos.Tokens.GetToken(ctx, "live")
	assert.NoError(t, err)
	_, err = repos.Tokens.GetToken(ctx, "expired")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestNotificationsAreScopedToTheirUser(t *testing.T) {
	repos := Open().Repositories()
	ctx := context.Background()

	for _, email := range []string{"one@school.edu", "two@school.edu"} {
		_, err := repos.Users.Create(ctx, &models.User{Email: email, Role: models.RoleStudent})
		require.NoError(t, err)
	}

	_, err := repos.Notifications.Create(ctx, &models.Notification{UserID: 999, Title: "Nobody"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	mine := &models.Notification{UserID: 1, Title: "Promoted"}
	theirs := &models.Notification{UserID: 2, Title: "Transferred"}
	_, err = repos.Notifications.Create(ctx, mine)
	require.NoError(t, err)
	_, err = repos.Notifications.Create(ctx, theirs)
	require.NoError(t, err)

	assert.ErrorIs(t, repos.Notifications.MarkRead(ctx, theirs.ID, 1), apperrors.ErrNotificationNotFound)
	require.NoError(t, repos.Notifications.MarkRead(ctx, mine.ID, 1))

	unread, err := repos.Notifications.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	n, err := repos.Notifications.MarkAllRead(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repos.Notifications.ListByUser(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}
