package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

func TestActivityLogConditions(t *testing.T) {
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := sb.Select("id").From("activity_logs").Where(activityLogConditions(models.ActivityLogFilter{
		UserID: 7, UserRole: models.RoleAdmin, Module: models.ModuleStudent, Action: models.ActionGraduate,
		StartDate: &start, EndDate: &end,
	})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM activity_logs WHERE (user_id = $1 AND user_role = $2 AND module = $3 AND action = $4 AND created_at >= $5 AND created_at <= $6)", sql)
	assert.Equal(t, []interface{}{int64(7), string(models.RoleAdmin), models.ModuleStudent, models.ActionGraduate, start, end}, args)

	sql, args, err = sb.Select("id").From("activity_logs").Where(activityLogConditions(models.ActivityLogFilter{})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM activity_logs WHERE (1=1)", sql)
	assert.Empty(t, args)
}

func TestPostgresActivityLogGetByIDRejectsForeignIDs(t *testing.T) {
	repo := NewPostgresActivityLogRepository(nil)

	for _, id := range []string{"", "abc", "0", "-3", "65f1c0de9b1e8a3d4c2b1a09"} {
		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrActivityLogNotFound, id)
	}
}
