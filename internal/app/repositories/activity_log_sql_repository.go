package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/db"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

var activityLogColumns = []string{
	"id", "user_id", "user_role", "action", "module", "description",
	"COALESCE(ip_address, '')", "metadata", "created_at",
}

// PostgresActivityLogRepository stores audit entries in the activity_logs table
type PostgresActivityLogRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostgresActivityLogRepository creates a new PostgresActivityLogRepository
func NewPostgresActivityLogRepository(pg *db.PostgresDB) *PostgresActivityLogRepository {
	return &PostgresActivityLogRepository{
		db: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an entry and fills its id
func (r *PostgresActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	sql, args, err := r.sb.Insert("activity_logs").
		Columns("user_id", "user_role", "action", "module", "description", "ip_address", "metadata", "created_at").
		Values(entry.UserID, string(entry.UserRole), entry.Action, entry.Module, entry.Description,
			helpers.NullString(entry.IPAddress), entry.Metadata, entry.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create activity log SQL")
		return fmt.Errorf("failed to build create activity log query: %w", err)
	}

	var id int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("action", entry.Action).Msg("Error executing create activity log query")
		return fmt.Errorf("error inserting activity log: %w", err)
	}
	entry.ID = strconv.FormatInt(id, 10)
	return nil
}

func activityLogConditions(filter models.ActivityLogFilter) squirrel.And {
	where := squirrel.And{}
	if filter.UserID > 0 {
		where = append(where, squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.UserRole != "" {
		where = append(where, squirrel.Eq{"user_role": string(filter.UserRole)})
	}
	if filter.Module != "" {
		where = append(where, squirrel.Eq{"module": filter.Module})
	}
	if filter.Action != "" {
		where = append(where, squirrel.Eq{"action": filter.Action})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	return where
}

func scanActivityLog(row pgx.Row) (*models.ActivityLog, error) {
	var (
		entry models.ActivityLog
		id    int64
		role  string
	)
	if err := row.Scan(&id, &entry.UserID, &role, &entry.Action, &entry.Module, &entry.Description,
		&entry.IPAddress, &entry.Metadata, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.ID = strconv.FormatInt(id, 10)
	entry.UserRole = models.Role(role)
	return &entry, nil
}

// List returns one page of entries, newest first
func (r *PostgresActivityLogRepository) List(ctx context.Context, filter models.ActivityLogFilter, offset uint64, limit int) ([]models.ActivityLog, int64, error) {
	where := activityLogConditions(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("activity_logs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count activity logs query: %w", err)
	}
	var total int64
	if err := r.db.Conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting activity logs")
		return nil, 0, fmt.Errorf("error counting activity logs: %w", err)
	}

	sql, args, err := r.sb.Select(activityLogColumns...).From("activity_logs").Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list activity logs query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list activity logs query")
		return nil, 0, fmt.Errorf("error listing activity logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.ActivityLog, 0)
	for rows.Next() {
		entry, err := scanActivityLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning activity log: %w", err)
		}
		logs = append(logs, *entry)
	}
	return logs, total, rows.Err()
}

// GetByID fetches one entry; ids that are not numeric are reported as missing
func (r *PostgresActivityLogRepository) GetByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return nil, apperrors.ErrActivityLogNotFound
	}

	sql, args, err := r.sb.Select(activityLogColumns...).From("activity_logs").Where(squirrel.Eq{"id": n}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get activity log query: %w", err)
	}

	entry, err := scanActivityLog(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityLogNotFound
		}
		logger.Error().Err(err).Int64("activityLogID", n).Msg("Error scanning activity log row")
		return nil, fmt.Errorf("error retrieving activity log: %w", err)
	}
	return entry, nil
}
