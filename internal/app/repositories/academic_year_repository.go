package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/db"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/dberrors"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

// isCurrent is derived from the single school_settings row
var academicYearColumns = []string{
	"ay.id", "ay.year", "ay.start_date", "ay.end_date",
	"COALESCE(ay.id = ss.current_academic_year_id, FALSE)",
	"ay.created_at", "ay.updated_at",
}

// AcademicYearRepository handles academic year database operations
type AcademicYearRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAcademicYearRepository creates a new AcademicYearRepository
func NewAcademicYearRepository(pg *db.PostgresDB) *AcademicYearRepository {
	return &AcademicYearRepository{
		db: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AcademicYearRepository) selectYears() squirrel.SelectBuilder {
	return r.sb.Select(academicYearColumns...).
		From("academic_years ay").
		LeftJoin("school_settings ss ON ss.id = 1")
}

func scanAcademicYear(row pgx.Row) (*models.AcademicYear, error) {
	var y models.AcademicYear
	if err := row.Scan(&y.ID, &y.Year, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt); err != nil {
		return nil, err
	}
	return &y, nil
}

// Create inserts an academic year
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("academic_years").
		Columns("year", "start_date", "end_date", "created_at", "updated_at").
		Values(year.Year, year.StartDate, year.EndDate, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create academic year SQL")
		return 0, fmt.Errorf("failed to build create academic year query: %w", err)
	}

	var id int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_year_key") {
			return 0, apperrors.ErrAcademicYearExists
		}
		logger.Error().Err(err).Str("year", year.Year).Msg("Error executing create academic year query")
		return 0, fmt.Errorf("error creating academic year: %w", err)
	}

	year.ID = id
	year.CreatedAt, year.UpdatedAt = now, now
	return id, nil
}

func (r *AcademicYearRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.AcademicYear, error) {
	sql, args, err := r.selectYears().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academic year query: %w", err)
	}

	year, err := scanAcademicYear(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		logger.Error().Err(err).Msg("Error scanning academic year row")
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

// GetByID fetches an academic year by id
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return r.getOne(ctx, squirrel.Eq{"ay.id": id})
}

// GetByYear fetches an academic year by its label
func (r *AcademicYearRepository) GetByYear(ctx context.Context, year string) (*models.AcademicYear, error) {
	return r.getOne(ctx, squirrel.Eq{"ay.year": year})
}

// GetCurrent follows the school settings pointer
func (r *AcademicYearRepository) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	return r.getOne(ctx, squirrel.Expr("ay.id = ss.current_academic_year_id"))
}

// List returns all academic years, latest start first
func (r *AcademicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	sql, args, err := r.selectYears().OrderBy("ay.start_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list academic years query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list academic years query")
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	years := make([]models.AcademicYear, 0)
	for rows.Next() {
		y, err := scanAcademicYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning academic year: %w", err)
		}
		years = append(years, *y)
	}
	return years, rows.Err()
}

// Update writes year, start and end date
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := r.sb.Update("academic_years").
		Set("year", year.Year).
		Set("start_date", year.StartDate).
		Set("end_date", year.EndDate).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": year.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update academic year query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_year_key") {
			return apperrors.ErrAcademicYearExists
		}
		logger.Error().Err(err).Int64("academicYearID", year.ID).Msg("Error executing update academic year query")
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// SetCurrent moves the current-year pointer with a single UPDATE
func (r *AcademicYearRepository) SetCurrent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("school_settings").
		Set("current_academic_year_id", id).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set current academic year query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAcademicYearNotFound
		}
		logger.Error().Err(err).Int64("academicYearID", id).Msg("Error executing set current academic year query")
		return fmt.Errorf("error setting current academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("school settings row is missing")
	}
	return nil
}

// Delete removes an academic year
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("academic_years").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete academic year query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAcademicYearInUse
		}
		logger.Error().Err(err).Int64("academicYearID", id).Msg("Error executing delete academic year query")
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}
