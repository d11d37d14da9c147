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

var classColumns = []string{"id", "name", "level", "capacity", "class_teacher_id", "academic_year_id", "created_at", "updated_at"}

// ClassRepository handles class database operations
type ClassRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(pg *db.PostgresDB) *ClassRepository {
	return &ClassRepository{
		db: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	if err := row.Scan(&c.ID, &c.Name, &c.Level, &c.Capacity, &c.ClassTeacherID, &c.AcademicYearID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("classes").
		Columns("name", "level", "capacity", "class_teacher_id", "academic_year_id", "created_at", "updated_at").
		Values(class.Name, class.Level, class.Capacity, class.ClassTeacherID, class.AcademicYearID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create class SQL")
		return 0, fmt.Errorf("failed to build create class query: %w", err)
	}

	var id int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrAcademicYearNotFound
		}
		logger.Error().Err(err).Str("name", class.Name).Msg("Error executing create class query")
		return 0, fmt.Errorf("error creating class: %w", err)
	}

	class.ID = id
	class.CreatedAt, class.UpdatedAt = now, now
	return id, nil
}

// GetByID fetches a class by id
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).From("classes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	class, err := scanClass(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", id).Msg("Error scanning class row")
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return class, nil
}

// List returns all classes ordered by level
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	sql, args, err := r.sb.Select(classColumns...).From("classes").OrderBy("level ASC", "name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list classes query")
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class: %w", err)
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// AssignTeacher sets the class teacher
func (r *ClassRepository) AssignTeacher(ctx context.Context, classID, teacherID int64) error {
	sql, args, err := r.sb.Update("classes").
		Set("class_teacher_id", teacherID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": classID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign teacher query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("classID", classID).Msg("Error executing assign teacher query")
		return fmt.Errorf("error assigning class teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// CountByAcademicYear counts the classes that reference an academic year
func (r *ClassRepository) CountByAcademicYear(ctx context.Context, academicYearID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("classes").Where(squirrel.Eq{"academic_year_id": academicYearID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count classes query: %w", err)
	}

	var n int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Int64("academicYearID", academicYearID).Msg("Error counting classes")
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return n, nil
}
