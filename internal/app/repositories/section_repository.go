package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/db"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/dberrors"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

var sectionColumns = []string{"id", "class_id", "name", "capacity", "current_strength", "class_teacher_id", "COALESCE(room, '')", "created_at", "updated_at"}

// Recomputes strength from active students; clamps at capacity so the CHECK constraint holds.
const reconcileSectionsSQL = `
WITH actual AS (
	SELECT sec.id,
	       sec.current_strength AS stored,
	       COUNT(st.id) FILTER (WHERE st.status = 'active') AS actual
	FROM sections sec
	LEFT JOIN students st ON st.section_id = sec.id
	GROUP BY sec.id
)
UPDATE sections s
SET current_strength = LEAST(a.actual, s.capacity), updated_at = NOW()
FROM actual a
WHERE s.id = a.id AND a.stored <> a.actual
RETURNING s.id, a.stored, a.actual`

// SectionRepository handles section database operations
type SectionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(pg *db.PostgresDB) *SectionRepository {
	return &SectionRepository{
		db: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSection(row pgx.Row) (*models.Section, error) {
	var s models.Section
	if err := row.Scan(&s.ID, &s.ClassID, &s.Name, &s.Capacity, &s.CurrentStrength, &s.ClassTeacherID, &s.Room, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a section with zero strength
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("sections").
		Columns("class_id", "name", "capacity", "current_strength", "class_teacher_id", "room", "created_at", "updated_at").
		Values(section.ClassID, section.Name, section.Capacity, 0, section.ClassTeacherID, helpers.NullString(section.Room), now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create section SQL")
		return 0, fmt.Errorf("failed to build create section query: %w", err)
	}

	var id int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrClassNotFound
		}
		logger.Error().Err(err).Int64("classID", section.ClassID).Msg("Error executing create section query")
		return 0, fmt.Errorf("error creating section: %w", err)
	}

	section.ID = id
	section.CurrentStrength = 0
	section.CreatedAt, section.UpdatedAt = now, now
	return id, nil
}

// GetByID fetches a section by id
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).From("sections").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get section query: %w", err)
	}

	section, err := scanSection(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		logger.Error().Err(err).Int64("sectionID", id).Msg("Error scanning section row")
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}
	return section, nil
}

// ListByClass returns the sections of a class ordered by name
func (r *SectionRepository) ListByClass(ctx context.Context, classID int64) ([]models.Section, error) {
	sql, args, err := r.sb.Select(sectionColumns...).From("sections").
		Where(squirrel.Eq{"class_id": classID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list sections query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("classID", classID).Msg("Error executing list sections query")
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	sections := make([]models.Section, 0)
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning section: %w", err)
		}
		sections = append(sections, *s)
	}
	return sections, rows.Err()
}

// Reserve is a single conditional UPDATE, so concurrent reservations cannot overshoot capacity
func (r *SectionRepository) Reserve(ctx context.Context, id int64, n int) (*models.Section, error) {
	if n <= 0 {
		return r.GetByID(ctx, id)
	}

	sql, args, err := r.sb.Update("sections").
		Set("current_strength", squirrel.Expr("current_strength + ?", n)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_strength + ? <= capacity", n)).
		Suffix("RETURNING " + strings.Join(sectionColumns, ", ")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building reserve section SQL")
		return nil, fmt.Errorf("failed to build reserve section query: %w", err)
	}

	section, err := scanSection(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err == nil {
		return section, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("sectionID", id).Int("n", n).Msg("Error executing reserve section query")
		return nil, fmt.Errorf("error reserving section capacity: %w", err)
	}

	// Nothing updated: either the section is missing or it is full
	snapshot, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return snapshot, apperrors.ErrSectionFull
}

// Release decrements the strength, clamped at zero
func (r *SectionRepository) Release(ctx context.Context, id int64, n int) error {
	if n <= 0 {
		return nil
	}

	sql, args, err := r.sb.Update("sections").
		Set("current_strength", squirrel.Expr("GREATEST(current_strength - ?, 0)", n)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build release section query: %w", err)
	}

	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("sectionID", id).Int("n", n).Msg("Error executing release section query")
		return fmt.Errorf("error releasing section capacity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSectionNotFound
	}
	return nil
}

// Reconcile recomputes all counters and returns the drifted sections
func (r *SectionRepository) Reconcile(ctx context.Context) ([]models.SectionDrift, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, reconcileSectionsSQL)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing reconcile sections query")
		return nil, fmt.Errorf("error reconciling sections: %w", err)
	}
	defer rows.Close()

	drifts := make([]models.SectionDrift, 0)
	for rows.Next() {
		var d models.SectionDrift
		if err := rows.Scan(&d.SectionID, &d.Stored, &d.Actual); err != nil {
			return nil, fmt.Errorf("error scanning section drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}
