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

var studentColumns = []string{
	"s.id", "s.user_id", "s.admission_number", "s.first_name", "s.last_name",
	"s.date_of_birth", "s.gender",
	"COALESCE(s.blood_group, '')", "COALESCE(s.religion, '')", "COALESCE(s.nationality, '')",
	"COALESCE(s.address, '')", "COALESCE(s.phone, '')", "s.email",
	"s.class_id", "s.section_id", "s.roll_number", "s.admission_date", "s.medical_info",
	"COALESCE(s.previous_school, '')", "s.status", "s.created_at", "s.updated_at",
	"COALESCE((SELECT array_agg(sp.parent_id ORDER BY sp.parent_id) FROM student_parents sp WHERE sp.student_id = s.id), '{}'::bigint[])",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(pg *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.AdmissionNumber, &s.FirstName, &s.LastName,
		&s.DateOfBirth, &s.Gender,
		&s.BloodGroup, &s.Religion, &s.Nationality,
		&s.Address, &s.Phone, &s.Email,
		&s.ClassID, &s.SectionID, &s.RollNumber, &s.AdmissionDate, &s.MedicalInfo,
		&s.PreviousSchool, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&s.ParentIDs,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// studentFilterClause turns a filter into WHERE conditions over the "s" alias
func studentFilterClause(filter models.StudentFilter) squirrel.And {
	where := squirrel.And{}
	if filter.ClassID > 0 {
		where = append(where, squirrel.Eq{"s.class_id": filter.ClassID})
	}
	if filter.SectionID > 0 {
		where = append(where, squirrel.Eq{"s.section_id": filter.SectionID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"s.status": filter.Status})
	}
	if len(filter.StudentIDs) > 0 {
		where = append(where, squirrel.Eq{"s.id": filter.StudentIDs})
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := helpers.LikePattern(term)
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.first_name": pattern},
			squirrel.ILike{"s.last_name": pattern},
			squirrel.ILike{"s.admission_number": pattern},
		})
	}
	return where
}

// Create inserts a student and its parent links
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns(
			"user_id", "admission_number", "first_name", "last_name", "date_of_birth", "gender",
			"blood_group", "religion", "nationality", "address", "phone", "email",
			"class_id", "section_id", "roll_number", "admission_date", "medical_info",
			"previous_school", "status", "created_at", "updated_at",
		).
		Values(
			student.UserID, student.AdmissionNumber, student.FirstName, student.LastName, student.DateOfBirth, student.Gender,
			helpers.NullString(student.BloodGroup), helpers.NullString(student.Religion), helpers.NullString(student.Nationality),
			helpers.NullString(student.Address), helpers.NullString(student.Phone), student.Email,
			student.ClassID, student.SectionID, student.RollNumber, student.AdmissionDate, student.MedicalInfo,
			helpers.NullString(student.PreviousSchool), student.Status, now, now,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_admission_number_key") {
			return 0, apperrors.ErrAdmissionNumberExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: class or section does not exist", apperrors.ErrValidationFailed)
		}
		logger.Error().Err(err).Str("admissionNumber", student.AdmissionNumber).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	if err := r.replaceParents(ctx, id, student.ParentIDs); err != nil {
		return 0, err
	}

	student.ID = id
	student.CreatedAt, student.UpdatedAt = now, now
	return id, nil
}

func (r *StudentRepository) replaceParents(ctx context.Context, studentID int64, parentIDs []int64) error {
	sql, args, err := r.sb.Delete("student_parents").Where(squirrel.Eq{"student_id": studentID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete parents query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing student parents: %w", err)
	}
	if len(parentIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert("student_parents").Columns("student_id", "parent_id")
	for _, pid := range parentIDs {
		insert = insert.Values(studentID, pid)
	}
	sql, args, err = insert.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert parents query: %w", err)
	}
	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown parent id", apperrors.ErrValidationFailed)
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error inserting student parents")
		return fmt.Errorf("error linking student parents: %w", err)
	}
	return nil
}

// GetByID fetches a student by id. Inside a transaction the row stays locked until it ends.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	q := r.sb.Select(studentColumns...).From("students s").Where(squirrel.Eq{"s.id": id})
	if r.db.InTransaction(ctx) {
		q = q.Suffix("FOR UPDATE OF s")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// AdmissionNumberExists reports whether the admission number is taken
func (r *StudentRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	sql, args, err := r.sb.Select("1").From("students").
		Where(squirrel.Eq{"admission_number": admissionNumber}).
		Prefix("SELECT EXISTS(").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admission number query: %w", err)
	}

	var exists bool
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("Error checking admission number")
		return false, fmt.Errorf("error checking admission number: %w", err)
	}
	return exists, nil
}

func (r *StudentRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Student, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list students SQL")
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// List returns one page of students, newest first, and the total count
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, offset uint64, limit int) ([]models.Student, int64, error) {
	where := studentFilterClause(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("students s").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.Conn(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	students, err := r.query(ctx, r.sb.Select(studentColumns...).From("students s").
		Where(where).
		OrderBy("s.created_at DESC", "s.id DESC").
		Offset(offset).
		Limit(uint64(limit)))
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// FindAll returns every match ordered by roll number
func (r *StudentRepository) FindAll(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	return r.query(ctx, r.sb.Select(studentColumns...).From("students s").
		Where(studentFilterClause(filter)).
		OrderBy("s.roll_number ASC", "s.id ASC"))
}

func (r *StudentRepository) exec(ctx context.Context, q squirrel.Sqlizer, id int64, op string) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building student SQL")
		return 0, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	cmdTag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: class or section does not exist", apperrors.ErrValidationFailed)
		}
		logger.Error().Err(err).Int64("studentID", id).Str("op", op).Msg("Error executing student query")
		return 0, fmt.Errorf("error executing %s: %w", op, err)
	}
	return cmdTag.RowsAffected(), nil
}

// Update writes the mutable profile and placement fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	q := r.sb.Update("students").SetMap(map[string]interface{}{
		"first_name":      student.FirstName,
		"last_name":       student.LastName,
		"date_of_birth":   student.DateOfBirth,
		"gender":          student.Gender,
		"blood_group":     helpers.NullString(student.BloodGroup),
		"religion":        helpers.NullString(student.Religion),
		"nationality":     helpers.NullString(student.Nationality),
		"address":         helpers.NullString(student.Address),
		"phone":           helpers.NullString(student.Phone),
		"email":           student.Email,
		"class_id":        student.ClassID,
		"section_id":      student.SectionID,
		"roll_number":     student.RollNumber,
		"medical_info":    student.MedicalInfo,
		"previous_school": helpers.NullString(student.PreviousSchool),
		"updated_at":      time.Now(),
	}).Where(squirrel.Eq{"id": student.ID})

	n, err := r.exec(ctx, q, student.ID, "update student")
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return r.replaceParents(ctx, student.ID, student.ParentIDs)
}

// UpdatePlacement moves a student to a class, section and roll number
func (r *StudentRepository) UpdatePlacement(ctx context.Context, id int64, placement models.Placement) error {
	q := r.sb.Update("students").
		Set("class_id", placement.ClassID).
		Set("section_id", placement.SectionID).
		Set("roll_number", placement.RollNumber).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})

	n, err := r.exec(ctx, q, id, "update placement")
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// TransitionStatus updates the status only while it still equals from
func (r *StudentRepository) TransitionStatus(ctx context.Context, id int64, from, to models.StudentStatus) (bool, error) {
	q := r.sb.Update("students").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from})

	n, err := r.exec(ctx, q, id, "transition status")
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// BulkUpdate applies the same column values to many students
func (r *StudentRepository) BulkUpdate(ctx context.Context, ids []int64, columns map[string]interface{}) (int64, error) {
	if len(ids) == 0 || len(columns) == 0 {
		return 0, nil
	}
	set := make(map[string]interface{}, len(columns)+1)
	for k, v := range columns {
		set[k] = v
	}
	set["updated_at"] = time.Now()

	return r.exec(ctx, r.sb.Update("students").SetMap(set).Where(squirrel.Eq{"id": ids}), 0, "bulk update students")
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.exec(ctx, r.sb.Delete("students").Where(squirrel.Eq{"id": id}), id, "delete student")
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
