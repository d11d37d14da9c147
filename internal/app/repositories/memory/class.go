package memory

import (
	"context"
	"sort"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// ClassRepository is the in-memory class table
type ClassRepository struct {
	db *DB
}

// Create inserts a class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) (int64, error) {
	defer r.db.lock(ctx)()

	if _, ok := r.db.years[class.AcademicYearID]; !ok {
		return 0, apperrors.ErrAcademicYearNotFound
	}

	r.db.classSeq++
	now := r.db.now()
	c := *class
	c.ID = r.db.classSeq
	c.CreatedAt, c.UpdatedAt = now, now
	r.db.classes[c.ID] = &c

	class.ID = c.ID
	class.CreatedAt, class.UpdatedAt = now, now
	return c.ID, nil
}

// GetByID fetches a class by id
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	defer r.db.lock(ctx)()

	c, ok := r.db.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	out := *c
	return &out, nil
}

// List returns all classes ordered by level, then name
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	defer r.db.lock(ctx)()

	out := make([]models.Class, 0, len(r.db.classes))
	for _, c := range r.db.classes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// AssignTeacher sets the class teacher
func (r *ClassRepository) AssignTeacher(ctx context.Context, classID, teacherID int64) error {
	defer r.db.lock(ctx)()

	c, ok := r.db.classes[classID]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	if _, ok := r.db.users[teacherID]; !ok {
		return apperrors.ErrUserNotFound
	}
	c.ClassTeacherID = &teacherID
	c.UpdatedAt = r.db.now()
	return nil
}

// CountByAcademicYear counts the classes attached to a year
func (r *ClassRepository) CountByAcademicYear(ctx context.Context, academicYearID int64) (int64, error) {
	defer r.db.lock(ctx)()

	var n int64
	for _, c := range r.db.classes {
		if c.AcademicYearID == academicYearID {
			n++
		}
	}
	return n, nil
}
