package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// StudentRepository is the in-memory student table
type StudentRepository struct {
	db *DB
}

func (r *StudentRepository) checkPlacement(classID, sectionID int64) error {
	if _, ok := r.db.classes[classID]; !ok {
		return fmt.Errorf("%w: class or section does not exist", apperrors.ErrValidationFailed)
	}
	if _, ok := r.db.sections[sectionID]; !ok {
		return fmt.Errorf("%w: class or section does not exist", apperrors.ErrValidationFailed)
	}
	return nil
}

func (r *StudentRepository) checkParents(ids []int64) error {
	for _, id := range ids {
		if _, ok := r.db.users[id]; !ok {
			return fmt.Errorf("%w: unknown parent id", apperrors.ErrValidationFailed)
		}
	}
	return nil
}

func uniqueSorted(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Create inserts a student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	defer r.db.lock(ctx)()

	for _, s := range r.db.students {
		if s.AdmissionNumber == student.AdmissionNumber {
			return 0, apperrors.ErrAdmissionNumberExists
		}
	}
	if err := r.checkPlacement(student.ClassID, student.SectionID); err != nil {
		return 0, err
	}
	if err := r.checkParents(student.ParentIDs); err != nil {
		return 0, err
	}

	r.db.studentSeq++
	now := r.db.now()
	s := copyStudent(student)
	s.ID = r.db.studentSeq
	s.ParentIDs = uniqueSorted(s.ParentIDs)
	s.CreatedAt, s.UpdatedAt = now, now
	r.db.students[s.ID] = s

	student.ID = s.ID
	student.CreatedAt, student.UpdatedAt = now, now
	return s.ID, nil
}

// GetByID fetches a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	defer r.db.lock(ctx)()

	s, ok := r.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return copyStudent(s), nil
}

// AdmissionNumberExists reports whether the admission number is taken
func (r *StudentRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	defer r.db.lock(ctx)()

	for _, s := range r.db.students {
		if s.AdmissionNumber == admissionNumber {
			return true, nil
		}
	}
	return false, nil
}

func matchStudent(s *models.Student, filter models.StudentFilter) bool {
	if filter.ClassID > 0 && s.ClassID != filter.ClassID {
		return false
	}
	if filter.SectionID > 0 && s.SectionID != filter.SectionID {
		return false
	}
	if filter.Status != "" && s.Status != filter.Status {
		return false
	}
	if len(filter.StudentIDs) > 0 {
		found := false
		for _, id := range filter.StudentIDs {
			if id == s.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		return strings.Contains(strings.ToLower(s.FirstName), term) ||
			strings.Contains(strings.ToLower(s.LastName), term) ||
			strings.Contains(strings.ToLower(s.AdmissionNumber), term)
	}
	return true
}

func (r *StudentRepository) match(filter models.StudentFilter) []models.Student {
	out := make([]models.Student, 0)
	for _, s := range r.db.students {
		if matchStudent(s, filter) {
			out = append(out, *copyStudent(s))
		}
	}
	return out
}

// List returns one page of students, newest first, and the total count
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, offset uint64, limit int) ([]models.Student, int64, error) {
	defer r.db.lock(ctx)()

	all := r.match(filter)
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := int64(len(all))
	start := int(offset)
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return all[start:end], total, nil
}

// FindAll returns every match ordered by roll number
func (r *StudentRepository) FindAll(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	defer r.db.lock(ctx)()

	all := r.match(filter)
	sort.Slice(all, func(i, j int) bool {
		if all[i].RollNumber != all[j].RollNumber {
			return all[i].RollNumber < all[j].RollNumber
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// Update writes the mutable profile and placement fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	defer r.db.lock(ctx)()

	s, ok := r.db.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if err := r.checkPlacement(student.ClassID, student.SectionID); err != nil {
		return err
	}
	if err := r.checkParents(student.ParentIDs); err != nil {
		return err
	}

	next := copyStudent(student)
	next.UserID = s.UserID
	next.AdmissionNumber = s.AdmissionNumber
	next.AdmissionDate = s.AdmissionDate
	next.Status = s.Status
	next.CreatedAt = s.CreatedAt
	next.UpdatedAt = r.db.now()
	next.ParentIDs = uniqueSorted(next.ParentIDs)
	r.db.students[student.ID] = next
	return nil
}

// UpdatePlacement moves a student to a class, section and roll number
func (r *StudentRepository) UpdatePlacement(ctx context.Context, id int64, placement models.Placement) error {
	defer r.db.lock(ctx)()

	s, ok := r.db.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if err := r.checkPlacement(placement.ClassID, placement.SectionID); err != nil {
		return err
	}
	s.ClassID, s.SectionID, s.RollNumber = placement.ClassID, placement.SectionID, placement.RollNumber
	s.UpdatedAt = r.db.now()
	return nil
}

// TransitionStatus updates the status only while it still equals from
func (r *StudentRepository) TransitionStatus(ctx context.Context, id int64, from, to models.StudentStatus) (bool, error) {
	defer r.db.lock(ctx)()

	s, ok := r.db.students[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	s.UpdatedAt = r.db.now()
	return true, nil
}

func stringValue(column string, v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case *string:
		if val == nil {
			return "", nil
		}
		return *val, nil
	case nil:
		return "", nil
	case fmt.Stringer:
		return val.String(), nil
	}
	return "", fmt.Errorf("%w: invalid value for %s", apperrors.ErrValidationFailed, column)
}

// setColumn applies one bulk update value the way the students table column would store it
func setColumn(s *models.Student, column string, v interface{}) error {
	if column == "date_of_birth" {
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("%w: invalid value for %s", apperrors.ErrValidationFailed, column)
		}
		s.DateOfBirth = t
		return nil
	}
	if g, ok := v.(models.Gender); ok {
		v = string(g)
	}

	str, err := stringValue(column, v)
	if err != nil {
		return err
	}
	switch column {
	case "first_name":
		s.FirstName = str
	case "last_name":
		s.LastName = str
	case "gender":
		s.Gender = models.Gender(str)
	case "blood_group":
		s.BloodGroup = str
	case "religion":
		s.Religion = str
	case "nationality":
		s.Nationality = str
	case "address":
		s.Address = str
	case "phone":
		s.Phone = str
	case "previous_school":
		s.PreviousSchool = str
	default:
		return fmt.Errorf("unknown student column %q", column)
	}
	return nil
}

// BulkUpdate applies the same column values to many students
func (r *StudentRepository) BulkUpdate(ctx context.Context, ids []int64, columns map[string]interface{}) (int64, error) {
	if len(ids) == 0 || len(columns) == 0 {
		return 0, nil
	}
	defer r.db.lock(ctx)()

	// validate against a scratch copy first so a bad value leaves every row untouched
	var scratch models.Student
	for column, v := range columns {
		if err := setColumn(&scratch, column, v); err != nil {
			return 0, err
		}
	}

	var n int64
	now := r.db.now()
	for _, id := range uniqueSorted(ids) {
		s, ok := r.db.students[id]
		if !ok {
			continue
		}
		for column, v := range columns {
			_ = setColumn(s, column, v)
		}
		s.UpdatedAt = now
		n++
	}
	return n, nil
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.db.students, id)
	return nil
}
