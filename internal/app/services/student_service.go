package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/schoolhub/internal/app/auth"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/pkg/metrics"
	"github.com/yigit/schoolhub/internal/pkg/validation"
)

// Fields a bulk update may never touch
var restrictedBulkFields = map[string]bool{
	"admissionNumber": true,
	"userId":          true,
	"_id":             true,
	"id":              true,
	"createdAt":       true,
}

// Profile fields a bulk update may set, mapped to their columns
var bulkUpdateColumns = map[string]string{
	"firstName":      "first_name",
	"lastName":       "last_name",
	"dateOfBirth":    "date_of_birth",
	"gender":         "gender",
	"bloodGroup":     "blood_group",
	"religion":       "religion",
	"nationality":    "nationality",
	"address":        "address",
	"phone":          "phone",
	"previousSchool": "previous_school",
}

// StudentService defines the student directory operations
type StudentService interface {
	CreateStudent(ctx context.Context, actor Actor, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, actor Actor, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, query dto.ListStudentsQuery, page, limit int) ([]models.Student, dto.Pagination, error)
	UpdateStudent(ctx context.Context, actor Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, actor Actor, id int64) error
	BulkUpload(ctx context.Context, actor Actor, students []dto.CreateStudentRequest) (*dto.BulkUploadResults, error)
	BulkUpdate(ctx context.Context, actor Actor, req *dto.BulkUpdateRequest) (int64, error)
}

type studentServiceImpl struct {
	repos    *repositories.Repositories
	activity ActivityService
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, activity ActivityService) StudentService {
	return &studentServiceImpl{repos: repos, activity: activity}
}

func studentNotFound() error {
	return apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student not found")
}

// loadStudent maps a missing row to the "Student not found" error
func loadStudent(ctx context.Context, repo repositories.IStudentRepository, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, studentNotFound()
	}
	student, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, studentNotFound()
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

func (s *studentServiceImpl) CreateStudent(ctx context.Context, actor Actor, req *dto.CreateStudentRequest) (*models.Student, error) {
	student, err := s.create(ctx, req)
	if err != nil {
		metrics.ObserveTransition("create", metrics.OutcomeFailure, 1)
		return nil, err
	}
	metrics.ObserveTransition("create", metrics.OutcomeSuccess, 1)

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionCreate,
		fmt.Sprintf("Created student %s (%s)", student.FullName(), student.AdmissionNumber),
		map[string]interface{}{"studentId": student.ID, "classId": student.ClassID, "sectionId": student.SectionID})
	return student, nil
}

// create runs the whole admission in one transaction: account, profile and seat
func (s *studentServiceImpl) create(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	dob, err := helpers.ParseDate(strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid dateOfBirth, expected YYYY-MM-DD")
	}
	admissionDate := time.Now().UTC().Truncate(24 * time.Hour)
	if d, err := helpers.ParseOptionalDate(strings.TrimSpace(req.AdmissionDate)); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid admissionDate, expected YYYY-MM-DD")
	} else if d != nil {
		admissionDate = *d
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		AdmissionNumber: strings.TrimSpace(req.AdmissionNumber),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		DateOfBirth:     dob,
		Gender:          req.Gender,
		BloodGroup:      req.BloodGroup,
		Religion:        req.Religion,
		Nationality:     req.Nationality,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		ClassID:         req.ClassID,
		SectionID:       req.SectionID,
		RollNumber:      req.RollNumber,
		AdmissionDate:   admissionDate,
		ParentIDs:       req.ParentIDs,
		PreviousSchool:  req.PreviousSchool,
		Status:          models.StudentStatusActive,
	}
	if req.MedicalInfo != nil {
		student.MedicalInfo = *req.MedicalInfo
	}

	err = s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.repos.Students.AdmissionNumberExists(ctx, student.AdmissionNumber)
		if err != nil {
			return fmt.Errorf("error checking admission number: %w", err)
		}
		if exists {
			return apperrors.NewBadRequestErrorFor(apperrors.ErrAdmissionNumberExists, "Admission number already exists")
		}

		taken, err := s.repos.Users.EmailExists(ctx, student.Email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if taken {
			return apperrors.NewBadRequestErrorFor(apperrors.ErrEmailAlreadyExists, "Email already exists")
		}

		if _, _, err := resolvePlacement(ctx, s.repos, student.ClassID, student.SectionID, "Invalid class or section ID"); err != nil {
			return err
		}
		if _, err := reserveSeats(ctx, s.repos.Sections, student.SectionID, 1, "Section is full"); err != nil {
			return err
		}

		user := &models.User{
			Email:    student.Email,
			Password: hash,
			Role:     models.RoleStudent,
			IsActive: true,
		}
		userID, err := s.repos.Users.Create(ctx, user)
		if err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				return apperrors.NewBadRequestErrorFor(apperrors.ErrEmailAlreadyExists, "Email already exists")
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		student.UserID = userID
		studentID, err := s.repos.Students.Create(ctx, student)
		if err != nil {
			if errors.Is(err, apperrors.ErrAdmissionNumberExists) {
				return apperrors.NewBadRequestErrorFor(apperrors.ErrAdmissionNumberExists, "Admission number already exists")
			}
			return fmt.Errorf("error creating student: %w", err)
		}
		return s.repos.Users.SetProfileID(ctx, userID, studentID)
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentServiceImpl) GetStudent(ctx context.Context, actor Actor, id int64) (*models.Student, error) {
	student, err := loadStudent(ctx, s.repos.Students, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewStudent(actor.UserID, actor.Role, student) {
		return nil, apperrors.NewForbiddenError("You are not allowed to view this student")
	}

	if class, err := s.repos.Classes.GetByID(ctx, student.ClassID); err == nil {
		student.Class = class
	}
	if section, err := s.repos.Sections.GetByID(ctx, student.SectionID); err == nil {
		student.Section = section
	}
	return student, nil
}

func (s *studentServiceImpl) ListStudents(ctx context.Context, query dto.ListStudentsQuery, page, limit int) ([]models.Student, dto.Pagination, error) {
	filter := models.StudentFilter{
		ClassID:   query.ClassID,
		SectionID: query.SectionID,
		Status:    query.Status,
		Search:    strings.TrimSpace(query.Search),
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	students, total, err := s.repos.Students.List(ctx, filter, offset, size)
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("error listing students: %w", err)
	}
	return students, helpers.NewPagination(total, page, size), nil
}

func (s *studentServiceImpl) UpdateStudent(ctx context.Context, actor Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	switch {
	case req.AdmissionNumber != nil:
		return nil, apperrors.NewBadRequestError("Cannot update field: admissionNumber")
	case req.UserID != nil:
		return nil, apperrors.NewBadRequestError("Cannot update field: userId")
	case req.Status != nil:
		return nil, apperrors.NewBadRequestError("Cannot update field: status")
	}

	var updated *models.Student
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := loadStudent(ctx, s.repos.Students, id)
		if err != nil {
			return err
		}

		next := *current
		if err := applyStudentUpdate(&next, req); err != nil {
			return err
		}

		if next.ClassID != current.ClassID || next.SectionID != current.SectionID {
			if _, _, err := resolvePlacement(ctx, s.repos, next.ClassID, next.SectionID, "Invalid class or section ID"); err != nil {
				return err
			}
		}
		// only an active student holds a seat
		if next.SectionID != current.SectionID && current.IsActive() {
			if _, err := reserveSeats(ctx, s.repos.Sections, next.SectionID, 1, "Section is full"); err != nil {
				return err
			}
			if err := s.repos.Sections.Release(ctx, current.SectionID, 1); err != nil {
				return fmt.Errorf("error releasing seat: %w", err)
			}
		}

		if err := s.repos.Students.Update(ctx, &next); err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
		updated, err = s.repos.Students.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionUpdate,
		fmt.Sprintf("Updated student %s (%s)", updated.FullName(), updated.AdmissionNumber),
		map[string]interface{}{"studentId": updated.ID})
	return updated, nil
}

func applyStudentUpdate(s *models.Student, req *dto.UpdateStudentRequest) error {
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return apperrors.NewBadRequestError("firstName cannot be empty")
		}
		s.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return apperrors.NewBadRequestError("lastName cannot be empty")
		}
		s.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.DateOfBirth != nil {
		dob, err := helpers.ParseDate(strings.TrimSpace(*req.DateOfBirth))
		if err != nil {
			return apperrors.NewBadRequestError("Invalid dateOfBirth, expected YYYY-MM-DD")
		}
		s.DateOfBirth = dob
	}
	if req.Gender != nil {
		s.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		s.BloodGroup = *req.BloodGroup
	}
	if req.Religion != nil {
		s.Religion = *req.Religion
	}
	if req.Nationality != nil {
		s.Nationality = *req.Nationality
	}
	if req.Address != nil {
		s.Address = *req.Address
	}
	if req.Phone != nil {
		s.Phone = *req.Phone
	}
	if req.Email != nil {
		s.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.ClassID != nil {
		s.ClassID = *req.ClassID
	}
	if req.SectionID != nil {
		s.SectionID = *req.SectionID
	}
	if req.RollNumber != nil {
		s.RollNumber = *req.RollNumber
	}
	if req.ParentIDs != nil {
		s.ParentIDs = req.ParentIDs
	}
	if req.MedicalInfo != nil {
		s.MedicalInfo = *req.MedicalInfo
	}
	if req.PreviousSchool != nil {
		s.PreviousSchool = *req.PreviousSchool
	}
	return nil
}

func (s *studentServiceImpl) DeleteStudent(ctx context.Context, actor Actor, id int64) error {
	var deleted *models.Student
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := loadStudent(ctx, s.repos.Students, id)
		if err != nil {
			return err
		}
		if student.IsActive() {
			if err := s.repos.Sections.Release(ctx, student.SectionID, 1); err != nil {
				return fmt.Errorf("error releasing seat: %w", err)
			}
		}
		if err := s.repos.Students.Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting student: %w", err)
		}
		if err := s.repos.Users.Delete(ctx, student.UserID); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return fmt.Errorf("error deleting student account: %w", err)
		}
		deleted = student
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionDelete,
		fmt.Sprintf("Deleted student %s (%s)", deleted.FullName(), deleted.AdmissionNumber),
		map[string]interface{}{"studentId": deleted.ID, "admissionNumber": deleted.AdmissionNumber})
	return nil
}

func (s *studentServiceImpl) BulkUpload(ctx context.Context, actor Actor, students []dto.CreateStudentRequest) (*dto.BulkUploadResults, error) {
	if len(students) == 0 {
		return nil, apperrors.NewBadRequestError("Please provide an array of students")
	}

	results := &dto.BulkUploadResults{
		Successful: make([]dto.BulkUploadSuccess, 0, len(students)),
		Failed:     make([]dto.BulkFailure, 0),
	}
	for i := range students {
		req := &students[i]
		fail := func(reason string) {
			results.Failed = append(results.Failed, dto.BulkFailure{
				AdmissionNumber: req.AdmissionNumber,
				Name:            strings.TrimSpace(req.FirstName + " " + req.LastName),
				Email:           req.Email,
				Reason:          reason,
			})
		}

		if err := validation.Struct(req); err != nil {
			fail(validation.Summary(err))
			continue
		}
		student, err := s.create(ctx, req)
		if err != nil {
			fail(failureReason(err, "bulk upload"))
			continue
		}
		results.Successful = append(results.Successful, dto.BulkUploadSuccess{
			AdmissionNumber: student.AdmissionNumber,
			Name:            student.FullName(),
			StudentID:       student.ID,
		})
	}

	metrics.ObserveTransition("create", metrics.OutcomeSuccess, len(results.Successful))
	metrics.ObserveTransition("create", metrics.OutcomeFailure, len(results.Failed))
	logger.Info().
		Int("successful", len(results.Successful)).
		Int("failed", len(results.Failed)).
		Msg("Bulk student upload finished")

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionBulkUpload,
		fmt.Sprintf("Bulk uploaded %d students", len(results.Successful)),
		map[string]interface{}{"total": len(students), "successful": len(results.Successful), "failed": len(results.Failed)})
	return results, nil
}

func (s *studentServiceImpl) BulkUpdate(ctx context.Context, actor Actor, req *dto.BulkUpdateRequest) (int64, error) {
	if len(req.StudentIDs) == 0 {
		return 0, apperrors.NewBadRequestError("Please provide student IDs")
	}
	if len(req.Updates) == 0 {
		return 0, apperrors.NewBadRequestError("Please provide updates")
	}

	fields := make([]string, 0, len(req.Updates))
	for field := range req.Updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if restrictedBulkFields[field] {
			return 0, apperrors.NewBadRequestError("Cannot update field: " + field)
		}
	}

	columns := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		column, ok := bulkUpdateColumns[field]
		if !ok {
			return 0, apperrors.NewBadRequestError("Cannot update field: " + field)
		}
		value, err := bulkUpdateValue(field, req.Updates[field])
		if err != nil {
			return 0, err
		}
		columns[column] = value
	}

	n, err := s.repos.Students.BulkUpdate(ctx, req.StudentIDs, columns)
	if err != nil {
		return 0, fmt.Errorf("error updating students: %w", err)
	}

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionBulkUpdate,
		fmt.Sprintf("Bulk updated %d students", n),
		map[string]interface{}{"studentIds": req.StudentIDs, "fields": fields, "modifiedCount": n})
	return n, nil
}

// bulkUpdateValue converts a JSON value into what the column stores
func bulkUpdateValue(field string, raw interface{}) (interface{}, error) {
	invalid := apperrors.NewBadRequestError("Invalid value for field: " + field)

	if raw == nil {
		switch field {
		case "firstName", "lastName", "dateOfBirth", "gender":
			return nil, invalid
		}
		return (*string)(nil), nil
	}
	str, ok := raw.(string)
	if !ok {
		return nil, invalid
	}
	str = strings.TrimSpace(str)

	switch field {
	case "firstName", "lastName":
		if str == "" {
			return nil, invalid
		}
		return str, nil
	case "dateOfBirth":
		t, err := helpers.ParseDate(str)
		if err != nil {
			return nil, invalid
		}
		return t, nil
	case "gender":
		if str != string(models.GenderMale) && str != string(models.GenderFemale) {
			return nil, invalid
		}
		return str, nil
	}
	return helpers.NullString(str), nil
}
