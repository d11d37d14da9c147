package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

// ClassService manages classes and their sections
type ClassService interface {
	CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	AssignClassTeacher(ctx context.Context, classID, teacherID int64) (*models.Class, error)
	CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*models.Section, error)
	ListSections(ctx context.Context, classID int64) ([]models.Section, error)
	GetSection(ctx context.Context, id int64) (*models.Section, error)
	// ReconcileSections recomputes every section strength from its active students
	ReconcileSections(ctx context.Context) ([]models.SectionDrift, error)
}

type classServiceImpl struct {
	repos *repositories.Repositories
}

// NewClassService creates a new class service instance
func NewClassService(repos *repositories.Repositories) ClassService {
	return &classServiceImpl{repos: repos}
}

// checkTeacher requires teacherID to be a teacher account
func (s *classServiceImpl) checkTeacher(ctx context.Context, teacherID int64) error {
	user, err := s.repos.Users.GetByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewBadRequestError("Class teacher must be a user with role teacher")
		}
		return fmt.Errorf("error retrieving teacher: %w", err)
	}
	if user.Role != models.RoleTeacher {
		return apperrors.NewBadRequestError("Class teacher must be a user with role teacher")
	}
	return nil
}

func (s *classServiceImpl) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	if _, err := s.repos.AcademicYears.GetByID(ctx, req.AcademicYearID); err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid academic year ID")
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}

	class := &models.Class{
		Name:           strings.TrimSpace(req.Name),
		Level:          req.Level,
		Capacity:       req.Capacity,
		AcademicYearID: req.AcademicYearID,
	}
	if req.ClassTeacherID != 0 {
		if err := s.checkTeacher(ctx, req.ClassTeacherID); err != nil {
			return nil, err
		}
		teacherID := req.ClassTeacherID
		class.ClassTeacherID = &teacherID
	}

	if _, err := s.repos.Classes.Create(ctx, class); err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid academic year ID")
		}
		return nil, fmt.Errorf("error creating class: %w", err)
	}

	logger.Info().Int64("classID", class.ID).Str("name", class.Name).Msg("Class created")
	return class, nil
}

func (s *classServiceImpl) ListClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repos.Classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	return classes, nil
}

func (s *classServiceImpl) AssignClassTeacher(ctx context.Context, classID, teacherID int64) (*models.Class, error) {
	if _, err := s.repos.Classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrClassNotFound, "Class not found")
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	if err := s.checkTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	if err := s.repos.Classes.AssignTeacher(ctx, classID, teacherID); err != nil {
		return nil, fmt.Errorf("error assigning class teacher: %w", err)
	}
	return s.repos.Classes.GetByID(ctx, classID)
}

func (s *classServiceImpl) CreateSection(ctx context.Context, req *dto.CreateSectionRequest) (*models.Section, error) {
	if _, err := s.repos.Classes.GetByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid class ID")
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	section := &models.Section{
		ClassID:  req.ClassID,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		Room:     strings.TrimSpace(req.Room),
	}
	if req.ClassTeacherID != 0 {
		if err := s.checkTeacher(ctx, req.ClassTeacherID); err != nil {
			return nil, err
		}
		teacherID := req.ClassTeacherID
		section.ClassTeacherID = &teacherID
	}

	if _, err := s.repos.Sections.Create(ctx, section); err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid class ID")
		}
		return nil, fmt.Errorf("error creating section: %w", err)
	}
	return section, nil
}

func (s *classServiceImpl) ListSections(ctx context.Context, classID int64) ([]models.Section, error) {
	if _, err := s.repos.Classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrClassNotFound, "Class not found")
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	sections, err := s.repos.Sections.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	return sections, nil
}

func (s *classServiceImpl) GetSection(ctx context.Context, id int64) (*models.Section, error) {
	section, err := s.repos.Sections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrSectionNotFound, "Section not found")
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}
	return section, nil
}

func (s *classServiceImpl) ReconcileSections(ctx context.Context) ([]models.SectionDrift, error) {
	drifts, err := s.repos.Sections.Reconcile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reconciling sections: %w", err)
	}
	for _, d := range drifts {
		logger.Warn().
			Int64("sectionID", d.SectionID).
			Int("stored", d.Stored).
			Int("actual", d.Actual).
			Msg("Section strength drifted")
	}
	return drifts, nil
}
