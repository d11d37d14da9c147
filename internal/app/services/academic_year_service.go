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
	"github.com/yigit/schoolhub/internal/pkg/helpers"
)

// AcademicYearService manages academic years and the current-year pointer
type AcademicYearService interface {
	CreateAcademicYear(ctx context.Context, actor Actor, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error)
	ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error)
	GetCurrentAcademicYear(ctx context.Context) (*models.AcademicYear, error)
	GetAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, actor Actor, id int64, req *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error)
	SetCurrentAcademicYear(ctx context.Context, actor Actor, id int64) (*models.AcademicYear, error)
	DeleteAcademicYear(ctx context.Context, actor Actor, id int64) error
}

type academicYearServiceImpl struct {
	repos    *repositories.Repositories
	activity ActivityService
}

// NewAcademicYearService creates a new academic year service instance
func NewAcademicYearService(repos *repositories.Repositories, activity ActivityService) AcademicYearService {
	return &academicYearServiceImpl{repos: repos, activity: activity}
}

func academicYearNotFound() error {
	return apperrors.NewCustomError(apperrors.ErrAcademicYearNotFound, "Academic year not found")
}

func academicYearExists() error {
	return apperrors.NewBadRequestErrorFor(apperrors.ErrAcademicYearExists, "Academic year already exists")
}

func (s *academicYearServiceImpl) CreateAcademicYear(ctx context.Context, actor Actor, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	start, err := helpers.ParseDate(strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid startDate, expected YYYY-MM-DD")
	}
	end, err := helpers.ParseDate(strings.TrimSpace(req.EndDate))
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid endDate, expected YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, apperrors.NewBadRequestError("endDate must be after startDate")
	}

	year := &models.AcademicYear{
		Year:      strings.TrimSpace(req.Year),
		StartDate: start,
		EndDate:   end,
	}
	err = s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repos.AcademicYears.Create(ctx, year); err != nil {
			if errors.Is(err, apperrors.ErrAcademicYearExists) {
				return academicYearExists()
			}
			return fmt.Errorf("error creating academic year: %w", err)
		}
		if req.IsCurrent {
			if err := s.repos.AcademicYears.SetCurrent(ctx, year.ID); err != nil {
				return fmt.Errorf("error setting current academic year: %w", err)
			}
			year.IsCurrent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, models.ModuleAcademicYear, models.ActionCreate,
		"Created academic year "+year.Year,
		map[string]interface{}{"academicYearId": year.ID, "isCurrent": year.IsCurrent})
	return year, nil
}

func (s *academicYearServiceImpl) ListAcademicYears(ctx context.Context) ([]models.AcademicYear, error) {
	years, err := s.repos.AcademicYears.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	return years, nil
}

func (s *academicYearServiceImpl) GetCurrentAcademicYear(ctx context.Context) (*models.AcademicYear, error) {
	year, err := s.repos.AcademicYears.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrAcademicYearNotFound, "No current academic year set")
		}
		return nil, fmt.Errorf("error retrieving current academic year: %w", err)
	}
	return year, nil
}

func (s *academicYearServiceImpl) GetAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error) {
	year, err := s.repos.AcademicYears.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return nil, academicYearNotFound()
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return year, nil
}

func (s *academicYearServiceImpl) UpdateAcademicYear(ctx context.Context, actor Actor, id int64, req *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	var updated *models.AcademicYear
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		year, err := s.GetAcademicYear(ctx, id)
		if err != nil {
			return err
		}

		if req.Year != nil {
			if strings.TrimSpace(*req.Year) == "" {
				return apperrors.NewBadRequestError("year cannot be empty")
			}
			year.Year = strings.TrimSpace(*req.Year)
		}
		if req.StartDate != nil {
			if year.StartDate, err = helpers.ParseDate(strings.TrimSpace(*req.StartDate)); err != nil {
				return apperrors.NewBadRequestError("Invalid startDate, expected YYYY-MM-DD")
			}
		}
		if req.EndDate != nil {
			if year.EndDate, err = helpers.ParseDate(strings.TrimSpace(*req.EndDate)); err != nil {
				return apperrors.NewBadRequestError("Invalid endDate, expected YYYY-MM-DD")
			}
		}
		if !year.EndDate.After(year.StartDate) {
			return apperrors.NewBadRequestError("endDate must be after startDate")
		}

		if err := s.repos.AcademicYears.Update(ctx, year); err != nil {
			if errors.Is(err, apperrors.ErrAcademicYearExists) {
				return academicYearExists()
			}
			return fmt.Errorf("error updating academic year: %w", err)
		}
		if req.IsCurrent != nil && *req.IsCurrent {
			if err := s.repos.AcademicYears.SetCurrent(ctx, id); err != nil {
				return fmt.Errorf("error setting current academic year: %w", err)
			}
		}

		updated, err = s.repos.AcademicYears.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, models.ModuleAcademicYear, models.ActionUpdate,
		"Updated academic year "+updated.Year,
		map[string]interface{}{"academicYearId": updated.ID, "isCurrent": updated.IsCurrent})
	return updated, nil
}

func (s *academicYearServiceImpl) SetCurrentAcademicYear(ctx context.Context, actor Actor, id int64) (*models.AcademicYear, error) {
	if err := s.repos.AcademicYears.SetCurrent(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
			return nil, academicYearNotFound()
		}
		return nil, fmt.Errorf("error setting current academic year: %w", err)
	}
	year, err := s.GetAcademicYear(ctx, id)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, models.ModuleAcademicYear, models.ActionUpdate,
		"Set current academic year to "+year.Year,
		map[string]interface{}{"academicYearId": year.ID, "isCurrent": true})
	return year, nil
}

func (s *academicYearServiceImpl) DeleteAcademicYear(ctx context.Context, actor Actor, id int64) error {
	year, err := s.GetAcademicYear(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repos.AcademicYears.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAcademicYearInUse):
			return apperrors.NewBadRequestErrorFor(apperrors.ErrAcademicYearInUse,
				"Cannot delete academic year. It is being used by classes.")
		case errors.Is(err, apperrors.ErrAcademicYearNotFound):
			return academicYearNotFound()
		}
		return fmt.Errorf("error deleting academic year: %w", err)
	}

	s.activity.Record(ctx, actor, models.ModuleAcademicYear, models.ActionDelete,
		"Deleted academic year "+year.Year,
		map[string]interface{}{"academicYearId": id})
	return nil
}
