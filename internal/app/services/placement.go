package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/pkg/metrics"
	"github.com/yigit/schoolhub/internal/pkg/validation"
)

// resolvePlacement loads a class and one of its sections. Any mismatch is a bad request with message.
func resolvePlacement(ctx context.Context, repos *repositories.Repositories, classID, sectionID int64, message string) (*models.Class, *models.Section, error) {
	class, err := repos.Classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, nil, apperrors.NewBadRequestError(message)
		}
		return nil, nil, fmt.Errorf("error retrieving class: %w", err)
	}

	section, err := repos.Sections.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return nil, nil, apperrors.NewBadRequestError(message)
		}
		return nil, nil, fmt.Errorf("error retrieving section: %w", err)
	}
	if section.ClassID != class.ID {
		return nil, nil, apperrors.NewBadRequestError(message)
	}
	return class, section, nil
}

// reserveSeats takes n seats in a section or fails with fullMessage, leaving the counter untouched
func reserveSeats(ctx context.Context, sections repositories.ISectionRepository, sectionID int64, n int, fullMessage string) (*models.Section, error) {
	section, err := sections.Reserve(ctx, sectionID, n)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionFull) {
			metrics.SectionFull()
			return section, apperrors.NewCustomError(apperrors.ErrSectionFull, fullMessage)
		}
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error reserving seats: %w", err)
	}
	return section, nil
}

// failureReason turns an error into the reason recorded for a failed batch item
func failureReason(err error, op string) string {
	if msg := apperrors.MessageOf(err); msg != "" {
		return msg
	}
	if fields := validation.FieldErrors(err); len(fields) > 0 {
		return validation.Summary(err)
	}
	for _, known := range []error{
		apperrors.ErrValidationFailed, apperrors.ErrBadRequest,
		apperrors.ErrStudentNotFound, apperrors.ErrEmailAlreadyExists, apperrors.ErrAdmissionNumberExists,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}
	logger.Error().Err(err).Str("op", op).Msg("Batch item failed")
	return "Internal error"
}
