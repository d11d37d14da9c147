package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

// DefaultActivityLogPageSize is the page size of the activity log listing
const DefaultActivityLogPageSize = 20

// ActivityService records and reads the audit trail
type ActivityService interface {
	// Record stores an entry. Failures are logged and never returned.
	Record(ctx context.Context, actor Actor, module, action, description string, metadata map[string]interface{})
	List(ctx context.Context, query dto.ActivityLogQuery, page, limit int) ([]models.ActivityLog, dto.Pagination, error)
	Get(ctx context.Context, id string) (*models.ActivityLog, error)
}

type activityServiceImpl struct {
	repo repositories.IActivityLogRepository
}

// NewActivityService creates a new activity service instance
func NewActivityService(repo repositories.IActivityLogRepository) ActivityService {
	return &activityServiceImpl{repo: repo}
}

func (s *activityServiceImpl) Record(ctx context.Context, actor Actor, module, action, description string, metadata map[string]interface{}) {
	entry := &models.ActivityLog{
		UserID:      actor.UserID,
		UserRole:    actor.Role,
		Action:      action,
		Module:      module,
		Description: description,
		IPAddress:   actor.IPAddress,
		Metadata:    metadata,
	}
	// the request may already be cancelled; the audit entry should still land
	if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn().Err(err).
			Str("module", module).
			Str("action", action).
			Int64("userID", actor.UserID).
			Msg("Failed to record activity")
	}
}

func (s *activityServiceImpl) List(ctx context.Context, query dto.ActivityLogQuery, page, limit int) ([]models.ActivityLog, dto.Pagination, error) {
	filter := models.ActivityLogFilter{
		UserID:   query.UserID,
		UserRole: query.UserRole,
		Module:   strings.ToUpper(strings.TrimSpace(query.Module)),
		Action:   strings.ToUpper(strings.TrimSpace(query.Action)),
	}

	start, err := helpers.ParseOptionalDate(query.StartDate)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.NewBadRequestError("Invalid startDate")
	}
	end, err := helpers.ParseOptionalDate(query.EndDate)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.NewBadRequestError("Invalid endDate")
	}
	// a date range applies only when both ends are given
	if start != nil && end != nil {
		if len(strings.TrimSpace(query.EndDate)) == len(helpers.DateLayout) {
			e := end.AddDate(0, 0, 1).Add(-1)
			end = &e
		}
		filter.StartDate, filter.EndDate = start, end
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	logs, total, err := s.repo.List(ctx, filter, offset, size)
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("error listing activity logs: %w", err)
	}
	return logs, helpers.NewPagination(total, page, size), nil
}

func (s *activityServiceImpl) Get(ctx context.Context, id string) (*models.ActivityLog, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrActivityLogNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound, "Activity log not found")
		}
		return nil, fmt.Errorf("error retrieving activity log: %w", err)
	}
	return entry, nil
}
