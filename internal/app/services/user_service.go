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

// UserService lets staff browse login accounts and suspend or reactivate them
type UserService interface {
	ListUsers(ctx context.Context, query dto.ListUsersQuery, page, limit int) ([]models.User, dto.Pagination, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SetUserStatus(ctx context.Context, actor Actor, id int64, active bool) (*models.User, error)
}

type userServiceImpl struct {
	repos    *repositories.Repositories
	activity ActivityService
}

// NewUserService creates a new user service instance
func NewUserService(repos *repositories.Repositories, activity ActivityService) UserService {
	return &userServiceImpl{repos: repos, activity: activity}
}

func userNotFound() error {
	return apperrors.NewCustomError(apperrors.ErrUserNotFound, "User not found")
}

func (s *userServiceImpl) ListUsers(ctx context.Context, query dto.ListUsersQuery, page, limit int) ([]models.User, dto.Pagination, error) {
	filter := models.UserFilter{
		Role:     query.Role,
		IsActive: query.IsActive,
		Search:   strings.TrimSpace(query.Search),
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	users, total, err := s.repos.Users.List(ctx, filter, offset, size)
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("error listing users: %w", err)
	}
	return users, helpers.NewPagination(total, page, size), nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, userNotFound()
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// SetUserStatus suspends or reactivates an account. Suspending revokes every refresh token of the account.
func (s *userServiceImpl) SetUserStatus(ctx context.Context, actor Actor, id int64, active bool) (*models.User, error) {
	if id == actor.UserID {
		return nil, apperrors.NewBadRequestError("You cannot change the status of your own account")
	}

	var updated *models.User
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.GetUser(ctx, id)
		if err != nil {
			return err
		}
		if user.Role == models.RoleSuperAdmin && actor.Role != models.RoleSuperAdmin {
			return apperrors.NewForbiddenError("Only a super admin can change the status of a super admin")
		}

		if err := s.repos.Users.SetActive(ctx, id, active); err != nil {
			return fmt.Errorf("error updating user status: %w", err)
		}
		if !active {
			if err := s.repos.Tokens.RevokeAllUserTokens(ctx, id); err != nil {
				return fmt.Errorf("error revoking user tokens: %w", err)
			}
		}

		updated, err = s.repos.Users.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	action, verb := models.ActionActivate, "Activated"
	if !active {
		action, verb = models.ActionDeactivate, "Suspended"
	}
	s.activity.Record(ctx, actor, models.ModuleUser, action,
		fmt.Sprintf("%s account %s", verb, updated.Email),
		map[string]interface{}{"userId": updated.ID, "role": updated.Role})
	return updated, nil
}
