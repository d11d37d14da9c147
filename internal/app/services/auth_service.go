package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/pkg/logger"
)

// Auth error messages shared with the HTTP layer
const (
	MsgInvalidCredentials   = "Invalid credentials"
	MsgLoginRequired        = "Please login to access this resource"
	MsgAccountSuspended     = "This account has been suspended! Try to contact the admin"
	MsgAccessTokenExpired   = "Access token expired. Please refresh your token"
	MsgRefreshTokenExpired  = "Refresh token expired. Please login again"
	MsgInvalidRefreshToken  = "Invalid refresh token"
	MsgInvalidAccessToken   = "Invalid access token"
	MsgUserNotFound         = "User not found"
	MsgEmailAlreadyExists   = "Email already exists"
	MsgWrongCurrentPassword = "Current password is incorrect"
)

// AuthResult is a signed-in user with a fresh token pair
type AuthResult struct {
	User   *models.User
	Tokens *auth.TokenPair
}

// AuthService handles authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*AuthResult, error)
	// RefreshToken rotates a refresh token: the presented one is revoked and a new pair is issued.
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, actor Actor, refreshToken string) error
	// Authenticate verifies an access token and loads its user
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	Register(ctx context.Context, actor Actor, req *dto.RegisterRequest) (*models.User, error)
	ChangePassword(ctx context.Context, actor Actor, req *dto.ChangePasswordRequest) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	repos      *repositories.Repositories
	jwtService *auth.JWTService
	activity   ActivityService
}

// NewAuthService creates a new auth service instance
func NewAuthService(repos *repositories.Repositories, jwtService *auth.JWTService, activity ActivityService) AuthService {
	return &authServiceImpl{repos: repos, jwtService: jwtService, activity: activity}
}

func suspended() error {
	return apperrors.NewCustomError(apperrors.ErrAccountDisabled, MsgAccountSuspended)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest, ipAddress string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, suspended()
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repos.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	} else {
		user.LastLoginAt = &now
	}

	s.activity.Record(ctx, Actor{UserID: user.ID, Role: user.Role, IPAddress: ipAddress},
		models.ModuleAuth, models.ActionLogin, "User logged in: "+user.Email, nil)
	return result, nil
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrUnauthorized, MsgLoginRequired)
	}

	var result *AuthResult
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		token, err := s.repos.Tokens.GetToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenNotFound) {
				return apperrors.NewCustomError(apperrors.ErrTokenInvalid, MsgInvalidRefreshToken)
			}
			return fmt.Errorf("error retrieving refresh token: %w", err)
		}
		if token.IsRevoked {
			return apperrors.NewCustomError(apperrors.ErrTokenRevoked, MsgInvalidRefreshToken)
		}
		if token.Expired(time.Now()) {
			return apperrors.NewCustomError(apperrors.ErrTokenExpired, MsgRefreshTokenExpired)
		}

		user, err := s.repos.Users.GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.NewCustomError(apperrors.ErrTokenInvalid, MsgInvalidRefreshToken)
			}
			return fmt.Errorf("error retrieving user: %w", err)
		}
		if !user.IsActive {
			return suspended()
		}

		if err := s.repos.Tokens.RevokeToken(ctx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke old token: %w", err)
		}
		result, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, actor Actor, refreshToken string) error {
	if refreshToken != "" {
		if err := s.repos.Tokens.RevokeToken(ctx, refreshToken); err != nil && !errors.Is(err, apperrors.ErrTokenNotFound) {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}
	}

	s.activity.Record(ctx, actor, models.ModuleAuth, models.ActionLogout, "User logged out", nil)
	return nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.NewCustomError(apperrors.ErrTokenExpired, MsgAccessTokenExpired)
		}
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, MsgInvalidAccessToken)
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, MsgUserNotFound)
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if !user.IsActive {
		return nil, suspended()
	}
	return user, nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, MsgUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}
	return user, nil
}

func (s *authServiceImpl) Register(ctx context.Context, actor Actor, req *dto.RegisterRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid role")
	}
	if len(req.Password) < 6 || len(req.Password) > 72 {
		return nil, apperrors.NewBadRequestError("Password must be between 6 and 72 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	if _, err := s.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, MsgEmailAlreadyExists)
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	s.activity.Record(ctx, actor, models.ModuleAuth, models.ActionCreate,
		fmt.Sprintf("Registered %s account %s", user.Role, user.Email),
		map[string]interface{}{"userId": user.ID, "role": string(user.Role)})
	return user, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, actor Actor, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 || len(req.NewPassword) > 20 {
		return apperrors.NewBadRequestError("New password must be between 6 and 20 characters")
	}

	user, err := s.GetProfile(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgWrongCurrentPassword)
	}
	if req.NewPassword == req.CurrentPassword {
		return apperrors.NewBadRequestError("New password must be different from the current password")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.repos.Users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.activity.Record(ctx, actor, models.ModuleAuth, models.ActionUpdate, "Changed password", nil)
	return nil
}

func (s *authServiceImpl) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.repos.Tokens.CleanupExpiredTokens(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error cleaning up refresh tokens: %w", err)
	}
	if n > 0 {
		logger.Info().Int64("removed", n).Msg("Expired refresh tokens removed")
	}
	return n, nil
}

// issueTokens signs a new pair and stores its refresh half
func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	if err := s.repos.Tokens.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}
