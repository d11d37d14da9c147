package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/auth"
)

func registerTeacher(t *testing.T, f *fixture) *models.User {
	t.Helper()
	user, err := f.svc.Auth.Register(f.ctx, f.admin, &dto.RegisterRequest{
		Email: "Teacher@School.edu", Password: "secret123", Role: models.RoleTeacher,
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	assert.Equal(t, "teacher@school.edu", teacher.Email)

	result, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "TEACHER@school.edu", Password: "secret123"}, "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, 900, result.Tokens.ExpiresIn)
	assert.NotNil(t, result.User.LastLoginAt)

	logs := f.logs(t, models.ActionLogin)
	require.Len(t, logs, 1)
	assert.Equal(t, teacher.ID, logs[0].UserID)
	assert.Equal(t, "10.0.0.1", logs[0].IPAddress)

	user, err := f.svc.Auth.Authenticate(f.ctx, result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, user.ID)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)

	_, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "wrong"}, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, MsgInvalidCredentials, err.Error())

	_, err = f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "nobody@school.edu", Password: "secret123"}, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.NoError(t, f.repos.Users.SetActive(f.ctx, teacher.ID, false))
	_, err = f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "secret123"}, "")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	assert.Equal(t, MsgAccountSuspended, err.Error())
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newFixture(t)
	registerTeacher(t, f)

	login, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "secret123"}, "")
	require.NoError(t, err)

	refreshed, err := f.svc.Auth.RefreshToken(f.ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	old, err := f.repos.Tokens.GetToken(f.ctx, login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.True(t, old.IsRevoked)

	_, err = f.svc.Auth.RefreshToken(f.ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	_, err = f.svc.Auth.RefreshToken(f.ctx, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = f.svc.Auth.RefreshToken(f.ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, MsgLoginRequired, err.Error())
}

func TestRefreshTokenExpiredAndSuspended(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)

	require.NoError(t, f.repos.Tokens.CreateToken(f.ctx, "stale", teacher.ID, time.Now().Add(-time.Minute)))
	_, err := f.svc.Auth.RefreshToken(f.ctx, "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Equal(t, MsgRefreshTokenExpired, err.Error())

	require.NoError(t, f.repos.Tokens.CreateToken(f.ctx, "fresh", teacher.ID, time.Now().Add(time.Hour)))
	require.NoError(t, f.repos.Users.SetActive(f.ctx, teacher.ID, false))
	_, err = f.svc.Auth.RefreshToken(f.ctx, "fresh")
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	token, err := f.repos.Tokens.GetToken(f.ctx, "fresh")
	require.NoError(t, err)
	assert.False(t, token.IsRevoked)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)

	expired := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: -time.Minute, RefreshTokenExp: time.Hour})
	pair, err := expired.GenerateTokenPair(teacher)
	require.NoError(t, err)

	_, err = f.svc.Auth.Authenticate(f.ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	assert.Equal(t, MsgAccessTokenExpired, err.Error())

	_, err = f.svc.Auth.Authenticate(f.ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestAuthenticateMissingOrInactiveUser(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	login, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "secret123"}, "")
	require.NoError(t, err)

	require.NoError(t, f.repos.Users.SetActive(f.ctx, teacher.ID, false))
	_, err = f.svc.Auth.Authenticate(f.ctx, login.Tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	require.NoError(t, f.repos.Users.Delete(f.ctx, teacher.ID))
	_, err = f.svc.Auth.Authenticate(f.ctx, login.Tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	login, err := f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "secret123"}, "")
	require.NoError(t, err)

	actor := Actor{UserID: teacher.ID, Role: teacher.Role}
	require.NoError(t, f.svc.Auth.Logout(f.ctx, actor, login.Tokens.RefreshToken))

	_, err = f.svc.Auth.RefreshToken(f.ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	assert.Len(t, f.logs(t, models.ActionLogout), 1)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	registerTeacher(t, f)

	_, err := f.svc.Auth.Register(f.ctx, f.admin, &dto.RegisterRequest{
		Email: "teacher@school.edu", Password: "secret123", Role: models.RoleTeacher,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.NotErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	actor := Actor{UserID: teacher.ID, Role: teacher.Role}

	err := f.svc.Auth.ChangePassword(f.ctx, actor, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "another1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = f.svc.Auth.ChangePassword(f.ctx, actor, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	err = f.svc.Auth.ChangePassword(f.ctx, actor, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "abc"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	require.NoError(t, f.svc.Auth.ChangePassword(f.ctx, actor, &dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "another1"}))
	_, err = f.svc.Auth.Login(f.ctx, &dto.LoginRequest{Email: "teacher@school.edu", Password: "another1"}, "")
	assert.NoError(t, err)
}

func TestCleanupExpiredTokens(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	require.NoError(t, f.repos.Tokens.CreateToken(f.ctx, "old", teacher.ID, time.Now().Add(-time.Hour)))
	require.NoError(t, f.repos.Tokens.CreateToken(f.ctx, "live", teacher.ID, time.Now().Add(time.Hour)))

	n, err := f.svc.Auth.CleanupExpiredTokens(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.repos.Tokens.GetToken(f.ctx, "live")
	assert.NoError(t, err)
}
