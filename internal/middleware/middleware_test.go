package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/yigit/schoolhub/internal/app/auth"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/pkg/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.NotNil(t, resp.Error)
	return resp
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewBadRequestErrorFor(apperrors.ErrSectionFull, "Section is full"), http.StatusBadRequest, dto.ErrorCodeCapacityExceeded},
		{apperrors.NewBadRequestErrorFor(apperrors.ErrEmailAlreadyExists, "Email already exists"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("wrapped: %w", apperrors.ErrTokenExpired), http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{apperrors.NewForbiddenError("no"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, dto.ErrorCodeRateLimited},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		status, code, _ := StatusOf(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestHandleAPIErrorMessage(t *testing.T) {
	r := gin.New()
	r.GET("/custom", func(c *gin.Context) {
		HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student not found"))
	})
	r.GET("/internal", func(c *gin.Context) {
		HandleAPIError(c, errors.New("pq: connection refused"))
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/custom", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Student not found", decodeError(t, rec).Message)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/internal", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "Internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestBindJSON(t *testing.T) {
	ConfigureValidator()
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req)
	}

	rec := post(`{"email":"admin@school.edu","password":"x"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = post(`{"email":"nope","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "email", resp.Error.Field)

	rec = post(`{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, decodeError(t, rec).Error.Code)
}

func TestAuthorize(t *testing.T) {
	m := NewAuthMiddleware(nil)
	withRole := func(role models.Role) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(ContextRole, role)
			}
		}
	}

	for _, tt := range []struct {
		role   models.Role
		status int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleSuperAdmin, http.StatusOK},
		{models.RoleTeacher, http.StatusForbidden},
		{"", http.StatusUnauthorized},
	} {
		r := gin.New()
		r.POST("/create-student", withRole(tt.role), m.Authorize(appauth.ResourceStudent, appauth.ActionCreate),
			func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(r, httptest.NewRequest(http.MethodPost, "/create-student", nil))
		assert.Equal(t, tt.status, rec.Code, string(tt.role))
	}
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = serve(r, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, rec).Error.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://school.edu"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://school.edu")
	rec := serve(r, req)
	assert.Equal(t, "https://school.edu", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = serve(r, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey: "secret", AccessTokenExp: time.Minute, RefreshTokenExp: time.Hour,
	})
	pair, err := jwtService.GenerateTokenPair(&models.User{ID: 5, Role: models.RoleTeacher})
	require.NoError(t, err)

	r := gin.New()
	r.Use(RateLimit(ratelimit.NewMemory(time.Minute), jwtService, 2, 3))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	anon := func() *httptest.ResponseRecorder {
		return serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	}
	user := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		return serve(r, req)
	}

	assert.Equal(t, http.StatusOK, anon().Code)
	rec := anon()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = anon()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, dto.ErrorCodeRateLimited, decodeError(t, rec).Error.Code)

	// authenticated callers have their own bucket and limit
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, user().Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, user().Code)

	open := gin.New()
	open.Use(RateLimit(failingLimiter{}, jwtService, 1, 1))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(open, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	}
}

func TestJWTAuthRequiresToken(t *testing.T) {
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(nil).JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, rec).Error.Code, header)
	}
}
