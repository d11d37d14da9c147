package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories/memory"
	"github.com/yigit/schoolhub/internal/bootstrap"
	"github.com/yigit/schoolhub/internal/config"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/seed"
)

const (
	adminEmail    = "root@school.edu"
	adminPassword = "secret123"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	deps   *bootstrap.Dependencies
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	auth.BcryptCost = bcrypt.MinCost

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "schoolhub-test"

	lgr := zerolog.Nop()
	store := &bootstrap.Store{Name: config.DriverMemory, Repos: memory.Open().Repositories()}
	_, err := seed.CreateDefaultData(context.Background(), store.Repos, seed.Options{
		AdminEmail: adminEmail, AdminPassword: adminPassword, AcademicYear: "2024-2025",
	}, lgr)
	require.NoError(t, err)

	deps, err := bootstrap.BuildDependencies(cfg, store, lgr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	gin.SetMode(gin.TestMode)
	return &testAPI{t: t, router: router, deps: deps}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.AuthResponse
	decode(a.t, rec, &resp)
	return resp.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return resp.Error.Code
}

// schoolSetup creates a class with one section in the seeded current year
func (a *testAPI) schoolSetup(token string, capacity int) (classID, sectionID int64) {
	a.t.Helper()
	return a.classSetup(token, "Grade 5", 5, capacity)
}

// classSetup creates a class named name with a section "A" of the given capacity
func (a *testAPI) classSetup(token, name string, level, capacity int) (classID, sectionID int64) {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/current-academic-year", token, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var year dto.AcademicYearResponse
	decode(a.t, rec, &year)

	rec = a.do(http.MethodPost, "/create-class", token, dto.CreateClassRequest{
		Name: name, Level: level, Capacity: 60, AcademicYearID: year.AcademicYear.ID,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var class dto.ClassResponse
	decode(a.t, rec, &class)

	rec = a.do(http.MethodPost, "/create-sections", token, dto.CreateSectionRequest{
		ClassID: class.Class.ID, Name: "A", Capacity: capacity,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var section dto.SectionResponse
	decode(a.t, rec, &section)

	return class.Class.ID, section.Section.ID
}

func studentBody(n int, classID, sectionID int64) dto.CreateStudentRequest {
	return dto.CreateStudentRequest{
		AdmissionNumber: fmt.Sprintf("A%04d", 1000+n),
		Email:           fmt.Sprintf("student%d@school.edu", n),
		Password:        "secret123",
		FirstName:       "Student",
		LastName:        fmt.Sprintf("No%d", n),
		DateOfBirth:     "2012-03-14",
		Gender:          "female",
		ClassID:         classID,
		SectionID:       sectionID,
		RollNumber:      n,
	}
}

func TestPublicRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health dto.HealthResponse
	decode(t, rec, &health)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.DriverMemory, health.Store)

	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schoolhub_http_requests_total")
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	require.Contains(t, cookies, middleware.RefreshTokenCookie)
	assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[middleware.RefreshTokenCookie].SameSite)

	// the access cookie alone authenticates
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(cookies[middleware.AccessTokenCookie])
	me := httptest.NewRecorder()
	api.router.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	var user dto.UserResponse
	decode(t, me, &user)
	assert.Equal(t, adminEmail, user.User.Email)

	// refresh from the cookie rotates the pair
	req = httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", nil)
	req.AddCookie(cookies[middleware.RefreshTokenCookie])
	refreshed := httptest.NewRecorder()
	api.router.ServeHTTP(refreshed, req)
	require.Equal(t, http.StatusOK, refreshed.Code, refreshed.Body.String())

	// the rotated-out refresh token is rejected
	req = httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", nil)
	req.AddCookie(cookies[middleware.RefreshTokenCookie])
	replay := httptest.NewRecorder()
	api.router.ServeHTTP(replay, req)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)

	rec = api.do(http.MethodPost, "/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, errorCode(t, rec))

	rec = api.do(http.MethodPost, "/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, errorCode(t, rec))
}

func TestAuthorization(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	rec := api.do(http.MethodGet, "/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, rec))

	rec = api.do(http.MethodGet, "/students", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/register", admin, dto.RegisterRequest{
		Email: "teacher@school.edu", Password: "secret123", Role: "teacher",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	teacher := api.login("teacher@school.edu", "secret123")
	classID, sectionID := api.schoolSetup(admin, 30)

	rec = api.do(http.MethodPost, "/create-student", teacher, studentBody(1, classID, sectionID))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, rec))

	rec = api.do(http.MethodGet, "/students", teacher, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/activity-logs", teacher, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodGet, "/classes", teacher, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// logout revokes the session
	rec = api.do(http.MethodGet, "/logout", teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStudentRoutes(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	classID, sectionID := api.schoolSetup(admin, 2)

	rec := api.do(http.MethodPost, "/create-student", admin, studentBody(1, classID, sectionID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created dto.StudentResponse
	decode(t, rec, &created)
	assert.Equal(t, "Student created successfully", created.Message)
	studentID := created.Student.ID

	rec = api.do(http.MethodPost, "/create-student", admin, studentBody(1, classID, sectionID))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "duplicate admission number")

	rec = api.do(http.MethodPost, "/create-student", admin, studentBody(2, classID, sectionID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/create-student", admin, studentBody(3, classID, sectionID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeCapacityExceeded, errorCode(t, rec))

	rec = api.do(http.MethodGet, fmt.Sprintf("/section/%d", sectionID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var section dto.SectionResponse
	decode(t, rec, &section)
	assert.Equal(t, 2, section.Section.CurrentStrength)

	rec = api.do(http.MethodGet, "/students?limit=1&page=2", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page dto.StudentListResponse
	decode(t, rec, &page)
	assert.Len(t, page.Students, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	rec = api.do(http.MethodGet, fmt.Sprintf("/student/%d", studentID), admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/student/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/student/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, fmt.Sprintf("/delete-student/%d", studentID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, fmt.Sprintf("/section/%d", sectionID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &section)
	assert.Equal(t, 1, section.Section.CurrentStrength)

	rec = api.do(http.MethodGet, "/activity-logs", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var logs dto.ActivityLogListResponse
	decode(t, rec, &logs)
	assert.NotEmpty(t, logs.Logs)
}

func TestAcademicYearRoutes(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	rec := api.do(http.MethodPost, "/create-academic-year", admin, dto.CreateAcademicYearRequest{
		Year: "2025-2026", StartDate: "2025-09-01", EndDate: "2026-06-30",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var year dto.AcademicYearResponse
	decode(t, rec, &year)
	assert.False(t, year.AcademicYear.IsCurrent)

	rec = api.do(http.MethodPost, "/create-academic-year", admin, dto.CreateAcademicYearRequest{
		Year: "2025-2026", StartDate: "2025-09-01", EndDate: "2026-06-30",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, fmt.Sprintf("/set-current-academic-year/%d", year.AcademicYear.ID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/current-academic-year", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &year)
	assert.Equal(t, "2025-2026", year.AcademicYear.Year)

	rec = api.do(http.MethodGet, "/academic-years", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.AcademicYearListResponse
	decode(t, rec, &list)
	assert.Len(t, list.AcademicYears, 2)
}

func TestNotificationRoutes(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)

	rec := api.do(http.MethodGet, "/notifications", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list dto.NotificationListResponse
	decode(t, rec, &list)
	assert.Empty(t, list.Notifications)
	assert.Zero(t, list.UnreadCount)

	rec = api.do(http.MethodPut, "/notification/999/read", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPut, "/notifications/read-all", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserRoutes(t *testing.T) {
	api := newTestAPI(t)
	root := api.login(adminEmail, adminPassword)

	ids := map[string]int64{}
	for _, u := range []dto.RegisterRequest{
		{Email: "principal@school.edu", Password: "secret123", Role: "principal"},
		{Email: "teacher@school.edu", Password: "secret123", Role: "teacher"},
	} {
		rec := api.do(http.MethodPost, "/register", root, u)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp dto.UserResponse
		decode(t, rec, &resp)
		ids[u.Email] = resp.User.ID
	}
	principal := api.login("principal@school.edu", "secret123")
	teacher := api.login("teacher@school.edu", "secret123")

	rec := api.do(http.MethodGet, "/users?role=teacher", principal, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list dto.UserListResponse
	decode(t, rec, &list)
	require.Len(t, list.Users, 1)
	assert.Equal(t, "teacher@school.edu", list.Users[0].Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = api.do(http.MethodGet, "/users?role=janitor", principal, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/users", teacher, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	path := fmt.Sprintf("/update-user-status/%d", ids["teacher@school.edu"])
	rec = api.do(http.MethodPut, path, principal, map[string]bool{"isActive": false})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPut, path, root, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, path, root, map[string]bool{"isActive": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.UserResponse
	decode(t, rec, &resp)
	assert.False(t, resp.User.IsActive)

	rec = api.do(http.MethodGet, "/me", teacher, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, dto.ErrorCodeAccountDisabled, errorCode(t, rec))

	rec = api.do(http.MethodGet, fmt.Sprintf("/user/%d", ids["teacher@school.edu"]), principal, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.False(t, resp.User.IsActive)

	rec = api.do(http.MethodGet, "/user/999", principal, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
