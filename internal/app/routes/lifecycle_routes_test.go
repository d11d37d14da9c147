package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
)

func (a *testAPI) createStudent(token string, n int, classID, sectionID int64) *models.Student {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/create-student", token, studentBody(n, classID, sectionID))
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp dto.StudentResponse
	decode(a.t, rec, &resp)
	return resp.Student
}

func TestLifecycleRoutesForbiddenForTeacher(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	grade6, section6 := api.classSetup(admin, "Grade 6", 6, 30)
	student := api.createStudent(admin, 1, grade5, section5)

	rec := api.do(http.MethodPost, "/register", admin, dto.RegisterRequest{
		Email: "teacher@school.edu", Password: "secret123", Role: "teacher",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	teacher := api.login("teacher@school.edu", "secret123")

	requests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPut, fmt.Sprintf("/promote-student/%d", student.ID),
			dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section6, NewRollNumber: 1}},
		{http.MethodPost, "/bulk-promote-students",
			dto.BulkPromoteRequest{FromClassID: grade5, ToClassID: grade6, ToSectionID: section6}},
		{http.MethodPost, "/graduate-students", dto.GraduateStudentsRequest{ClassID: grade5}},
		{http.MethodPut, fmt.Sprintf("/transfer-student/%d", student.ID),
			dto.TransferStudentRequest{TransferSchool: "Riverside High"}},
		{http.MethodGet, fmt.Sprintf("/promotion-preview?fromClassId=%d&toSectionId=%d", grade5, section6), nil},
	}
	for _, r := range requests {
		rec := api.do(r.method, r.path, teacher, r.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, r.path)
		assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, rec), r.path)
	}

	// nothing moved
	rec = api.do(http.MethodGet, fmt.Sprintf("/student/%d", student.ID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.StudentResponse
	decode(t, rec, &got)
	assert.Equal(t, models.StudentStatusActive, got.Student.Status)
	assert.Equal(t, section5, got.Student.SectionID)
}

func TestPromoteStudentRoute(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	grade6, section6 := api.classSetup(admin, "Grade 6", 6, 30)
	student := api.createStudent(admin, 1, grade5, section5)

	rec := api.do(http.MethodPut, fmt.Sprintf("/promote-student/%d", student.ID), admin,
		dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section6, NewRollNumber: 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var promoted dto.StudentResponse
	decode(t, rec, &promoted)
	assert.Equal(t, "Student promoted successfully", promoted.Message)
	assert.Equal(t, grade6, promoted.Student.ClassID)
	assert.Equal(t, section6, promoted.Student.SectionID)
	assert.Equal(t, 4, promoted.Student.RollNumber)

	rec = api.do(http.MethodPut, "/promote-student/999", admin,
		dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section6, NewRollNumber: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, rec))

	rec = api.do(http.MethodPut, "/promote-student/abc", admin,
		dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section6, NewRollNumber: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, fmt.Sprintf("/promote-student/%d", student.ID), admin,
		dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section6})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "roll number is required")

	// section of another class
	rec = api.do(http.MethodPut, fmt.Sprintf("/promote-student/%d", student.ID), admin,
		dto.PromoteStudentRequest{NewClassID: grade6, NewSectionID: section5, NewRollNumber: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))
}

func TestBulkPromoteRoute(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	grade6, section6 := api.classSetup(admin, "Grade 6", 6, 1)
	first := api.createStudent(admin, 1, grade5, section5)
	api.createStudent(admin, 2, grade5, section5)

	rec := api.do(http.MethodPost, "/bulk-promote-students", admin,
		dto.BulkPromoteRequest{FromClassID: grade5, ToClassID: grade6, ToSectionID: section6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeCapacityExceeded, errorCode(t, rec))

	rec = api.do(http.MethodPost, "/bulk-promote-students", admin, dto.BulkPromoteRequest{
		FromClassID: grade5, ToClassID: grade6, ToSectionID: section6, StudentIDs: []int64{first.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.BulkPromoteResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Promoted 1 students successfully", resp.Message)
	require.Len(t, resp.Results.Successful, 1)
	assert.Empty(t, resp.Results.Failed)
	assert.Equal(t, first.AdmissionNumber, resp.Results.Successful[0].AdmissionNumber)
	assert.Equal(t, 1, resp.Results.Successful[0].RollNumber)

	rec = api.do(http.MethodPost, "/bulk-promote-students", admin, dto.BulkPromoteRequest{
		FromClassID: grade5, ToClassID: grade6, ToSectionID: section6, StudentIDs: []int64{999},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, rec))

	rec = api.do(http.MethodPost, "/bulk-promote-students", admin,
		dto.BulkPromoteRequest{FromClassID: 999, ToClassID: grade6, ToSectionID: section6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))

	rec = api.do(http.MethodPost, "/bulk-promote-students", admin, dto.BulkPromoteRequest{FromClassID: grade5})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "target is required")
}

func TestGraduateStudentsRoute(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	student := api.createStudent(admin, 1, grade5, section5)

	rec := api.do(http.MethodPost, "/graduate-students", admin, dto.GraduateStudentsRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))

	rec = api.do(http.MethodPost, "/graduate-students", admin, dto.GraduateStudentsRequest{ClassID: grade5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.GraduateStudentsResponse
	decode(t, rec, &resp)
	assert.Equal(t, "1 students graduated successfully", resp.Message)
	require.Len(t, resp.Graduated, 1)
	assert.Equal(t, student.AdmissionNumber, resp.Graduated[0].AdmissionNumber)

	rec = api.do(http.MethodGet, fmt.Sprintf("/section/%d", section5), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var section dto.SectionResponse
	decode(t, rec, &section)
	assert.Equal(t, 0, section.Section.CurrentStrength)

	rec = api.do(http.MethodPost, "/graduate-students", admin, dto.GraduateStudentsRequest{ClassID: grade5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, rec))
}

func TestTransferStudentRoute(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	student := api.createStudent(admin, 1, grade5, section5)
	path := fmt.Sprintf("/transfer-student/%d", student.ID)

	rec := api.do(http.MethodPut, path, admin, dto.TransferStudentRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "transferSchool is required")

	rec = api.do(http.MethodPut, path, admin, dto.TransferStudentRequest{TransferSchool: "Riverside High", TransferDate: "10/01/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))

	rec = api.do(http.MethodPut, path, admin, dto.TransferStudentRequest{TransferSchool: "Riverside High", TransferDate: "2025-01-10"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.StudentResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Student transferred successfully", resp.Message)
	assert.Equal(t, models.StudentStatusTransferred, resp.Student.Status)

	rec = api.do(http.MethodPut, path, admin, dto.TransferStudentRequest{TransferSchool: "Riverside High"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))

	rec = api.do(http.MethodPut, "/transfer-student/999", admin, dto.TransferStudentRequest{TransferSchool: "Riverside High"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, rec))
}

func TestPromotionPreviewRoute(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(adminEmail, adminPassword)
	grade5, section5 := api.schoolSetup(admin, 30)
	_, section6 := api.classSetup(admin, "Grade 6", 6, 1)
	api.createStudent(admin, 1, grade5, section5)
	api.createStudent(admin, 2, grade5, section5)

	rec := api.do(http.MethodGet, fmt.Sprintf("/promotion-preview?fromClassId=%d&toSectionId=%d", grade5, section6), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp dto.PromotionPreviewResponse
	decode(t, rec, &resp)
	assert.Equal(t, 2, resp.Preview.TotalStudents)
	assert.Len(t, resp.Preview.Students, 2)
	assert.Equal(t, "Grade 6", resp.Preview.TargetSection.ClassName)
	assert.Equal(t, 1, resp.Preview.TargetSection.AvailableCapacity)
	assert.False(t, resp.Preview.CanPromoteAll)

	rec = api.do(http.MethodGet, fmt.Sprintf("/promotion-preview?fromClassId=%d", grade5), admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeBadRequest, errorCode(t, rec))

	rec = api.do(http.MethodGet, fmt.Sprintf("/promotion-preview?fromClassId=%d&toSectionId=999", grade5), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, errorCode(t, rec))
}
