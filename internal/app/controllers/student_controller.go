package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
)

// StudentController handles the student directory
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{studentService: studentService, logger: logger}
}

// CreateStudent handles student admission
// @Summary Create a student
// @Description Creates the student's login account and profile and takes a seat in the section
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.StudentResponse "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error, duplicate admission number or email, invalid placement or full section"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /create-student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("admissionNumber", req.AdmissionNumber).Msg("Failed to create student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.StudentResponse{
		Success: true,
		Message: "Student created successfully",
		Student: student,
	})
}

// ListStudents handles the student listing
// @Summary List students
// @Description Returns one page of students, newest first
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param classId query int false "Class ID"
// @Param sectionId query int false "Section ID"
// @Param status query string false "Status" Enums(active, inactive, graduated, transferred)
// @Param search query string false "Matches first name, last name or admission number"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.StudentListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	var query dto.ListStudentsQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, limit := helpers.ParsePaginationParams(ctx, helpers.DefaultPageSize)

	students, pagination, err := c.studentService.ListStudents(ctx.Request.Context(), query, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.StudentListResponse{
		Success:    true,
		Students:   students,
		Pagination: pagination,
	})
}

// GetStudent handles fetching one student
// @Summary Get a student
// @Description Students may only read their own record and parents only their children's
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{Success: true, Student: student})
}

// UpdateStudent handles a partial profile update
// @Summary Update a student
// @Description Admission number, user ID and status cannot be changed. Moving sections moves the seat.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.StudentResponse "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error, immutable field, invalid placement or full section"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /update-student/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Student updated successfully",
		Student: student,
	})
}

// DeleteStudent handles removing a student and their login account
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.SuccessResponse "Student deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /delete-student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student deleted successfully"))
}

// BulkUpload handles creating many students at once
// @Summary Bulk upload students
// @Description Each item is created on its own. Failed items are reported and never abort the batch.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkUploadRequest true "Students"
// @Success 201 {object} dto.BulkUploadResponse
// @Failure 400 {object} dto.ErrorResponse "Empty batch"
// @Router /bulk-upload-students [post]
func (c *StudentController) BulkUpload(ctx *gin.Context) {
	var req dto.BulkUploadRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	results, err := c.studentService.BulkUpload(ctx.Request.Context(), middleware.CurrentActor(ctx), req.Students)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int("successful", len(results.Successful)).
		Int("failed", len(results.Failed)).
		Msg("Bulk upload processed")
	ctx.JSON(http.StatusCreated, dto.BulkUploadResponse{
		Success: true,
		Message: fmt.Sprintf("Uploaded %d students successfully", len(results.Successful)),
		Results: *results,
	})
}

// BulkUpdate handles applying the same profile changes to many students
// @Summary Bulk update students
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkUpdateRequest true "Student IDs and field updates"
// @Success 200 {object} dto.BulkUpdateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing IDs or updates, or a restricted field"
// @Router /bulk-update-students [put]
func (c *StudentController) BulkUpdate(ctx *gin.Context) {
	var req dto.BulkUpdateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	n, err := c.studentService.BulkUpdate(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BulkUpdateResponse{
		Success:       true,
		Message:       fmt.Sprintf("%d students updated successfully", n),
		ModifiedCount: n,
	})
}
