package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
)

// LifecycleController handles promotion, graduation and transfer
type LifecycleController struct {
	lifecycleService services.LifecycleService
	logger           zerolog.Logger
}

// NewLifecycleController creates a new LifecycleController
func NewLifecycleController(lifecycleService services.LifecycleService, logger zerolog.Logger) *LifecycleController {
	return &LifecycleController{lifecycleService: lifecycleService, logger: logger}
}

// PromoteStudent handles promoting one student
// @Summary Promote a student
// @Description Moves an active student to a new class and section and releases the old seat
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param request body dto.PromoteStudentRequest true "Target placement"
// @Success 200 {object} dto.StudentResponse "Student promoted successfully"
// @Failure 400 {object} dto.ErrorResponse "Student not active, invalid placement or full section"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /promote-student/{studentId} [put]
func (c *LifecycleController) PromoteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.PromoteStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.lifecycleService.PromoteStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Student promoted successfully",
		Student: student,
	})
}

// BulkPromote handles promoting a whole cohort
// @Summary Bulk promote students
// @Description Reserves seats for the whole cohort up front, then promotes each student on its own
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkPromoteRequest true "Cohort and target"
// @Success 200 {object} dto.BulkPromoteResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid placement or not enough capacity"
// @Failure 404 {object} dto.ErrorResponse "No students found to promote or academic year not found"
// @Router /bulk-promote-students [post]
func (c *LifecycleController) BulkPromote(ctx *gin.Context) {
	var req dto.BulkPromoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	results, err := c.lifecycleService.BulkPromote(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("fromClassId", req.FromClassID).
		Int64("toSectionId", req.ToSectionID).
		Int("promoted", len(results.Successful)).
		Int("failed", len(results.Failed)).
		Msg("Bulk promotion processed")
	ctx.JSON(http.StatusOK, dto.BulkPromoteResponse{
		Success: true,
		Message: fmt.Sprintf("Promoted %d students successfully", len(results.Successful)),
		Results: *results,
	})
}

// GraduateStudents handles graduating students by id or by class
// @Summary Graduate students
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GraduateStudentsRequest true "Students to graduate"
// @Success 200 {object} dto.GraduateStudentsResponse
// @Failure 400 {object} dto.ErrorResponse "No selector given"
// @Failure 404 {object} dto.ErrorResponse "No students found to graduate"
// @Router /graduate-students [post]
func (c *LifecycleController) GraduateStudents(ctx *gin.Context) {
	var req dto.GraduateStudentsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	graduated, err := c.lifecycleService.GraduateStudents(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.GraduateStudentsResponse{
		Success:   true,
		Message:   fmt.Sprintf("%d students graduated successfully", len(graduated)),
		Graduated: graduated,
	})
}

// TransferStudent handles recording a transfer out
// @Summary Transfer a student
// @Tags lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param request body dto.TransferStudentRequest true "Transfer details"
// @Success 200 {object} dto.StudentResponse "Student transferred successfully"
// @Failure 400 {object} dto.ErrorResponse "Already transferred or invalid date"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /transfer-student/{studentId} [put]
func (c *LifecycleController) TransferStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.TransferStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.lifecycleService.TransferStudent(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Student transferred successfully",
		Student: student,
	})
}

// PromotionPreview handles the read-only promotion preview
// @Summary Preview a bulk promotion
// @Tags lifecycle
// @Produce json
// @Security BearerAuth
// @Param fromClassId query int true "Source class ID"
// @Param fromSectionId query int false "Source section ID"
// @Param toClassId query int false "Target class ID"
// @Param toSectionId query int true "Target section ID"
// @Success 200 {object} dto.PromotionPreviewResponse
// @Failure 400 {object} dto.ErrorResponse "Missing parameters"
// @Failure 404 {object} dto.ErrorResponse "Target section not found"
// @Router /promotion-preview [get]
func (c *LifecycleController) PromotionPreview(ctx *gin.Context) {
	var query dto.PromotionPreviewQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	preview, err := c.lifecycleService.PromotionPreview(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PromotionPreviewResponse{Success: true, Preview: *preview})
}
