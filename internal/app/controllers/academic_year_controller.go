package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
)

// AcademicYearController handles academic years
type AcademicYearController struct {
	academicYearService services.AcademicYearService
	logger              zerolog.Logger
}

// NewAcademicYearController creates a new AcademicYearController
func NewAcademicYearController(academicYearService services.AcademicYearService, logger zerolog.Logger) *AcademicYearController {
	return &AcademicYearController{academicYearService: academicYearService, logger: logger}
}

// CreateAcademicYear handles academic year creation
// @Summary Create an academic year
// @Description When isCurrent is set every other year stops being current
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademicYearRequest true "Academic year"
// @Success 201 {object} dto.AcademicYearResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, bad dates or duplicate year"
// @Router /create-academic-year [post]
func (c *AcademicYearController) CreateAcademicYear(ctx *gin.Context) {
	var req dto.CreateAcademicYearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.academicYearService.CreateAcademicYear(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.AcademicYearResponse{
		Success:      true,
		Message:      "Academic year created successfully",
		AcademicYear: year,
	})
}

// ListAcademicYears handles the academic year listing
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AcademicYearListResponse
// @Router /academic-years [get]
func (c *AcademicYearController) ListAcademicYears(ctx *gin.Context) {
	years, err := c.academicYearService.ListAcademicYears(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AcademicYearListResponse{Success: true, AcademicYears: years})
}

// GetCurrentAcademicYear handles fetching the current academic year
// @Summary Get the current academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} dto.ErrorResponse "No current academic year set"
// @Router /current-academic-year [get]
func (c *AcademicYearController) GetCurrentAcademicYear(ctx *gin.Context) {
	year, err := c.academicYearService.GetCurrentAcademicYear(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AcademicYearResponse{Success: true, AcademicYear: year})
}

// GetAcademicYear handles fetching one academic year
// @Summary Get an academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /academic-year/{id} [get]
func (c *AcademicYearController) GetAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	year, err := c.academicYearService.GetAcademicYear(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AcademicYearResponse{Success: true, AcademicYear: year})
}

// UpdateAcademicYear handles a partial academic year update
// @Summary Update an academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Param request body dto.UpdateAcademicYearRequest true "Fields to change"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 400 {object} dto.ErrorResponse "Bad dates or duplicate year"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /update-academic-year/{id} [put]
func (c *AcademicYearController) UpdateAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAcademicYearRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	year, err := c.academicYearService.UpdateAcademicYear(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AcademicYearResponse{
		Success:      true,
		Message:      "Academic year updated successfully",
		AcademicYear: year,
	})
}

// SetCurrentAcademicYear handles switching the current academic year
// @Summary Set the current academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.AcademicYearResponse
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /set-current-academic-year/{id} [put]
func (c *AcademicYearController) SetCurrentAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	year, err := c.academicYearService.SetCurrentAcademicYear(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("academicYearId", id).Str("year", year.Year).Msg("Current academic year changed")
	ctx.JSON(http.StatusOK, dto.AcademicYearResponse{
		Success:      true,
		Message:      "Current academic year updated successfully",
		AcademicYear: year,
	})
}

// DeleteAcademicYear handles deleting an unused academic year
// @Summary Delete an academic year
// @Tags academic-years
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Academic year is used by classes"
// @Failure 404 {object} dto.ErrorResponse "Academic year not found"
// @Router /delete-academic-year/{id} [delete]
func (c *AcademicYearController) DeleteAcademicYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.academicYearService.DeleteAcademicYear(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Academic year deleted successfully"))
}
