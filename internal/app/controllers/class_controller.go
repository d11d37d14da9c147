package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/middleware"
)

// ClassController handles classes and their sections
type ClassController struct {
	classService services.ClassService
	logger       zerolog.Logger
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService, logger zerolog.Logger) *ClassController {
	return &ClassController{classService: classService, logger: logger}
}

// CreateClass handles class creation
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.ClassResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or invalid academic year"
// @Router /create-class [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.CreateClass(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ClassResponse{Success: true, Message: "Class created successfully", Class: class})
}

// ListClasses handles the class listing
// @Summary List classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClassListResponse
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	classes, err := c.classService.ListClasses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClassListResponse{Success: true, Classes: classes})
}

// AssignClassTeacher handles setting the class teacher
// @Summary Assign a class teacher
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Param request body dto.AssignClassTeacherRequest true "Teacher"
// @Success 200 {object} dto.ClassResponse
// @Failure 400 {object} dto.ErrorResponse "User is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /assign-class-teacher/{classId} [put]
func (c *ClassController) AssignClassTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}
	var req dto.AssignClassTeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	class, err := c.classService.AssignClassTeacher(ctx.Request.Context(), id, req.ClassTeacherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ClassResponse{Success: true, Message: "Class teacher assigned successfully", Class: class})
}

// CreateSection handles section creation
// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSectionRequest true "Section information"
// @Success 201 {object} dto.SectionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error or invalid class"
// @Router /create-sections [post]
func (c *ClassController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.classService.CreateSection(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SectionResponse{
		Success: true,
		Message: "Section created successfully",
		Section: dto.NewSectionView(section),
	})
}

// ListSections handles listing the sections of a class
// @Summary List sections of a class
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param classId path int true "Class ID"
// @Success 200 {object} dto.SectionListResponse
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /class-section/{classId} [get]
func (c *ClassController) ListSections(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "classId")
	if !ok {
		return
	}

	sections, err := c.classService.ListSections(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	views := make([]dto.SectionView, 0, len(sections))
	for i := range sections {
		views = append(views, dto.NewSectionView(&sections[i]))
	}
	ctx.JSON(http.StatusOK, dto.SectionListResponse{Success: true, Sections: views})
}

// GetSection handles fetching one section with its free seats
// @Summary Get a section
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.SectionResponse
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /section/{id} [get]
func (c *ClassController) GetSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	section, err := c.classService.GetSection(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SectionResponse{Success: true, Section: dto.NewSectionView(section)})
}
