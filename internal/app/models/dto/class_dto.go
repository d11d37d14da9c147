package dto

import "github.com/yigit/schoolhub/internal/app/models"

// CreateClassRequest creates a class in an academic year
type CreateClassRequest struct {
	Name           string `json:"name" binding:"required,max=100" example:"Grade 5"`
	Level          int    `json:"level" binding:"gte=0" example:"5"`
	Capacity       int    `json:"capacity" binding:"required,gt=0" example:"120"`
	AcademicYearID int64  `json:"academicYearId" binding:"required,gt=0" example:"1"`
	ClassTeacherID int64  `json:"classTeacherId,omitempty" binding:"omitempty,gt=0"`
}

// CreateSectionRequest creates a section inside a class
type CreateSectionRequest struct {
	ClassID        int64  `json:"classId" binding:"required,gt=0" example:"1"`
	Name           string `json:"name" binding:"required,max=50" example:"A"`
	Capacity       int    `json:"capacity" binding:"required,gt=0" example:"30"`
	Room           string `json:"room,omitempty" example:"B-12"`
	ClassTeacherID int64  `json:"classTeacherId,omitempty" binding:"omitempty,gt=0"`
}

// AssignClassTeacherRequest sets the class teacher of a class
type AssignClassTeacherRequest struct {
	ClassTeacherID int64 `json:"classTeacherId" binding:"required,gt=0" example:"7"`
}

// ClassResponse wraps a single class
type ClassResponse struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message,omitempty"`
	Class   *models.Class `json:"class"`
}

// ClassListResponse lists classes
type ClassListResponse struct {
	Success bool           `json:"success" example:"true"`
	Classes []models.Class `json:"classes"`
}

// SectionView is a section with its free seats
type SectionView struct {
	models.Section
	AvailableCapacity int `json:"availableCapacity"`
}

// NewSectionView adds the derived capacity to a section
func NewSectionView(s *models.Section) SectionView {
	return SectionView{Section: *s, AvailableCapacity: s.Available()}
}

// SectionResponse wraps a single section
type SectionResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"`
	Section SectionView `json:"section"`
}

// SectionListResponse lists sections
type SectionListResponse struct {
	Success  bool          `json:"success" example:"true"`
	Sections []SectionView `json:"sections"`
}
