package dto

import "github.com/yigit/schoolhub/internal/app/models"

// CreateAcademicYearRequest creates an academic year
type CreateAcademicYearRequest struct {
	Year      string `json:"year" binding:"required,max=20" example:"2024-2025"`
	StartDate string `json:"startDate" binding:"required" example:"2024-09-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2025-06-30"`
	IsCurrent bool   `json:"isCurrent,omitempty"`
}

// UpdateAcademicYearRequest is a partial update
type UpdateAcademicYearRequest struct {
	Year      *string `json:"year,omitempty" binding:"omitempty,max=20"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	IsCurrent *bool   `json:"isCurrent,omitempty"`
}

// AcademicYearResponse wraps a single academic year
type AcademicYearResponse struct {
	Success      bool                 `json:"success" example:"true"`
	Message      string               `json:"message,omitempty"`
	AcademicYear *models.AcademicYear `json:"academicYear"`
}

// AcademicYearListResponse lists academic years
type AcademicYearListResponse struct {
	Success       bool                  `json:"success" example:"true"`
	AcademicYears []models.AcademicYear `json:"academicYears"`
}
