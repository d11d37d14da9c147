package models

import "time"

// AcademicYear is a named school year. IsCurrent is derived from the school settings pointer.
type AcademicYear struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Year      string    `json:"year" db:"year" example:"2024-2025"`
	StartDate time.Time `json:"startDate" db:"start_date"`
	EndDate   time.Time `json:"endDate" db:"end_date"`
	IsCurrent bool      `json:"isCurrent" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
