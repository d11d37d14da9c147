package models

import (
	"time"
)

// Class is a grade level within an academic year
type Class struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	Name           string    `json:"name" db:"name" example:"Grade 5"`
	Level          int       `json:"level" db:"level" example:"5"`
	Capacity       int       `json:"capacity" db:"capacity" example:"120"`
	ClassTeacherID *int64    `json:"classTeacherId,omitempty" db:"class_teacher_id"`
	AcademicYearID int64     `json:"academicYearId" db:"academic_year_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Section is a subdivision of a class with a bounded number of seats.
// CurrentStrength counts the active students placed in it and stays within [0, Capacity].
type Section struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	ClassID         int64     `json:"classId" db:"class_id"`
	Name            string    `json:"name" db:"name" example:"A"`
	Capacity        int       `json:"capacity" db:"capacity" example:"30"`
	CurrentStrength int       `json:"currentStrength" db:"current_strength" example:"28"`
	ClassTeacherID  *int64    `json:"classTeacherId,omitempty" db:"class_teacher_id"`
	Room            string    `json:"room,omitempty" db:"room"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Available is the number of free seats
func (s *Section) Available() int {
	if s.CurrentStrength >= s.Capacity {
		return 0
	}
	return s.Capacity - s.CurrentStrength
}

// SectionDrift records a section whose stored counter disagreed with its active students
type SectionDrift struct {
	SectionID int64 `json:"sectionId"`
	Stored    int   `json:"stored"`
	Actual    int   `json:"actual"`
}
