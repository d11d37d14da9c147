package models

import (
	"time"
)

// MedicalInfo is the optional health block of a student profile
type MedicalInfo struct {
	Allergies   []string `json:"allergies"`
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions"`
}

// Student defines the student profile stored in the 'students' table
type Student struct {
	ID              int64         `json:"id" db:"id" example:"1"`
	UserID          int64         `json:"userId" db:"user_id"`
	AdmissionNumber string        `json:"admissionNumber" db:"admission_number" example:"A1001"`
	FirstName       string        `json:"firstName" db:"first_name" example:"Amina"`
	LastName        string        `json:"lastName" db:"last_name" example:"Okoro"`
	DateOfBirth     time.Time     `json:"dateOfBirth" db:"date_of_birth"`
	Gender          Gender        `json:"gender" db:"gender" example:"female"`
	BloodGroup      string        `json:"bloodGroup,omitempty" db:"blood_group"`
	Religion        string        `json:"religion,omitempty" db:"religion"`
	Nationality     string        `json:"nationality,omitempty" db:"nationality"`
	Address         string        `json:"address,omitempty" db:"address"`
	Phone           string        `json:"phone,omitempty" db:"phone"`
	Email           string        `json:"email" db:"email"`
	ClassID         int64         `json:"classId" db:"class_id"`
	SectionID       int64         `json:"sectionId" db:"section_id"`
	RollNumber      int           `json:"rollNumber" db:"roll_number"`
	AdmissionDate   time.Time     `json:"admissionDate" db:"admission_date"`
	ParentIDs       []int64       `json:"parentIds" db:"-"`
	MedicalInfo     MedicalInfo   `json:"medicalInfo" db:"medical_info"`
	PreviousSchool  string        `json:"previousSchool,omitempty" db:"previous_school"`
	Status          StudentStatus `json:"status" db:"status" example:"active"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`

	Class   *Class   `json:"class,omitempty" db:"-"`
	Section *Section `json:"section,omitempty" db:"-"`
}

// FullName joins first and last name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// IsActive reports whether the student currently occupies a seat in a section
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}

// StudentFilter narrows a student listing
type StudentFilter struct {
	ClassID    int64
	SectionID  int64
	Status     StudentStatus
	Search     string
	StudentIDs []int64
}

// Placement is where a student sits: class, section and roll number
type Placement struct {
	ClassID    int64
	SectionID  int64
	RollNumber int
}
