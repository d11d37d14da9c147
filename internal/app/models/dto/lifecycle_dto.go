package dto

import "github.com/yigit/schoolhub/internal/app/models"

// PromoteStudentRequest moves one student to a new class and section
type PromoteStudentRequest struct {
	NewClassID    int64 `json:"newClassId" binding:"required,gt=0" example:"2"`
	NewSectionID  int64 `json:"newSectionId" binding:"required,gt=0" example:"4"`
	NewRollNumber int   `json:"newRollNumber" binding:"required,gt=0" example:"7"`
}

// BulkPromoteRequest promotes the active cohort of a class, optionally narrowed
type BulkPromoteRequest struct {
	FromClassID    int64   `json:"fromClassId" binding:"required,gt=0" example:"1"`
	FromSectionID  int64   `json:"fromSectionId,omitempty" binding:"omitempty,gt=0"`
	ToClassID      int64   `json:"toClassId" binding:"required,gt=0" example:"2"`
	ToSectionID    int64   `json:"toSectionId" binding:"required,gt=0" example:"4"`
	AcademicYearID int64   `json:"academicYearId,omitempty" binding:"omitempty,gt=0"`
	StudentIDs     []int64 `json:"studentIds,omitempty"`
}

// BulkPromoteSuccess is one promoted student
type BulkPromoteSuccess struct {
	AdmissionNumber string `json:"admissionNumber"`
	Name            string `json:"name"`
	NewClass        string `json:"newClass"`
	NewSection      string `json:"newSection"`
	RollNumber      int    `json:"rollNumber"`
}

// BulkPromoteResults splits a bulk promotion into successes and failures
type BulkPromoteResults struct {
	Successful []BulkPromoteSuccess `json:"successful"`
	Failed     []BulkFailure        `json:"failed"`
}

// BulkPromoteResponse wraps BulkPromoteResults
type BulkPromoteResponse struct {
	Success bool               `json:"success" example:"true"`
	Message string             `json:"message" example:"Promoted 25 students successfully"`
	Results BulkPromoteResults `json:"results"`
}

// GraduateStudentsRequest selects students by id, or by class and optional section
type GraduateStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds,omitempty"`
	ClassID    int64   `json:"classId,omitempty" binding:"omitempty,gt=0"`
	SectionID  int64   `json:"sectionId,omitempty" binding:"omitempty,gt=0"`
}

// GraduatedStudent is one graduated student
type GraduatedStudent struct {
	AdmissionNumber string `json:"admissionNumber"`
	Name            string `json:"name"`
}

// GraduateStudentsResponse lists the graduated students
type GraduateStudentsResponse struct {
	Success   bool               `json:"success" example:"true"`
	Message   string             `json:"message" example:"25 students graduated successfully"`
	Graduated []GraduatedStudent `json:"graduated"`
}

// TransferStudentRequest records a transfer to another school
type TransferStudentRequest struct {
	TransferSchool string `json:"transferSchool" binding:"required,max=200" example:"Riverside High"`
	TransferDate   string `json:"transferDate,omitempty" example:"2025-01-10"`
	Reason         string `json:"reason,omitempty" binding:"max=500"`
}

// PromotionPreviewQuery binds the preview filters
type PromotionPreviewQuery struct {
	FromClassID   int64 `form:"fromClassId"`
	FromSectionID int64 `form:"fromSectionId"`
	ToClassID     int64 `form:"toClassId"`
	ToSectionID   int64 `form:"toSectionId"`
}

// PreviewTargetSection describes the section a cohort would move into
type PreviewTargetSection struct {
	Name              string `json:"name"`
	ClassName         string `json:"className"`
	Capacity          int    `json:"capacity"`
	CurrentStrength   int    `json:"currentStrength"`
	AvailableCapacity int    `json:"availableCapacity"`
}

// PreviewStudent is the trimmed student shown in a promotion preview
type PreviewStudent struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	AdmissionNumber string `json:"admissionNumber"`
	RollNumber      int    `json:"rollNumber"`
	ClassID         int64  `json:"classId"`
	SectionID       int64  `json:"sectionId"`
}

// PromotionPreview is what a bulk promotion would do
type PromotionPreview struct {
	TotalStudents int                  `json:"totalStudents"`
	TargetSection PreviewTargetSection `json:"targetSection"`
	CanPromoteAll bool                 `json:"canPromoteAll"`
	Students      []PreviewStudent     `json:"students"`
}

// PromotionPreviewResponse wraps PromotionPreview
type PromotionPreviewResponse struct {
	Success bool             `json:"success" example:"true"`
	Preview PromotionPreview `json:"preview"`
}

// NewPreviewStudent trims a student for the preview listing
func NewPreviewStudent(s *models.Student) PreviewStudent {
	return PreviewStudent{
		ID:              s.ID,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		AdmissionNumber: s.AdmissionNumber,
		RollNumber:      s.RollNumber,
		ClassID:         s.ClassID,
		SectionID:       s.SectionID,
	}
}
