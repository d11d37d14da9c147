package dto

import "github.com/yigit/schoolhub/internal/app/models"

// CreateStudentRequest creates a login account and a student profile together
type CreateStudentRequest struct {
	AdmissionNumber string              `json:"admissionNumber" binding:"required,max=50" example:"A1001"`
	Email           string              `json:"email" binding:"required,email" example:"amina@school.edu"`
	Password        string              `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	FirstName       string              `json:"firstName" binding:"required,max=100" example:"Amina"`
	LastName        string              `json:"lastName" binding:"required,max=100" example:"Okoro"`
	DateOfBirth     string              `json:"dateOfBirth" binding:"required" example:"2012-03-14"`
	Gender          models.Gender       `json:"gender" binding:"required,oneof=male female" example:"female"`
	BloodGroup      string              `json:"bloodGroup,omitempty" binding:"max=5"`
	Religion        string              `json:"religion,omitempty"`
	Nationality     string              `json:"nationality,omitempty"`
	Address         string              `json:"address,omitempty"`
	Phone           string              `json:"phone,omitempty"`
	ClassID         int64               `json:"classId" binding:"required,gt=0" example:"1"`
	SectionID       int64               `json:"sectionId" binding:"required,gt=0" example:"1"`
	RollNumber      int                 `json:"rollNumber" binding:"required,gt=0" example:"12"`
	AdmissionDate   string              `json:"admissionDate,omitempty" example:"2024-09-01"`
	ParentIDs       []int64             `json:"parentIds,omitempty"`
	MedicalInfo     *models.MedicalInfo `json:"medicalInfo,omitempty"`
	PreviousSchool  string              `json:"previousSchool,omitempty"`
}

// UpdateStudentRequest is a partial update. Nil fields are left unchanged.
type UpdateStudentRequest struct {
	FirstName      *string             `json:"firstName,omitempty" binding:"omitempty,max=100"`
	LastName       *string             `json:"lastName,omitempty" binding:"omitempty,max=100"`
	DateOfBirth    *string             `json:"dateOfBirth,omitempty"`
	Gender         *models.Gender      `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	BloodGroup     *string             `json:"bloodGroup,omitempty" binding:"omitempty,max=5"`
	Religion       *string             `json:"religion,omitempty"`
	Nationality    *string             `json:"nationality,omitempty"`
	Address        *string             `json:"address,omitempty"`
	Phone          *string             `json:"phone,omitempty"`
	Email          *string             `json:"email,omitempty" binding:"omitempty,email"`
	ClassID        *int64              `json:"classId,omitempty" binding:"omitempty,gt=0"`
	SectionID      *int64              `json:"sectionId,omitempty" binding:"omitempty,gt=0"`
	RollNumber     *int                `json:"rollNumber,omitempty" binding:"omitempty,gt=0"`
	ParentIDs      []int64             `json:"parentIds,omitempty"`
	MedicalInfo    *models.MedicalInfo `json:"medicalInfo,omitempty"`
	PreviousSchool *string             `json:"previousSchool,omitempty"`

	// Immutable here; present only so the request can be rejected explicitly
	AdmissionNumber *string               `json:"admissionNumber,omitempty" swaggerignore:"true"`
	UserID          *int64                `json:"userId,omitempty" swaggerignore:"true"`
	Status          *models.StudentStatus `json:"status,omitempty" swaggerignore:"true"`
}

// ListStudentsQuery binds the list filters from the query string
type ListStudentsQuery struct {
	ClassID   int64                `form:"classId" binding:"omitempty,gt=0"`
	SectionID int64                `form:"sectionId" binding:"omitempty,gt=0"`
	Status    models.StudentStatus `form:"status" binding:"omitempty,oneof=active inactive graduated transferred"`
	Search    string               `form:"search"`
}

// StudentResponse wraps a single student
type StudentResponse struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty" example:"Student created successfully"`
	Student *models.Student `json:"student"`
}

// StudentListResponse is one page of students
type StudentListResponse struct {
	Success    bool             `json:"success" example:"true"`
	Students   []models.Student `json:"students"`
	Pagination Pagination       `json:"pagination"`
}

// BulkUploadRequest carries the students of a bulk upload. Items are validated one by one.
type BulkUploadRequest struct {
	Students []CreateStudentRequest `json:"students"`
}

// BulkUploadSuccess is one created student of a bulk upload
type BulkUploadSuccess struct {
	AdmissionNumber string `json:"admissionNumber"`
	Name            string `json:"name"`
	StudentID       int64  `json:"studentId"`
}

// BulkFailure is one rejected item of a batch
type BulkFailure struct {
	AdmissionNumber string `json:"admissionNumber"`
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Reason          string `json:"reason"`
}

// BulkUploadResults splits a bulk upload into successes and failures
type BulkUploadResults struct {
	Successful []BulkUploadSuccess `json:"successful"`
	Failed     []BulkFailure       `json:"failed"`
}

// BulkUploadResponse wraps BulkUploadResults
type BulkUploadResponse struct {
	Success bool              `json:"success" example:"true"`
	Message string            `json:"message" example:"Uploaded 10 students successfully"`
	Results BulkUploadResults `json:"results"`
}

// BulkUpdateRequest applies the same field updates to several students
type BulkUpdateRequest struct {
	StudentIDs []int64                `json:"studentIds"`
	Updates    map[string]interface{} `json:"updates"`
}

// BulkUpdateResponse reports how many students changed
type BulkUpdateResponse struct {
	Success       bool   `json:"success" example:"true"`
	Message       string `json:"message" example:"3 students updated successfully"`
	ModifiedCount int64  `json:"modifiedCount" example:"3"`
}
