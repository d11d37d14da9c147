package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

func TestCreateStudent(t *testing.T) {
	f := newFixture(t)
	req := f.studentRequest(f.grade5.ID, f.sectionA.ID)
	req.Email = "  Amina@School.EDU "

	student, err := f.svc.Students.CreateStudent(f.ctx, f.admin, req)
	require.NoError(t, err)

	assert.Equal(t, models.StudentStatusActive, student.Status)
	assert.Equal(t, "amina@school.edu", student.Email)
	assert.Equal(t, 1, f.strength(t, f.sectionA.ID))

	user, err := f.repos.Users.GetByID(f.ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.ProfileID)
	assert.Equal(t, student.ID, *user.ProfileID)

	logs := f.logs(t, models.ActionCreate)
	require.NotEmpty(t, logs)
	assert.Equal(t, models.ModuleStudent, logs[0].Module)
}

func TestCreateStudentDuplicateAdmissionNumber(t *testing.T) {
	f := newFixture(t)
	first := f.studentRequest(f.grade5.ID, f.sectionA.ID)
	first.AdmissionNumber = "A1001"
	_, err := f.svc.Students.CreateStudent(f.ctx, f.admin, first)
	require.NoError(t, err)

	second := f.studentRequest(f.grade5.ID, f.sectionA.ID)
	second.AdmissionNumber = "A1001"
	_, err = f.svc.Students.CreateStudent(f.ctx, f.admin, second)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.ErrorIs(t, err, apperrors.ErrAdmissionNumberExists)
	assert.Equal(t, "Admission number already exists", err.Error())

	exists, err := f.repos.Users.EmailExists(f.ctx, second.Email)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, f.strength(t, f.sectionA.ID))
}

func TestCreateStudentRejections(t *testing.T) {
	f := newFixture(t)
	taken := f.enroll(t, f.sectionA)

	tests := []struct {
		name    string
		mutate  func(req *dto.CreateStudentRequest)
		message string
	}{
		{"duplicate email", func(r *dto.CreateStudentRequest) { r.Email = taken.Email }, "Email already exists"},
		{"unknown class", func(r *dto.CreateStudentRequest) { r.ClassID = 999 }, "Invalid class or section ID"},
		{"unknown section", func(r *dto.CreateStudentRequest) { r.SectionID = 999 }, "Invalid class or section ID"},
		{"section of another class", func(r *dto.CreateStudentRequest) { r.SectionID = f.sectionC.ID }, "Invalid class or section ID"},
		{"bad date of birth", func(r *dto.CreateStudentRequest) { r.DateOfBirth = "14/03/2012" }, "Invalid dateOfBirth, expected YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.studentRequest(f.grade5.ID, f.sectionA.ID)
			tt.mutate(req)

			_, err := f.svc.Students.CreateStudent(f.ctx, f.admin, req)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, 1, f.strength(t, f.sectionA.ID))
		})
	}
}

func TestCreateStudentSectionFull(t *testing.T) {
	f := newFixture(t)
	small := f.createSection(t, f.grade5.ID, "Small", 1)
	f.enroll(t, small)

	req := f.studentRequest(f.grade5.ID, small.ID)
	_, err := f.svc.Students.CreateStudent(f.ctx, f.admin, req)
	assert.ErrorIs(t, err, apperrors.ErrSectionFull)
	assert.Equal(t, "Section is full", err.Error())

	exists, err := f.repos.Users.EmailExists(f.ctx, req.Email)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 1, f.strength(t, small.ID))
}

func TestGetStudentVisibility(t *testing.T) {
	f := newFixture(t)
	parent, err := f.svc.Auth.Register(f.ctx, f.admin, &dto.RegisterRequest{
		Email: "parent@school.edu", Password: "secret123", Role: models.RoleParent,
	})
	require.NoError(t, err)

	req := f.studentRequest(f.grade5.ID, f.sectionA.ID)
	req.ParentIDs = []int64{parent.ID}
	student, err := f.svc.Students.CreateStudent(f.ctx, f.admin, req)
	require.NoError(t, err)
	other := f.enroll(t, f.sectionA)

	got, err := f.svc.Students.GetStudent(f.ctx, f.admin, student.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Class)
	require.NotNil(t, got.Section)
	assert.Equal(t, "Grade 5", got.Class.Name)
	assert.Equal(t, "A", got.Section.Name)

	self := Actor{UserID: student.UserID, Role: models.RoleStudent}
	_, err = f.svc.Students.GetStudent(f.ctx, self, student.ID)
	assert.NoError(t, err)
	_, err = f.svc.Students.GetStudent(f.ctx, self, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	guardian := Actor{UserID: parent.ID, Role: models.RoleParent}
	_, err = f.svc.Students.GetStudent(f.ctx, guardian, student.ID)
	assert.NoError(t, err)
	_, err = f.svc.Students.GetStudent(f.ctx, guardian, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.Students.GetStudent(f.ctx, f.admin, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListStudents(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.enroll(t, f.sectionA)
	}
	f.enroll(t, f.sectionB)

	students, pagination, err := f.svc.Students.ListStudents(f.ctx, dto.ListStudentsQuery{ClassID: f.grade5.ID}, 1, 2)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, dto.Pagination{Total: 4, Page: 1, Pages: 2}, pagination)

	students, _, err = f.svc.Students.ListStudents(f.ctx, dto.ListStudentsQuery{SectionID: f.sectionB.ID}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	students, _, err = f.svc.Students.ListStudents(f.ctx, dto.ListStudentsQuery{Search: "no2"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "No2", students[0].LastName)
}

func TestUpdateStudent(t *testing.T) {
	f := newFixture(t)
	student := f.enroll(t, f.sectionA)

	name := "Zara"
	section := f.sectionB.ID
	updated, err := f.svc.Students.UpdateStudent(f.ctx, f.admin, student.ID, &dto.UpdateStudentRequest{
		FirstName: &name,
		SectionID: &section,
	})
	require.NoError(t, err)
	assert.Equal(t, "Zara", updated.FirstName)
	assert.Equal(t, f.sectionB.ID, updated.SectionID)
	assert.Equal(t, student.AdmissionNumber, updated.AdmissionNumber)
	assert.Equal(t, 0, f.strength(t, f.sectionA.ID))
	assert.Equal(t, 1, f.strength(t, f.sectionB.ID))
}

func TestUpdateStudentRejectsImmutableFields(t *testing.T) {
	f := newFixture(t)
	student := f.enroll(t, f.sectionA)

	admission := "B2000"
	_, err := f.svc.Students.UpdateStudent(f.ctx, f.admin, student.ID, &dto.UpdateStudentRequest{AdmissionNumber: &admission})
	assert.Equal(t, "Cannot update field: admissionNumber", err.Error())

	status := models.StudentStatusGraduated
	_, err = f.svc.Students.UpdateStudent(f.ctx, f.admin, student.ID, &dto.UpdateStudentRequest{Status: &status})
	assert.Equal(t, "Cannot update field: status", err.Error())

	foreign := f.sectionC.ID
	_, err = f.svc.Students.UpdateStudent(f.ctx, f.admin, student.ID, &dto.UpdateStudentRequest{SectionID: &foreign})
	assert.Equal(t, "Invalid class or section ID", err.Error())
	assert.Equal(t, 1, f.strength(t, f.sectionA.ID))
	assert.Equal(t, 0, f.strength(t, f.sectionC.ID))
}

func TestDeleteStudent(t *testing.T) {
	f := newFixture(t)
	student := f.enroll(t, f.sectionA)

	require.NoError(t, f.svc.Students.DeleteStudent(f.ctx, f.admin, student.ID))
	assert.Equal(t, 0, f.strength(t, f.sectionA.ID))

	_, err := f.repos.Students.GetByID(f.ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = f.repos.Users.GetByID(f.ctx, student.UserID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = f.svc.Students.DeleteStudent(f.ctx, f.admin, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Equal(t, 0, f.strength(t, f.sectionA.ID))
}

func TestDeleteGraduatedStudentKeepsCounter(t *testing.T) {
	f := newFixture(t)
	student := f.enroll(t, f.sectionA)
	f.enroll(t, f.sectionA)
	_, err := f.svc.Lifecycle.GraduateStudents(f.ctx, f.admin, &dto.GraduateStudentsRequest{StudentIDs: []int64{student.ID}})
	require.NoError(t, err)

	require.NoError(t, f.svc.Students.DeleteStudent(f.ctx, f.admin, student.ID))
	assert.Equal(t, 1, f.strength(t, f.sectionA.ID))
}

func TestBulkUpload(t *testing.T) {
	f := newFixture(t)
	existing := f.enroll(t, f.sectionA)

	good := *f.studentRequest(f.grade5.ID, f.sectionA.ID)
	duplicate := *f.studentRequest(f.grade5.ID, f.sectionA.ID)
	duplicate.AdmissionNumber = existing.AdmissionNumber
	invalid := *f.studentRequest(f.grade5.ID, f.sectionA.ID)
	invalid.FirstName = ""

	results, err := f.svc.Students.BulkUpload(f.ctx, f.admin, []dto.CreateStudentRequest{good, duplicate, invalid})
	require.NoError(t, err)

	require.Len(t, results.Successful, 1)
	assert.Equal(t, good.AdmissionNumber, results.Successful[0].AdmissionNumber)
	assert.NotZero(t, results.Successful[0].StudentID)

	require.Len(t, results.Failed, 2)
	assert.Equal(t, "Admission number already exists", results.Failed[0].Reason)
	assert.Equal(t, "firstName is required", results.Failed[1].Reason)

	assert.Equal(t, 2, f.strength(t, f.sectionA.ID))
	assert.Len(t, f.logs(t, models.ActionBulkUpload), 1)

	_, err = f.svc.Students.BulkUpload(f.ctx, f.admin, nil)
	assert.Equal(t, "Please provide an array of students", err.Error())
}

func TestBulkUpdate(t *testing.T) {
	f := newFixture(t)
	s1 := f.enroll(t, f.sectionA)
	s2 := f.enroll(t, f.sectionA)
	s3 := f.enroll(t, f.sectionB)

	n, err := f.svc.Students.BulkUpdate(f.ctx, f.admin, &dto.BulkUpdateRequest{
		StudentIDs: []int64{s1.ID, s2.ID},
		Updates:    map[string]interface{}{"nationality": "Kenyan", "bloodGroup": "O+"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "Kenyan", f.student(t, s1.ID).Nationality)
	assert.Equal(t, "O+", f.student(t, s2.ID).BloodGroup)
	assert.Empty(t, f.student(t, s3.ID).Nationality)
}

func TestBulkUpdateRejections(t *testing.T) {
	f := newFixture(t)
	s1 := f.enroll(t, f.sectionA)

	tests := []struct {
		name    string
		req     dto.BulkUpdateRequest
		message string
	}{
		{"no ids", dto.BulkUpdateRequest{Updates: map[string]interface{}{"phone": "1"}}, "Please provide student IDs"},
		{"no updates", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}}, "Please provide updates"},
		{"admission number", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}, Updates: map[string]interface{}{"admissionNumber": "X"}}, "Cannot update field: admissionNumber"},
		{"user id", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}, Updates: map[string]interface{}{"userId": 3}}, "Cannot update field: userId"},
		{"status", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}, Updates: map[string]interface{}{"status": "graduated"}}, "Cannot update field: status"},
		{"section", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}, Updates: map[string]interface{}{"sectionId": 3}}, "Cannot update field: sectionId"},
		{"bad gender", dto.BulkUpdateRequest{StudentIDs: []int64{s1.ID}, Updates: map[string]interface{}{"gender": "x"}}, "Invalid value for field: gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.svc.Students.BulkUpdate(f.ctx, f.admin, &req)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			assert.Equal(t, tt.message, err.Error())
		})
	}
	assert.Equal(t, models.StudentStatusActive, f.student(t, s1.ID).Status)
}
