package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

func TestClasses(t *testing.T) {
	f := newFixture(t)
	f.createClass(t, "Kindergarten", 0)

	classes, err := f.svc.Classes.ListClasses(f.ctx)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "Kindergarten", classes[0].Name)
	assert.Equal(t, "Grade 6", classes[2].Name)

	_, err = f.svc.Classes.CreateClass(f.ctx, &dto.CreateClassRequest{Name: "Grade 7", Level: 7, Capacity: 10, AcademicYearID: 999})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestSections(t *testing.T) {
	f := newFixture(t)

	sections, err := f.svc.Classes.ListSections(f.ctx, f.grade5.ID)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "A", sections[0].Name)
	assert.Equal(t, 0, sections[0].CurrentStrength)

	_, err = f.svc.Classes.ListSections(f.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)

	_, err = f.svc.Classes.CreateSection(f.ctx, &dto.CreateSectionRequest{ClassID: 999, Name: "Z", Capacity: 5})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.Classes.GetSection(f.ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)
	assert.Equal(t, "Section not found", err.Error())
}

func TestAssignClassTeacher(t *testing.T) {
	f := newFixture(t)
	teacher := registerTeacher(t, f)
	parent, err := f.svc.Auth.Register(f.ctx, f.admin, &dto.RegisterRequest{
		Email: "parent@school.edu", Password: "secret123", Role: models.RoleParent,
	})
	require.NoError(t, err)

	class, err := f.svc.Classes.AssignClassTeacher(f.ctx, f.grade5.ID, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, class.ClassTeacherID)
	assert.Equal(t, teacher.ID, *class.ClassTeacherID)

	_, err = f.svc.Classes.AssignClassTeacher(f.ctx, f.grade5.ID, parent.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.Classes.AssignClassTeacher(f.ctx, f.grade5.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.Classes.AssignClassTeacher(f.ctx, 999, teacher.ID)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestReconcileSections(t *testing.T) {
	f := newFixture(t)
	f.enroll(t, f.sectionA)
	f.enroll(t, f.sectionA)
	_, err := f.repos.Sections.Reserve(f.ctx, f.sectionB.ID, 4)
	require.NoError(t, err)
	require.NoError(t, f.repos.Sections.Release(f.ctx, f.sectionA.ID, 1))

	drifts, err := f.svc.Classes.ReconcileSections(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.SectionDrift{
		{SectionID: f.sectionA.ID, Stored: 1, Actual: 2},
		{SectionID: f.sectionB.ID, Stored: 4, Actual: 0},
	}, drifts)
	assert.Equal(t, 2, f.strength(t, f.sectionA.ID))
	assert.Equal(t, 0, f.strength(t, f.sectionB.ID))

	drifts, err = f.svc.Classes.ReconcileSections(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}
