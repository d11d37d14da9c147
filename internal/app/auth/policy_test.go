package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		role     models.Role
		resource Resource
		action   Action
		want     bool
	}{
		{models.RoleSuperAdmin, ResourceActivityLog, ActionDelete, true},
		{models.RoleAdmin, ResourceStudent, ActionCreate, true},
		{models.RolePrincipal, ResourcePromotion, ActionUpdate, true},
		{models.RoleTeacher, ResourceStudent, ActionList, true},
		{models.RoleTeacher, ResourceStudent, ActionCreate, false},
		{models.RoleAccountant, ResourceStudent, ActionList, true},
		{models.RoleAccountant, ResourceStudent, ActionRead, false},
		{models.RoleStudent, ResourceStudent, ActionRead, true},
		{models.RoleStudent, ResourceStudent, ActionList, false},
		{models.RoleParent, ResourcePromotion, ActionRead, false},
		{models.RoleLibrarian, ResourceClass, ActionList, true},
		{models.RoleLibrarian, ResourceClass, ActionCreate, false},
		{models.RoleReceptionist, ResourceAcademicYear, ActionRead, true},
		{models.RoleTeacher, ResourceAcademicYear, ActionDelete, false},
		{models.RoleTeacher, ResourceActivityLog, ActionList, false},
		{models.RolePrincipal, ResourceUser, ActionCreate, false},
		{models.RoleAdmin, ResourceUser, ActionCreate, true},
		{models.RolePrincipal, ResourceUser, ActionList, true},
		{models.RolePrincipal, ResourceUser, ActionUpdate, false},
		{models.RoleTeacher, ResourceUser, ActionRead, false},
		{models.Role("janitor"), ResourceClass, ActionList, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.resource)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.resource, tt.action))
		})
	}
}

func TestAuthorizeMessage(t *testing.T) {
	err := Authorize(models.RoleTeacher, ResourcePromotion, ActionCreate)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "Role (teacher) is not allowed to access this resource", err.Error())

	assert.NoError(t, Authorize(models.RoleAdmin, ResourcePromotion, ActionCreate))
}

func TestCanViewStudent(t *testing.T) {
	s := &models.Student{UserID: 10, ParentIDs: []int64{20, 21}}

	assert.True(t, CanViewStudent(10, models.RoleStudent, s))
	assert.False(t, CanViewStudent(11, models.RoleStudent, s))
	assert.True(t, CanViewStudent(21, models.RoleParent, s))
	assert.False(t, CanViewStudent(22, models.RoleParent, s))
	assert.True(t, CanViewStudent(1, models.RoleTeacher, s))
	assert.False(t, CanViewStudent(1, models.RoleLibrarian, s))
}
