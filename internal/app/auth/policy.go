// Package auth decides which roles may act on which resources.
package auth

import (
	"fmt"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// Resource is a protected group of endpoints
type Resource string

const (
	ResourceStudent      Resource = "student"
	ResourcePromotion    Resource = "promotion"
	ResourceClass        Resource = "class"
	ResourceSection      Resource = "section"
	ResourceAcademicYear Resource = "academic_year"
	ResourceNotification Resource = "notification"
	ResourceActivityLog  Resource = "activity_log"
	ResourceUser         Resource = "user"
)

// Action is what a caller does to a resource
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type rule struct {
	resource Resource
	action   Action
}

func roles(rs ...models.Role) map[models.Role]bool {
	m := make(map[models.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

var (
	staff      = []models.Role{models.RoleAdmin, models.RolePrincipal}
	everyone   = models.AllRoles
	policyRows = map[rule]map[models.Role]bool{
		{ResourceStudent, ActionCreate}: roles(staff...),
		{ResourceStudent, ActionList}:   roles(models.RoleAdmin, models.RolePrincipal, models.RoleTeacher, models.RoleAccountant),
		{ResourceStudent, ActionRead}: roles(models.RoleAdmin, models.RolePrincipal, models.RoleTeacher,
			models.RoleStudent, models.RoleParent),
		{ResourceStudent, ActionUpdate}: roles(staff...),
		{ResourceStudent, ActionDelete}: roles(staff...),

		{ResourcePromotion, ActionCreate}: roles(staff...),
		{ResourcePromotion, ActionRead}:   roles(staff...),
		{ResourcePromotion, ActionUpdate}: roles(staff...),

		{ResourceClass, ActionCreate}: roles(staff...),
		{ResourceClass, ActionList}:   roles(everyone...),
		{ResourceClass, ActionRead}:   roles(everyone...),
		{ResourceClass, ActionUpdate}: roles(staff...),

		{ResourceSection, ActionCreate}: roles(staff...),
		{ResourceSection, ActionList}:   roles(everyone...),
		{ResourceSection, ActionRead}:   roles(everyone...),

		{ResourceAcademicYear, ActionCreate}: roles(staff...),
		{ResourceAcademicYear, ActionList}:   roles(everyone...),
		{ResourceAcademicYear, ActionRead}:   roles(everyone...),
		{ResourceAcademicYear, ActionUpdate}: roles(staff...),
		{ResourceAcademicYear, ActionDelete}: roles(staff...),

		{ResourceNotification, ActionList}:   roles(everyone...),
		{ResourceNotification, ActionUpdate}: roles(everyone...),

		{ResourceActivityLog, ActionList}: roles(staff...),
		{ResourceActivityLog, ActionRead}: roles(staff...),

		{ResourceUser, ActionCreate}: roles(models.RoleAdmin),
		{ResourceUser, ActionList}:   roles(staff...),
		{ResourceUser, ActionRead}:   roles(staff...),
		{ResourceUser, ActionUpdate}: roles(models.RoleAdmin),
	}
)

// Allowed reports whether role may perform action on resource. super_admin may do anything.
func Allowed(role models.Role, resource Resource, action Action) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	return policyRows[rule{resource, action}][role]
}

// Authorize returns a forbidden error when Allowed is false
func Authorize(role models.Role, resource Resource, action Action) error {
	if Allowed(role, resource, action) {
		return nil
	}
	return apperrors.NewForbiddenError(fmt.Sprintf("Role (%s) is not allowed to access this resource", role))
}

// CanViewStudent narrows student reads for the student and parent roles to their own records
func CanViewStudent(userID int64, role models.Role, student *models.Student) bool {
	switch role {
	case models.RoleStudent:
		return student.UserID == userID
	case models.RoleParent:
		for _, pid := range student.ParentIDs {
			if pid == userID {
				return true
			}
		}
		return false
	}
	return Allowed(role, ResourceStudent, ActionRead)
}
