package models

// Role is the role attached to a login account
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAdmin        Role = "admin"
	RolePrincipal    Role = "principal"
	RoleTeacher      Role = "teacher"
	RoleStudent      Role = "student"
	RoleParent       Role = "parent"
	RoleAccountant   Role = "accountant"
	RoleLibrarian    Role = "librarian"
	RoleReceptionist Role = "receptionist"
)

// AllRoles lists every role in a stable order
var AllRoles = []Role{
	RoleSuperAdmin, RoleAdmin, RolePrincipal, RoleTeacher, RoleStudent,
	RoleParent, RoleAccountant, RoleLibrarian, RoleReceptionist,
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// StudentStatus tracks where a student is in the lifecycle
type StudentStatus string

const (
	StudentStatusActive      StudentStatus = "active"
	StudentStatusInactive    StudentStatus = "inactive"
	StudentStatusGraduated   StudentStatus = "graduated"
	StudentStatusTransferred StudentStatus = "transferred"
)

// Valid reports whether s is a known status
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusInactive, StudentStatusGraduated, StudentStatusTransferred:
		return true
	}
	return false
}

// Gender of a student
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// NotificationType controls how a client renders a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)
