package dto

import "github.com/yigit/schoolhub/internal/app/models"

// ListUsersQuery binds the account filters from the query string
type ListUsersQuery struct {
	Role     models.Role `form:"role" binding:"omitempty,oneof=super_admin admin principal teacher student parent accountant librarian receptionist"`
	IsActive *bool       `form:"isActive"`
	Search   string      `form:"search"`
}

// UpdateUserStatusRequest suspends or reactivates an account
type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required" example:"false"`
}

// UserListResponse is one page of login accounts
type UserListResponse struct {
	Success    bool          `json:"success" example:"true"`
	Users      []models.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}
