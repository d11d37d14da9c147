package models

import (
	"time"
)

// User defines the login account stored in the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@school.edu"`
	Password    string     `json:"-" db:"password"`
	Role        Role       `json:"role" db:"role" example:"admin"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	ProfileID   *int64     `json:"profileId,omitempty" db:"profile_id"` // id of the role-specific profile, e.g. a Student
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// RefreshToken is an opaque, revocable refresh token bound to a user
type RefreshToken struct {
	ID         int64     `db:"id"`
	Token      string    `db:"token"`
	UserID     int64     `db:"user_id"`
	ExpiryDate time.Time `db:"expiry_date"`
	IsRevoked  bool      `db:"is_revoked"`
	CreatedAt  time.Time `db:"created_at"`
}

// Expired reports whether the token is past its expiry at t
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiryDate)
}

// UserFilter narrows a user listing
type UserFilter struct {
	Role     Role
	IsActive *bool
	Search   string
}
