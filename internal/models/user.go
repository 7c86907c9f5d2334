package models

import "time"

// Role represents the available roles for the RBAC system.
type Role string

const (
	RoleAdopter      Role = "adopter"
	RoleRescuer      Role = "rescuer"
	RoleVeterinarian Role = "veterinarian"
	RoleShelterStaff Role = "shelter_staff"
	RoleAdmin        Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdopter, RoleRescuer, RoleVeterinarian, RoleShelterStaff, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Name           string    `db:"name" json:"name"`
	Role           Role      `db:"role" json:"role"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	ProfilePicture *string   `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role     *Role
	Search   string
	Page     int
	PageSize int
}

// Normalize clamps paging values to sane defaults.
func (f *UserFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// NewPagination builds pagination metadata for a list response.
func NewPagination(page, pageSize, total int) *Pagination {
	return &Pagination{Page: page, PageSize: pageSize, TotalCount: total}
}
