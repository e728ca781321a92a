package models

import "time"

// UserRole is one of the fixed roles a user can hold.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleTeacher  UserRole = "teacher"
	RoleParent   UserRole = "parent"
	RoleClassRep UserRole = "class_rep"
)

// Roles lists every valid role.
var Roles = []UserRole{RoleAdmin, RoleTeacher, RoleParent, RoleClassRep}

// User represents an account stored in the users table.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CreateUserRequest is the payload of POST /users/.
type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,max=150"`
	FirstName string   `json:"first_name" validate:"max=100"`
	LastName  string   `json:"last_name" validate:"max=100"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Role      UserRole `json:"role" validate:"required,role"`
}
