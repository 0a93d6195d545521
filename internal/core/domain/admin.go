package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin models a privileged operator. Admins live in their own namespace and
// never appear in account lookups; they act on accounts but own none.
type Admin struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Phone        string     `json:"phone" bson:"phone"`
	Email        string     `json:"email,omitempty" bson:"email,omitempty"`
	Username     string     `json:"username" bson:"username"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         string     `json:"role" bson:"role"`
	IsActive     bool       `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}
