package domain

import (
	"strings"
	"time"
)

// AccountStatus represents the approval state of a user account.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
)

// Valid reports whether s is one of the known account statuses.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Account is the core aggregate: a registered end user awaiting or holding
// approval. Admins may move an account between any statuses; IsActive is an
// orthogonal suspend switch on top of Status.
type Account struct {
	ID           string        `json:"id" bson:"_id,omitempty"`
	Phone        string        `json:"phone" bson:"phone"`
	Email        string        `json:"email,omitempty" bson:"email,omitempty"`
	Username     string        `json:"username" bson:"username"`
	PasswordHash string        `json:"-" bson:"password_hash"`
	Status       AccountStatus `json:"status" bson:"status"`
	IsActive     bool          `json:"is_active" bson:"is_active"`
	Balance      float64       `json:"balance" bson:"balance"`
	RejectReason string        `json:"reject_reason,omitempty" bson:"reject_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
	LastLogin    *time.Time    `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// CanLogin returns nil when the account may authenticate, or the matching
// gating error otherwise. The order is fixed: status gates before the
// active switch, so a pending-and-suspended account reports pending.
// Unrecognised status values are treated as pending.
func (a *Account) CanLogin() error {
	switch a.Status {
	case StatusApproved:
	case StatusRejected:
		return ErrRejected
	default:
		return ErrPendingApproval
	}
	if !a.IsActive {
		return ErrDeactivated
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailIdentifier reports whether an identifier should be matched against
// the email field rather than the phone field.
func IsEmailIdentifier(identifier string) bool {
	return strings.Contains(identifier, "@")
}
