package ports

import (
	"context"
	"time"

	"github.com/gamehall/account-system/internal/core/domain"
)

// AdminRepository defines persistence operations for admin principals.
// Admins live in a separate collection from accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Admin, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
	// HasAny reports whether at least one admin exists (startup seeding check).
	HasAny(ctx context.Context) (bool, error)
}
