package ports

import (
	"context"
	"time"

	"github.com/gamehall/account-system/internal/core/domain"
)

// ListAccountsFilter carries the query parameters for listing accounts.
type ListAccountsFilter struct {
	Status string // optional: filter by account status
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// AccountStats aggregates account counts for the admin dashboard.
type AccountStats struct {
	Total         int64
	Pending       int64
	Approved      int64
	Rejected      int64
	Active        int64
	RecentSignups int64 // registered at or after the `since` cutoff
}

// AccountRepository defines persistence operations for user accounts.
// Every mutation is a single-document update: a concurrent reader never
// observes a partially written account.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByIdentifier matches email (lowercased) when the identifier
	// contains '@', otherwise phone, exact.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error)
	// List returns a page of accounts, newest first, and the total count.
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)
	Stats(ctx context.Context, since time.Time) (*AccountStats, error)

	// UpdateStatus sets the status (and clears or stores the reject reason);
	// approvals also force is_active true and may seed a balance.
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, reason string, balance *float64) (*domain.Account, error)
	ToggleActive(ctx context.Context, id string) (*domain.Account, error)
	SetBalance(ctx context.Context, id string, amount float64) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}
