package ports

import (
	"context"

	"github.com/gamehall/account-system/internal/core/domain"
)

// AdminLoginResult is returned on a successful admin login.
type AdminLoginResult struct {
	Token string
	Admin *domain.Admin
}

// ListUsersResult is a page of accounts plus paging metadata.
type ListUsersResult struct {
	Items      []*domain.Account
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminActor identifies the verified admin performing a mutation, as carried
// by a privileged token.
type AdminActor struct {
	ID   string
	Role string
}

// AdminService defines the privileged account-management use cases. Every
// mutation takes the acting admin so the audit trail and role checks have a
// subject.
type AdminService interface {
	Login(ctx context.Context, identifier, password string) (*AdminLoginResult, error)
	ListUsers(ctx context.Context, filter ListAccountsFilter) (*ListUsersResult, error)
	GetUser(ctx context.Context, accountID string) (*domain.Account, error)
	Stats(ctx context.Context) (*AccountStats, error)
	Approve(ctx context.Context, actor AdminActor, accountID string, initialBalance *float64) (*domain.Account, error)
	Reject(ctx context.Context, actor AdminActor, accountID, reason string) (*domain.Account, error)
	ToggleActive(ctx context.Context, actor AdminActor, accountID string) (*domain.Account, error)
	SetBalance(ctx context.Context, actor AdminActor, accountID string, amount *float64) (*domain.Account, error)
	Delete(ctx context.Context, actor AdminActor, accountID string) error
}

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the caller beyond queue admission.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// StatsCache is a short-lived cache in front of the stats aggregation.
type StatsCache interface {
	Get(ctx context.Context) (*AccountStats, bool)
	Set(ctx context.Context, stats *AccountStats)
}
