package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamehall/account-system/internal/api/metrics"
	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	recentSignupWindow = 7 * 24 * time.Hour
)

// AdminService implements the privileged account-management use cases.
// The audit recorder and stats cache are optional; a nil value disables the
// corresponding side channel.
type AdminService struct {
	accounts ports.AccountRepository
	admins   ports.AdminRepository
	tokens   ports.TokenService
	audit    ports.AuditRecorder
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewAdminService(accounts ports.AccountRepository, admins ports.AdminRepository, tokens ports.TokenService, audit ports.AuditRecorder, cache ports.StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{
		accounts: accounts,
		admins:   admins,
		tokens:   tokens,
		audit:    audit,
		cache:    cache,
		logger:   logger,
	}
}

// Login authenticates an admin. Unlike user login there is no demo bypass
// and no approval workflow; only the active switch gates access.
func (s *AdminService) Login(ctx context.Context, identifier, password string) (*ports.AdminLoginResult, error) {
	admin, err := s.admins.FindByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, err
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, domain.ErrDeactivated
	}

	if err := s.admins.RecordLogin(ctx, admin.ID, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to record admin login")
	}

	token, err := s.tokens.IssueAdmin(admin.ID, admin.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("admin_id", admin.ID).Str("role", admin.Role).Msg("admin logged in")
	return &ports.AdminLoginResult{Token: token, Admin: admin}, nil
}

// ListUsers returns a page of accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context, filter ports.ListAccountsFilter) (*ports.ListUsersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetUser returns a single account by id.
func (s *AdminService) GetUser(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, accountID)
}

// Stats aggregates account counts, serving from the short-lived cache when
// one is configured.
func (s *AdminService) Stats(ctx context.Context) (*ports.AccountStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}

	since := time.Now().UTC().Add(-recentSignupWindow)
	stats, err := s.accounts.Stats(ctx, since)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// Approve moves an account to approved and re-enables it. Any prior status
// is a legal starting point.
func (s *AdminService) Approve(ctx context.Context, actor ports.AdminActor, accountID string, initialBalance *float64) (*domain.Account, error) {
	account, err := s.accounts.UpdateStatus(ctx, accountID, domain.StatusApproved, "", initialBalance)
	if err != nil {
		return nil, err
	}
	s.recordMutation(actor, accountID, "approve", "")
	return account, nil
}

// Reject moves an account to rejected, optionally storing a reason. The
// reason is cosmetic: it gates nothing.
func (s *AdminService) Reject(ctx context.Context, actor ports.AdminActor, accountID, reason string) (*domain.Account, error) {
	account, err := s.accounts.UpdateStatus(ctx, accountID, domain.StatusRejected, reason, nil)
	if err != nil {
		return nil, err
	}
	s.recordMutation(actor, accountID, "reject", reason)
	return account, nil
}

// ToggleActive flips the suspend switch without touching the status.
func (s *AdminService) ToggleActive(ctx context.Context, actor ports.AdminActor, accountID string) (*domain.Account, error) {
	account, err := s.accounts.ToggleActive(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.recordMutation(actor, accountID, "toggle_active", fmt.Sprintf("is_active=%t", account.IsActive))
	return account, nil
}

// SetBalance overwrites the balance unconditionally, last writer wins.
func (s *AdminService) SetBalance(ctx context.Context, actor ports.AdminActor, accountID string, amount *float64) (*domain.Account, error) {
	if amount == nil || math.IsNaN(*amount) {
		return nil, domain.ErrInvalidAmount
	}

	account, err := s.accounts.SetBalance(ctx, accountID, *amount)
	if err != nil {
		return nil, err
	}
	s.recordMutation(actor, accountID, "set_balance", fmt.Sprintf("balance=%v", *amount))
	return account, nil
}

// Delete permanently removes an account. Only super admins may delete;
// removal is terminal.
func (s *AdminService) Delete(ctx context.Context, actor ports.AdminActor, accountID string) error {
	if actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	s.recordMutation(actor, accountID, "delete", "")
	return nil
}

// recordMutation enqueues an audit entry and bumps the mutation counter.
// Auditing is best-effort and never fails the mutation.
func (s *AdminService) recordMutation(actor ports.AdminActor, accountID, action, detail string) {
	metrics.AdminMutationsTotal.WithLabelValues(action).Inc()
	s.logger.Info().
		Str("admin_id", actor.ID).
		Str("account_id", accountID).
		Str("action", action).
		Msg("account mutated")

	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		AccountID: accountID,
		AdminID:   actor.ID,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}
