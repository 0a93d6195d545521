package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamehall/account-system/internal/api/metrics"
	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

const minPasswordLength = 6

// DemoAccount configures the guide-mode bypass: a fixed credential pair that
// authenticates without touching the store. Leaving either field empty
// disables the bypass.
type DemoAccount struct {
	Identifier string
	Password   string
}

// Enabled reports whether the bypass is configured.
func (d DemoAccount) Enabled() bool {
	return d.Identifier != "" && d.Password != ""
}

// AuthService implements the user-facing signup, login and status-check
// use cases.
type AuthService struct {
	accounts ports.AccountRepository
	tokens   ports.TokenService
	settings *SettingsResolver
	demo     DemoAccount
	logger   zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, tokens ports.TokenService, settings *SettingsResolver, demo DemoAccount, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		settings: settings,
		demo:     demo,
		logger:   logger,
	}
}

// Signup registers a new account in the pending state. The password is
// stored only as a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.Account, error) {
	if input.Phone == "" {
		return nil, domain.NewValidationError("phone", "is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 6 characters")
	}

	username := input.Username
	if username == "" {
		username = input.Phone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Phone:        input.Phone,
		Email:        domain.NormalizeEmail(input.Email),
		Username:     username,
		PasswordHash: string(hash),
		Status:       domain.StatusPending,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	s.logger.Info().Str("account_id", created.ID).Str("phone", created.Phone).Msg("account registered")
	return created, nil
}

// Login authenticates an identifier/password pair and returns a token bundle.
//
// The demo bypass is evaluated before any store lookup. Unknown identifier
// and wrong password share a single error path so the two responses stay
// byte-identical; a store failure is not a credential verdict and
// propagates unchanged.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	if s.demo.Enabled() && identifier == s.demo.Identifier && password == s.demo.Password {
		return s.demoLogin(ctx)
	}

	account, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if err := account.CanLogin(); err != nil {
		metrics.LoginsTotal.WithLabelValues(gateOutcome(err)).Inc()
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accounts.RecordLogin(ctx, account.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("account_id", account.ID).Msg("failed to record last login")
	} else {
		account.LastLogin = &now
	}

	token, err := s.tokens.IssueUser(account.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("account_id", account.ID).Msg("user logged in")

	return &ports.LoginResult{
		Token:      token,
		Account:    account,
		WebviewURL: s.settings.Resolve(ctx, WebviewURLKey),
	}, nil
}

// demoLogin returns a synthetic approved account that is never persisted.
func (s *AuthService) demoLogin(ctx context.Context) (*ports.LoginResult, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:        "demo",
		Phone:     s.demo.Identifier,
		Username:  "demo",
		Status:    domain.StatusApproved,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	token, err := s.tokens.IssueUser(account.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("demo").Inc()
	s.logger.Info().Msg("demo login")

	return &ports.LoginResult{
		Token:      token,
		Account:    account,
		WebviewURL: s.settings.Resolve(ctx, WebviewURLKey),
		Demo:       true,
	}, nil
}

// CheckStatus returns the lifecycle state for an identifier without
// authentication.
func (s *AuthService) CheckStatus(ctx context.Context, identifier string) (*ports.AccountStatusResult, error) {
	account, err := s.accounts.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return &ports.AccountStatusResult{
		Status:    account.Status,
		IsActive:  account.IsActive,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}, nil
}

func gateOutcome(err error) string {
	switch err {
	case domain.ErrPendingApproval:
		return "pending"
	case domain.ErrRejected:
		return "rejected"
	case domain.ErrDeactivated:
		return "deactivated"
	}
	return "error"
}
