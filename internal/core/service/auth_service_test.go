package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Phone == a.Phone {
			return nil, domain.ErrDuplicateIdentity
		}
		if a.Email != "" && existing.Email == a.Email {
			return nil, domain.ErrDuplicateIdentity
		}
	}
	r.nextID++
	clone := cloneAccount(a)
	clone.ID = fmt.Sprintf("acct_%d", r.nextID)
	r.accounts[clone.ID] = clone
	return cloneAccount(clone), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if domain.IsEmailIdentifier(identifier) {
			if a.Email == domain.NormalizeEmail(identifier) {
				return cloneAccount(a), nil
			}
		} else if a.Phone == identifier {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context, filter ports.ListAccountsFilter) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Account
	for _, a := range r.accounts {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *stubAccountRepo) Stats(_ context.Context, since time.Time) (*ports.AccountStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &ports.AccountStats{}
	for _, a := range r.accounts {
		stats.Total++
		switch a.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusApproved:
			stats.Approved++
		case domain.StatusRejected:
			stats.Rejected++
		}
		if a.IsActive {
			stats.Active++
		}
		if !a.CreatedAt.Before(since) {
			stats.RecentSignups++
		}
	}
	return stats, nil
}

func (r *stubAccountRepo) UpdateStatus(_ context.Context, id string, status domain.AccountStatus, reason string, balance *float64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Status = status
	switch status {
	case domain.StatusApproved:
		a.IsActive = true
		a.RejectReason = ""
		if balance != nil {
			a.Balance = *balance
		}
	case domain.StatusRejected:
		if reason != "" {
			a.RejectReason = reason
		}
	}
	a.UpdatedAt = time.Now().UTC()
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) ToggleActive(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.IsActive = !a.IsActive
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) SetBalance(_ context.Context, id string, amount float64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Balance = amount
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) RecordLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.LastLogin = &at
	return nil
}

func (r *stubAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// outageAccountRepo simulates an unreachable store on lookups.
type outageAccountRepo struct {
	*stubAccountRepo
	findErr error
}

func (r *outageAccountRepo) FindByIdentifier(_ context.Context, _ string) (*domain.Account, error) {
	return nil, r.findErr
}

type stubSettingsRepo struct {
	values map[string]string
}

func (r *stubSettingsRepo) Get(_ context.Context, key string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return "", domain.ErrSettingNotFound
}

func newTestAuthService(repo *stubAccountRepo, demo DemoAccount) *AuthService {
	tokens := NewTokenService("secret", time.Hour, time.Hour)
	settings := NewSettingsResolver(zerolog.Nop(),
		NewStoreSource(&stubSettingsRepo{values: map[string]string{WebviewURLKey: "https://example.com/webview"}}),
		NewDefaultWebviewSource("8080"),
	)
	return NewAuthService(repo, tokens, settings, demo, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, DemoAccount{})

	account, err := svc.Signup(context.Background(), ports.SignupInput{
		Phone:    "555",
		Email:    "Alice@Example.COM",
		Password: "abcdef",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if account.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", account.Status)
	}
	if !account.IsActive {
		t.Fatalf("new account must be active")
	}
	if account.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %s", account.Email)
	}
	if account.Username != "555" {
		t.Fatalf("username should default to phone, got %s", account.Username)
	}
	if account.PasswordHash == "abcdef" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("abcdef")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), DemoAccount{})

	_, err := svc.Signup(context.Background(), ports.SignupInput{Password: "abcdef"})
	ve, ok := err.(*domain.ValidationError)
	if !ok || ve.Field != "phone" {
		t.Fatalf("expected phone validation error, got %v", err)
	}

	_, err = svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abc"})
	ve, ok = err.(*domain.ValidationError)
	if !ok || ve.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), DemoAccount{})

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abcdef"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "zzzzzz"}); err != domain.ErrDuplicateIdentity {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestAuthService_Login_GatingMatrix(t *testing.T) {
	cases := []struct {
		name    string
		status  domain.AccountStatus
		active  bool
		wantErr error
	}{
		{"pending", domain.StatusPending, true, domain.ErrPendingApproval},
		{"rejected", domain.StatusRejected, true, domain.ErrRejected},
		{"approved_inactive", domain.StatusApproved, false, domain.ErrDeactivated},
		{"approved_active", domain.StatusApproved, true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubAccountRepo()
			svc := newTestAuthService(repo, DemoAccount{})

			account, err := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abcdef"})
			if err != nil {
				t.Fatalf("signup failed: %v", err)
			}
			repo.mu.Lock()
			repo.accounts[account.ID].Status = tc.status
			repo.accounts[account.ID].IsActive = tc.active
			repo.mu.Unlock()

			result, err := svc.Login(context.Background(), "555", "abcdef")
			if err != tc.wantErr {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				if result.Token == "" {
					t.Fatalf("expected token")
				}
				if result.Account.LastLogin == nil {
					t.Fatalf("expected last login recorded")
				}
			}
		})
	}
}

func TestAuthService_Login_UniformInvalidCredentials(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, DemoAccount{})

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abcdef"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "does-not-exist", "abcdef")
	_, errWrongPass := svc.Login(context.Background(), "555", "wrongpass")

	if errUnknown != domain.ErrInvalidCredentials {
		t.Fatalf("unknown identifier: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errWrongPass != errUnknown {
		t.Fatalf("the two failure modes must be indistinguishable: %v vs %v", errUnknown, errWrongPass)
	}
}

func TestAuthService_Login_StoreFailurePropagates(t *testing.T) {
	outage := errors.New("server selection error")
	repo := &outageAccountRepo{stubAccountRepo: newStubAccountRepo(), findErr: outage}
	tokens := NewTokenService("secret", time.Hour, time.Hour)
	settings := NewSettingsResolver(zerolog.Nop(), NewDefaultWebviewSource("8080"))
	svc := NewAuthService(repo, tokens, settings, DemoAccount{}, zerolog.Nop())

	_, err := svc.Login(context.Background(), "555", "abcdef")
	if !errors.Is(err, outage) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("a store outage must not read as a credential failure")
	}
}

func TestAuthService_Login_WebviewURL(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, DemoAccount{})

	account, _ := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abcdef"})
	repo.mu.Lock()
	repo.accounts[account.ID].Status = domain.StatusApproved
	repo.mu.Unlock()

	result, err := svc.Login(context.Background(), "555", "abcdef")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.WebviewURL != "https://example.com/webview" {
		t.Fatalf("unexpected webview url: %s", result.WebviewURL)
	}
}

func TestAuthService_Login_DemoBypass(t *testing.T) {
	repo := newStubAccountRepo()
	demo := DemoAccount{Identifier: "0000000000", Password: "demo123"}
	svc := newTestAuthService(repo, demo)

	result, err := svc.Login(context.Background(), "0000000000", "demo123")
	if err != nil {
		t.Fatalf("demo login failed: %v", err)
	}
	if !result.Demo {
		t.Fatalf("expected demo flag")
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if repo.count() != 0 {
		t.Fatalf("demo login must not persist an account")
	}
}

func TestAuthService_Login_DemoDisabled(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), DemoAccount{})

	if _, err := svc.Login(context.Background(), "0000000000", "demo123"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials with bypass disabled, got %v", err)
	}
}

func TestAuthService_CheckStatus(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, DemoAccount{})

	if _, err := svc.CheckStatus(context.Background(), "555"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Phone: "555", Password: "abcdef"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := svc.CheckStatus(context.Background(), "555")
	if err != nil {
		t.Fatalf("CheckStatus returned error: %v", err)
	}
	if result.Status != domain.StatusPending || !result.IsActive {
		t.Fatalf("unexpected status result: %+v", result)
	}
}
