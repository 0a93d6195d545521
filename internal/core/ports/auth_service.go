package ports

import (
	"context"
	"time"

	"github.com/gamehall/account-system/internal/core/domain"
)

// SignupInput carries registration data from the transport layer.
type SignupInput struct {
	Phone    string
	Email    string // optional
	Password string
	Username string // optional, defaults to phone
}

// LoginResult is the bundle returned on a successful user login.
type LoginResult struct {
	Token      string
	Account    *domain.Account
	WebviewURL string
	// Demo marks a synthetic guide-mode session backed by no stored account.
	Demo bool
}

// AccountStatusResult is the unauthenticated status-check view.
type AccountStatusResult struct {
	Status    domain.AccountStatus
	IsActive  bool
	Username  string
	CreatedAt time.Time
}

// AuthService defines the user-facing authentication use cases.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.Account, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	CheckStatus(ctx context.Context, identifier string) (*AccountStatusResult, error)
}
