package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/ports"
)

const (
	defaultUserTokenTTL  = 30 * 24 * time.Hour
	defaultAdminTokenTTL = 7 * 24 * time.Hour
)

// TokenService issues and verifies HS256-signed access tokens. The signing
// key is loaded once at startup; rotating it invalidates every outstanding
// token, which is acceptable since no revocation list is kept.
type TokenService struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
}

func NewTokenService(secret string, userTTL, adminTTL time.Duration) *TokenService {
	if userTTL <= 0 {
		userTTL = defaultUserTokenTTL
	}
	if adminTTL <= 0 {
		adminTTL = defaultAdminTokenTTL
	}
	return &TokenService{secret: []byte(secret), userTTL: userTTL, adminTTL: adminTTL}
}

type tokenClaims struct {
	Privileged bool   `json:"privileged,omitempty"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IssueUser mints a non-privileged token for an account id.
func (s *TokenService) IssueUser(accountID string) (string, error) {
	return s.sign(accountID, false, "", s.userTTL)
}

// IssueAdmin mints a privileged token carrying the admin's role.
func (s *TokenService) IssueAdmin(adminID, role string) (string, error) {
	return s.sign(adminID, true, role, s.adminTTL)
}

func (s *TokenService) sign(subject string, privileged bool, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Privileged: privileged,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify validates signature and expiry. Any failure collapses into
// domain.ErrInvalidToken so the transport layer has a single 401 path.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.TokenClaims{
		Subject:    claims.Subject,
		Privileged: claims.Privileged,
		Role:       claims.Role,
	}, nil
}
