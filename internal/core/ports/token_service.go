package ports

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	Subject    string
	Privileged bool
	// Role is set on privileged tokens only (admin or super_admin).
	Role string
}

// TokenService issues and verifies signed, time-limited access tokens.
// Tokens are stateless: nothing is persisted and verification is pure.
type TokenService interface {
	// IssueUser mints a non-privileged token for an account id.
	IssueUser(accountID string) (string, error)
	// IssueAdmin mints a privileged token carrying the admin's role.
	IssueAdmin(adminID, role string) (string, error)
	// Verify validates signature and expiry; returns domain.ErrInvalidToken
	// on any failure.
	Verify(token string) (*TokenClaims, error)
}
