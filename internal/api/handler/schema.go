package handler

import (
	"time"

	"github.com/gamehall/account-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// --- Request types ---

type signupRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type approveRequest struct {
	InitialBalance *float64 `json:"initial_balance,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type balanceRequest struct {
	Amount *float64 `json:"amount"`
}

// --- Response types ---

type signupResponse struct {
	Account *domain.Account `json:"account"`
	Message string          `json:"message"`
}

type loginResponse struct {
	Token      string          `json:"token"`
	Account    *domain.Account `json:"account"`
	WebviewURL string          `json:"webview_url,omitempty"`
	Demo       bool            `json:"demo,omitempty"`
}

type statusResponse struct {
	Status    domain.AccountStatus `json:"status"`
	IsActive  bool                 `json:"is_active"`
	Username  string               `json:"username"`
	CreatedAt time.Time            `json:"created_at"`
}

type adminLoginResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

type listUsersResponse struct {
	Items      []*domain.Account `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type statsResponse struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Active        int64 `json:"active"`
	RecentSignups int64 `json:"registered_last_7_days"`
}

type accountResponse struct {
	Account *domain.Account `json:"account"`
}

type ackResponse struct {
	Message string `json:"message"`
}
