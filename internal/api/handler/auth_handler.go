package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gamehall/account-system/internal/core/ports"
)

// AuthHandler handles the public signup, login and status-check endpoints.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup registers a new account in the pending state.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Account: account,
		Message: "registration received, awaiting approval",
	})
}

// Login authenticates an identifier/password pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:      result.Token,
		Account:    result.Account,
		WebviewURL: result.WebviewURL,
		Demo:       result.Demo,
	})
}

// CheckStatus returns the lifecycle state for an identifier.
//
// @Summary      Check account status
// @Tags         auth
// @Produce      json
// @Param        identifier  path      string  true  "Phone or email"
// @Success      200         {object}  statusResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/auth/check-status/{identifier} [get]
func (h *AuthHandler) CheckStatus(c echo.Context) error {
	identifier := c.Param("identifier")
	if identifier == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identifier is required")
	}

	result, err := h.service.CheckStatus(c.Request().Context(), identifier)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Status:    result.Status,
		IsActive:  result.IsActive,
		Username:  result.Username,
		CreatedAt: result.CreatedAt,
	})
}
