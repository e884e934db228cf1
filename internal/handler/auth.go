package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aicode/auth-platform/internal/model"
	"github.com/aicode/auth-platform/internal/queue"
	"github.com/aicode/auth-platform/internal/service"
	"github.com/aicode/auth-platform/internal/validator"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Users *service.UserService
	Auth  *service.AuthService
}

func NewAuthHandler(users *service.UserService, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Users: users, Auth: auth}
}

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type userPart struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// apiResp is the response envelope shared by all auth endpoints.
type apiResp struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}

// sanitizeUser strips the password hash from an outward-facing user.
func sanitizeUser(u *model.User) userPart {
	return userPart{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func fail(c echo.Context, status int, message string, errs ...validator.FieldError) error {
	return c.JSON(status, apiResp{Success: false, Message: message, Errors: errs})
}

// Register: create user and return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req validator.RegistrationInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	result, err := h.Users.Register(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return fail(c, http.StatusBadRequest, "Validation failed", verr.Fields...)
		case errors.Is(err, service.ErrDuplicateEmail):
			return fail(c, http.StatusConflict, "User with this email already exists",
				validator.FieldError{Field: "email", Message: "Email is already registered"})
		default:
			return fail(c, http.StatusInternalServerError, "Internal server error occurred during registration")
		}
	}

	queue.PublishAuthEvent(c.Request().Context(), queue.AuthEvent{
		Type:       queue.EventUserRegistered,
		UserID:     result.User.ID,
		Email:      result.User.Email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, apiResp{
		Success: true,
		Message: "User registered successfully",
		Data: map[string]interface{}{
			"user":         sanitizeUser(result.User),
			"accessToken":  result.Tokens.AccessToken,
			"refreshToken": result.Tokens.RefreshToken,
		},
	})
}

// Login: verify credentials and return a fresh pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	var missing []validator.FieldError
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, validator.FieldError{Field: "email", Message: "Email is required"})
	}
	if req.Password == "" {
		missing = append(missing, validator.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(missing) > 0 {
		return fail(c, http.StatusBadRequest, "Email and password are required", missing...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	result, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return fail(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, service.ErrAccountDeactivated):
			return fail(c, http.StatusForbidden, "Account is deactivated. Please contact support.")
		default:
			return fail(c, http.StatusInternalServerError, "Internal server error occurred during login")
		}
	}

	queue.PublishAuthEvent(c.Request().Context(), queue.AuthEvent{
		Type:       queue.EventUserLoggedIn,
		UserID:     result.User.ID,
		Email:      result.User.Email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, apiResp{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"user":         sanitizeUser(result.User),
			"accessToken":  result.Tokens.AccessToken,
			"refreshToken": result.Tokens.RefreshToken,
		},
	})
}

// Refresh: rotate the refresh token and return a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "Refresh token is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	pair, err := h.Auth.Refresh(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken), errors.Is(err, service.ErrRefreshTokenExpired):
			return fail(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			return fail(c, http.StatusInternalServerError, "Internal server error occurred during token refresh")
		}
	}

	return c.JSON(http.StatusOK, apiResp{
		Success: true,
		Message: "Token refreshed successfully",
		Data: map[string]interface{}{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

// Logout: revoke a single refresh token. Revoking an unknown or
// already-revoked token is reported to the client but never treated as
// a server error.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "Refresh token is required for logout")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	revoked, err := h.Auth.Logout(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error occurred during logout")
	}
	if !revoked {
		return fail(c, http.StatusUnauthorized, "Failed to logout. Invalid refresh token.")
	}

	return c.JSON(http.StatusOK, apiResp{Success: true, Message: "Logged out successfully"})
}

// LogoutAll: revoke every refresh token of the authenticated user.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Auth.LogoutAll(ctx, userID); err != nil {
		return fail(c, http.StatusInternalServerError, "Internal server error occurred during logout")
	}

	email, _ := c.Get("email").(string)
	queue.PublishAuthEvent(c.Request().Context(), queue.AuthEvent{
		Type:       queue.EventTokensRevoked,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, apiResp{Success: true, Message: "Logged out from all devices successfully"})
}

// Me: return the authenticated user's record, re-confirmed against the
// store so a deleted account cannot keep using a live access token.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Auth.ValidateUser(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to load user")
	}
	if user == nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, apiResp{
		Success: true,
		Message: "OK",
		Data:    map[string]interface{}{"user": sanitizeUser(user)},
	})
}

// Sessions: report the caller's live session count plus table-wide
// token metrics.
func (h *AuthHandler) Sessions(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	count, err := h.Auth.ActiveSessions(ctx, userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to count sessions")
	}
	metrics, err := h.Auth.TokenMetrics(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "failed to load token metrics")
	}
	return c.JSON(http.StatusOK, apiResp{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"activeSessions": count,
			"metrics":        metrics,
		},
	})
}
