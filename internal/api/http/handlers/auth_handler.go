package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
	"github.com/spec-kit/auth-service/pkg/response"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing JSON in request", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("Missing username or password", nil)
	}

	pair, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(response.Wrap(http.StatusOK, fiber.Map{
		"data": dto.LoginResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			UserID:       pair.UserID,
		},
	}))
}

// Refresh handles POST /auth/refresh. The refresh-token guard has already
// verified the caller; a new access token is minted for the same identity.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing token claims")
	}

	accessToken, err := h.auth.Refresh(c.UserContext(), claims.Identity())
	if err != nil {
		return err
	}

	return c.JSON(response.Wrap(http.StatusOK, dto.RefreshResponse{AccessToken: accessToken}))
}

// RevokeAccess handles DELETE /auth/revoke_access.
func (h *AuthHandler) RevokeAccess(c *fiber.Ctx) error {
	return h.revoke(c)
}

// RevokeRefresh handles DELETE /auth/revoke_refresh, used mainly for logout.
func (h *AuthHandler) RevokeRefresh(c *fiber.Ctx) error {
	return h.revoke(c)
}

func (h *AuthHandler) revoke(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing token claims")
	}

	if err := h.auth.Revoke(c.UserContext(), claims); err != nil {
		return err
	}

	return c.JSON(response.Wrap(http.StatusOK, response.Msg("token revoked")))
}

// ChangePassword handles PUT /auth/change_password. The body must contain
// exactly user_id, current_password, new_password and confirm_password.
//
// NOTE: the bearer identity is not required to match user_id in the body;
// see AuthService.ChangePassword.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	fields, err := decodeExactFields(c.Body(), []string{
		"user_id", "current_password", "new_password", "confirm_password",
	})
	if err != nil {
		return err
	}

	userID, err := intField(fields, "user_id")
	if err != nil {
		return err
	}
	currentPassword, err := stringField(fields, "current_password")
	if err != nil {
		return err
	}
	newPassword, err := stringField(fields, "new_password")
	if err != nil {
		return err
	}
	confirmPassword, err := stringField(fields, "confirm_password")
	if err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.UserContext(), userID, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	return c.JSON(response.Wrap(http.StatusOK, response.Msg("password changed successfully")))
}

// ResetPassword handles PUT /auth/reset_password. The body must contain
// exactly username and password; the acting user comes from the bearer token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing token claims")
	}

	fields, err := decodeExactFields(c.Body(), []string{"username", "password"})
	if err != nil {
		return err
	}

	username, err := stringField(fields, "username")
	if err != nil {
		return err
	}
	password, err := stringField(fields, "password")
	if err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.UserContext(), claims.Username, username, password); err != nil {
		return err
	}

	return c.JSON(response.Wrap(http.StatusOK, response.Msg("password reset successfully")))
}
