package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
}

// ResetAuthorizer decides whether the acting user may reset another user's
// password. The default implementation allows everyone; a real policy can be
// plugged in without touching the flows.
type ResetAuthorizer interface {
	Authorize(ctx context.Context, actingUsername string) (bool, error)
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) Authorize(context.Context, string) (bool, error) {
	return true, nil
}

// NewAllowAllAuthorizer returns the default always-allow reset policy.
func NewAllowAllAuthorizer() ResetAuthorizer {
	return allowAllAuthorizer{}
}

// AuthService coordinates login, token refresh, revocation and password flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	resetAuth  ResetAuthorizer
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	Denylist        auth.Denylist
	Dispatcher      events.Dispatcher
	ResetAuthorizer ResetAuthorizer
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	resetAuth := deps.ResetAuthorizer
	if resetAuth == nil {
		resetAuth = NewAllowAllAuthorizer()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     auth.NewTokenManager(cfg.Auth, deps.Denylist),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		resetAuth:  resetAuth,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates the user and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("User not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}

	identity := auth.Identity{UserID: user.ID, Username: user.Username}
	s.logger.Info("issuing token pair", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	accessToken, _, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	refreshToken, _, err := s.tokens.IssueRefreshToken(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserLoggedIn, identity, nil)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
	}, nil
}

// Refresh mints a new access token for an identity proven by a refresh token.
func (s *AuthService) Refresh(ctx context.Context, identity auth.Identity) (string, error) {
	accessToken, _, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.recordIssuedToken(accessToken)
	s.publish(ctx, events.EventTokenRefreshed, identity, nil)

	return accessToken, nil
}

// recordIssuedToken is a deliberate no-op. Refreshed access tokens are not
// tracked anywhere; only explicit revocations populate the denylist.
func (s *AuthService) recordIssuedToken(_ string) {}

// Revoke denylists the token carried by the verified claims.
func (s *AuthService) Revoke(ctx context.Context, claims *auth.TokenClaims) error {
	if err := s.tokens.Revoke(ctx, claims.ID, claims.Kind); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventTokenRevoked, claims.Identity(), events.TokenRevokedPayload{
		JTI:  claims.ID,
		Kind: string(claims.Kind),
	})
	return nil
}

// ChangePassword verifies the target user's current password, checks the
// confirmation, and persists the new hash. Nothing is written when the
// confirmation does not match.
//
// NOTE: the caller's token identity is not compared to userID; any
// authenticated caller who knows the current password may rotate it. Kept
// for compatibility with the upstream behavior.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("unauthorized")
		}
		return apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("unauthorized")
	}

	if err := checkPasswordConfirmation(newPassword, confirmPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPasswordChanged, auth.Identity{UserID: user.ID, Username: user.Username}, nil)
	return nil
}

// ResetPassword sets a new password for the target username on behalf of the
// acting user, subject to the pluggable reset policy.
func (s *AuthService) ResetPassword(ctx context.Context, actingUsername, targetUsername, newPassword string) error {
	allowed, err := s.resetAuth.Authorize(ctx, actingUsername)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !allowed {
		return apperrors.NewUnauthorized("unauthorized")
	}

	user, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user is not present")
		}
		return apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPasswordReset,
		auth.Identity{Username: actingUsername},
		events.PasswordResetPayload{TargetUsername: targetUsername})
	return nil
}

// checkPasswordConfirmation compares lengths before contents so a truncated
// confirmation is rejected with the same message as any other mismatch.
func checkPasswordConfirmation(newPassword, confirmPassword string) error {
	if len(newPassword) != len(confirmPassword) {
		return apperrors.NewValidationError("password does not match", nil)
	}
	if newPassword != confirmPassword {
		return apperrors.NewValidationError("password does not match", nil)
	}
	return nil
}

// TokenManager exposes the underlying token manager for guard wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, identity auth.Identity, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    identity.UserID,
		Username:  identity.Username,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
