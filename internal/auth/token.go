package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/auth-service/internal/config"
)

// TokenKind separates short-lived access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Verification failures surfaced to callers.
var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrWrongTokenKind   = errors.New("wrong token kind")
)

// Identity is the subject embedded in every issued token.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
}

// TokenClaims describes the JWT payload.
type TokenClaims struct {
	UserID   int64     `json:"id"`
	Username string    `json:"username"`
	Kind     TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// Identity returns the subject carried by the claims.
func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username}
}

// Denylist records revoked token identifiers with per-key expiry.
type Denylist interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// TokenManager issues and validates JWT token pairs and decides revocation
// status against the denylist.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	prefix     string
	denylist   Denylist
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig, denylist Denylist) *TokenManager {
	accessTTL := cfg.AccessTokenTTL()
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL()
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		prefix:     cfg.RevokedTokenPrefix,
		denylist:   denylist,
	}
}

// IssueAccessToken signs a short-lived token for the identity.
func (tm *TokenManager) IssueAccessToken(identity Identity) (string, time.Time, error) {
	return tm.issue(identity, TokenKindAccess, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived token for the identity.
func (tm *TokenManager) IssueRefreshToken(identity Identity) (string, time.Time, error) {
	return tm.issue(identity, TokenKindRefresh, tm.refreshTTL)
}

func (tm *TokenManager) issue(identity Identity, kind TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &TokenClaims{
		UserID:   identity.UserID,
		Username: identity.Username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and checks the token carries the
// expected kind. Revocation is checked separately via IsRevoked.
func (tm *TokenManager) Verify(tokenStr string, kind TokenKind) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

// IsRevoked reports whether the jti has been denylisted. A store failure is
// treated as revoked: a token of unknown revocation status is rejected.
func (tm *TokenManager) IsRevoked(ctx context.Context, jti string) bool {
	exists, err := tm.denylist.Exists(ctx, tm.denylistKey(jti))
	if err != nil {
		return true
	}
	return exists
}

// Revoke denylists the jti for the full configured lifetime of its kind.
// The entry expires on its own once the token could no longer be valid.
// Writes are blind and idempotent; revoking twice is not an error.
func (tm *TokenManager) Revoke(ctx context.Context, jti string, kind TokenKind) error {
	ttl := tm.accessTTL
	if kind == TokenKindRefresh {
		ttl = tm.refreshTTL
	}
	return tm.denylist.Set(ctx, tm.denylistKey(jti), "1", ttl)
}

func (tm *TokenManager) denylistKey(jti string) string {
	return tm.prefix + ":" + jti
}
