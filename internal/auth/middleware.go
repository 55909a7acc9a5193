package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

const claimsKey = "auth_claims"

// Guard validates bearer tokens ahead of protected handlers.
type Guard struct {
	tokens *TokenManager
}

// NewGuard constructs the guard middleware.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// RequireAccess admits only valid, unexpired, unrevoked access tokens.
func (g *Guard) RequireAccess() fiber.Handler {
	return g.require(TokenKindAccess)
}

// RequireRefresh admits only valid, unexpired, unrevoked refresh tokens.
func (g *Guard) RequireRefresh() fiber.Handler {
	return g.require(TokenKindRefresh)
}

func (g *Guard) require(kind TokenKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.NewUnauthorized("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("invalid authorization header")
		}

		claims, err := g.tokens.Verify(parts[1], kind)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				return apperrors.NewUnauthorized("token expired")
			case errors.Is(err, ErrWrongTokenKind):
				return apperrors.NewUnauthorized("wrong token kind")
			default:
				return apperrors.NewUnauthorized("invalid token")
			}
		}

		if g.tokens.IsRevoked(c.UserContext(), claims.ID) {
			return apperrors.NewUnauthorized("token revoked")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*TokenClaims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*TokenClaims)
	return claims, ok
}
