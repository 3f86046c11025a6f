package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coworkspace-service/internal/domain"
	apperrors "github.com/spec-kit/coworkspace-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, derived entirely from the
// verified access token. Claims of a token that passed verification are
// trusted for the remainder of the request; no member lookup occurs here.
type Principal struct {
	UserID string
	Email  string
	Scopes []string
}

// IsAdmin reports whether the caller holds the admin scope.
func (p *Principal) IsAdmin() bool {
	for _, scope := range p.Scopes {
		if scope == domain.ScopeAdmin {
			return true
		}
	}
	return false
}

// AuthMiddleware validates bearer tokens and stores the principal.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Any failure here
// happens before policy checks and surfaces as a plain 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(parts[1], domain.TokenKindAccess)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Scopes: claims.Scopes,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
