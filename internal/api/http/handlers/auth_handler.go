package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coworkspace-service/internal/api/dto"
	"github.com/spec-kit/coworkspace-service/internal/service"
	apperrors "github.com/spec-kit/coworkspace-service/pkg/util"
)

// AuthHandler exposes the token and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /api/auth/token. Parameters arrive as form fields or
// query parameters, OAuth style.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	grantType := formOrQuery(c, "grant_type")
	if grantType == "" {
		return apperrors.NewValidationError("grant_type required", nil)
	}

	pair, err := h.auth.Token(c.Context(),
		grantType,
		formOrQuery(c, "email"),
		formOrQuery(c, "password"),
		formOrQuery(c, "refresh_token"),
	)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(pair))
}

// Register handles POST /api/auth/register. A successful registration logs
// the member in and returns a token pair.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Firstname == "" || req.Lastname == "" || req.Password == "" {
		return apperrors.NewValidationError("email, firstname, lastname, password required", nil)
	}

	_, pair, err := h.auth.Register(c.Context(), req.Email, req.Firstname, req.Lastname, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokenResponse(pair))
}

func tokenResponse(pair *service.TokenPair) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:   pair.AccessToken,
		RefreshToken:  pair.RefreshToken,
		TokenType:     pair.TokenType,
		AccessExpiry:  pair.AccessExpiresAt.Unix(),
		RefreshExpiry: pair.RefreshExpiresAt.Unix(),
	}
}

func formOrQuery(c *fiber.Ctx, key string) string {
	if val := c.FormValue(key); val != "" {
		return val
	}
	return c.Query(key)
}
