package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/coworkspace-service/internal/domain"
)

// Verification failure taxonomy. Callers must not forward the distinction to
// clients; it exists for logging and tests.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrWrongTokenKind        = errors.New("wrong token kind")
)

// TokenManager handles issuing and validating JWT tokens. It is a pure
// function of the shared secret, its TTL policy and wall-clock time; no
// external state is consulted on either path.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTLHours, refreshTTLHours int) *TokenManager {
	if accessTTLHours <= 0 {
		accessTTLHours = 14 * 24
	}
	if refreshTTLHours <= 0 {
		refreshTTLHours = 24
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLHours) * time.Hour,
		refreshTTL: time.Duration(refreshTTLHours) * time.Hour,
	}
}

// Claims describes the JWT payload. The registered ID claim carries the
// pair-correlating token id, Subject the member id.
type Claims struct {
	UserID string           `json:"user_id"`
	Email  string           `json:"email,omitempty"`
	Scopes []string         `json:"scopes,omitempty"`
	Kind   domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token of the given kind. Access tokens embed
// email and scopes so downstream authorization needs no lookup; refresh
// tokens carry only enough to re-derive identity.
func (tm *TokenManager) Issue(tokenID, userID, email string, scopes []string, kind domain.TokenKind) (string, time.Time, error) {
	now := time.Now()
	ttl := tm.accessTTL
	if kind == domain.TokenKindRefresh {
		ttl = tm.refreshTTL
	}
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if kind == domain.TokenKindAccess {
		claims.Email = email
		claims.Scopes = scopes
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature, expiry and kind, returning the claims.
func (tm *TokenManager) Verify(tokenStr string, expected domain.TokenKind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenSignatureInvalid
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenSignatureInvalid
	}
	if claims.Kind != expected {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}
