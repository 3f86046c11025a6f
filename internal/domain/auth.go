package domain

import "time"

// TokenKind differentiates access and refresh tokens. The two tokens of a
// pair share a token id but carry independent expiries.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ScopeAdmin is the canonical admin role string embedded in token scopes.
// It is the only representation used anywhere in the service.
const ScopeAdmin = "ADMIN"

// ScopesFor computes the scope set for a member's current state.
func ScopesFor(member *Member) []string {
	if member != nil && member.IsAdmin {
		return []string{ScopeAdmin}
	}
	return []string{}
}

// Token represents issued authentication token metadata.
type Token struct {
	ID        string
	UserID    string
	Email     string
	Scopes    []string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}
