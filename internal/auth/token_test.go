package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/coworkspace-service/internal/domain"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", 1, 1)
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	tok, exp, err := tm.Issue("tid-1", "user-1", "a@x.com", []string{domain.ScopeAdmin}, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := tm.Verify(tok, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.ID != "tid-1" {
		t.Fatalf("token id mismatch: got %q want %q", claims.ID, "tid-1")
	}
	if claims.UserID != "user-1" || claims.Subject != "user-1" {
		t.Fatalf("user id mismatch: got %q/%q", claims.UserID, claims.Subject)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if len(claims.Scopes) != 1 || claims.Scopes[0] != domain.ScopeAdmin {
		t.Fatalf("scopes mismatch: got %v", claims.Scopes)
	}
}

func TestIssue_RefreshOmitsEmailAndScopes(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	tok, _, err := tm.Issue("tid-2", "user-2", "b@x.com", []string{domain.ScopeAdmin}, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := tm.Verify(tok, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != "" {
		t.Fatalf("refresh token must not carry email, got %q", claims.Email)
	}
	if len(claims.Scopes) != 0 {
		t.Fatalf("refresh token must not carry scopes, got %v", claims.Scopes)
	}
	if claims.UserID != "user-2" {
		t.Fatalf("user id mismatch: got %q", claims.UserID)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	tok, _, err := tm.Issue("tid-3", "user-3", "c@x.com", nil, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// flip each position of the signature segment in turn; no flip may
	// verify successfully. The final char is skipped: its low-order bits are
	// base64 padding and do not reach the decoded signature.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	sig := parts[2]
	for i := 0; i < len(sig)-1; i++ {
		flipped := []byte(sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if tampered == tok {
			continue
		}
		if _, err := tm.Verify(tampered, domain.TokenKindAccess); !errors.Is(err, ErrTokenSignatureInvalid) {
			t.Fatalf("position %d: expected ErrTokenSignatureInvalid, got %v", i, err)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := newTestManager().Issue("tid-4", "user-4", "", nil, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other := NewTokenManager("another-secret", 1, 1)
	if _, err := other.Verify(tok, domain.TokenKindAccess); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := &TokenManager{secret: []byte("test-secret"), accessTTL: -time.Second, refreshTTL: -time.Second}
	tok, _, err := tm.Issue("tid-5", "user-5", "", nil, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := tm.Verify(tok, domain.TokenKindAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongKind(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	access, _, err := tm.Issue("tid-6", "user-6", "d@x.com", nil, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	refresh, _, err := tm.Issue("tid-6", "user-6", "", nil, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := tm.Verify(access, domain.TokenKindRefresh); !errors.Is(err, ErrWrongTokenKind) {
		t.Fatalf("access as refresh: expected ErrWrongTokenKind, got %v", err)
	}
	if _, err := tm.Verify(refresh, domain.TokenKindAccess); !errors.Is(err, ErrWrongTokenKind) {
		t.Fatalf("refresh as access: expected ErrWrongTokenKind, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := newTestManager()
	for _, tok := range []string{"", "garbage", "not.a.jwt", "a.b"} {
		if _, err := tm.Verify(tok, domain.TokenKindAccess); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestPairedTokens_ShareIDIndependentExpiry(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 14*24, 24)
	access, accessExp, err := tm.Issue("pair-id", "user-7", "e@x.com", nil, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	refresh, refreshExp, err := tm.Issue("pair-id", "user-7", "", nil, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	accessClaims, err := tm.Verify(access, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Verify access: %v", err)
	}
	refreshClaims, err := tm.Verify(refresh, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Verify refresh: %v", err)
	}
	if accessClaims.ID != refreshClaims.ID {
		t.Fatalf("pair token ids differ: %q vs %q", accessClaims.ID, refreshClaims.ID)
	}
	if !accessExp.After(refreshExp) {
		t.Fatalf("access expiry %v should outlive refresh expiry %v", accessExp, refreshExp)
	}
}
