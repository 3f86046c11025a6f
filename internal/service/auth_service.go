package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/coworkspace-service/internal/auth"
	"github.com/spec-kit/coworkspace-service/internal/config"
	"github.com/spec-kit/coworkspace-service/internal/domain"
	"github.com/spec-kit/coworkspace-service/internal/events"
	"github.com/spec-kit/coworkspace-service/internal/repository"
	apperrors "github.com/spec-kit/coworkspace-service/pkg/util"
)

// Supported grant types for the token endpoint.
const (
	GrantTypePassword     = "password"
	GrantTypeRefreshToken = "refresh_token"
)

// TokenPair is the result of a successful grant. The access and refresh
// tokens share a token id but expire independently.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration and token issuance flows.
type AuthService struct {
	members    repository.MemberRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	MemberRepo repository.MemberRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		members:    deps.MemberRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours, cfg.Auth.RefreshTokenTTLHours),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Token exchanges credentials or a refresh token for a fresh token pair.
// Authentication performs no storage writes; only token-id randomness is
// generated.
func (s *AuthService) Token(ctx context.Context, grantType, email, password, refreshToken string) (*TokenPair, error) {
	switch grantType {
	case GrantTypePassword:
		return s.passwordGrant(ctx, email, password)
	case GrantTypeRefreshToken:
		return s.refreshGrant(ctx, refreshToken)
	default:
		return nil, apperrors.NewUnsupportedGrantType(grantType)
	}
}

// passwordGrant authenticates by email and password. Unknown email and wrong
// password surface the same error.
func (s *AuthService) passwordGrant(ctx context.Context, email, password string) (*TokenPair, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}
	return s.issuePair(member)
}

// refreshGrant exchanges a valid refresh token for a new pair. Scopes are
// recomputed from the member's current state, so a role change takes effect
// on the next refresh. The old refresh token stays valid until its expiry.
func (s *AuthService) refreshGrant(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokenMgr.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, apperrors.NewInvalidRefreshToken()
	}

	member, err := s.members.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidRefreshToken()
		}
		return nil, err
	}
	return s.issuePair(member)
}

// Register creates a new member account and logs it in via the password
// grant success path. New members are never admins.
func (s *AuthService) Register(ctx context.Context, email, firstname, lastname, password string) (*domain.Member, *TokenPair, error) {
	if _, err := s.members.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewUserAlreadyExists(email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	member := &domain.Member{
		Email:        email,
		FirstName:    firstname,
		LastName:     lastname,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventMemberRegistered, member.ID, events.MemberRegisteredPayload{
		MemberID: member.ID,
		Email:    member.Email,
	})

	pair, err := s.issuePair(member)
	if err != nil {
		return nil, nil, err
	}
	return member, pair, nil
}

// issuePair stamps both tokens with one fresh token id.
func (s *AuthService) issuePair(member *domain.Member) (*TokenPair, error) {
	tokenID := uuid.NewString()
	scopes := domain.ScopesFor(member)

	accessToken, accessExp, err := s.tokenMgr.Issue(tokenID, member.ID, member.Email, scopes, domain.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokenMgr.Issue(tokenID, member.ID, "", nil, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
