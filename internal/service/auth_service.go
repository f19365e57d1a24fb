package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/strava"
)

const tokenIssuer = "stridesense"

// OAuthProvider is the consent and code-exchange side of the activity provider
type OAuthProvider interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*strava.Token, error)
}

// Session identifies the athlete behind a request
type Session struct {
	AthleteID   int64
	AccessToken string // provider access token used for collaborator calls
}

// Claims are the session JWT claims
type Claims struct {
	AthleteID   int64  `json:"athlete_id"`
	StravaToken string `json:"strava_token"`
	jwt.RegisteredClaims
}

// AuthService handles the OAuth login flow and session tokens
type AuthService struct {
	provider  OAuthProvider
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(provider OAuthProvider, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &AuthService{
		provider:  provider,
		secretKey: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// LoginURL returns the provider consent URL and the state nonce bound to it
func (s *AuthService) LoginURL() (string, string) {
	state := uuid.NewString()
	return s.provider.AuthorizeURL(state), state
}

// CompleteLogin exchanges an authorization code and issues a session token for it
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (string, *Session, error) {
	if code == "" {
		return "", nil, fmt.Errorf("%w: missing authorization code", models.ErrInvalidInput)
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to complete login: %w", err)
	}

	session := &Session{AthleteID: token.Athlete.ID, AccessToken: token.AccessToken}

	expiresAt := s.now().Add(s.ttl)
	if token.ExpiresAt > 0 && token.Expiry().Before(expiresAt) {
		expiresAt = token.Expiry()
	}

	signed, err := s.issue(session, expiresAt)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// IssueToken signs a session token valid for the configured TTL
func (s *AuthService) IssueToken(session *Session) (string, error) {
	return s.issue(session, s.now().Add(s.ttl))
}

func (s *AuthService) issue(session *Session, expiresAt time.Time) (string, error) {
	now := s.now()
	claims := &Claims{
		AthleteID:   session.AthleteID,
		StravaToken: session.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprint(session.AthleteID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token. Every failure wraps models.ErrUnauthorized.
func (s *AuthService) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", models.ErrUnauthorized)
	}
	if claims.StravaToken == "" {
		return nil, fmt.Errorf("%w: token carries no provider credentials", models.ErrUnauthorized)
	}

	return &Session{AthleteID: claims.AthleteID, AccessToken: claims.StravaToken}, nil
}
