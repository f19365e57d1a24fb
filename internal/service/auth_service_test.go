package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/strava"
)

func TestLoginURL(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewAuthService(provider, "secret", time.Hour)

	url, state := svc.LoginURL()
	_, err := uuid.Parse(state)
	require.NoError(t, err)
	assert.Equal(t, state, provider.state)
	assert.True(t, strings.HasSuffix(url, state))
}

func TestCompleteLoginAndValidate(t *testing.T) {
	provider := &fakeProvider{token: &strava.Token{
		AccessToken: "strava-token",
		ExpiresAt:   time.Now().Add(2 * time.Hour).Unix(),
		Athlete:     strava.Athlete{ID: 7},
	}}
	svc := NewAuthService(provider, "secret", 6*time.Hour)

	signed, session, err := svc.CompleteLogin(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.AthleteID)

	got, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AthleteID)
	assert.Equal(t, "strava-token", got.AccessToken)
}

func TestCompleteLoginErrors(t *testing.T) {
	svc := NewAuthService(&fakeProvider{err: models.ErrUnauthorized}, "secret", time.Hour)

	_, _, err := svc.CompleteLogin(context.Background(), "")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, _, err = svc.CompleteLogin(context.Background(), "code")
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestSessionExpiresWithProviderToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{token: &strava.Token{
		AccessToken: "strava-token",
		ExpiresAt:   now.Add(time.Hour).Unix(),
		Athlete:     strava.Athlete{ID: 7},
	}}
	svc := NewAuthService(provider, "secret", 6*time.Hour)
	svc.now = func() time.Time { return now }

	signed, _, err := svc.CompleteLogin(context.Background(), "code")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, err = svc.ValidateToken(signed)
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(signed)
	assert.True(t, errors.Is(err, models.ErrUnauthorized))
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewAuthService(&fakeProvider{}, "secret", time.Hour)
	other := NewAuthService(&fakeProvider{}, "other-secret", time.Hour)

	foreign, err := other.IssueToken(&Session{AthleteID: 1, AccessToken: "x"})
	require.NoError(t, err)
	noCredentials, err := svc.IssueToken(&Session{AthleteID: 1})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not-a-jwt",
		"wrong secret":   foreign,
		"no credentials": noCredentials,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrUnauthorized))
		})
	}
}
