package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, duration time.Duration) *Service {
	t.Helper()
	svc, err := NewService(Config{SecretKey: testSecret, Duration: duration})
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid", Config{SecretKey: testSecret, Duration: time.Hour}, nil},
		{"empty secret", Config{Duration: time.Hour}, ErrEmptySecretKey},
		{"weak secret", Config{SecretKey: "short", Duration: time.Hour}, ErrWeakSecretKey},
		{"zero duration", Config{SecretKey: testSecret}, ErrInvalidDuration},
		{"negative duration", Config{SecretKey: testSecret, Duration: -time.Hour}, ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t, time.Hour)

	token, err := svc.GenerateToken(42, "alice@example.com", "employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
}

func TestValidateTokenErrors(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different key is rejected
	other, err := NewService(Config{SecretKey: "ffffffffffffffffffffffffffffffff", Duration: time.Hour})
	require.NoError(t, err)
	token, err := other.GenerateToken(1, "a@b.c", "admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	svc := newTestService(t, time.Millisecond)

	token, err := svc.GenerateToken(7, "bob@example.com", "employee")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
