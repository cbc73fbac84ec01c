package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func TestExtractBearer(t *testing.T) {
	testCases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := ExtractBearer(tc.header)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, token)
		})
	}
}

func TestProvider_UserFromToken(t *testing.T) {
	provider := NewProvider(testSecret)

	token := signedToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "asha@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	user, err := provider.UserFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "asha@example.com", user.Email)
}

func TestProvider_UserFromToken_Failures(t *testing.T) {
	provider := NewProvider(testSecret)

	expired := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	missingSubject := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	otherSecret := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	forged, err := otherSecret.SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "missing subject", token: missingSubject},
		{name: "wrong signature", token: forged},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.UserFromToken(tc.token)
			assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
		})
	}
}
