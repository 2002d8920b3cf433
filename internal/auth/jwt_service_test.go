package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Issue("0f8fad5b-d9cb-469f-a165-70867728950e", "a@b.com", "A B")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "A B", claims.FullName)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.Issue("id", "a@b.com", "A B")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Millisecond)

	token, err := svc.Issue("id", "a@b.com", "A B")
	assert.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_VerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_DefaultExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	token, err := svc.Issue("id", "a@b.com", "A B")
	assert.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)

	// Zero config falls back to the 90 day contract.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, DefaultTokenExpiry.Hours(), remaining.Hours(), 1)
}
