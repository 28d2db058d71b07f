package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain"
)

func TestTokenMaker_Roundtrip(t *testing.T) {
	maker := NewTokenMaker("test-secret")

	token, err := maker.Issue(42, time.Minute)
	assert.NoError(t, err)

	userID, err := maker.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenMaker_Expired(t *testing.T) {
	maker := NewTokenMaker("test-secret")

	token, err := maker.Issue(42, -time.Minute)
	assert.NoError(t, err)

	_, err = maker.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenMaker_WrongSecret(t *testing.T) {
	token, err := NewTokenMaker("secret-a").Issue(42, time.Minute)
	assert.NoError(t, err)

	_, err = NewTokenMaker("secret-b").Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenMaker_Garbage(t *testing.T) {
	maker := NewTokenMaker("test-secret")

	_, err := maker.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
