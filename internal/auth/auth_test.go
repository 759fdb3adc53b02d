package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdmin(t *testing.T) *Admin {
	t.Helper()
	a, err := NewAdmin("admin", "s3cret", "signing-key", 1)
	require.NoError(t, err)
	return a
}

func TestLoginIssuesValidToken(t *testing.T) {
	a := newTestAdmin(t)

	token, err := a.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAdmin(t)

	_, err := a.Login("admin", "wrong")
	assert.Error(t, err)
	_, err = a.Login("root", "s3cret")
	assert.Error(t, err)
}

func TestValidateRejectsForeignToken(t *testing.T) {
	a := newTestAdmin(t)
	other, err := NewAdmin("admin", "s3cret", "other-key", 1)
	require.NoError(t, err)

	token, err := other.Login("admin", "s3cret")
	require.NoError(t, err)

	_, err = a.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	a := newTestAdmin(t)
	_, err := a.Validate("not-a-token")
	assert.Error(t, err)
}
