package attest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerceblock/mainstay-api/internal/models"
)

func TestAuthenticateUnknownPosition(t *testing.T) {
	gate := NewAuthGate(&fakeClientDetails{})

	_, err := gate.Authenticate(7, "abc")
	require.Error(t, err)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, CodePosition, ae.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	gate := NewAuthGate(&fakeClientDetails{clients: []models.ClientDetails{
		{ClientPosition: 7, AuthToken: "abc"},
	}})

	_, err := gate.Authenticate(7, "ABC")
	require.Error(t, err)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, CodeToken, ae.Code)
}

func TestAuthenticateSuccess(t *testing.T) {
	gate := NewAuthGate(&fakeClientDetails{clients: []models.ClientDetails{
		{ClientPosition: 7, AuthToken: "abc", ClientName: "alpha", Pubkey: ""},
	}})

	client, err := gate.Authenticate(7, "abc")
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, int64(7), client.ClientPosition)
	assert.Equal(t, "alpha", client.ClientName)
}

func TestAuthenticateStorageError(t *testing.T) {
	gate := NewAuthGate(&fakeClientDetails{err: errors.New("db down")})

	_, err := gate.Authenticate(7, "abc")
	require.Error(t, err)

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, CodeAPI, ae.Code)
	assert.Contains(t, ae.Message, "db down")
}
