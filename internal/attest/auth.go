package attest

import (
	"crypto/subtle"

	"github.com/commerceblock/mainstay-api/internal/models"
)

// AuthGate authenticates a submitting client against its registered
// details. Read-only; the returned record feeds the signature check.
type AuthGate struct {
	clients ClientDetailsStore
}

func NewAuthGate(clients ClientDetailsStore) *AuthGate {
	return &AuthGate{clients: clients}
}

// Authenticate resolves position to exactly one client record and checks
// the shared-secret token. The comparison is constant time so a caller
// cannot probe token prefixes through timing.
func (g *AuthGate) Authenticate(position int64, token string) (*models.ClientDetails, error) {
	clients, err := g.clients.FindByPosition(position)
	if err != nil {
		return nil, ErrAPI(err)
	}
	if len(clients) == 0 {
		return nil, Errf(CodePosition)
	}

	client := clients[0]
	if subtle.ConstantTimeCompare([]byte(client.AuthToken), []byte(token)) != 1 {
		return nil, Errf(CodeToken)
	}
	return &client, nil
}
