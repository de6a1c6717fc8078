package attest

import (
	"regexp"
	"strconv"
)

var (
	hashShape     = regexp.MustCompile(`[0-9A-Fa-f]{64}`)
	positionShape = regexp.MustCompile(`^\d+$`)
)

// IdentifierClassifier resolves an opaque identifier to the record kind it
// matches. It is a classification oracle: the reply is the name of the
// field that matched, never the record itself.
type IdentifierClassifier struct {
	proofs  MerkleProofStore
	infos   AttestationInfoStore
	clients ClientDetailsStore
}

func NewIdentifierClassifier(proofs MerkleProofStore, infos AttestationInfoStore, clients ClientDetailsStore) *IdentifierClassifier {
	return &IdentifierClassifier{proofs: proofs, infos: infos, clients: clients}
}

// Classify dispatches on the shape of value: 64 hex characters probe the
// hash-bearing collections, a decimal number probes client positions,
// anything else is a type error.
func (c *IdentifierClassifier) Classify(value string) (string, error) {
	switch {
	case hashShape.MatchString(value):
		return c.classifyHash(value)
	case positionShape.MatchString(value):
		return c.classifyPosition(value)
	default:
		return "", Errf(CodeTypeError)
	}
}

// classifyHash probes in fixed precedence order; the first collection with
// a match decides the label and the remaining probes are skipped.
func (c *IdentifierClassifier) classifyHash(value string) (string, error) {
	probes := []struct {
		label string
		count func(string) (int64, error)
	}{
		{"commitment", c.proofs.CountByCommitment},
		{"merkle_root", c.proofs.CountByMerkleRoot},
		{"txid", c.infos.CountByTxid},
		{"blockhash", c.infos.CountByBlockhash},
	}

	for _, probe := range probes {
		n, err := probe.count(value)
		if err != nil {
			return "", ErrAPI(err)
		}
		if n > 0 {
			return probe.label, nil
		}
	}
	return "", Errf(CodeTypeUnknown)
}

func (c *IdentifierClassifier) classifyPosition(value string) (string, error) {
	position, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// All digits but too large to be any client position.
		return "", Errf(CodeNotFound)
	}

	clients, err := c.clients.FindByPosition(position)
	if err != nil {
		return "", ErrAPI(err)
	}
	if len(clients) == 0 {
		return "", Errf(CodeNotFound)
	}
	return "position", nil
}
