package attest

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/commerceblock/mainstay-api/internal/models"
)

// SignatureVerifier checks the ECDSA signature a client optionally sends
// along with its commitment. Verification runs only for clients that
// registered a pubkey at signup; token-only clients skip it entirely.
//
// Wire formats follow the existing clients: pubkey is a hex-encoded
// compressed or uncompressed secp256k1 point, signature is base64 DER,
// and the signed message is the commitment's decoded bytes.
type SignatureVerifier struct{}

func NewSignatureVerifier() *SignatureVerifier { return &SignatureVerifier{} }

// Verify returns nil when client carries no pubkey or the signature checks
// out. All failures map to the "signature" wire code; the distinct causes
// (missing, undecodable, mismatched) stay in the wrapped message for logs.
func (v *SignatureVerifier) Verify(client *models.ClientDetails, commitment, signature string) error {
	if client.Pubkey == "" {
		return nil
	}
	if signature == "" {
		return Errf(CodeSignature)
	}

	pubkeyBytes, err := hex.DecodeString(client.Pubkey)
	if err != nil {
		return &Error{Code: CodeSignature, Message: err.Error(), Cause: fmt.Errorf("decode pubkey: %w", err)}
	}
	pubkey, err := btcec.ParsePubKey(pubkeyBytes)
	if err != nil {
		return &Error{Code: CodeSignature, Message: err.Error(), Cause: fmt.Errorf("parse pubkey: %w", err)}
	}

	sigBytes, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return &Error{Code: CodeSignature, Message: err.Error(), Cause: fmt.Errorf("decode signature: %w", err)}
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return &Error{Code: CodeSignature, Message: err.Error(), Cause: fmt.Errorf("parse signature: %w", err)}
	}

	msg, err := hex.DecodeString(commitment)
	if err != nil {
		return &Error{Code: CodeSignature, Message: err.Error(), Cause: fmt.Errorf("decode commitment: %w", err)}
	}

	if !sig.Verify(msg, pubkey) {
		return Errf(CodeSignature)
	}
	return nil
}

// ValidPubkey reports whether s decodes to a point on secp256k1. Used at
// signup so malformed keys are rejected before any client record can carry
// them into the runtime verification path.
func ValidPubkey(s string) bool {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return false
	}
	_, err = btcec.ParsePubKey(raw)
	return err == nil
}
