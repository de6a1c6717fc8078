package attest

import "github.com/commerceblock/mainstay-api/internal/models"

// Narrow per-collection views of the storage gateway. The gorm-backed
// implementations live in internal/database; tests substitute in-memory
// fakes.

type ClientDetailsStore interface {
	FindByPosition(position int64) ([]models.ClientDetails, error)
	All() ([]models.ClientDetails, error)
}

type ClientCommitmentStore interface {
	// Upsert replaces the commitment for position, creating the record if
	// it does not exist. A single atomic write, last write wins.
	Upsert(position int64, commitment string) error
}

type MerkleCommitmentStore interface {
	FindByMerkleRoot(merkleRoot string) ([]models.MerkleCommitment, error)
}

type MerkleProofStore interface {
	CountByCommitment(commitment string) (int64, error)
	CountByMerkleRoot(merkleRoot string) (int64, error)
}

type AttestationStore interface {
	// Page returns one listing window sorted by inserted_at descending,
	// optionally restricted to confirmed records.
	Page(confirmedOnly bool, limit, offset int) ([]models.Attestation, error)
	CountConfirmed() (int64, error)
	// LatestConfirmed returns the most recent confirmed attestation, or
	// (nil, nil) when none exists.
	LatestConfirmed() (*models.Attestation, error)
}

type AttestationInfoStore interface {
	Latest(n int) ([]models.AttestationInfo, error)
	CountByTxid(txid string) (int64, error)
	CountByBlockhash(blockhash string) (int64, error)
}

type ClientSignupStore interface {
	// FindByEmail returns (nil, nil) when no signup exists for email.
	FindByEmail(email string) (*models.ClientSignup, error)
	Create(signup *models.ClientSignup) error
}
