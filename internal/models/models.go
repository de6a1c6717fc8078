package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Attestation records one anchoring transaction for a merkle root.
// Confirmed flips false->true once the transaction confirms; records are
// never deleted.
type Attestation struct {
	gorm.Model `json:"-"`
	MerkleRoot string    `gorm:"index" json:"merkle_root"`
	Txid       string    `gorm:"index" json:"txid"`
	Confirmed  bool      `gorm:"index" json:"confirmed"`
	InsertedAt time.Time `gorm:"index" json:"inserted_at"`
}

// AttestationInfo is the append-only ledger of the service's on-chain
// funding transactions. Time is unix seconds, Amount is satoshis.
type AttestationInfo struct {
	gorm.Model `json:"-"`
	Txid       string `gorm:"index" json:"txid"`
	Blockhash  string `gorm:"index" json:"blockhash"`
	Amount     int64  `json:"amount"`
	Time       int64  `gorm:"index" json:"time"`
}

// ClientCommitment holds the latest commitment per client position. At
// most one live record per position; resubmissions overwrite in place.
type ClientCommitment struct {
	gorm.Model     `json:"-"`
	Commitment     string `json:"commitment"`
	ClientPosition int64  `gorm:"uniqueIndex" json:"client_position"`
}

// ClientDetails identifies a registered client. ClientPosition is the
// stable identity; Pubkey, when set, is a hex-encoded secp256k1 point.
type ClientDetails struct {
	gorm.Model     `json:"-"`
	ClientPosition int64  `gorm:"index" json:"client_position"`
	AuthToken      string `json:"-"`
	Pubkey         string `json:"pubkey"`
	ClientName     string `json:"client_name"`
}

// MerkleCommitment maps a client commitment into the merkle root it was
// aggregated under. Many commitments share one root.
type MerkleCommitment struct {
	gorm.Model     `json:"-"`
	Commitment     string `gorm:"index" json:"commitment"`
	MerkleRoot     string `gorm:"index" json:"merkle_root"`
	ClientPosition int64  `json:"client_position"`
}

// MerkleProofOp is one step of an authentication path.
type MerkleProofOp struct {
	Append     bool   `json:"append"`
	Commitment string `json:"commitment"`
}

// MerkleProofOps is the ordered authentication path from a commitment to
// its merkle root, stored as a JSON text column.
type MerkleProofOps []MerkleProofOp

func (o MerkleProofOps) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *MerkleProofOps) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), o)
	case []byte:
		return json.Unmarshal(v, o)
	default:
		return fmt.Errorf("cannot scan %T into MerkleProofOps", src)
	}
}

// MerkleProof is a full inclusion proof for one client commitment. Proofs
// are built upstream; this service only reads them.
type MerkleProof struct {
	gorm.Model     `json:"-"`
	ClientPosition int64          `json:"client_position"`
	MerkleRoot     string         `gorm:"index" json:"merkle_root"`
	Commitment     string         `gorm:"index" json:"commitment"`
	Ops            MerkleProofOps `gorm:"type:text" json:"ops"`
}

// ClientSignup is a signup form submission. Email is unique; records are
// never mutated after insert.
type ClientSignup struct {
	gorm.Model `json:"-"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `gorm:"uniqueIndex" json:"email"`
	Company    string `json:"company,omitempty"`
	Pubkey     string `json:"pubkey,omitempty"`
}
