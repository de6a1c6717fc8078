package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/commerceblock/mainstay-api/internal/models"
)

// Repositories bundles the per-collection gateways handed to the service
// layer. Each type implements the matching interface in internal/attest.
type Repositories struct {
	ClientDetails     *ClientDetailsRepository
	ClientCommitments *ClientCommitmentRepository
	MerkleCommitments *MerkleCommitmentRepository
	MerkleProofs      *MerkleProofRepository
	Attestations      *AttestationRepository
	AttestationInfos  *AttestationInfoRepository
	ClientSignups     *ClientSignupRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		ClientDetails:     &ClientDetailsRepository{db: db},
		ClientCommitments: &ClientCommitmentRepository{db: db},
		MerkleCommitments: &MerkleCommitmentRepository{db: db},
		MerkleProofs:      &MerkleProofRepository{db: db},
		Attestations:      &AttestationRepository{db: db},
		AttestationInfos:  &AttestationInfoRepository{db: db},
		ClientSignups:     &ClientSignupRepository{db: db},
	}
}

type ClientDetailsRepository struct {
	db *gorm.DB
}

func (r *ClientDetailsRepository) FindByPosition(position int64) ([]models.ClientDetails, error) {
	var clients []models.ClientDetails
	result := r.db.Where("client_position = ?", position).Find(&clients)
	return clients, result.Error
}

func (r *ClientDetailsRepository) All() ([]models.ClientDetails, error) {
	var clients []models.ClientDetails
	result := r.db.Order("client_position").Find(&clients)
	return clients, result.Error
}

type ClientCommitmentRepository struct {
	db *gorm.DB
}

// Upsert writes the latest commitment for position as a single atomic
// statement keyed on the client_position unique index.
func (r *ClientCommitmentRepository) Upsert(position int64, commitment string) error {
	record := models.ClientCommitment{
		ClientPosition: position,
		Commitment:     commitment,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_position"}},
		DoUpdates: clause.AssignmentColumns([]string{"commitment"}),
	}).Create(&record).Error
}

type MerkleCommitmentRepository struct {
	db *gorm.DB
}

func (r *MerkleCommitmentRepository) FindByMerkleRoot(merkleRoot string) ([]models.MerkleCommitment, error) {
	var commitments []models.MerkleCommitment
	result := r.db.Where("merkle_root = ?", merkleRoot).Find(&commitments)
	return commitments, result.Error
}

type MerkleProofRepository struct {
	db *gorm.DB
}

func (r *MerkleProofRepository) CountByCommitment(commitment string) (int64, error) {
	var count int64
	result := r.db.Model(&models.MerkleProof{}).Where("commitment = ?", commitment).Count(&count)
	return count, result.Error
}

func (r *MerkleProofRepository) CountByMerkleRoot(merkleRoot string) (int64, error) {
	var count int64
	result := r.db.Model(&models.MerkleProof{}).Where("merkle_root = ?", merkleRoot).Count(&count)
	return count, result.Error
}

type AttestationRepository struct {
	db *gorm.DB
}

func (r *AttestationRepository) Page(confirmedOnly bool, limit, offset int) ([]models.Attestation, error) {
	var attestations []models.Attestation
	query := r.db.Order("inserted_at desc").Limit(limit).Offset(offset)
	if confirmedOnly {
		query = query.Where("confirmed = ?", true)
	}
	result := query.Find(&attestations)
	return attestations, result.Error
}

func (r *AttestationRepository) CountConfirmed() (int64, error) {
	var count int64
	result := r.db.Model(&models.Attestation{}).Where("confirmed = ?", true).Count(&count)
	return count, result.Error
}

func (r *AttestationRepository) LatestConfirmed() (*models.Attestation, error) {
	var attestation models.Attestation
	result := r.db.Where("confirmed = ?", true).Order("inserted_at desc").First(&attestation)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &attestation, nil
}

type AttestationInfoRepository struct {
	db *gorm.DB
}

func (r *AttestationInfoRepository) Latest(n int) ([]models.AttestationInfo, error) {
	var infos []models.AttestationInfo
	result := r.db.Order("time desc").Limit(n).Find(&infos)
	return infos, result.Error
}

func (r *AttestationInfoRepository) CountByTxid(txid string) (int64, error) {
	var count int64
	result := r.db.Model(&models.AttestationInfo{}).Where("txid = ?", txid).Count(&count)
	return count, result.Error
}

func (r *AttestationInfoRepository) CountByBlockhash(blockhash string) (int64, error) {
	var count int64
	result := r.db.Model(&models.AttestationInfo{}).Where("blockhash = ?", blockhash).Count(&count)
	return count, result.Error
}

type ClientSignupRepository struct {
	db *gorm.DB
}

func (r *ClientSignupRepository) FindByEmail(email string) (*models.ClientSignup, error) {
	var signup models.ClientSignup
	result := r.db.Where("email = ?", email).First(&signup)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &signup, nil
}

func (r *ClientSignupRepository) Create(signup *models.ClientSignup) error {
	return r.db.Create(signup).Error
}
