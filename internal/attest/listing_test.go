package attest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerceblock/mainstay-api/internal/models"
)

func newListing(attestations *fakeAttestations, commitments *fakeMerkleCommitments, infos *fakeAttestationInfos) *ListingService {
	if attestations == nil {
		attestations = &fakeAttestations{}
	}
	if commitments == nil {
		commitments = &fakeMerkleCommitments{}
	}
	if infos == nil {
		infos = &fakeAttestationInfos{}
	}
	return NewListingService(attestations, commitments, infos)
}

func TestListOffsetArithmetic(t *testing.T) {
	tests := []struct {
		page       int
		wantOffset int
	}{
		{3, 40},
		{1, 0},
		{0, 0},
		{-2, 0},
	}
	for _, tc := range tests {
		fake := &fakeAttestations{}
		s := newListing(fake, nil, nil)

		_, err := s.List(tc.page, false)
		require.NoError(t, err)
		assert.Equal(t, tc.wantOffset, fake.lastOffset, "page %d", tc.page)
		assert.Equal(t, PageLimit, fake.lastLimit)
		assert.True(t, fake.lastConfirmedOnly)
	}
}

func TestListTotalsAlwaysCountConfirmed(t *testing.T) {
	rows := make([]models.Attestation, PageLimit)
	for i := range rows {
		rows[i] = models.Attestation{Txid: "tx", MerkleRoot: "root", Confirmed: i%2 == 0, InsertedAt: time.Now()}
	}
	fake := &fakeAttestations{rows: rows, count: 25}
	s := newListing(fake, nil, nil)

	// includeUnconfirmed drops the listing filter but never the count
	// filter; totals stay pinned to the confirmed set.
	result, err := s.List(1, true)
	require.NoError(t, err)
	assert.False(t, fake.lastConfirmedOnly)
	assert.Len(t, result.Data, PageLimit)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, PageLimit, result.Limit)
}

func TestListEmpty(t *testing.T) {
	s := newListing(&fakeAttestations{}, nil, nil)

	result, err := s.List(1, false)
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, 0, result.Pages)
}

func TestAgeString(t *testing.T) {
	now := time.Date(2021, 6, 15, 18, 30, 0, 0, time.UTC)

	sameDay := time.Date(2021, 6, 15, 9, 4, 5, 0, time.UTC)
	assert.Equal(t, "09:04:05 UTC", ageString(now, sameDay))

	previousDay := time.Date(2021, 6, 14, 9, 4, 5, 0, time.UTC)
	assert.Equal(t, "09:04:05 06/14/2021 UTC", ageString(now, previousDay))
}

func TestListAgeRendering(t *testing.T) {
	inserted := time.Date(2021, 6, 14, 9, 4, 5, 0, time.UTC)
	fake := &fakeAttestations{
		rows:  []models.Attestation{{Txid: "tx", MerkleRoot: "root", Confirmed: true, InsertedAt: inserted}},
		count: 1,
	}
	s := newListing(fake, nil, nil)
	s.now = func() time.Time { return time.Date(2021, 6, 15, 18, 30, 0, 0, time.UTC) }

	result, err := s.List(1, false)
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "09:04:05 06/14/2021 UTC", result.Data[0].Age)
}

func TestLatestCommitmentsEmpty(t *testing.T) {
	s := newListing(&fakeAttestations{}, nil, nil)

	rows, err := s.LatestCommitments()
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLatestCommitments(t *testing.T) {
	attestations := &fakeAttestations{latest: &models.Attestation{MerkleRoot: "root1", Confirmed: true}}
	commitments := &fakeMerkleCommitments{byRoot: map[string][]models.MerkleCommitment{
		"root1": {
			{ClientPosition: 1, MerkleRoot: "root1", Commitment: "c1"},
			{ClientPosition: 2, MerkleRoot: "root1", Commitment: "c2"},
		},
	}}
	s := newListing(attestations, commitments, nil)

	rows, err := s.LatestCommitments()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, CommitmentRow{Position: 1, MerkleRoot: "root1", Commitment: "c1"}, rows[0])
	assert.Equal(t, CommitmentRow{Position: 2, MerkleRoot: "root1", Commitment: "c2"}, rows[1])
}

func TestLatestInfoFormatsTime(t *testing.T) {
	infos := &fakeAttestationInfos{latest: []models.AttestationInfo{
		{Txid: "tx1", Blockhash: "bh1", Amount: 50000, Time: time.Date(2021, 6, 14, 9, 4, 5, 0, time.UTC).Unix()},
	}}
	s := newListing(nil, nil, infos)

	rows, err := s.LatestInfo()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "tx1", rows[0].Txid)
	assert.Equal(t, int64(50000), rows[0].Amount)
	assert.Equal(t, "09:04:05 06/14/2021 UTC", rows[0].Time)
}
