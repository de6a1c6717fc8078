package attest

import (
	"github.com/commerceblock/mainstay-api/internal/models"
)

// In-memory stand-ins for the storage gateway, one per collection.

type fakeClientDetails struct {
	clients []models.ClientDetails
	err     error
}

func (f *fakeClientDetails) FindByPosition(position int64) ([]models.ClientDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ClientDetails
	for _, c := range f.clients {
		if c.ClientPosition == position {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientDetails) All() ([]models.ClientDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.clients, nil
}

type fakeClientCommitments struct {
	records map[int64]string
	calls   int
	err     error
}

func newFakeClientCommitments() *fakeClientCommitments {
	return &fakeClientCommitments{records: make(map[int64]string)}
}

func (f *fakeClientCommitments) Upsert(position int64, commitment string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.records[position] = commitment
	return nil
}

type fakeMerkleProofs struct {
	commitments map[string]int64
	roots       map[string]int64
	err         error
}

func (f *fakeMerkleProofs) CountByCommitment(commitment string) (int64, error) {
	return f.commitments[commitment], f.err
}

func (f *fakeMerkleProofs) CountByMerkleRoot(merkleRoot string) (int64, error) {
	return f.roots[merkleRoot], f.err
}

type fakeAttestationInfos struct {
	txids       map[string]int64
	blockhashes map[string]int64
	latest      []models.AttestationInfo
	err         error
}

func (f *fakeAttestationInfos) Latest(n int) ([]models.AttestationInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.latest) > n {
		return f.latest[:n], nil
	}
	return f.latest, nil
}

func (f *fakeAttestationInfos) CountByTxid(txid string) (int64, error) {
	return f.txids[txid], f.err
}

func (f *fakeAttestationInfos) CountByBlockhash(blockhash string) (int64, error) {
	return f.blockhashes[blockhash], f.err
}

type fakeAttestations struct {
	rows   []models.Attestation
	count  int64
	latest *models.Attestation
	err    error

	lastConfirmedOnly bool
	lastLimit         int
	lastOffset        int
}

func (f *fakeAttestations) Page(confirmedOnly bool, limit, offset int) ([]models.Attestation, error) {
	f.lastConfirmedOnly = confirmedOnly
	f.lastLimit = limit
	f.lastOffset = offset
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeAttestations) CountConfirmed() (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeAttestations) LatestConfirmed() (*models.Attestation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.latest, nil
}

type fakeMerkleCommitments struct {
	byRoot map[string][]models.MerkleCommitment
	err    error
}

func (f *fakeMerkleCommitments) FindByMerkleRoot(merkleRoot string) ([]models.MerkleCommitment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byRoot[merkleRoot], nil
}

type fakeSignups struct {
	byEmail   map[string]*models.ClientSignup
	created   []*models.ClientSignup
	findErr   error
	createErr error
}

func newFakeSignups() *fakeSignups {
	return &fakeSignups{byEmail: make(map[string]*models.ClientSignup)}
}

func (f *fakeSignups) FindByEmail(email string) (*models.ClientSignup, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byEmail[email], nil
}

func (f *fakeSignups) Create(signup *models.ClientSignup) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, signup)
	f.byEmail[signup.Email] = signup
	return nil
}

type fakeNotifier struct {
	received chan *models.ClientSignup
	err      error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{received: make(chan *models.ClientSignup, 1)}
}

func (f *fakeNotifier) NotifySignup(signup *models.ClientSignup) error {
	f.received <- signup
	return f.err
}
