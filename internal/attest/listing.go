package attest

import (
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/commerceblock/mainstay-api/internal/models"
)

// PageLimit is the fixed attestation listing window size.
const PageLimit = 20

const (
	timeOnlyFormat  = "15:04:05 MST"
	dateTimeFormat  = "15:04:05 01/02/2006 MST"
	latestInfoCount = 10
)

// AttestationRow is one rendered listing entry.
type AttestationRow struct {
	Txid       string `json:"txid"`
	MerkleRoot string `json:"merkle_root"`
	Confirmed  bool   `json:"confirmed"`
	Age        string `json:"age"`
}

// AttestationPage is one listing window plus pagination totals.
type AttestationPage struct {
	Data  []AttestationRow `json:"data"`
	Total int64            `json:"total"`
	Pages int              `json:"pages"`
	Limit int              `json:"limit"`
}

// InfoRow is one funding-transaction ledger entry with its time rendered
// for display.
type InfoRow struct {
	Txid      string `json:"txid"`
	Blockhash string `json:"blockhash"`
	Amount    int64  `json:"amount"`
	Time      string `json:"time"`
}

// CommitmentRow is one merkle commitment under the latest attested root.
type CommitmentRow struct {
	Position   int64  `json:"position"`
	MerkleRoot string `json:"merkle_root"`
	Commitment string `json:"commitment"`
}

// ListingService serves the read-only attestation views.
type ListingService struct {
	attestations AttestationStore
	commitments  MerkleCommitmentStore
	infos        AttestationInfoStore
	now          func() time.Time
}

func NewListingService(attestations AttestationStore, commitments MerkleCommitmentStore, infos AttestationInfoStore) *ListingService {
	return &ListingService{
		attestations: attestations,
		commitments:  commitments,
		infos:        infos,
		now:          time.Now,
	}
}

// List returns the page-th window of attestations, newest first. By
// default only confirmed records are listed; includeUnconfirmed drops the
// filter entirely. The count and window queries are independent, so they
// run in parallel and join before the reply.
//
// Totals deliberately count confirmed records even when unconfirmed rows
// are listed. That asymmetry is what existing clients paginate against;
// keep it unless they are migrated too.
func (s *ListingService) List(page int, includeUnconfirmed bool) (*AttestationPage, error) {
	if page == 0 {
		page = 1
	}
	offset := PageLimit * (page - 1)
	if offset < 0 {
		offset = 0
	}

	var (
		count int64
		rows  []models.Attestation
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		count, err = s.attestations.CountConfirmed()
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.attestations.Page(!includeUnconfirmed, PageLimit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, ErrAPI(err)
	}

	now := s.now()
	result := &AttestationPage{
		Data:  make([]AttestationRow, 0, len(rows)),
		Total: count,
		Pages: int(math.Ceil(float64(count) / float64(PageLimit))),
		Limit: PageLimit,
	}
	for _, row := range rows {
		result.Data = append(result.Data, AttestationRow{
			Txid:       row.Txid,
			MerkleRoot: row.MerkleRoot,
			Confirmed:  row.Confirmed,
			Age:        ageString(now, row.InsertedAt),
		})
	}
	return result, nil
}

// LatestInfo returns the ten most recent funding transactions, newest
// first.
func (s *ListingService) LatestInfo() ([]InfoRow, error) {
	rows, err := s.infos.Latest(latestInfoCount)
	if err != nil {
		return nil, ErrAPI(err)
	}
	result := make([]InfoRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, InfoRow{
			Txid:      row.Txid,
			Blockhash: row.Blockhash,
			Amount:    row.Amount,
			Time:      time.Unix(row.Time, 0).UTC().Format(dateTimeFormat),
		})
	}
	return result, nil
}

// LatestCommitments returns the merkle commitments aggregated under the
// latest confirmed attestation's root, or an empty slice when nothing has
// been attested yet.
func (s *ListingService) LatestCommitments() ([]CommitmentRow, error) {
	latest, err := s.attestations.LatestConfirmed()
	if err != nil {
		return nil, ErrAPI(err)
	}
	result := []CommitmentRow{}
	if latest == nil {
		return result, nil
	}

	commitments, err := s.commitments.FindByMerkleRoot(latest.MerkleRoot)
	if err != nil {
		return nil, ErrAPI(err)
	}
	for _, c := range commitments {
		result = append(result, CommitmentRow{
			Position:   c.ClientPosition,
			MerkleRoot: c.MerkleRoot,
			Commitment: c.Commitment,
		})
	}
	return result, nil
}

// ageString renders t time-only when it falls on the same calendar day as
// now, date-qualified otherwise. Both render in UTC; the same-day check
// uses local dates, matching the behavior clients already depend on.
func ageString(now, t time.Time) string {
	ny, nd := now.Year(), now.YearDay()
	ty, td := t.Year(), t.YearDay()
	if ny == ty && nd == td {
		return t.UTC().Format(timeOnlyFormat)
	}
	return t.UTC().Format(dateTimeFormat)
}
