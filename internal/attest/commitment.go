package attest

// CommitmentStore persists the latest commitment per client position.
// Intentionally last-write-wins with no history: only the newest
// commitment matters for the next aggregation cycle.
type CommitmentStore struct {
	commitments ClientCommitmentStore
}

func NewCommitmentStore(commitments ClientCommitmentStore) *CommitmentStore {
	return &CommitmentStore{commitments: commitments}
}

// Put idempotently writes commitment for position. Two concurrent calls
// for the same position race at the storage layer; whichever upsert lands
// last wins.
func (s *CommitmentStore) Put(position int64, commitment string) error {
	if err := s.commitments.Upsert(position, commitment); err != nil {
		return ErrAPI(err)
	}
	return nil
}
