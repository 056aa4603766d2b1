package ledger

import "context"

// VerifyResult summarizes a chain verification pass.
type VerifyResult struct {
	// Records is how many records were checked.
	Records int64

	// FirstSeq and LastSeq bound the verified range (0 when empty).
	FirstSeq uint64
	LastSeq  uint64
}

// Verify replays the whole retained chain and returns a ChainError at the
// first broken link. The first retained record is the anchor: its PrevHash
// is not checked against a predecessor (retention may have pruned it) but
// its own hash must still be internally consistent.
func Verify(ctx context.Context, storage Storage) (*VerifyResult, error) {
	result := &VerifyResult{}
	var prev *Record

	err := storage.Scan(ctx, func(r *Record) error {
		if want := ChainHash(r); r.Hash != want {
			return NewChainError(r.Seq, "record hash does not match its payload")
		}

		if prev != nil {
			if r.Seq != prev.Seq+1 {
				return NewChainError(r.Seq, "sequence gap in chain")
			}
			if r.PrevHash != prev.Hash {
				return NewChainError(r.Seq, "prev_hash does not match predecessor")
			}
		} else {
			result.FirstSeq = r.Seq
		}

		result.Records++
		result.LastSeq = r.Seq
		prev = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
