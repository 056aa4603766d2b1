package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// genesisHash anchors the first record of a chain: the SHA-256 of the empty
// string, fixed so a fresh ledger is reproducible.
var genesisHash = func() string {
	sum := sha256.Sum256(nil)
	return hex.EncodeToString(sum[:])
}()

// GenesisHash returns the fixed anchor hash used as PrevHash of the first
// record.
func GenesisHash() string {
	return genesisHash
}

// ChainHash computes the hex SHA-256 hash of a record: the predecessor hash
// concatenated with the canonical JSON of the record with its own Hash field
// blanked. encoding/json emits struct fields in declaration order, so the
// encoding is deterministic and replay yields bit-identical hashes.
func ChainHash(record *Record) string {
	c := *record
	c.Hash = ""

	payload, err := json.Marshal(&c)
	if err != nil {
		// Record contains only plain scalars and structs of scalars;
		// Marshal cannot fail on it. Guard anyway.
		return ""
	}

	h := sha256.New()
	h.Write([]byte(c.PrevHash))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
