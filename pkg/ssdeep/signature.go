package ssdeep

import (
	"fmt"
	"strconv"
	"strings"
)

// Signature is a parsed ssdeep fuzzy hash: a block size and the two
// base64-ish digests taken at that block size and at twice that block
// size. Comparisons operate on Signature rather than the raw string so
// the expensive parse happens once.
type Signature struct {
	BlockSize uint64
	Block1    string
	Block2    string
}

// ParseSignature parses the canonical "blocksize:block1:block2" textual
// form into a Signature. Run-length elimination is re-applied to both
// blocks, matching the reference implementation's tolerance of
// already-reduced or not-yet-reduced input: it is cheap and idempotent, so
// there is no reason to trust the caller either way.
func ParseSignature(s string) (Signature, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Signature{}, fmt.Errorf("%w: missing field", ErrMalformedSignature)
	}
	bs, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: bad block size: %v", ErrMalformedSignature, err)
	}
	return Signature{
		BlockSize: bs,
		Block1:    eliminateSequences(parts[1]),
		Block2:    eliminateSequences(parts[2]),
	}, nil
}

// String renders the canonical textual form of the signature.
func (s Signature) String() string {
	return fmt.Sprintf("%d:%s:%s", s.BlockSize, s.Block1, s.Block2)
}
