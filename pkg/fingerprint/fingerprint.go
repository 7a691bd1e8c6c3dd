// Package fingerprint computes a bundle of digests for a single byte
// stream in one pass: a fast non-cryptographic prefilter digest, a
// collision-resistant identity digest, and a ssdeep fuzzy hash, plus an
// optional legacy-compatible digest.
package fingerprint

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/cespare/xxhash"
	"github.com/mimoo/GoKangarooTwelve/K12"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/ctph-go/ssdeep/pkg/ssdeep"
)

// LegacyDigest selects an optional companion digest for catalogs that
// must interoperate with older tooling. It never changes the ssdeep
// digest.
type LegacyDigest int

const (
	// LegacyNone computes no companion digest.
	LegacyNone LegacyDigest = iota
	// LegacySHA3256 computes a fixed-length SHA3-256 companion digest.
	LegacySHA3256
	// LegacyKangarooTwelve computes a variable-length KangarooTwelve XOF
	// companion digest, 32 bytes by default.
	LegacyKangarooTwelve
)

// String implements fmt.Stringer so flags and log lines can print the
// selected mode directly.
func (d LegacyDigest) String() string {
	switch d {
	case LegacySHA3256:
		return "sha3-256"
	case LegacyKangarooTwelve:
		return "kangaroo12"
	default:
		return "none"
	}
}

// kangarooTwelveOutputLen is the number of digest bytes squeezed from the
// KangarooTwelve sponge, matching the teacher's sha3/blake3 convention of
// a 256-bit legacy digest.
const kangarooTwelveOutputLen = 32

// Bundle holds every digest computed for one byte stream.
type Bundle struct {
	// Path identifies the source the bundle was computed from; empty for
	// in-memory buffers hashed via ComputeBytes.
	Path string
	// Prefilter is the hex-encoded xxhash, useful for a cheap exact-match
	// short-circuit before ever invoking the ssdeep comparator.
	Prefilter string
	// Identity is the hex-encoded BLAKE3-256 digest, a forensic-grade
	// exact-match key.
	Identity string
	// Fuzzy is the ssdeep signature string.
	Fuzzy string
	// Legacy is the hex-encoded companion digest, empty unless requested.
	Legacy string
}

// Compute reads r until exhaustion and returns the fingerprint bundle.
// Every digest is computed in a single pass over r.
func Compute(r io.Reader, path string, legacy LegacyDigest) (Bundle, error) {
	xh := xxhash.New()
	bh := blake3.New()
	sh := ssdeep.NewState()

	writers := []io.Writer{xh, bh, sh}

	var legacyWriter io.Writer
	sha3h := sha3.New256()
	k12h := K12.NewK12(nil)
	switch legacy {
	case LegacySHA3256:
		legacyWriter = sha3h
		writers = append(writers, legacyWriter)
	case LegacyKangarooTwelve:
		legacyWriter = &k12h
		writers = append(writers, legacyWriter)
	}

	if _, err := io.Copy(io.MultiWriter(writers...), r); err != nil {
		return Bundle{}, fmt.Errorf("fingerprint: reading %s: %w", path, err)
	}

	b := Bundle{
		Path:      path,
		Prefilter: hex.EncodeToString(xh.Sum(nil)),
		Identity:  hex.EncodeToString(bh.Sum(nil)),
		Fuzzy:     sh.Digest(),
	}

	switch legacy {
	case LegacySHA3256:
		b.Legacy = hex.EncodeToString(sha3h.Sum(nil))
	case LegacyKangarooTwelve:
		digest := make([]byte, kangarooTwelveOutputLen)
		if _, err := k12h.Read(digest); err != nil {
			return Bundle{}, fmt.Errorf("fingerprint: squeezing kangaroo12 digest: %w", err)
		}
		b.Legacy = hex.EncodeToString(digest)
	}

	return b, nil
}

// ComputeBytes is Compute for an in-memory buffer.
func ComputeBytes(data []byte, legacy LegacyDigest) (Bundle, error) {
	return Compute(bytes.NewReader(data), "", legacy)
}

// SamePrefilter reports whether two bundles share the same prefilter
// digest, a necessary (not sufficient) condition for byte-identical
// content.
func (b Bundle) SamePrefilter(other Bundle) bool {
	return b.Prefilter == other.Prefilter
}

// SameIdentity reports whether two bundles share the same identity
// digest; collisions are computationally infeasible, so this is treated
// as a byte-identical determination.
func (b Bundle) SameIdentity(other Bundle) bool {
	return b.Identity == other.Identity
}
