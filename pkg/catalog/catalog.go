// Package catalog implements a near-duplicate index over ssdeep
// signatures and a deterministic way to spread a batch of files across a
// fixed worker pool.
package catalog

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"

	"github.com/ctph-go/ssdeep/pkg/ssdeep"
)

// prefixLen is how many characters of a digest contribute to a bucket
// key. It is a heuristic sharding hint, not a correctness requirement:
// every candidate a bucket produces is re-verified with the real
// comparator before being reported.
const prefixLen = 7

// Entry is one signature tracked by an Index.
type Entry struct {
	Path      string
	Signature ssdeep.Signature
}

// Match is a candidate returned by Lookup, already verified against the
// real comparator.
type Match struct {
	Entry Entry
	Score int
}

// Index buckets entries by a siphash-keyed digest of their block size and
// a digest prefix, so a lookup only has to run the comparator against the
// handful of entries that could plausibly be compatible instead of the
// whole catalog. The key is generated once per Index and never persisted,
// so bucket assignment cannot be predicted or steered from outside a
// single run.
type Index struct {
	key0, key1 uint64
	buckets    map[uint64][]Entry
}

// NewIndex creates an empty index with a fresh random shard key.
func NewIndex() (*Index, error) {
	var keyBytes [16]byte
	if _, err := rand.Read(keyBytes[:]); err != nil {
		return nil, fmt.Errorf("catalog: generating shard key: %w", err)
	}
	return &Index{
		key0:    binary.LittleEndian.Uint64(keyBytes[0:8]),
		key1:    binary.LittleEndian.Uint64(keyBytes[8:16]),
		buckets: make(map[uint64][]Entry),
	}, nil
}

func (idx *Index) bucketKey(blockSize uint64, prefix string) uint64 {
	if len(prefix) > prefixLen {
		prefix = prefix[:prefixLen]
	}
	buf := make([]byte, 8+len(prefix))
	binary.LittleEndian.PutUint64(buf, blockSize)
	copy(buf[8:], prefix)
	return siphash.Hash(idx.key0, idx.key1, buf)
}

// Add inserts an entry into the index. It is bucketed under both of its
// digests so that a query at the same, double, or half block size can
// find it regardless of which of the query's two digests would end up
// compared against which of the entry's.
func (idx *Index) Add(e Entry) {
	sig := e.Signature
	idx.insertBucket(idx.bucketKey(sig.BlockSize, sig.Block1), e)
	idx.insertBucket(idx.bucketKey(sig.BlockSize, sig.Block2), e)
}

func (idx *Index) insertBucket(key uint64, e Entry) {
	idx.buckets[key] = append(idx.buckets[key], e)
}

// Lookup returns the indexed entries that share a bucket with query (same
// first prefixLen digest characters at a compatible block size) and score
// above 0 against it by the real comparator, highest score first. An
// entry whose compared digest starts differently is not found, even if
// the comparator would give it a nonzero score.
func (idx *Index) Lookup(query ssdeep.Signature) []Match {
	seen := make(map[string]bool)
	var matches []Match

	consider := func(key uint64) {
		for _, e := range idx.buckets[key] {
			if seen[e.Path] {
				continue
			}
			seen[e.Path] = true
			if score := query.Compare(e.Signature); score > 0 {
				matches = append(matches, Match{Entry: e, Score: score})
			}
		}
	}

	consider(idx.bucketKey(query.BlockSize, query.Block1))
	consider(idx.bucketKey(query.BlockSize, query.Block2))
	consider(idx.bucketKey(query.BlockSize*2, query.Block2))
	if query.BlockSize%2 == 0 {
		consider(idx.bucketKey(query.BlockSize/2, query.Block1))
	}

	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].Score < matches[j].Score; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
	return matches
}

// Len returns the number of distinct entries added to the index.
func (idx *Index) Len() int {
	seen := make(map[string]bool)
	for _, bucket := range idx.buckets {
		for _, e := range bucket {
			seen[e.Path] = true
		}
	}
	return len(seen)
}
