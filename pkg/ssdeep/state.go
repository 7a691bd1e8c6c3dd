package ssdeep

import (
	"fmt"
	"io"
	"os"
)

// State is one hashing session. It consumes bytes via Write (or by being
// passed to io.Copy) and produces a signature string via Digest. A State
// must not be used from more than one goroutine at a time; distinct States
// need no synchronization between each other.
//
// State implements io.Writer, so hashing a stream is simply io.Copy(state, r).
type State struct {
	roll rollingState
	bh   [NumBlockHashes]blockHashContext

	totalSize uint64
	fixedSize uint64
	sizeFixed bool

	bhStart, bhEnd, bhEndLimit int
	reduceBorder               uint64
	rollmask                   uint32

	needLastHash bool
	lastH        byte
}

// NewState starts a fresh hashing session.
func NewState() *State {
	s := &State{
		bhStart:      0,
		bhEnd:        1,
		bhEndLimit:   NumBlockHashes - 1,
		reduceBorder: uint64(MinBlockSize) * SpamsumLength,
	}
	for i := range s.bh {
		s.bh[i] = newBlockHashContext()
	}
	return s
}

// Write feeds data into the hashing session. It never returns an error; it
// exists so State satisfies io.Writer and can be the destination of
// io.Copy. Buffer chunking never affects the resulting digest.
func (s *State) Write(p []byte) (int, error) {
	for _, c := range p {
		s.step(c)
	}
	return len(p), nil
}

// SetTotalInputLength declares the total number of bytes that will be fed
// to this session, letting the engine pick a better initial block size. It
// is optional, must be called before any Write, and returns an error if n
// exceeds the maximum admissible input size or conflicts with a value set
// by a previous call.
func (s *State) SetTotalInputLength(n uint64) error {
	if n > maxTotalSize {
		return fmt.Errorf("%w: %d > %d", ErrInputTooLarge, n, maxTotalSize)
	}
	if s.sizeFixed && s.fixedSize != n {
		return fmt.Errorf("%w: already set to %d, cannot change to %d", ErrSizeMismatch, s.fixedSize, n)
	}
	s.sizeFixed = true
	s.fixedSize = n

	bi := 0
	for blockSize(bi)*SpamsumLength < n {
		bi++
		if bi == NumBlockHashes-2 {
			break
		}
	}
	bi++
	s.bhEndLimit = bi
	return nil
}

// step is the per-byte core of the algorithm: update the rolling hash and
// every active block hash, then test for a trigger.
func (s *State) step(c byte) {
	s.totalSize++
	s.roll.hash(c)
	horg := s.roll.sum() + 1
	h := horg / MinBlockSize

	for i := s.bhStart; i < s.bhEnd; i++ {
		s.bh[i].h = sumHash(c, s.bh[i].h)
		s.bh[i].halfH = sumHash(c, s.bh[i].halfH)
	}
	if s.needLastHash {
		s.lastH = sumHash(c, s.lastH)
	}

	// horg == 0 means roll_sum()+1 wrapped past zero, i.e. roll_sum() was
	// 0xffffffff, which is never a trigger.
	if horg == 0 {
		return
	}
	// With growing block size almost no runs fail this test.
	if h&s.rollmask != 0 {
		return
	}
	// Delay the modulo computation as long as possible.
	if horg%MinBlockSize != 0 {
		return
	}

	h >>= uint(s.bhStart)

	i := s.bhStart
	for {
		// We have hit a reset point: emit a character for every block hash
		// whose block size divides the distance since its last reset.
		if s.bh[i].digestLen() == 0 {
			// Can only happen NumBlockHashes-1 times.
			s.tryForkBlockHash()
		}

		s.bh[i].halfDigest = base64Alphabet[s.bh[i].halfH&0x3f]
		if s.bh[i].pushDigest(base64Alphabet[s.bh[i].h&0x3f]) {
			// Only reset the hash if there was room to record it; this has
			// the effect of folding the last few pieces of the message
			// into a single piece once the digest saturates.
			s.bh[i].h = HashInit
			if s.bh[i].digestLen() < SpamsumLength/2 {
				s.bh[i].halfH = HashInit
				s.bh[i].halfDigest = 0
			}
		} else {
			s.tryReduceBlockHash()
		}

		if h&1 != 0 {
			break
		}
		h >>= 1
		i++
		if i >= s.bhEnd {
			break
		}
	}
}

// tryForkBlockHash either activates the next block-hash context (cloning
// the current largest one's state) or, once the array is exhausted, starts
// tracking lastH so the finalizer can still emit a tail character for the
// smallest active block size.
func (s *State) tryForkBlockHash() {
	obh := &s.bh[s.bhEnd-1]
	if s.bhEnd <= s.bhEndLimit {
		s.bh[s.bhEnd] = blockHashContext{h: obh.h, halfH: obh.halfH}
		s.bhEnd++
	} else if s.bhEnd == NumBlockHashes && !s.needLastHash {
		s.needLastHash = true
		s.lastH = obh.h
	}
}

// tryReduceBlockHash retires the smallest active block size once it is
// clear the finalizer will never select it.
func (s *State) tryReduceBlockHash() {
	if s.bhEnd-s.bhStart < 2 {
		return
	}
	effectiveSize := s.totalSize
	if s.sizeFixed {
		effectiveSize = s.fixedSize
	}
	if s.reduceBorder >= effectiveSize {
		return
	}
	if s.bh[s.bhStart+1].digestLen() < SpamsumLength/2 {
		return
	}
	s.bhStart++
	s.reduceBorder *= 2
	s.rollmask = (s.rollmask << 1) | 1
}

// canAppend reports whether c may be appended to result without creating a
// run of four identical trailing characters.
func canAppend(c byte, result []byte) bool {
	n := len(result)
	return n < 3 || c != result[n-1] || c != result[n-2] || c != result[n-3]
}

// Digest finalizes the session and returns the signature string, or "" if
// an error condition (input too large, or a size hint violated) occurred.
// The session should not be reused for further writes afterward.
func (s *State) Digest() string {
	bi := s.bhStart
	h := s.roll.sum()

	if s.totalSize > maxTotalSize {
		return ""
	}
	if s.sizeFixed && s.fixedSize != s.totalSize {
		return ""
	}

	for blockSize(bi)*SpamsumLength < s.totalSize {
		bi++
	}
	if bi >= s.bhEnd {
		bi = s.bhEnd - 1
	}
	for bi > s.bhStart && s.bh[bi].digestLen() < SpamsumLength/2 {
		bi--
	}

	result := make([]byte, 0, fuzzyMaxResult)
	result = append(result, []byte(fmt.Sprintf("%d:", blockSize(bi)))...)
	result = append(result, []byte(eliminateSequences(s.bh[bi].digestString()))...)

	if h != 0 {
		c := base64Alphabet[s.bh[bi].h&0x3f]
		if canAppend(c, result) {
			result = append(result, c)
		}
	} else if r := s.bh[bi].lastDigest; r != 0 {
		if canAppend(r, result) {
			result = append(result, r)
		}
	}

	result = append(result, ':')

	if bi < s.bhEnd-1 {
		bi++
		s.bh[bi].trimDigestLength(SpamsumLength/2 - 1)
		result = append(result, []byte(eliminateSequences(s.bh[bi].digestString()))...)

		if h != 0 {
			c := base64Alphabet[s.bh[bi].halfH&0x3f]
			if canAppend(c, result) {
				result = append(result, c)
			}
		} else if r := s.bh[bi].halfDigest; r != 0 {
			if canAppend(r, result) {
				result = append(result, r)
			}
		}
	} else if h != 0 {
		// bi can only be 0 or NumBlockHashes-1 here, since the clamp above
		// forces bhEnd-bhStart == 1 in that case.
		if bi == 0 {
			result = append(result, base64Alphabet[s.bh[bi].h&0x3f])
		} else {
			result = append(result, base64Alphabet[s.lastH&0x3f])
		}
		// No need to bother with run-length elimination: this digest has
		// length 1.
	}

	return string(result)
}

// Hash computes the ssdeep fuzzy hash of a finite byte buffer.
func Hash(data []byte) (string, error) {
	s := NewState()
	if _, err := s.Write(data); err != nil {
		return "", err
	}
	return s.Digest(), nil
}

// HashReader computes the ssdeep fuzzy hash by reading r until exhaustion.
// Chunking of the underlying reads never affects the result. r is not
// closed by this function.
func HashReader(r io.Reader) (string, error) {
	s := NewState()
	if _, err := io.Copy(s, r); err != nil {
		return "", fmt.Errorf("ssdeep: reading input: %w", err)
	}
	return s.Digest(), nil
}

// HashFile computes the ssdeep fuzzy hash of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ssdeep: opening %s: %w", path, err)
	}
	defer f.Close()
	return HashReader(f)
}
