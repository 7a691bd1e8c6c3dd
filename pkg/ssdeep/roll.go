package ssdeep

// rollingState maintains the 7-byte sliding-window hash used to detect
// trigger points in the input stream. It never contributes to the emitted
// digest characters directly; it only decides when a block hash resets.
type rollingState struct {
	window [RollingWindow]byte
	n      uint32
	h1, h2, h3 uint32
}

// hash folds the next byte into the rolling state. All arithmetic is
// unsigned 32-bit, matching the reference implementation's wraparound.
func (r *rollingState) hash(c byte) {
	u := uint32(c)

	r.h2 -= r.h1
	r.h2 += uint32(RollingWindow) * u

	r.h1 += u
	r.h1 -= uint32(r.window[r.n])

	r.window[r.n] = c
	r.n = (r.n + 1) % RollingWindow

	r.h3 <<= 5
	r.h3 ^= u
}

// sum returns the current rolling hash value.
func (r *rollingState) sum() uint32 {
	return r.h1 + r.h2 + r.h3
}
