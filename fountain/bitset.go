package fountain

import "math/bits"

// bitset is a fixed-width bit vector, used as the indicator row over
// fragment indexes during elimination.
type bitset []uint64

func newBitset(width int) bitset {
	return make(bitset, (width+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (i % 64)
}

func (b bitset) test(i int) bool {
	return b[i/64]&(1<<(i%64)) != 0
}

// xor folds other into b. Both must have the same width.
func (b bitset) xor(other bitset) {
	for i, w := range other {
		b[i] ^= w
	}
}

func (b bitset) empty() bool {
	for _, w := range b {
		if w != 0 {
			return false
		}
	}
	return true
}

// first returns the lowest set bit, or -1 if none is set.
func (b bitset) first() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// ones returns the number of set bits.
func (b bitset) ones() int {
	var n int
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}
