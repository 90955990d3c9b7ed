package fountain

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/bits"
)

// xoshiro256 is the xoshiro256** generator of Blackman and Vigna,
// seeded from the SHA-256 digest of an arbitrary byte string. Index
// selection has to be reproducible from part metadata alone on every
// platform and in every implementation, so the generator is spelled
// out here instead of delegated to math/rand, whose streams are not
// part of any compatibility promise.
type xoshiro256 struct {
	s [4]uint64
}

func newXoshiro256(seed []byte) *xoshiro256 {
	digest := sha256.Sum256(seed)
	var x xoshiro256
	for i := range x.s {
		x.s[i] = binary.BigEndian.Uint64(digest[8*i:])
	}
	return &x
}

func (x *xoshiro256) next() uint64 {
	result := bits.RotateLeft64(x.s[1]*5, 7) * 9
	t := x.s[1] << 17
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = bits.RotateLeft64(x.s[3], 45)
	return result
}

// nextInt returns a value in [low, high]. The modulo bias is
// negligible for the fragment counts involved and keeping the draw to
// a single next() call keeps the stream layout fixed.
func (x *xoshiro256) nextInt(low, high int) int {
	return low + int(x.next()%uint64(high-low+1))
}

// nextDouble scales next() to the unit interval. The scaling can
// round to exactly 1.0 for the topmost raw values; consumers index
// with the result and clamp.
func (x *xoshiro256) nextDouble() float64 {
	return float64(x.next()) / float64(math.MaxUint64)
}
