package fountain

import (
	"encoding/binary"
	"slices"
)

// ChooseFragments returns the fragment indexes combined in part
// seqNum of a message with seqLen fragments and the given checksum.
// The subset is a pure function of those three values, so it never
// travels with the part: encoder and decoder derive it independently
// and always agree.
//
// Parts 1 through seqLen carry the plain fragments in order. Every
// later part mixes a pseudo-random subset whose size follows a
// reciprocal distribution: low degrees dominate, while every degree
// up to seqLen keeps nonzero probability. The returned indexes are
// sorted and distinct.
//
// ChooseFragments panics if seqNum is 0 or seqLen is less than 1;
// sequence numbers start at 1.
func ChooseFragments(seqNum uint64, seqLen int, checksum uint32) []int {
	if seqNum < 1 {
		panic("fountain: sequence numbers start at 1")
	}
	if seqLen < 1 {
		panic("fountain: sequence length must be at least 1")
	}
	if seqNum <= uint64(seqLen) {
		return []int{int(seqNum - 1)}
	}

	seed := make([]byte, 12)
	binary.BigEndian.PutUint64(seed, seqNum)
	binary.BigEndian.PutUint32(seed[8:], checksum)
	rng := newXoshiro256(seed)

	degree := chooseDegree(seqLen, rng)
	indexes := make([]int, seqLen)
	for i := range indexes {
		indexes[i] = i
	}
	shuffle(indexes, rng)
	chosen := indexes[:degree]
	slices.Sort(chosen)
	return chosen
}

// chooseDegree samples how many fragments a mixed part combines:
// degree d with probability proportional to 1/d over 1..seqLen.
func chooseDegree(seqLen int, rng *xoshiro256) int {
	weights := make([]float64, seqLen)
	for d := 1; d <= seqLen; d++ {
		weights[d-1] = 1 / float64(d)
	}
	return newAliasSampler(weights).next(rng.nextDouble) + 1
}

// shuffle permutes indexes in place by drawing each position from the
// shrinking remainder, so a prefix of the result is a uniform draw
// without replacement. The draw order is part of the deterministic
// selection contract.
func shuffle(indexes []int, rng *xoshiro256) {
	remaining := slices.Clone(indexes)
	for i := range indexes {
		j := rng.nextInt(0, len(remaining)-1)
		indexes[i] = remaining[j]
		remaining = slices.Delete(remaining, j, j+1)
	}
}
