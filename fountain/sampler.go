package fountain

// aliasSampler draws from a fixed discrete distribution in constant
// time per draw using the Walker-Vose alias method. Construction is
// deterministic: encoders and decoders rebuild the table independently
// and must agree on every draw, so the same weights always produce
// the same table.
type aliasSampler struct {
	probs   []float64
	aliases []int
}

func newAliasSampler(weights []float64) *aliasSampler {
	n := len(weights)
	var total float64
	for _, w := range weights {
		total += w
	}
	scaled := make([]float64, n)
	for i, w := range weights {
		scaled[i] = w * float64(n) / total
	}

	// Worklists are seeded from the highest index down; the table
	// layout depends on this order, so it is as fixed as the
	// generator stream itself.
	var small, large []int
	for i := n - 1; i >= 0; i-- {
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	s := &aliasSampler{
		probs:   make([]float64, n),
		aliases: make([]int, n),
	}
	for len(small) > 0 && len(large) > 0 {
		a := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		s.probs[a] = scaled[a]
		s.aliases[a] = g
		scaled[g] += scaled[a] - 1
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}
	for len(large) > 0 {
		s.probs[large[len(large)-1]] = 1
		large = large[:len(large)-1]
	}
	for len(small) > 0 {
		s.probs[small[len(small)-1]] = 1
		small = small[:len(small)-1]
	}
	return s
}

// next draws one index, consuming exactly two values from rand.
func (s *aliasSampler) next(rand func() float64) int {
	r1 := rand()
	r2 := rand()
	i := int(float64(len(s.probs)) * r1)
	if i >= len(s.probs) {
		i = len(s.probs) - 1
	}
	if r2 < s.probs[i] {
		return i
	}
	return s.aliases[i]
}
