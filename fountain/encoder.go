// Package fountain implements a rateless erasure code for carrying a
// message over a lossy one-way channel, such as a stream of barcodes
// on a screen. The sender splits the message into fragments and emits
// an endless sequence of parts: first the plain fragments, then
// pseudo-random XOR combinations of them. Each part names only its
// sequence number; which fragments it combines is re-derived from the
// message geometry, never transmitted. A receiver that observes any
// sufficiently large subset of parts, in any order, with any amount
// of loss or duplication, recovers the exact message and verifies it
// against a checksum.
package fountain

import "fmt"

// Encoder produces the parts of one message. It is frozen at
// construction: the message bytes, geometry and checksum never change
// afterwards, which is what makes every part a pure function of its
// sequence number.
type Encoder struct {
	fragments   [][]byte // zero-padded to fragmentLen for mixing
	lastLen     int      // true length of the final fragment
	messageLen  int
	checksum    uint32
	fragmentLen int
}

// NewEncoder prepares message for transmission in fragments of
// fragmentLen bytes. The message is copied, so the caller's buffer is
// free for reuse. An empty message is legal and encodes as a single
// empty fragment.
func NewEncoder(message []byte, fragmentLen int) (*Encoder, error) {
	views, err := Partition(message, fragmentLen)
	if err != nil {
		return nil, fmt.Errorf("partitioning message: %w", err)
	}
	fragments := make([][]byte, len(views))
	for i, v := range views {
		f := make([]byte, fragmentLen)
		copy(f, v)
		fragments[i] = f
	}
	return &Encoder{
		fragments:   fragments,
		lastLen:     len(views[len(views)-1]),
		messageLen:  len(message),
		checksum:    Checksum(message),
		fragmentLen: fragmentLen,
	}, nil
}

// SeqLen returns the number of fragments the message was split into,
// which is also the number of plain parts at the head of the
// sequence.
func (e *Encoder) SeqLen() int {
	return len(e.fragments)
}

// MessageLen returns the exact byte length of the message.
func (e *Encoder) MessageLen() int {
	return e.messageLen
}

// Checksum returns the CRC-32 carried by every part.
func (e *Encoder) Checksum() uint32 {
	return e.checksum
}

// FragmentLen returns the fragment length the encoder was built with.
func (e *Encoder) FragmentLen() int {
	return e.fragmentLen
}

// PartAt returns part seqNum. It is pure: parts can be generated in
// any order, any number of times, and regenerating a part always
// yields identical bytes. Callers that stream parts keep their own
// counter; the encoder holds no cursor. PartAt panics if seqNum is 0.
func (e *Encoder) PartAt(seqNum uint64) Part {
	if seqNum < 1 {
		panic("fountain: sequence numbers start at 1")
	}
	return Part{
		SeqNum:      seqNum,
		SeqLen:      e.SeqLen(),
		MessageLen:  e.messageLen,
		Checksum:    e.checksum,
		FragmentLen: e.fragmentLen,
		Data:        e.dataFor(seqNum),
	}
}

// Parts returns parts 1 through count. The count may exceed SeqLen;
// the surplus is mixed parts, which give a receiver extra chances to
// fill whatever it missed. A count below 1 returns nil.
func (e *Encoder) Parts(count int) []Part {
	if count < 1 {
		return nil
	}
	parts := make([]Part, count)
	for i := range parts {
		parts[i] = e.PartAt(uint64(i) + 1)
	}
	return parts
}

func (e *Encoder) dataFor(seqNum uint64) []byte {
	if seqNum <= uint64(len(e.fragments)) {
		f := e.fragments[seqNum-1]
		if seqNum == uint64(len(e.fragments)) {
			f = f[:e.lastLen]
		}
		out := make([]byte, len(f))
		copy(out, f)
		return out
	}
	out := make([]byte, e.fragmentLen)
	for _, idx := range ChooseFragments(seqNum, len(e.fragments), e.checksum) {
		xorBytes(out, e.fragments[idx])
	}
	return out
}
