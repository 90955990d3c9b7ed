package fountain

import (
	"fmt"
	"slices"
)

// Decoder reconstructs a message from parts received in any order.
//
// Each accepted part is one linear equation over GF(2): a bitset
// naming the fragments it combines and the XOR of their bytes. The
// decoder keeps the equations in reduced row echelon form,
// incrementally eliminating every incoming part against what it
// already holds. A part that reduces to nothing was a duplicate or a
// combination of known parts; the message is solved exactly when the
// rank reaches the fragment count, at which point every row holds one
// plain fragment.
type Decoder struct {
	started     bool
	seqLen      int
	messageLen  int
	checksum    uint32
	fragmentLen int

	rows     []decoderRow // reduced row echelon form, ascending pivot order
	received int
}

// decoderRow is one reduced equation: pivot is the lowest set bit of
// indexes, and no other row has that bit set.
type decoderRow struct {
	pivot   int
	indexes bitset
	data    []byte
}

// NewDecoder returns an empty decoder. The first accepted part locks
// the session onto that part's message geometry; parts describing any
// other message are rejected from then on.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Receive folds one part into the decoder. It returns true when the
// part carried new information and false when it was a duplicate or a
// linear combination of parts already held; redundancy is expected
// in a fountain stream and is not an error. Errors are reserved for
// parts that cannot belong to any session (ErrMalformedPart) or that
// describe a different message than the locked session
// (ErrIncompatibleSession); either way the session state is
// unchanged and decoding can continue.
func (d *Decoder) Receive(p Part) (bool, error) {
	if err := p.validate(); err != nil {
		return false, err
	}
	if !d.started {
		d.seqLen = p.SeqLen
		d.messageLen = p.MessageLen
		d.checksum = p.Checksum
		d.fragmentLen = p.FragmentLen
		d.started = true
	} else if err := d.match(p); err != nil {
		return false, err
	}
	d.received++

	indexes := newBitset(d.seqLen)
	for _, idx := range p.Indexes() {
		indexes.set(idx)
	}
	data := make([]byte, d.fragmentLen)
	copy(data, p.Data) // zero-pads a short final fragment

	// Reduce the incoming equation by every held pivot. Rows are
	// fully reduced, so a single ascending pass clears them all.
	for _, r := range d.rows {
		if indexes.test(r.pivot) {
			indexes.xor(r.indexes)
			xorBytes(data, r.data)
		}
	}
	pivot := indexes.first()
	if pivot < 0 {
		return false, nil
	}

	// Clear the new pivot column from every held row, then insert in
	// pivot order, keeping the form fully reduced.
	for i := range d.rows {
		if d.rows[i].indexes.test(pivot) {
			d.rows[i].indexes.xor(indexes)
			xorBytes(d.rows[i].data, data)
		}
	}
	at, _ := slices.BinarySearchFunc(d.rows, pivot, func(r decoderRow, p int) int {
		return r.pivot - p
	})
	d.rows = slices.Insert(d.rows, at, decoderRow{pivot: pivot, indexes: indexes, data: data})
	return true, nil
}

// Complete reports whether the received parts determine every
// fragment.
func (d *Decoder) Complete() bool {
	return d.started && len(d.rows) == d.seqLen
}

// Rank returns how many linearly independent parts the decoder holds.
// The message is solvable when Rank reaches SeqLen.
func (d *Decoder) Rank() int {
	return len(d.rows)
}

// Received returns how many valid parts the decoder has consumed,
// counting duplicates and other non-innovative parts.
func (d *Decoder) Received() int {
	return d.received
}

// SeqLen returns the fragment count of the locked session, or 0
// before the first part arrives.
func (d *Decoder) SeqLen() int {
	return d.seqLen
}

// MessageLen returns the message length of the locked session, or 0
// before the first part arrives.
func (d *Decoder) MessageLen() int {
	return d.messageLen
}

// Checksum returns the message checksum of the locked session, or 0
// before the first part arrives.
func (d *Decoder) Checksum() uint32 {
	return d.checksum
}

// Message returns the reconstructed message. While parts are still
// missing it fails with ErrInsufficientParts. Once complete, the
// fragments are joined, padding is trimmed to the message length, and
// the result is verified against the checksum the parts carried.
func (d *Decoder) Message() ([]byte, error) {
	if !d.Complete() {
		return nil, fmt.Errorf("%w: %d of %d fragments determined", ErrInsufficientParts, len(d.rows), d.seqLen)
	}
	// Full rank in reduced form means every row is a unit vector, so
	// row i holds exactly fragment i.
	fragments := make([][]byte, len(d.rows))
	for i, r := range d.rows {
		fragments[i] = r.data
	}
	message, err := Join(fragments, d.messageLen)
	if err != nil {
		return nil, err
	}
	if got := Checksum(message); got != d.checksum {
		return nil, fmt.Errorf("%w: reconstructed message hashes to %08x, parts said %08x", ErrInvalidChecksum, got, d.checksum)
	}
	return message, nil
}

func (d *Decoder) match(p Part) error {
	if p.SeqLen != d.seqLen || p.MessageLen != d.messageLen ||
		p.Checksum != d.checksum || p.FragmentLen != d.fragmentLen {
		return fmt.Errorf("%w: part %s describes %d bytes in %d fragments of %d (checksum %08x), session holds %d bytes in %d fragments of %d (checksum %08x)",
			ErrIncompatibleSession,
			p, p.MessageLen, p.SeqLen, p.FragmentLen, p.Checksum,
			d.messageLen, d.seqLen, d.fragmentLen, d.checksum)
	}
	return nil
}
