package fountain

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Part is one self-contained unit of an encoding. Every part repeats
// the full message geometry, so a receiver can join a transmission at
// any point and validate every part on its own.
//
// The wire form is a six-element CBOR array in this field order; the
// order is part of the format.
type Part struct {
	_ struct{} `cbor:",toarray"`

	// SeqNum is the 1-based sequence number the part was generated
	// for. It is unbounded: numbers beyond SeqLen name mixed parts.
	SeqNum uint64
	// SeqLen is the number of fragments the message was split into.
	SeqLen int
	// MessageLen is the exact byte length of the original message,
	// used to trim padding after reconstruction.
	MessageLen int
	// Checksum is the CRC-32 of the whole message.
	Checksum uint32
	// FragmentLen is the byte length of every fragment except
	// possibly the last.
	FragmentLen int
	// Data is the plain fragment for SeqNum <= SeqLen, otherwise the
	// XOR of the fragments chosen by ChooseFragments, zero-padded to
	// FragmentLen.
	Data []byte
}

// Part bodies use CBOR core deterministic encoding, so a part has
// exactly one byte representation.
var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// CBOR returns the part's wire encoding.
func (p Part) CBOR() ([]byte, error) {
	return encMode.Marshal(p)
}

// PartFromCBOR decodes and validates a part. Anything that is not a
// well-formed part of some message (unparsable CBOR, out-of-range
// metadata, data whose length contradicts the metadata) yields
// ErrMalformedPart.
func PartFromCBOR(data []byte) (Part, error) {
	var p Part
	if err := cbor.Unmarshal(data, &p); err != nil {
		return Part{}, fmt.Errorf("%w: %v", ErrMalformedPart, err)
	}
	if err := p.validate(); err != nil {
		return Part{}, err
	}
	return p, nil
}

// Mixed reports whether the part combines fragments rather than
// carrying a single plain one.
func (p Part) Mixed() bool {
	return p.SeqNum > uint64(p.SeqLen)
}

// Indexes returns the fragment indexes this part combines.
func (p Part) Indexes() []int {
	return ChooseFragments(p.SeqNum, p.SeqLen, p.Checksum)
}

// String renders the part's position as it appears in a part URI
// path, e.g. "12-8".
func (p Part) String() string {
	return fmt.Sprintf("%d-%d", p.SeqNum, p.SeqLen)
}

func (p Part) validate() error {
	switch {
	case p.SeqNum < 1:
		return fmt.Errorf("%w: sequence number %d, want at least 1", ErrMalformedPart, p.SeqNum)
	case p.SeqLen < 1:
		return fmt.Errorf("%w: sequence length %d, want at least 1", ErrMalformedPart, p.SeqLen)
	case p.MessageLen < 0:
		return fmt.Errorf("%w: message length %d", ErrMalformedPart, p.MessageLen)
	case p.FragmentLen < 1:
		return fmt.Errorf("%w: fragment length %d, want at least 1", ErrMalformedPart, p.FragmentLen)
	}
	if n := fragmentCount(p.MessageLen, p.FragmentLen); n != p.SeqLen {
		return fmt.Errorf("%w: a %d-byte message in %d-byte fragments has %d parts, part %s says %d",
			ErrMalformedPart, p.MessageLen, p.FragmentLen, n, p, p.SeqLen)
	}
	if want := p.expectedDataLen(); len(p.Data) != want {
		return fmt.Errorf("%w: part %s carries %d data bytes, want %d", ErrMalformedPart, p, len(p.Data), want)
	}
	return nil
}

// expectedDataLen is FragmentLen for every part except the plain last
// fragment, which carries only the message tail.
func (p Part) expectedDataLen() int {
	if !p.Mixed() && p.SeqNum == uint64(p.SeqLen) {
		return p.MessageLen - p.FragmentLen*(p.SeqLen-1)
	}
	return p.FragmentLen
}
