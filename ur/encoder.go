package ur

import (
	"fmt"

	"github.com/qurcode/qur/bytewords"
	"github.com/qurcode/qur/fountain"
)

// Encoder renders one resource as a stream of multi-part strings:
// ur:<type>/<seqNum>-<seqLen>/<part body as minimal bytewords>.
// The fountain code runs over the resource's CBOR bytes, the same
// bytes the single-part form carries whole.
type Encoder struct {
	u  UR
	fe *fountain.Encoder
}

// NewEncoder prepares u for multi-part display with the given
// fragment length.
func NewEncoder(u UR, fragmentLen int) (*Encoder, error) {
	if !validType(u.typ) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, u.typ)
	}
	fe, err := fountain.NewEncoder(u.cbor, fragmentLen)
	if err != nil {
		return nil, err
	}
	return &Encoder{u: u, fe: fe}, nil
}

// UR returns the resource being encoded.
func (e *Encoder) UR() UR {
	return e.u
}

// SeqLen returns the number of fragments, which is also the number of
// parts a loss-free receiver needs.
func (e *Encoder) SeqLen() int {
	return e.fe.SeqLen()
}

// PartAt returns part seqNum as a display string. Like the
// underlying fountain encoder it is pure: any part, any order, any
// number of times. PartAt panics if seqNum is 0.
func (e *Encoder) PartAt(seqNum uint64) (string, error) {
	part := e.fe.PartAt(seqNum)
	wire, err := part.CBOR()
	if err != nil {
		return "", fmt.Errorf("encoding part %s: %w", part, err)
	}
	return scheme + e.u.typ + "/" + part.String() + "/" + bytewords.Encode(bytewords.Minimal, wire), nil
}

// Parts returns parts 1 through count. A count beyond SeqLen appends
// mixed parts for receivers with losses.
func (e *Encoder) Parts(count int) ([]string, error) {
	if count < 1 {
		return nil, nil
	}
	parts := make([]string, count)
	for i := range parts {
		s, err := e.PartAt(uint64(i) + 1)
		if err != nil {
			return nil, err
		}
		parts[i] = s
	}
	return parts, nil
}
