package ur

import (
	"bytes"
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/qurcode/qur/fountain"
)

var log = logging.Logger("ur")

// Decoder assembles a resource from part strings observed in any
// order: single-part strings, multi-part fountain sequences, or an
// endlessly looping display joined midway. The first part locks the
// session's type and message; parts that cannot belong to that
// message are rejected with an error while the session stays usable.
type Decoder struct {
	typ    string
	fd     *fountain.Decoder
	single []byte // payload of a completed single-part resource
	done   bool
}

// NewDecoder returns a decoder with no session.
func NewDecoder() *Decoder {
	return &Decoder{fd: fountain.NewDecoder()}
}

// Receive folds one part string into the session. It returns true
// when the part carried new information and false for redundant
// parts, which a looping display produces constantly. An error means
// the string was rejected (malformed, or describing a different
// resource than the session holds) and changes nothing.
func (d *Decoder) Receive(s string) (bool, error) {
	ref, err := parse(s)
	if err != nil {
		return false, err
	}
	if !ref.multi {
		if err := d.lockType(ref.typ); err != nil {
			return false, err
		}
		return d.receiveSingle(ref)
	}

	part, err := fountain.PartFromCBOR(ref.body)
	if err != nil {
		return false, err
	}
	if part.SeqNum != ref.seqNum || part.SeqLen != ref.seqLen {
		return false, fmt.Errorf("%w: path says %d-%d, body says %s", fountain.ErrMalformedPart, ref.seqNum, ref.seqLen, part)
	}
	if err := d.lockType(ref.typ); err != nil {
		return false, err
	}
	if d.done {
		return false, fmt.Errorf("%w: multi-part part after a single-part resource completed the session", fountain.ErrIncompatibleSession)
	}
	innovative, err := d.fd.Receive(part)
	if err != nil {
		return false, err
	}
	if !innovative {
		log.Debugf("redundant part %s", part)
	}
	return innovative, nil
}

func (d *Decoder) receiveSingle(ref partRef) (bool, error) {
	if d.fd.Received() > 0 {
		return false, fmt.Errorf("%w: single-part resource in a multi-part session", fountain.ErrIncompatibleSession)
	}
	if d.done {
		if bytes.Equal(d.single, ref.body) {
			log.Debugf("redundant single-part resource of type %s", ref.typ)
			return false, nil
		}
		return false, fmt.Errorf("%w: a different single-part resource of type %q", fountain.ErrIncompatibleSession, ref.typ)
	}
	d.single = ref.body
	d.done = true
	return true, nil
}

// Complete reports whether the whole resource has arrived.
func (d *Decoder) Complete() bool {
	return d.done || d.fd.Complete()
}

// Result returns the assembled resource. Until the session completes
// it fails with ErrInsufficientParts; a completed session whose
// reconstruction contradicts the checksum fails with
// ErrInvalidChecksum.
func (d *Decoder) Result() (UR, error) {
	if d.done {
		return UR{typ: d.typ, cbor: d.single}, nil
	}
	message, err := d.fd.Message()
	if err != nil {
		return UR{}, err
	}
	return UR{typ: d.typ, cbor: message}, nil
}

// Type returns the session's type tag, or "" before the first
// accepted part.
func (d *Decoder) Type() string {
	return d.typ
}

// Received returns how many multi-part parts the session consumed,
// counting redundant ones.
func (d *Decoder) Received() int {
	return d.fd.Received()
}

// Rank returns how many independent multi-part parts the session
// holds.
func (d *Decoder) Rank() int {
	return d.fd.Rank()
}

// SeqLen returns the part count of the multi-part session, or 0
// before one is locked.
func (d *Decoder) SeqLen() int {
	return d.fd.SeqLen()
}

func (d *Decoder) lockType(typ string) error {
	if d.typ == "" {
		d.typ = typ
		return nil
	}
	if typ != d.typ {
		return fmt.Errorf("%w: part type %q, session type %q", fountain.ErrIncompatibleSession, typ, d.typ)
	}
	return nil
}
