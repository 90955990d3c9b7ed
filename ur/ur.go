// Package ur implements the uniform resource text form of a binary
// payload: a URI-like string safe to put in a QR code's alphanumeric
// space. A payload small enough for one barcode travels as a single
// string; anything larger becomes an endless sequence of fountain
// parts, each a self-contained string, which a receiver can watch
// from any starting point and with any losses.
package ur

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/qurcode/qur/bytewords"
	"github.com/qurcode/qur/fountain"
)

const scheme = "ur:"

// BytesType tags a plain byte-string payload, the only type the
// display tool emits.
const BytesType = "bytes"

// ErrInvalidType is returned when constructing a resource with a type
// tag that is not lowercase letters, digits and dashes.
var ErrInvalidType = errors.New("ur: invalid type")

// UR is a typed binary resource: a type tag naming what the payload
// is, plus the payload as CBOR bytes.
type UR struct {
	typ  string
	cbor []byte
}

// New returns a resource carrying payload, which must already be
// CBOR, under the given type tag.
func New(typ string, payload []byte) (UR, error) {
	if !validType(typ) {
		return UR{}, fmt.Errorf("%w: %q (want lowercase letters, digits and dashes)", ErrInvalidType, typ)
	}
	return UR{typ: typ, cbor: payload}, nil
}

// NewBytes returns a resource of type "bytes": the payload wrapped in
// a CBOR byte string.
func NewBytes(payload []byte) UR {
	wire, err := cbor.Marshal(payload)
	if err != nil {
		// Marshal of a byte slice cannot fail.
		panic(err)
	}
	return UR{typ: BytesType, cbor: wire}
}

// Type returns the resource's type tag.
func (u UR) Type() string {
	return u.typ
}

// CBOR returns the payload bytes. The slice is shared, not copied;
// treat it as read-only.
func (u UR) CBOR() []byte {
	return u.cbor
}

// Bytes unwraps a byte-string payload such as NewBytes builds. It
// fails when the payload is CBOR of some other shape.
func (u UR) Bytes() ([]byte, error) {
	var payload []byte
	if err := cbor.Unmarshal(u.cbor, &payload); err != nil {
		return nil, fmt.Errorf("ur: payload of type %q is not a byte string: %v", u.typ, err)
	}
	return payload, nil
}

// String renders the resource in its single-part form.
func (u UR) String() string {
	return Encode(u)
}

// Encode renders u as a single-part resource string:
// ur:<type>/<payload as minimal bytewords>.
func Encode(u UR) string {
	return scheme + u.typ + "/" + bytewords.Encode(bytewords.Minimal, u.cbor)
}

// Decode parses a single-part resource string as produced by Encode.
// Multi-part strings belong to a Decoder session and are rejected
// here.
func Decode(s string) (UR, error) {
	ref, err := parse(s)
	if err != nil {
		return UR{}, err
	}
	if ref.multi {
		return UR{}, fmt.Errorf("%w: %q is part %d of a %d-part sequence, not a single-part resource",
			fountain.ErrMalformedPart, s, ref.seqNum, ref.seqLen)
	}
	return UR{typ: ref.typ, cbor: ref.body}, nil
}

// partRef is one parsed part string of either kind. body holds the
// bytewords payload: the resource CBOR for single-part strings, a
// fountain part body for multi-part ones.
type partRef struct {
	typ    string
	multi  bool
	seqNum uint64
	seqLen int
	body   []byte
}

// parse splits and validates a part string. Scanners often upcase QR
// contents, so input is lowercased first.
func parse(s string) (partRef, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	rest, ok := strings.CutPrefix(lower, scheme)
	if !ok {
		return partRef{}, fmt.Errorf("%w: %q has no %q scheme", fountain.ErrMalformedPart, s, scheme)
	}
	pieces := strings.Split(rest, "/")
	if len(pieces) != 2 && len(pieces) != 3 {
		return partRef{}, fmt.Errorf("%w: %q has %d path components, want 2 or 3", fountain.ErrMalformedPart, s, len(pieces))
	}
	if !validType(pieces[0]) {
		return partRef{}, fmt.Errorf("%w: type %q (want lowercase letters, digits and dashes)", fountain.ErrMalformedPart, pieces[0])
	}
	body, err := bytewords.Decode(bytewords.Minimal, pieces[len(pieces)-1])
	if err != nil {
		return partRef{}, fmt.Errorf("%w: %v", fountain.ErrMalformedPart, err)
	}

	ref := partRef{typ: pieces[0], body: body}
	if len(pieces) == 3 {
		ref.multi = true
		ref.seqNum, ref.seqLen, err = parseSeq(pieces[1])
		if err != nil {
			return partRef{}, fmt.Errorf("%w: sequence path %q: %v", fountain.ErrMalformedPart, pieces[1], err)
		}
	}
	return ref, nil
}

// parseSeq parses the <seqNum>-<seqLen> path component.
func parseSeq(s string) (uint64, int, error) {
	numStr, lenStr, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("want <seqNum>-<seqLen>")
	}
	seqNum, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil || seqNum < 1 {
		return 0, 0, fmt.Errorf("bad sequence number %q", numStr)
	}
	seqLen, err := strconv.ParseUint(lenStr, 10, 31)
	if err != nil || seqLen < 1 {
		return 0, 0, fmt.Errorf("bad sequence length %q", lenStr)
	}
	return seqNum, int(seqLen), nil
}

func validType(typ string) bool {
	if typ == "" {
		return false
	}
	for i := 0; i < len(typ); i++ {
		c := typ[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
