package fountain

import "errors"

var (
	// ErrInvalidConfig is returned when an encoder or helper is asked
	// to work with impossible parameters, such as a fragment length
	// below one.
	ErrInvalidConfig = errors.New("fountain: invalid configuration")

	// ErrMalformedPart is returned when a part fails structural
	// validation: unparsable encoding, out-of-range metadata, or data
	// whose length contradicts the metadata.
	ErrMalformedPart = errors.New("fountain: malformed part")

	// ErrIncompatibleSession is returned when a structurally valid
	// part describes a different message than the one a decoder has
	// locked onto.
	ErrIncompatibleSession = errors.New("fountain: part incompatible with session")

	// ErrInsufficientParts is returned by Decoder.Message while the
	// received parts do not yet determine every fragment. It marks a
	// session that needs more input, not a failed one.
	ErrInsufficientParts = errors.New("fountain: insufficient parts")

	// ErrInvalidChecksum is returned when a fully reconstructed
	// message does not hash to the checksum its parts carried.
	ErrInvalidChecksum = errors.New("fountain: invalid checksum")
)
