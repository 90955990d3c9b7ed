// Package qr renders part strings as QR codes. It wraps the encoder
// library behind the two shapes the display pipeline needs, a module
// matrix for terminal rendering and a PNG for file export, and
// validates content length up front so an oversized part fails with a
// useful message instead of a renderer error.
package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Level selects the error-correction strength of a rendered code.
// Stronger correction survives more display damage but shrinks the
// byte capacity, which bounds how long a single part may be.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// ErrTooLong is returned when content exceeds the byte capacity of
// the requested error-correction level.
var ErrTooLong = errors.New("qr: content too long")

// Byte-mode capacities at version 40, the largest defined symbol.
const (
	capacityL = 2953
	capacityM = 2331
	capacityQ = 1663
	capacityH = 1273
)

// ParseLevel maps the single-letter names used on the command line to
// a level. Case does not matter.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return 0, fmt.Errorf("unknown error-correction level %q (want L, M, Q or H)", s)
}

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	panic("qr: unknown level")
}

// Capacity returns the byte-mode capacity of the level at version 40,
// the hard upper bound on content length.
func (l Level) Capacity() int {
	switch l {
	case LevelL:
		return capacityL
	case LevelM:
		return capacityM
	case LevelQ:
		return capacityQ
	case LevelH:
		return capacityH
	}
	panic("qr: unknown level")
}

func (l Level) recovery() qrcode.RecoveryLevel {
	switch l {
	case LevelL:
		return qrcode.Low
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	}
	panic("qr: unknown level")
}

// Validate reports whether content fits a single code at the given
// level, without rendering anything.
func Validate(content string, level Level) error {
	if len(content) > level.Capacity() {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte capacity at level %s",
			ErrTooLong, len(content), level.Capacity(), level)
	}
	return nil
}

// Matrix renders content to a module matrix, true for dark modules,
// including the quiet zone the standard requires around the symbol.
func Matrix(content string, level Level) ([][]bool, error) {
	if err := Validate(content, level); err != nil {
		return nil, err
	}
	code, err := qrcode.New(content, level.recovery())
	if err != nil {
		return nil, err
	}
	return code.Bitmap(), nil
}

// PNG renders content to a PNG image of about size by size pixels.
func PNG(content string, level Level, size int) ([]byte, error) {
	if err := Validate(content, level); err != nil {
		return nil, err
	}
	return qrcode.Encode(content, level.recovery(), size)
}
