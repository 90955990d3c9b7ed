// Package bytewords encodes binary data as sequences of short English
// words, so that payloads can travel through channels that only carry
// display-safe text (QR codes, URI paths, read-aloud backup sheets).
//
// Each of the 256 byte values maps to a unique four-letter word. The
// words are chosen so that the first and last letters alone identify
// the word, which gives a compact two-characters-per-byte form. Every
// encoding carries a CRC-32 of the payload in its last four words, so
// a decode either returns the exact original bytes or fails.
package bytewords

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// Style selects the output form of an encoding.
type Style int

const (
	// Standard produces full words separated by spaces.
	Standard Style = iota
	// URI produces full words separated by dashes, safe to embed in a
	// URI path without escaping.
	URI
	// Minimal produces the first and last letter of each word with no
	// separator, two characters per byte.
	Minimal
)

// ErrInvalidWord is returned when decoding input that contains a
// token which is not one of the 256 bytewords.
var ErrInvalidWord = errors.New("bytewords: invalid word")

// ErrInvalidLength is returned when decoding input whose shape cannot
// be a byteword sequence at all: an odd number of minimal characters,
// or fewer words than the checksum alone occupies.
var ErrInvalidLength = errors.New("bytewords: invalid length")

// ErrInvalidChecksum is returned when a decoded sequence is
// well-formed but its checksum words don't match its payload.
var ErrInvalidChecksum = errors.New("bytewords: invalid checksum")

// checksumSize is the number of bytes (and therefore words) the
// trailing CRC-32 occupies in an encoded sequence.
const checksumSize = 4

// words maps each byte value to its word. The list is part of the wire
// format and must never change: the words are all four letters long,
// sorted, and no two share the same (first, last) letter pair.
var words = [256]string{
	"able", "acid", "also", "apex", "aqua", "arch", "atom", "aunt",
	"away", "axis", "back", "bald", "barn", "belt", "beta", "bias",
	"blue", "body", "brag", "brew", "bulb", "buzz", "calm", "cash",
	"cats", "chef", "city", "claw", "code", "cola", "cook", "cost",
	"crux", "curl", "cusp", "cyan", "dark", "data", "days", "deli",
	"dice", "diet", "door", "down", "draw", "drop", "drum", "dull",
	"duty", "each", "easy", "echo", "edge", "epic", "even", "exam",
	"exit", "eyes", "fact", "fair", "fern", "figs", "film", "fish",
	"fizz", "flap", "flew", "flux", "foxy", "free", "frog", "fuel",
	"fund", "gala", "game", "gear", "gems", "gift", "girl", "glow",
	"good", "gray", "grim", "guru", "gush", "gyro", "half", "hang",
	"hard", "hawk", "heat", "help", "high", "hill", "holy", "hope",
	"horn", "huts", "iced", "idea", "idle", "inch", "inky", "into",
	"iris", "iron", "item", "jade", "jazz", "join", "jolt", "jowl",
	"judo", "jugs", "jump", "junk", "jury", "keep", "keno", "kept",
	"keys", "kick", "kiln", "king", "kite", "kiwi", "knob", "lamb",
	"lava", "lazy", "leaf", "legs", "liar", "limp", "lion", "list",
	"logo", "loud", "love", "luau", "luck", "lung", "main", "many",
	"math", "maze", "memo", "menu", "meow", "mild", "mint", "miss",
	"monk", "nail", "navy", "need", "news", "next", "noon", "note",
	"numb", "obey", "oboe", "omit", "onyx", "open", "oval", "owls",
	"paid", "part", "peck", "play", "plus", "poem", "pool", "pose",
	"puff", "puma", "purr", "quad", "quiz", "race", "ramp", "real",
	"redo", "rich", "road", "rock", "roof", "ruby", "ruin", "runs",
	"rust", "safe", "saga", "scar", "sets", "silk", "skew", "slot",
	"soap", "solo", "song", "stub", "surf", "swan", "taco", "task",
	"taxi", "tent", "tied", "time", "tiny", "toil", "tomb", "toys",
	"trip", "tuna", "twin", "ugly", "undo", "unit", "urge", "user",
	"vast", "very", "veto", "vial", "vibe", "view", "visa", "void",
	"vows", "wall", "wand", "warm", "wasp", "wave", "waxy", "webs",
	"what", "when", "whiz", "wolf", "work", "yank", "yawn", "yell",
	"yoga", "yurt", "zaps", "zero", "zest", "zinc", "zone", "zoom",
}

var (
	wordValue    map[string]byte
	minimalValue [26 * 26]int16
)

func init() {
	wordValue = make(map[string]byte, len(words))
	for i := range minimalValue {
		minimalValue[i] = -1
	}
	for i, w := range words {
		if len(w) != 4 {
			panic(fmt.Sprintf("bytewords: word %q is not four letters", w))
		}
		wordValue[w] = byte(i)
		p := pairIndex(w[0], w[3])
		if minimalValue[p] != -1 {
			panic(fmt.Sprintf("bytewords: word %q collides with %q", w, words[minimalValue[p]]))
		}
		minimalValue[p] = int16(i)
	}
}

func pairIndex(first, last byte) int {
	return int(first-'a')*26 + int(last-'a')
}

// Encode returns the byteword encoding of data in the given style,
// with the CRC-32 of data appended as four extra words.
func Encode(style Style, data []byte) string {
	body := make([]byte, len(data)+checksumSize)
	copy(body, data)
	binary.BigEndian.PutUint32(body[len(data):], crc32.ChecksumIEEE(data))

	switch style {
	case Standard:
		return joinWords(body, " ")
	case URI:
		return joinWords(body, "-")
	case Minimal:
		var sb strings.Builder
		sb.Grow(len(body) * 2)
		for _, b := range body {
			w := words[b]
			sb.WriteByte(w[0])
			sb.WriteByte(w[3])
		}
		return sb.String()
	}
	panic(fmt.Sprintf("bytewords: unknown style %d", style))
}

func joinWords(body []byte, sep string) string {
	ws := make([]string, len(body))
	for i, b := range body {
		ws[i] = words[b]
	}
	return strings.Join(ws, sep)
}

// Decode parses a byteword sequence in the given style, verifies its
// trailing checksum and returns the payload bytes. Input must be
// lowercase. Any unknown word, truncation or checksum mismatch yields
// an error; a successful decode always returns the exact bytes that
// were encoded.
func Decode(style Style, s string) ([]byte, error) {
	var body []byte
	var err error
	switch style {
	case Standard:
		body, err = decodeWords(s, " ")
	case URI:
		body, err = decodeWords(s, "-")
	case Minimal:
		body, err = decodeMinimal(s)
	default:
		panic(fmt.Sprintf("bytewords: unknown style %d", style))
	}
	if err != nil {
		return nil, err
	}
	if len(body) < checksumSize {
		return nil, fmt.Errorf("%w: %d words cannot carry a checksum", ErrInvalidLength, len(body))
	}
	n := len(body) - checksumSize
	want := binary.BigEndian.Uint32(body[n:])
	if got := crc32.ChecksumIEEE(body[:n]); got != want {
		return nil, fmt.Errorf("%w: computed %08x, sequence says %08x", ErrInvalidChecksum, got, want)
	}
	return body[:n:n], nil
}

func decodeWords(s, sep string) ([]byte, error) {
	parts := strings.Split(s, sep)
	out := make([]byte, len(parts))
	for i, w := range parts {
		v, ok := wordValue[w]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w)
		}
		out[i] = v
	}
	return out, nil
}

func decodeMinimal(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: minimal form has %d characters", ErrInvalidLength, len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		first, last := s[i], s[i+1]
		if first < 'a' || first > 'z' || last < 'a' || last > 'z' {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, s[i:i+2])
		}
		v := minimalValue[pairIndex(first, last)]
		if v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWord, s[i:i+2])
		}
		out[i/2] = byte(v)
	}
	return out, nil
}
