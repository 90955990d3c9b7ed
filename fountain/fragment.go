package fountain

import "fmt"

// Partition splits message into fragments of fragmentLen bytes. Every
// fragment but the last has length exactly fragmentLen; the last
// carries the remainder and is never empty unless the whole message
// is, in which case the result is a single empty fragment. The
// fragments are subslices of message, not copies.
func Partition(message []byte, fragmentLen int) ([][]byte, error) {
	if fragmentLen < 1 {
		return nil, fmt.Errorf("%w: fragment length %d, want at least 1", ErrInvalidConfig, fragmentLen)
	}
	if len(message) == 0 {
		return [][]byte{{}}, nil
	}
	fragments := make([][]byte, 0, fragmentCount(len(message), fragmentLen))
	for start := 0; start < len(message); start += fragmentLen {
		end := start + fragmentLen
		if end > len(message) {
			end = len(message)
		}
		fragments = append(fragments, message[start:end:end])
	}
	return fragments, nil
}

// Join reverses Partition: it concatenates fragments and trims the
// result to messageLen bytes, discarding any zero padding carried by
// reconstructed fragments.
func Join(fragments [][]byte, messageLen int) ([]byte, error) {
	if messageLen < 0 {
		return nil, fmt.Errorf("%w: message length %d", ErrInvalidConfig, messageLen)
	}
	message := make([]byte, 0, messageLen)
	for _, f := range fragments {
		message = append(message, f...)
	}
	if len(message) < messageLen {
		return nil, fmt.Errorf("%w: fragments hold %d bytes, message needs %d", ErrInvalidConfig, len(message), messageLen)
	}
	return message[:messageLen:messageLen], nil
}

// NominalFragmentLen picks the fragment length for a message of
// messageLen bytes: the one that minimizes the fragment count while
// staying within [minLen, maxLen], with the message spread as evenly
// as possible over the fragments. Display surfaces use this to keep
// every barcode near the same density instead of ending on a tiny
// tail fragment. A message shorter than minLen becomes a single
// fragment of its own length.
func NominalFragmentLen(messageLen, minLen, maxLen int) (int, error) {
	if messageLen < 1 || minLen < 1 || maxLen < minLen {
		return 0, fmt.Errorf("%w: message length %d with fragment bounds [%d, %d]", ErrInvalidConfig, messageLen, minLen, maxLen)
	}
	maxCount := messageLen / minLen
	if maxCount < 1 {
		maxCount = 1
	}
	for count := 1; count <= maxCount; count++ {
		length := (messageLen + count - 1) / count
		if length <= maxLen {
			return length, nil
		}
	}
	return 0, fmt.Errorf("%w: no fragment length in [%d, %d] fits a %d-byte message", ErrInvalidConfig, minLen, maxLen, messageLen)
}

// fragmentCount is the number of fragments Partition produces.
func fragmentCount(messageLen, fragmentLen int) int {
	if messageLen == 0 {
		return 1
	}
	return (messageLen + fragmentLen - 1) / fragmentLen
}

// xorBytes folds src into dst bytewise. dst must be at least as long
// as src.
func xorBytes(dst, src []byte) {
	for i, b := range src {
		dst[i] ^= b
	}
}
