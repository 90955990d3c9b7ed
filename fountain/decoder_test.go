package fountain

import (
	"bytes"
	"errors"
	"testing"
)

// Test helper: feeds parts from enc, skipping those keep rejects,
// until the decoder completes; returns the last sequence number fed.
func feedUntilComplete(t *testing.T, d *Decoder, enc *Encoder, keep func(uint64) bool) uint64 {
	t.Helper()
	for seqNum := uint64(1); seqNum <= 100000; seqNum++ {
		if !keep(seqNum) {
			continue
		}
		if _, err := d.Receive(enc.PartAt(seqNum)); err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
		if d.Complete() {
			return seqNum
		}
	}
	t.Fatalf("decoder never completed")
	return 0
}

// TestDecoderSequential tests reconstruction from the plain parts
func TestDecoderSequential(t *testing.T) {
	message := patternMessage(80, 7, 1)
	enc := goldenEncoder(t)
	dec := NewDecoder()

	for seqNum := uint64(1); seqNum <= 8; seqNum++ {
		innovative, err := dec.Receive(enc.PartAt(seqNum))
		if err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
		if !innovative {
			t.Errorf("plain part %d should be innovative", seqNum)
		}
	}

	if !dec.Complete() {
		t.Fatalf("decoder should be complete after all plain parts")
	}
	if dec.Rank() != 8 || dec.Received() != 8 {
		t.Errorf("expected rank 8 after 8 received, got %d after %d", dec.Rank(), dec.Received())
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("reconstructed message differs from original")
	}
}

// TestDecoderMixedOnly tests reconstruction from mixed parts alone,
// including which parts carry new information
func TestDecoderMixedOnly(t *testing.T) {
	message := patternMessage(80, 7, 1)
	enc := goldenEncoder(t)
	dec := NewDecoder()

	// With this message, parts 16 and 17 reduce to combinations of
	// parts 9..15 and add nothing
	expected := map[uint64]bool{
		9: true, 10: true, 11: true, 12: true, 13: true,
		14: true, 15: true, 16: false, 17: false, 18: true,
	}

	for seqNum := uint64(9); seqNum <= 18; seqNum++ {
		innovative, err := dec.Receive(enc.PartAt(seqNum))
		if err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
		if innovative != expected[seqNum] {
			t.Errorf("part %d: innovative = %v, expected %v", seqNum, innovative, expected[seqNum])
		}
	}

	if !dec.Complete() {
		t.Fatalf("decoder should be complete after part 18")
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("reconstructed message differs from original")
	}
	if dec.Received() != 10 || dec.Rank() != 8 {
		t.Errorf("expected rank 8 after 10 received, got %d after %d", dec.Rank(), dec.Received())
	}
}

// TestDecoderOutOfOrder tests that arrival order is irrelevant
func TestDecoderOutOfOrder(t *testing.T) {
	message := patternMessage(80, 7, 1)
	enc := goldenEncoder(t)
	dec := NewDecoder()

	for seqNum := uint64(8); seqNum >= 1; seqNum-- {
		if _, err := dec.Receive(enc.PartAt(seqNum)); err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
	}

	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("reconstructed message differs from original")
	}
}

// TestDecoderDuplicates tests that repeats are absorbed silently
func TestDecoderDuplicates(t *testing.T) {
	enc := goldenEncoder(t)
	dec := NewDecoder()

	part := enc.PartAt(1)
	for i := 0; i < 3; i++ {
		innovative, err := dec.Receive(part)
		if err != nil {
			t.Fatalf("Receive failed: %v", err)
		}
		if innovative != (i == 0) {
			t.Errorf("receive %d: innovative = %v", i, innovative)
		}
	}
	if dec.Rank() != 1 || dec.Received() != 3 {
		t.Errorf("expected rank 1 after 3 received, got %d after %d", dec.Rank(), dec.Received())
	}
}

// TestDecoderLossPatterns tests completion under fixed loss patterns
// for a range of fragment counts
func TestDecoderLossPatterns(t *testing.T) {
	testCases := []struct {
		messageLen int
		finishes   uint64
		desc       string
	}{
		{20, 2, "two_fragments"},
		{50, 14, "five_fragments"},
		{200, 34, "twenty_fragments"},
		{1000, 169, "hundred_fragments"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			message := patternMessage(tc.messageLen, 131, 7)
			enc, err := NewEncoder(message, 10)
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}
			dec := NewDecoder()

			// Drop every third part
			finished := feedUntilComplete(t, dec, enc, func(seqNum uint64) bool {
				return seqNum%3 != 0
			})
			if finished != tc.finishes {
				t.Errorf("completed at part %d, expected %d", finished, tc.finishes)
			}
			got, err := dec.Message()
			if err != nil {
				t.Fatalf("Message failed: %v", err)
			}
			if !bytes.Equal(got, message) {
				t.Errorf("reconstructed message differs from original")
			}
		})
	}
}

// TestDecoderMixedPartsAlone tests reconstruction when every plain
// part is lost
func TestDecoderMixedPartsAlone(t *testing.T) {
	testCases := []struct {
		messageLen int
		seqLen     uint64
		finishes   uint64
		desc       string
	}{
		{20, 2, 4, "two_fragments"},
		{50, 5, 12, "five_fragments"},
		{200, 20, 42, "twenty_fragments"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			message := patternMessage(tc.messageLen, 131, 7)
			enc, err := NewEncoder(message, 10)
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}
			dec := NewDecoder()

			finished := feedUntilComplete(t, dec, enc, func(seqNum uint64) bool {
				return seqNum > tc.seqLen
			})
			if finished != tc.finishes {
				t.Errorf("completed at part %d, expected %d", finished, tc.finishes)
			}
			got, err := dec.Message()
			if err != nil {
				t.Fatalf("Message failed: %v", err)
			}
			if !bytes.Equal(got, message) {
				t.Errorf("reconstructed message differs from original")
			}
		})
	}
}

// TestDecoderLargeMessage tests a 10000-byte message in 1400-byte
// fragments with only even parts arriving
func TestDecoderLargeMessage(t *testing.T) {
	message := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 2500)
	enc, err := NewEncoder(message, 1400)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	if enc.SeqLen() != 8 {
		t.Fatalf("SeqLen: expected 8, got %d", enc.SeqLen())
	}
	if enc.Checksum() != 0x2064EC9D {
		t.Fatalf("Checksum: expected 2064ec9d, got %08x", enc.Checksum())
	}

	dec := NewDecoder()
	finished := feedUntilComplete(t, dec, enc, func(seqNum uint64) bool {
		return seqNum%2 == 0
	})
	if finished != 22 {
		t.Errorf("completed at part %d, expected 22", finished)
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("reconstructed message differs from original")
	}
}

// TestDecoderSparsePayload tests that exactly the plain parts
// reconstruct a large, mostly zero payload
func TestDecoderSparsePayload(t *testing.T) {
	payload := make([]byte, 10000)
	copy(payload, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	enc, err := NewEncoder(payload, 1400)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	if enc.SeqLen() != 8 {
		t.Fatalf("SeqLen: expected 8, got %d", enc.SeqLen())
	}

	dec := NewDecoder()
	for _, part := range enc.Parts(8) {
		if _, err := dec.Receive(part); err != nil {
			t.Fatalf("part %d: Receive failed: %v", part.SeqNum, err)
		}
	}
	if !dec.Complete() {
		t.Fatalf("eight plain parts should complete an eight-fragment session")
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("reconstructed message differs from original")
	}
	if !bytes.Equal(got[:4], []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("marker lost: got % x", got[:4])
	}
}

// TestDecoderIncompatibleSession tests rejection of parts from a
// different message without disturbing the session
func TestDecoderIncompatibleSession(t *testing.T) {
	enc := goldenEncoder(t)
	other, err := NewEncoder(patternMessage(80, 11, 3), 10)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	dec := NewDecoder()
	if _, err := dec.Receive(enc.PartAt(1)); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	if _, err := dec.Receive(other.PartAt(2)); !errors.Is(err, ErrIncompatibleSession) {
		t.Fatalf("expected ErrIncompatibleSession, got %v", err)
	}
	if dec.Rank() != 1 || dec.Received() != 1 {
		t.Errorf("session state changed by a rejected part")
	}

	// The session keeps working afterwards
	for seqNum := uint64(2); seqNum <= 8; seqNum++ {
		if _, err := dec.Receive(enc.PartAt(seqNum)); err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
	}
	if !dec.Complete() {
		t.Errorf("decoder should complete after the rejected part")
	}
}

// TestDecoderMalformedPart tests rejection of structurally bad parts
func TestDecoderMalformedPart(t *testing.T) {
	enc := goldenEncoder(t)
	dec := NewDecoder()

	bad := enc.PartAt(1)
	bad.Data = bad.Data[:4]
	if _, err := dec.Receive(bad); !errors.Is(err, ErrMalformedPart) {
		t.Fatalf("expected ErrMalformedPart, got %v", err)
	}
	if dec.Received() != 0 {
		t.Errorf("malformed part should not count as received")
	}
}

// TestDecoderInsufficientParts tests Message before completion
func TestDecoderInsufficientParts(t *testing.T) {
	enc := goldenEncoder(t)
	dec := NewDecoder()

	if _, err := dec.Message(); !errors.Is(err, ErrInsufficientParts) {
		t.Errorf("expected ErrInsufficientParts on empty decoder, got %v", err)
	}

	for seqNum := uint64(1); seqNum <= 7; seqNum++ {
		if _, err := dec.Receive(enc.PartAt(seqNum)); err != nil {
			t.Fatalf("part %d: Receive failed: %v", seqNum, err)
		}
	}
	if dec.Complete() {
		t.Fatalf("decoder should not be complete with 7 of 8 fragments")
	}
	if _, err := dec.Message(); !errors.Is(err, ErrInsufficientParts) {
		t.Errorf("expected ErrInsufficientParts at rank 7, got %v", err)
	}
}

// TestDecoderChecksumMismatch tests that corrupted fragment data is
// caught after reconstruction
func TestDecoderChecksumMismatch(t *testing.T) {
	enc, err := NewEncoder(patternMessage(20, 131, 7), 10)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	dec := NewDecoder()
	if _, err := dec.Receive(enc.PartAt(1)); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	corrupted := enc.PartAt(2)
	corrupted.Data[0] ^= 0xFF
	if _, err := dec.Receive(corrupted); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	if !dec.Complete() {
		t.Fatalf("decoder should be complete")
	}
	if _, err := dec.Message(); !errors.Is(err, ErrInvalidChecksum) {
		t.Errorf("expected ErrInvalidChecksum, got %v", err)
	}
}

// TestDecoderEmptyMessage tests reconstruction of an empty payload
func TestDecoderEmptyMessage(t *testing.T) {
	enc, err := NewEncoder(nil, 10)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	dec := NewDecoder()
	if _, err := dec.Receive(enc.PartAt(1)); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty message, got %x", got)
	}
}

// TestDecoderSingleFragment tests a one-fragment session solved by a
// mixed part
func TestDecoderSingleFragment(t *testing.T) {
	message := patternMessage(10, 131, 7)
	enc, err := NewEncoder(message, 10)
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	dec := NewDecoder()
	if _, err := dec.Receive(enc.PartAt(2)); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if !dec.Complete() {
		t.Fatalf("one mixed part of a single-fragment message should complete")
	}
	got, err := dec.Message()
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if !bytes.Equal(got, message) {
		t.Errorf("reconstructed message differs from original")
	}
}

// TestDecoderFreshState tests the zero-value session accessors
func TestDecoderFreshState(t *testing.T) {
	dec := NewDecoder()

	if dec.Complete() {
		t.Errorf("fresh decoder should not be complete")
	}
	if dec.SeqLen() != 0 || dec.MessageLen() != 0 || dec.Checksum() != 0 {
		t.Errorf("fresh decoder should report zero geometry")
	}
	if dec.Rank() != 0 || dec.Received() != 0 {
		t.Errorf("fresh decoder should hold nothing")
	}
}
