package fountain

import "hash/crc32"

// Checksum returns the CRC-32 of data over the IEEE 802.3 polynomial.
// Every part of an encoding repeats this value: receivers use it to
// tell interleaved transmissions apart, to seed fragment selection,
// and to verify the reconstructed message. The algorithm is fixed;
// changing it would strand every previously encoded part. The
// checksum of empty input is 0.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
