// Package checksum hashes metadata packets.
//
// Two checksums are computed:
//
//   - Raw checksum: hash of the exact packet bytes (detects every change)
//   - Normalized checksum: hash after dropping the xpacket envelope, XML
//     comments and layout whitespace (identifies packets with the same
//     content regardless of how they were written)
//
// Text content and attribute values are never altered by normalization, so
// any change to a stored value changes the normalized checksum.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(packet)
//	normalized := calculator.CalculateNormalized(packet)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
