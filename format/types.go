// Package format holds wire-level constants shared by the compress
// package and the top-level convenience wrappers.
package format

// CompressionType identifies an optional transport-layer compressor
// applied to an already-encoded frame string. The core series/document/
// table packages never produce or consume this layer themselves (see
// spec section 6.4) -- it is strictly a convenience wrapped around them.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota + 1
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
