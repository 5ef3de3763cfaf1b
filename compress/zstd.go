package compress

// ZstdCompressor wraps Zstandard compression for the already-encoded
// frame text: high compression ratio at the cost of more CPU than S2
// or LZ4, suited to payloads that are written once and read
// infrequently (archived frames, cold-storage documents).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
