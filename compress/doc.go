// Package compress provides optional transport-layer compressors for
// the already-encoded frame text produced by series/document/table:
// None, Zstd, S2, and LZ4.
//
// The core codec packages never import this package: per spec section
// 6.4, gzip/zstd/etc framing of the final payload is delegated to an
// external collaborator, not produced or consumed by the core. This
// package exists so the top-level convenience wrappers
// (EncodeSeriesCompressed and DecodeSeriesCompressed) have a concrete,
// swappable compressor to hand the caller instead of leaving "bring
// your own gzip" unimplemented. Table frames have no compressed
// wrappers.
package compress
