// Package compress provides compression codecs for persisted schema
// documents: the JSON bytes of a schema.Schema tree, or of a name→schema
// registry, as stored by package schemastore.
//
// It is never applied to PER-encoded message bytes — that would break the
// bit-exact round-trip and raw_bytes identity a decoded node promises its
// caller. Compression here only affects how a schema definition is stored
// on disk or transmitted alongside a codec; decoding a PER message never
// touches this package.
//
// # Supported algorithms
//
//   - None: no compression, fastest, used for small or already-compact
//     schema documents
//   - Zstd: best compression ratio, the default for archived or
//     infrequently-loaded schema libraries
//   - S2: a faster, lower-ratio alternative when schema documents are
//     loaded on a hot path
//   - LZ4: very fast decompression, moderate ratio
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "schema store")
//	compressed, err := codec.Compress(schemaJSON)
//	original, err := codec.Decompress(compressed)
//
// All four codecs implement the same Compressor/Decompressor interfaces and
// are safe for concurrent use.
package compress
