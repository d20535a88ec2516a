// Package format defines the small enumeration schemastore uses to tag how
// a persisted schema JSON document is compressed at rest. It has nothing
// to do with the PER wire format itself, which has no configurable
// variants — this only governs schema-file storage.
package format

// CompressionType selects the backend schemastore uses to compress a
// saved schema document. It never affects PER-encoded message bytes.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the document uncompressed.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses the S2 (Snappy-compatible) codec.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4.
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
