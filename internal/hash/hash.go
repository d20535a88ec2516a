// Package hash provides a fast, non-cryptographic content hash used to
// fingerprint decoded PER sub-structures, so callers can cheaply compare
// or dedupe them before running real signature verification over the
// underlying bytes (see codec.DecodedNode.Fingerprint).
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of data.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
