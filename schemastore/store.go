// Package schemastore persists schema.Schema documents (single schemas or
// name→schema registries) to bytes, with optional compression of the
// underlying JSON via package compress.
//
// The on-disk shape is a small fixed header followed by the (possibly
// compressed) JSON payload:
//
//	offset 0: magic    [4]byte  "A1PS"
//	offset 4: version  byte     1
//	offset 5: compress byte     format.CompressionType
//	offset 6: payload  []byte   JSON, compressed per the compress byte
//
// This header format is unrelated to the PER wire format: it exists only
// so a stored schema file is self-describing about how to decompress it.
package schemastore

import (
	"encoding/json"
	"fmt"

	"github.com/asn1per/asn1per/compress"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/format"
	"github.com/asn1per/asn1per/schema"
)

var magic = [4]byte{'A', '1', 'P', 'S'}

const headerVersion = 1
const headerSize = 6

// Save serializes root to JSON and writes it as a header-prefixed,
// optionally compressed document.
func Save(root *schema.Schema, compression format.CompressionType) ([]byte, error) {
	payload, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling schema: %s", errs.ErrSchemaError, err)
	}
	return encode(payload, compression)
}

// SaveRegistry serializes a name→schema map the same way Save does.
func SaveRegistry(schemas map[string]schema.Schema, compression format.CompressionType) ([]byte, error) {
	payload, err := json.Marshal(schemas)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling schema registry: %s", errs.ErrSchemaError, err)
	}
	return encode(payload, compression)
}

func encode(payload []byte, compression format.CompressionType) ([]byte, error) {
	codec, err := compress.CreateCodec(compression, "schema store")
	if err != nil {
		return nil, err
	}
	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize+len(compressed))
	copy(out[0:4], magic[:])
	out[4] = headerVersion
	out[5] = byte(compression)
	copy(out[headerSize:], compressed)
	return out, nil
}

// Load reads back a document written by Save.
func Load(data []byte) (*schema.Schema, error) {
	payload, err := decode(data)
	if err != nil {
		return nil, err
	}
	var root schema.Schema
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling schema: %s", errs.ErrSchemaError, err)
	}
	return &root, nil
}

// LoadRegistry reads back a document written by SaveRegistry.
func LoadRegistry(data []byte) (map[string]schema.Schema, error) {
	payload, err := decode(data)
	if err != nil {
		return nil, err
	}
	schemas := make(map[string]schema.Schema)
	if err := json.Unmarshal(payload, &schemas); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling schema registry: %s", errs.ErrSchemaError, err)
	}
	return schemas, nil
}

func decode(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: schema document shorter than its header", errs.ErrInvalidArgument)
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: schema document has an unrecognized magic number", errs.ErrInvalidArgument)
	}
	if data[4] != headerVersion {
		return nil, fmt.Errorf("%w: schema document has unsupported version %d", errs.ErrInvalidArgument, data[4])
	}

	codec, err := compress.GetCodec(format.CompressionType(data[5]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidArgument, err)
	}
	return codec.Decompress(data[headerSize:])
}
