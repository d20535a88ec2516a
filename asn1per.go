// Package asn1per implements ASN.1 Packed Encoding Rules, unaligned
// variant (X.691 PER-UNALIGNED), as a schema-driven bit-level codec.
//
// A schema tree (package schema) describes an ASN.1 type; package codec
// compiles that tree into a graph of Codec values that know how to read
// and write it bit-for-bit. This top-level package wraps a single compiled
// schema as a SchemaCodec, the everyday entry point: construct one from a
// schema root (or a name→schema map via a Registry for mutually recursive
// types), then Encode/Decode values against it.
//
// # Basic usage
//
//	root := &schema.Schema{
//	    Kind: schema.KindSequence,
//	    Fields: []schema.Field{
//	        {Name: "id", Schema: &schema.Schema{Kind: schema.KindInteger, Min: ptr(int64(0)), Max: ptr(int64(255))}},
//	    },
//	}
//	sc, err := asn1per.NewSchemaCodec(root)
//	data, err := sc.Encode(map[string]any{"id": int64(7)})
//	value, err := sc.Decode(data)
//
// For schemas with forward or mutually recursive $ref references, build a
// Registry with codec.BuildAll and wrap one of its entries instead:
//
//	codecs, err := codec.BuildAll(schemas)
//	sc := asn1per.NewSchemaCodecFromCodec(codecs["TreeNode"])
package asn1per

import (
	"fmt"
	"strings"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/schema"
)

// SchemaCodec binds a single compiled schema root and exposes the everyday
// encode/decode operations over it.
type SchemaCodec struct {
	codec codec.Codec
}

// NewSchemaCodec compiles root into a codec graph and binds it. A $ref
// anywhere in root is a SchemaError, since a single schema has no registry
// to resolve it against — use a Registry (codec.BuildAll) instead.
func NewSchemaCodec(root *schema.Schema) (*SchemaCodec, error) {
	c, err := codec.Build(root)
	if err != nil {
		return nil, err
	}
	return &SchemaCodec{codec: c}, nil
}

// NewSchemaCodecFromCodec binds an already-compiled codec, typically one
// entry of a codec.BuildAll result.
func NewSchemaCodecFromCodec(c codec.Codec) *SchemaCodec {
	return &SchemaCodec{codec: c}
}

// Encode writes value to a new byte slice, padding the final byte with
// zero bits.
func (sc *SchemaCodec) Encode(value any) ([]byte, error) {
	buf := bitbuffer.New()
	defer buf.Release()
	if err := sc.codec.Encode(buf, value); err != nil {
		return nil, err
	}
	return buf.ToBytes(), nil
}

// EncodeToHex encodes value and returns its lowercase hex representation.
func (sc *SchemaCodec) EncodeToHex(value any) (string, error) {
	data, err := sc.Encode(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", data), nil
}

// EncodeToRawBytes encodes value and additionally returns its exact bit
// length, preserving sub-byte precision that the padded byte slice alone
// would lose.
func (sc *SchemaCodec) EncodeToRawBytes(value any) ([]byte, int, error) {
	buf := bitbuffer.New()
	defer buf.Release()
	if err := sc.codec.Encode(buf, value); err != nil {
		return nil, 0, err
	}
	return buf.ToBytes(), buf.BitLength(), nil
}

// Decode reads a value back from data.
func (sc *SchemaCodec) Decode(data []byte) (any, error) {
	buf := bitbuffer.Wrap(data)
	defer buf.Release()
	return sc.codec.Decode(buf)
}

// DecodeFromHex decodes a hex string produced by EncodeToHex (or any
// compatible hex encoding of a PER message).
func (sc *SchemaCodec) DecodeFromHex(hexStr string) (any, error) {
	data, err := decodeHex(hexStr)
	if err != nil {
		return nil, err
	}
	return sc.Decode(data)
}

// DecodeWithMetadata reads a value back from data, wrapping it in a
// DecodedNode that carries each (sub)value's exact source bit range.
func (sc *SchemaCodec) DecodeWithMetadata(data []byte) (*codec.DecodedNode, error) {
	buf := bitbuffer.Wrap(data)
	defer buf.Release()
	return sc.codec.DecodeWithMetadata(buf)
}

// DecodeFromHexWithMetadata is DecodeWithMetadata over a hex string.
func (sc *SchemaCodec) DecodeFromHexWithMetadata(hexStr string) (*codec.DecodedNode, error) {
	data, err := decodeHex(hexStr)
	if err != nil {
		return nil, err
	}
	return sc.DecodeWithMetadata(data)
}

// decodeHex parses a hex string case-insensitively, ignoring whitespace
// and a single trailing 'h'; an odd length or a non-hex character is
// InvalidArgument.
func decodeHex(s string) ([]byte, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()
	if strings.HasSuffix(s, "h") || strings.HasSuffix(s, "H") {
		s = s[:len(s)-1]
	}

	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: hex string has odd length %d", errs.ErrInvalidArgument, len(s))
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, err := hexDigit(s[2*i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[2*i+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("%w: non-hex character %q", errs.ErrInvalidArgument, c)
	}
}
