package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

type enumeratedCodec struct {
	values          []string
	extensionValues []string
	extensible      bool
	indexOf         map[string]int
	extIndexOf      map[string]int
}

// NewEnumerated returns an ENUMERATED codec over the given root identifiers
// and, if extensible, extension identifiers. Values are represented as the
// Go string identifier.
func NewEnumerated(values, extensionValues []string, extensible bool) Codec {
	indexOf := make(map[string]int, len(values))
	for i, v := range values {
		indexOf[v] = i
	}
	extIndexOf := make(map[string]int, len(extensionValues))
	for i, v := range extensionValues {
		extIndexOf[v] = i
	}
	return withPassthrough(&enumeratedCodec{
		values: values, extensionValues: extensionValues, extensible: extensible,
		indexOf: indexOf, extIndexOf: extIndexOf,
	})
}

func (c *enumeratedCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: ENUMERATED requires a string value, got %T", errs.ErrSchemaViolation, value)
	}
	if idx, ok := c.indexOf[name]; ok {
		if c.extensible {
			if err := buf.WriteBit(0); err != nil {
				return err
			}
		}
		return per.EncodeConstrained(buf, int64(idx), 0, int64(len(c.values)-1))
	}
	if c.extensible {
		if idx, ok := c.extIndexOf[name]; ok {
			if err := buf.WriteBit(1); err != nil {
				return err
			}
			return per.EncodeNormallySmall(buf, idx)
		}
	}
	return fmt.Errorf("%w: %q is not a declared ENUMERATED value", errs.ErrConstraintViolation, name)
}

func (c *enumeratedCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	if c.extensible {
		bit, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit == 1 {
			idx, err := per.DecodeNormallySmall(buf)
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= len(c.extensionValues) {
				return nil, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "extension ENUMERATED index %d is unknown", idx)
			}
			return c.extensionValues[idx], nil
		}
	}
	idx, err := per.DecodeConstrained(buf, 0, int64(len(c.values)-1))
	if err != nil {
		return nil, err
	}
	return c.values[idx], nil
}

func (c *enumeratedCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
