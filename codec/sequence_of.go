package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

type sequenceOfCodec struct {
	item Codec
	size SizeConstraint
}

// NewSequenceOf returns a SEQUENCE OF codec: a size-constrained length
// determinant followed by count homogeneous element encodings. Values are
// represented as []any.
func NewSequenceOf(item Codec, size SizeConstraint) Codec {
	return withPassthrough(&sequenceOfCodec{item: item, size: size})
}

func (c *sequenceOfCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("%w: SEQUENCE OF requires a []any value, got %T", errs.ErrSchemaViolation, value)
	}
	if err := c.size.encodeLength(buf, len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := c.item.Encode(buf, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *sequenceOfCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	n, _, err := c.size.decodeLength(buf)
	if err != nil {
		return nil, err
	}
	out := make([]any, n)
	for i := range out {
		v, err := c.item.Decode(buf)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (c *sequenceOfCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	start := buf.Offset()
	n, _, err := c.size.decodeLength(buf)
	if err != nil {
		return nil, err
	}
	children := make([]*DecodedNode, n)
	for i := range children {
		child, err := c.item.DecodeWithMetadata(buf)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	length := buf.Offset() - start
	raw, _ := buf.ExtractBits(start, length)
	return &DecodedNode{Value: children, BitOffset: start, BitLength: length, RawBytes: raw, Codec: c}, nil
}
