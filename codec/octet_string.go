package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

type octetStringCodec struct {
	size SizeConstraint
}

// NewOctetString returns an OCTET STRING codec for the given size
// constraint. Values are represented as []byte.
func NewOctetString(size SizeConstraint) Codec {
	return withPassthrough(&octetStringCodec{size: size})
}

func (c *octetStringCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	data, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("%w: OCTET STRING requires a []byte value, got %T", errs.ErrSchemaViolation, value)
	}
	if err := c.size.encodeLength(buf, len(data)); err != nil {
		return err
	}
	return buf.WriteOctets(data)
}

func (c *octetStringCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	n, _, err := c.size.decodeLength(buf)
	if err != nil {
		return nil, err
	}
	return buf.ReadOctets(n)
}

func (c *octetStringCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
