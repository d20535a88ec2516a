package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

type booleanCodec struct{}

// NewBoolean returns the BOOLEAN codec: 1 bit, 1 = true, 0 = false.
func NewBoolean() Codec {
	return withPassthrough(booleanCodec{})
}

func (booleanCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: BOOLEAN requires a bool, got %T", errs.ErrSchemaViolation, value)
	}
	var bit byte
	if b {
		bit = 1
	}
	return buf.WriteBit(bit)
}

func (booleanCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	bit, err := buf.ReadBit()
	if err != nil {
		return nil, err
	}
	return bit == 1, nil
}

func (c booleanCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
