package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

type bitStringCodec struct {
	size SizeConstraint
}

// NewBitString returns a BIT STRING codec for the given size constraint.
// Values are represented as BitString.
func NewBitString(size SizeConstraint) Codec {
	return withPassthrough(&bitStringCodec{size: size})
}

func (c *bitStringCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	bs, ok := value.(BitString)
	if !ok {
		return fmt.Errorf("%w: BIT STRING requires a BitString value, got %T", errs.ErrSchemaViolation, value)
	}
	if err := c.size.encodeLength(buf, bs.BitLen); err != nil {
		return err
	}
	return buf.WriteRawBits(bs.Bytes, bs.BitLen)
}

func (c *bitStringCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	n, _, err := c.size.decodeLength(buf)
	if err != nil {
		return nil, err
	}
	data, err := readPackedBits(buf, n)
	if err != nil {
		return nil, err
	}
	return BitString{Bytes: data, BitLen: n}, nil
}

func (c *bitStringCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}

// readPackedBits reads n bits from the cursor, packing them MSB-aligned the
// same way bitbuffer.ExtractBits does.
func readPackedBits(buf *bitbuffer.Buffer, n int) ([]byte, error) {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		bit, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}
