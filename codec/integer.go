package codec

import (
	"fmt"
	"math/big"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

// IntegerConstraint describes an INTEGER's value constraint. Min and Max
// nil means unconstrained; Min set with Max nil means semi-constrained;
// both set means constrained, optionally Extensible.
type IntegerConstraint struct {
	Min        *int64
	Max        *int64
	Extensible bool
}

type integerCodec struct {
	IntegerConstraint
}

// NewInteger returns an INTEGER codec dispatching on the shape of c
// (unconstrained, semi-constrained, or fully constrained, extensible or
// not); the value is represented as a Go int64.
func NewInteger(c IntegerConstraint) Codec {
	return withPassthrough(&integerCodec{IntegerConstraint: c})
}

func asInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: INTEGER requires an integer value, got %T", errs.ErrSchemaViolation, value)
	}
}

func (c *integerCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	v, err := asInt64(value)
	if err != nil {
		return err
	}

	switch {
	case c.Min != nil && c.Max != nil && c.Extensible:
		if v >= *c.Min && v <= *c.Max {
			if err := buf.WriteBit(0); err != nil {
				return err
			}
			return per.EncodeConstrained(buf, v, *c.Min, *c.Max)
		}
		if err := buf.WriteBit(1); err != nil {
			return err
		}
		return per.EncodeUnconstrainedWhole(buf, big.NewInt(v))
	case c.Min != nil && c.Max != nil:
		return per.EncodeConstrained(buf, v, *c.Min, *c.Max)
	case c.Min != nil:
		return per.EncodeSemiConstrained(buf, big.NewInt(v), *c.Min)
	default:
		return per.EncodeUnconstrainedWhole(buf, big.NewInt(v))
	}
}

func (c *integerCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	switch {
	case c.Min != nil && c.Max != nil && c.Extensible:
		bit, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit == 0 {
			return per.DecodeConstrained(buf, *c.Min, *c.Max)
		}
		return decodeUnconstrainedInt64(buf)
	case c.Min != nil && c.Max != nil:
		return per.DecodeConstrained(buf, *c.Min, *c.Max)
	case c.Min != nil:
		v, err := per.DecodeSemiConstrained(buf, *c.Min)
		if err != nil {
			return nil, err
		}
		return big64ToInt64(buf, v)
	default:
		return decodeUnconstrainedInt64(buf)
	}
}

func decodeUnconstrainedInt64(buf *bitbuffer.Buffer) (any, error) {
	v, err := per.DecodeUnconstrainedWhole(buf)
	if err != nil {
		return nil, err
	}
	return big64ToInt64(buf, v)
}

func big64ToInt64(buf *bitbuffer.Buffer, v *big.Int) (int64, error) {
	if !v.IsInt64() {
		return 0, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "decoded INTEGER %s overflows int64", v.String())
	}
	return v.Int64(), nil
}

func (c *integerCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
