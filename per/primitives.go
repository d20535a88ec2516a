// Package per implements the PER-unaligned encoding primitives that every
// type codec in package codec is built from: constrained and unconstrained
// whole numbers, the two length-determinant forms, and the
// normally-small-number encoding X.691 §10.6 defines for extension and
// choice indices. None of these know anything about ASN.1 type syntax —
// they only know how to turn integers and byte counts into bits and back.
package per

import (
	"fmt"
	"math/big"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

// ConstrainedBitCount returns the number of bits needed to represent every
// value in [min, max] as an offset from min. A range of size 1 needs 0
// bits; otherwise it is ceil(log2(max-min+1)).
func ConstrainedBitCount(min, max int64) (int, error) {
	if max < min {
		return 0, fmt.Errorf("%w: max %d is less than min %d", errs.ErrInvalidArgument, max, min)
	}
	if max == min {
		return 0, nil
	}
	rangeSize := new(big.Int).Sub(big.NewInt(max), big.NewInt(min))
	rangeSize.Add(rangeSize, big.NewInt(1))
	return new(big.Int).Sub(rangeSize, big.NewInt(1)).BitLen(), nil
}

// EncodeConstrained writes value as an offset from min in
// ConstrainedBitCount(min, max) bits.
func EncodeConstrained(buf *bitbuffer.Buffer, value, min, max int64) error {
	if value < min || value > max {
		return errs.At(errs.ErrConstraintViolation, buf.Offset(), "value %d outside [%d,%d]", value, min, max)
	}
	bitCount, err := ConstrainedBitCount(min, max)
	if err != nil {
		return err
	}
	if bitCount == 0 {
		return nil
	}
	diff := new(big.Int).Sub(big.NewInt(value), big.NewInt(min))
	return buf.WriteWideBits(diff, bitCount)
}

// DecodeConstrained inverts EncodeConstrained.
func DecodeConstrained(buf *bitbuffer.Buffer, min, max int64) (int64, error) {
	bitCount, err := ConstrainedBitCount(min, max)
	if err != nil {
		return 0, err
	}
	if bitCount == 0 {
		return min, nil
	}
	diff, err := buf.ReadWideBits(bitCount)
	if err != nil {
		return 0, err
	}
	if !diff.IsInt64() {
		return 0, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "decoded constrained offset overflows int64")
	}
	value := min + diff.Int64()
	if value < min || value > max {
		return 0, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "decoded value %d outside [%d,%d]", value, min, max)
	}
	return value, nil
}

// EncodeUnconstrainedLength writes a PER length determinant for n in its
// short form (n < 128), long form (128 <= n < 16384), or rejects the
// fragmented form (n >= 16384) with Unsupported — this module does not
// implement fragmentation.
func EncodeUnconstrainedLength(buf *bitbuffer.Buffer, n int) error {
	switch {
	case n < 0:
		return errs.At(errs.ErrInvalidArgument, buf.Offset(), "length must be non-negative, got %d", n)
	case n < 128:
		if err := buf.WriteBit(0); err != nil {
			return err
		}
		return buf.WriteBits(uint32(n), 7)
	case n < 16384:
		if err := buf.WriteBits(0b10, 2); err != nil {
			return err
		}
		return buf.WriteBits(uint32(n), 14)
	default:
		return errs.At(errs.ErrUnsupported, buf.Offset(), "length %d requires the fragmented form", n)
	}
}

// DecodeUnconstrainedLength inverts EncodeUnconstrainedLength. A leading
// "11" prefix marks the fragmented form and is rejected with Unsupported.
func DecodeUnconstrainedLength(buf *bitbuffer.Buffer) (int, error) {
	first, err := buf.ReadBit()
	if err != nil {
		return 0, err
	}
	if first == 0 {
		v, err := buf.ReadBits(7)
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}

	second, err := buf.ReadBit()
	if err != nil {
		return 0, err
	}
	if second == 0 {
		v, err := buf.ReadBits(14)
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	return 0, errs.At(errs.ErrUnsupported, buf.Offset(), "fragmented length form (11 prefix)")
}

// EncodeConstrainedLength writes a SIZE-constrained length: nothing for a
// fixed size, a constrained whole number when the range is small enough for
// PER to encode it that way, or an unconstrained length determinant for
// larger ranges.
func EncodeConstrainedLength(buf *bitbuffer.Buffer, n, min, max int) error {
	rangeSize := max - min + 1
	switch {
	case rangeSize == 1:
		return nil
	case rangeSize <= 65536:
		return EncodeConstrained(buf, int64(n), int64(min), int64(max))
	default:
		return EncodeUnconstrainedLength(buf, n)
	}
}

// DecodeConstrainedLength inverts EncodeConstrainedLength.
func DecodeConstrainedLength(buf *bitbuffer.Buffer, min, max int) (int, error) {
	rangeSize := max - min + 1
	switch {
	case rangeSize == 1:
		return min, nil
	case rangeSize <= 65536:
		v, err := DecodeConstrained(buf, int64(min), int64(max))
		return int(v), err
	default:
		return DecodeUnconstrainedLength(buf)
	}
}

// EncodeNormallySmall writes n using the X.691 §10.6 normally-small-number
// encoding: a 0 bit and 6-bit value for n < 64, else a 1 bit and a
// semi-constrained whole number with min 0. Extension counts and extension
// ENUMERATED/CHOICE indices use this so that the common case (fewer than 64)
// costs seven bits.
func EncodeNormallySmall(buf *bitbuffer.Buffer, n int) error {
	if n < 0 {
		return errs.At(errs.ErrInvalidArgument, buf.Offset(), "normally-small number must be non-negative, got %d", n)
	}
	if n < 64 {
		if err := buf.WriteBit(0); err != nil {
			return err
		}
		return buf.WriteBits(uint32(n), 6)
	}
	if err := buf.WriteBit(1); err != nil {
		return err
	}
	return EncodeSemiConstrained(buf, big.NewInt(int64(n)), 0)
}

// DecodeNormallySmall inverts EncodeNormallySmall.
func DecodeNormallySmall(buf *bitbuffer.Buffer) (int, error) {
	bit, err := buf.ReadBit()
	if err != nil {
		return 0, err
	}
	if bit == 0 {
		v, err := buf.ReadBits(6)
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	v, err := DecodeSemiConstrained(buf, 0)
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "normally-small extension value overflows int")
	}
	return int(v.Int64()), nil
}

// EncodeSemiConstrained writes value - min as a minimum-length unsigned
// big-endian byte sequence, prefixed by its byte count as an unconstrained
// length determinant.
func EncodeSemiConstrained(buf *bitbuffer.Buffer, value *big.Int, min int64) error {
	minBig := big.NewInt(min)
	if value.Cmp(minBig) < 0 {
		return errs.At(errs.ErrConstraintViolation, buf.Offset(), "value %s is below minimum %d", value.String(), min)
	}
	offset := new(big.Int).Sub(value, minBig)
	body := minimalUnsignedBytes(offset)
	if err := EncodeUnconstrainedLength(buf, len(body)); err != nil {
		return err
	}
	return buf.WriteOctets(body)
}

// DecodeSemiConstrained inverts EncodeSemiConstrained.
func DecodeSemiConstrained(buf *bitbuffer.Buffer, min int64) (*big.Int, error) {
	n, err := DecodeUnconstrainedLength(buf)
	if err != nil {
		return nil, err
	}
	body, err := buf.ReadOctets(n)
	if err != nil {
		return nil, err
	}
	offset := new(big.Int).SetBytes(body)
	return offset.Add(offset, big.NewInt(min)), nil
}

// EncodeUnconstrainedWhole writes value as a minimum-length two's
// complement big-endian byte sequence, prefixed by its byte count as an
// unconstrained length determinant.
func EncodeUnconstrainedWhole(buf *bitbuffer.Buffer, value *big.Int) error {
	body := minimalTwosComplementBytes(value)
	if err := EncodeUnconstrainedLength(buf, len(body)); err != nil {
		return err
	}
	return buf.WriteOctets(body)
}

// DecodeUnconstrainedWhole inverts EncodeUnconstrainedWhole.
func DecodeUnconstrainedWhole(buf *bitbuffer.Buffer) (*big.Int, error) {
	n, err := DecodeUnconstrainedLength(buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "unconstrained whole number needs at least one content octet")
	}
	body, err := buf.ReadOctets(n)
	if err != nil {
		return nil, err
	}
	return decodeTwosComplementBytes(body), nil
}
