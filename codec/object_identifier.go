package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

type objectIdentifierCodec struct{}

// NewObjectIdentifier returns the OBJECT IDENTIFIER codec: an unconstrained
// length determinant followed by X.690 §8.19 content octets.
func NewObjectIdentifier() Codec {
	return withPassthrough(objectIdentifierCodec{})
}

func (objectIdentifierCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	oid, ok := value.(ObjectIdentifier)
	if !ok {
		return fmt.Errorf("%w: OBJECT IDENTIFIER requires an ObjectIdentifier value, got %T", errs.ErrSchemaViolation, value)
	}
	if len(oid) < 2 {
		return fmt.Errorf("%w: OBJECT IDENTIFIER needs at least 2 arcs, got %d", errs.ErrConstraintViolation, len(oid))
	}
	arc1, arc2 := oid[0], oid[1]
	if arc1 > 2 {
		return fmt.Errorf("%w: first arc must be 0, 1, or 2, got %d", errs.ErrConstraintViolation, arc1)
	}
	if arc1 < 2 && arc2 > 39 {
		return fmt.Errorf("%w: second arc must be <= 39 when first arc is 0 or 1, got %d", errs.ErrConstraintViolation, arc2)
	}

	var content []byte
	content = appendVLQ(content, 40*arc1+arc2)
	for _, arc := range oid[2:] {
		content = appendVLQ(content, arc)
	}
	if err := per.EncodeUnconstrainedLength(buf, len(content)); err != nil {
		return err
	}
	return buf.WriteOctets(content)
}

func (objectIdentifierCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	n, err := per.DecodeUnconstrainedLength(buf)
	if err != nil {
		return nil, err
	}
	contentStart := buf.Offset()
	content, err := buf.ReadOctets(n)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, errs.At(errs.ErrInvalidEncoding, contentStart, "OBJECT IDENTIFIER content is empty")
	}

	first, pos, err := readVLQ(content, 0, contentStart)
	if err != nil {
		return nil, err
	}
	var arc1, arc2 uint64
	switch {
	case first < 40:
		arc1, arc2 = 0, first
	case first < 80:
		arc1, arc2 = 1, first-40
	default:
		arc1, arc2 = 2, first-80
	}

	oid := ObjectIdentifier{arc1, arc2}
	for pos < len(content) {
		arc, next, err := readVLQ(content, pos, contentStart)
		if err != nil {
			return nil, err
		}
		oid = append(oid, arc)
		pos = next
	}
	return oid, nil
}

func (c objectIdentifierCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}

// appendVLQ appends value's base-128 variable-length-quantity encoding,
// most significant group first, continuation bit set on every byte but the
// last.
func appendVLQ(dst []byte, value uint64) []byte {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(value & 0x7F)
	value >>= 7
	for value > 0 {
		i--
		tmp[i] = byte(value&0x7F) | 0x80
		value >>= 7
	}
	return append(dst, tmp[i:]...)
}

// readVLQ reads one base-128 VLQ group starting at pos, returning the
// decoded value and the position just past it. contentStart is the bit
// offset the content octets began at, used only to annotate a truncation
// error with the stream position it occurred at.
func readVLQ(data []byte, pos, contentStart int) (uint64, int, error) {
	start := pos
	var value uint64
	for {
		if pos >= len(data) {
			return 0, 0, errs.At(errs.ErrInvalidEncoding, contentStart+start*8, "truncated OBJECT IDENTIFIER arc starting at byte %d", start)
		}
		b := data[pos]
		value = (value << 7) | uint64(b&0x7F)
		pos++
		if b&0x80 == 0 {
			return value, pos, nil
		}
	}
}
