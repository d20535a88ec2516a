package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

// SizeConstraint is the SIZE-constraint shape shared by BIT STRING, OCTET
// STRING, IA5String/VisibleString (measured in characters), UTF8String
// (measured in bytes), and SEQUENCE OF (measured in elements). FixedSize is
// mutually exclusive with MinSize/MaxSize; leaving all three nil means
// unconstrained.
type SizeConstraint struct {
	FixedSize  *int
	MinSize    *int
	MaxSize    *int
	Extensible bool
}

func (s SizeConstraint) rootBounds() (min, max int, unconstrained bool) {
	switch {
	case s.FixedSize != nil:
		return *s.FixedSize, *s.FixedSize, false
	case s.MinSize != nil && s.MaxSize != nil:
		return *s.MinSize, *s.MaxSize, false
	default:
		return 0, 0, true
	}
}

func (s SizeConstraint) inRoot(n int) bool {
	min, max, unconstrained := s.rootBounds()
	if unconstrained {
		return true
	}
	return n >= min && n <= max
}

// encodeLength writes the length determinant for a size of n: an
// extension bit first if Extensible, then either a
// constrained whole number (bounded root range) or an unconstrained length
// determinant (no bounds, or an out-of-root-range extension value).
func (s SizeConstraint) encodeLength(buf *bitbuffer.Buffer, n int) error {
	if s.Extensible {
		if s.inRoot(n) {
			if err := buf.WriteBit(0); err != nil {
				return err
			}
			return s.encodeRoot(buf, n)
		}
		if err := buf.WriteBit(1); err != nil {
			return err
		}
		return per.EncodeUnconstrainedLength(buf, n)
	}
	return s.encodeRoot(buf, n)
}

func (s SizeConstraint) encodeRoot(buf *bitbuffer.Buffer, n int) error {
	min, max, unconstrained := s.rootBounds()
	if unconstrained {
		return per.EncodeUnconstrainedLength(buf, n)
	}
	if n < min || n > max {
		return fmt.Errorf("%w: length %d outside size constraint [%d,%d]", errs.ErrConstraintViolation, n, min, max)
	}
	return per.EncodeConstrainedLength(buf, n, min, max)
}

// decodeLength inverts encodeLength, additionally reporting whether the
// value arrived via the extension branch.
func (s SizeConstraint) decodeLength(buf *bitbuffer.Buffer) (n int, viaExtension bool, err error) {
	if s.Extensible {
		bit, err := buf.ReadBit()
		if err != nil {
			return 0, false, err
		}
		if bit == 1 {
			n, err := per.DecodeUnconstrainedLength(buf)
			return n, true, err
		}
	}
	n, err = s.decodeRoot(buf)
	return n, false, err
}

func (s SizeConstraint) decodeRoot(buf *bitbuffer.Buffer) (int, error) {
	min, max, unconstrained := s.rootBounds()
	if unconstrained {
		return per.DecodeUnconstrainedLength(buf)
	}
	return per.DecodeConstrainedLength(buf, min, max)
}
