package codec

import (
	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

// withPassthrough wraps a type codec so that any PreEncoded value it is
// asked to encode is written verbatim (via write_raw_bits) instead of going
// through the wrapped codec's normal encoding logic. Every NewXxx
// constructor in this package returns its codec through this wrapper, so
// passthrough is a single grounding point rather than a check repeated in
// every Encode method.
func withPassthrough(inner Codec) Codec {
	return passthroughCodec{inner: inner}
}

type passthroughCodec struct {
	inner Codec
}

func (p passthroughCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	if pe, ok := value.(PreEncoded); ok {
		if pe.BitLen < 0 || pe.BitLen > len(pe.Bytes)*8 {
			return errs.At(errs.ErrInvalidArgument, buf.Offset(), "pre-encoded bit_length %d exceeds %d available bits", pe.BitLen, len(pe.Bytes)*8)
		}
		return buf.WriteRawBits(pe.Bytes, pe.BitLen)
	}
	return p.inner.Encode(buf, value)
}

func (p passthroughCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	return p.inner.Decode(buf)
}

func (p passthroughCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return p.inner.DecodeWithMetadata(buf)
}
