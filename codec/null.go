package codec

import "github.com/asn1per/asn1per/bitbuffer"

type nullCodec struct{}

// NewNull returns the NULL codec: 0 bits, value is always nil.
func NewNull() Codec {
	return withPassthrough(nullCodec{})
}

func (nullCodec) Encode(_ *bitbuffer.Buffer, _ any) error {
	return nil
}

func (nullCodec) Decode(_ *bitbuffer.Buffer) (any, error) {
	return nil, nil
}

func (c nullCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
