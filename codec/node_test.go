package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestSequenceCodec() codec.Codec {
	return codec.NewSequence([]codec.SeqField{
		{Name: "id", Codec: codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(255)})},
		{Name: "tags", Codec: codec.NewSequenceOf(codec.NewIA5String(codec.SizeConstraint{}, ""), codec.SizeConstraint{})},
		{Name: "nickname", Codec: codec.NewIA5String(codec.SizeConstraint{}, ""), Optional: true},
	}, nil, false)
}

func TestStripMetadataMatchesPlainDecodeForSequence(t *testing.T) {
	c := buildTestSequenceCodec()
	value := map[string]any{
		"id":   int64(42),
		"tags": []any{"a", "b"},
	}

	encodeBuf := bitbuffer.New()
	require.NoError(t, c.Encode(encodeBuf, value))

	plainBuf := bitbuffer.Wrap(encodeBuf.ToBytes())
	plain, err := c.Decode(plainBuf)
	require.NoError(t, err)

	metaBuf := bitbuffer.Wrap(encodeBuf.ToBytes())
	node, err := c.DecodeWithMetadata(metaBuf)
	require.NoError(t, err)
	stripped := codec.StripMetadata(node)

	assert.Equal(t, plain, stripped)
}

func TestStripMetadataOmitsAbsentOptionalField(t *testing.T) {
	c := buildTestSequenceCodec()
	value := map[string]any{"id": int64(1), "tags": []any{}}

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, value))

	require.NoError(t, buf.Seek(0))
	node, err := c.DecodeWithMetadata(buf)
	require.NoError(t, err)

	stripped := codec.StripMetadata(node).(map[string]any)
	_, present := stripped["nickname"]
	assert.False(t, present)
}

func TestDecodedNodeFingerprintStableAcrossDecodes(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(255)})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, int64(9)))

	node1, err := c.DecodeWithMetadata(bitbuffer.Wrap(buf.ToBytes()))
	require.NoError(t, err)
	node2, err := c.DecodeWithMetadata(bitbuffer.Wrap(buf.ToBytes()))
	require.NoError(t, err)

	assert.Equal(t, node1.Fingerprint(), node2.Fingerprint())
}
