package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceOfRoundTrip(t *testing.T) {
	item := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(100)})
	c := codec.NewSequenceOf(item, codec.SizeConstraint{})

	buf := bitbuffer.New()
	values := []any{int64(1), int64(2), int64(3)}
	require.NoError(t, c.Encode(buf, values))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestSequenceOfEmptyRoundTrip(t *testing.T) {
	item := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(100)})
	c := codec.NewSequenceOf(item, codec.SizeConstraint{})

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, []any{}))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)
}

func TestSequenceOfFixedSizeRoundTrip(t *testing.T) {
	item := codec.NewBoolean()
	c := codec.NewSequenceOf(item, codec.SizeConstraint{FixedSize: intPtr(2)})

	buf := bitbuffer.New()
	values := []any{true, false}
	require.NoError(t, c.Encode(buf, values))
	assert.Equal(t, 2, buf.BitLength())

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}
