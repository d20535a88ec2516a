package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBitStringFixedSizeRoundTrip(t *testing.T) {
	c := codec.NewBitString(codec.SizeConstraint{FixedSize: intPtr(12)})
	value := codec.BitString{Bytes: []byte{0b10110100, 0b10100000}, BitLen: 12}

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, value))
	assert.Equal(t, 12, buf.BitLength())

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestBitStringUnconstrainedRoundTrip(t *testing.T) {
	c := codec.NewBitString(codec.SizeConstraint{})
	value := codec.BitString{Bytes: []byte{0xFF, 0xE0}, BitLen: 11}

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, value))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}
