package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestIntegerConstrainedRoundTrip(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(255)})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, int64(200)))
	assert.Equal(t, 8, buf.BitLength())

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got)
}

func TestIntegerConstrainedNonExtensibleOutOfRange(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(255)})
	buf := bitbuffer.New()
	err := c.Encode(buf, int64(300))
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}

func TestIntegerConstrainedExtensibleOverflowsToUnconstrained(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{Min: ptr(0), Max: ptr(255), Extensible: true})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, int64(1000)))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got)
}

func TestIntegerSemiConstrainedRoundTrip(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{Min: ptr(10)})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, int64(10000)))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got)
}

func TestIntegerUnconstrainedRoundTripNegative(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, int64(-5000)))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-5000), got)
}

func TestIntegerRejectsNonIntegerValue(t *testing.T) {
	c := codec.NewInteger(codec.IntegerConstraint{})
	buf := bitbuffer.New()
	err := c.Encode(buf, "5")
	assert.ErrorIs(t, err, errs.ErrSchemaViolation)
}
