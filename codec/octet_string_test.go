package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOctetStringFixedSizeRoundTrip(t *testing.T) {
	c := codec.NewOctetString(codec.SizeConstraint{FixedSize: intPtr(3)})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, []byte{1, 2, 3}))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestOctetStringUnconstrainedRoundTrip(t *testing.T) {
	c := codec.NewOctetString(codec.SizeConstraint{})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, []byte("hello world")))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)
}

func TestOctetStringRejectsWrongType(t *testing.T) {
	c := codec.NewOctetString(codec.SizeConstraint{})
	buf := bitbuffer.New()
	err := c.Encode(buf, "not bytes")
	assert.ErrorIs(t, err, errs.ErrSchemaViolation)
}

func TestOctetStringRejectsOutOfRangeSize(t *testing.T) {
	c := codec.NewOctetString(codec.SizeConstraint{MinSize: intPtr(2), MaxSize: intPtr(4)})
	buf := bitbuffer.New()
	err := c.Encode(buf, []byte{1})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}
