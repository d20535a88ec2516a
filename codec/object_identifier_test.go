package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectIdentifierRoundTripSmallArcs(t *testing.T) {
	c := codec.NewObjectIdentifier()
	oid := codec.ObjectIdentifier{1, 2, 840}

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, oid))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}

func TestObjectIdentifierRoundTripRSAStyle(t *testing.T) {
	// 1.2.840.113549.1.1.1 (rsaEncryption)
	c := codec.NewObjectIdentifier()
	oid := codec.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, oid))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, oid, got)
	assert.Equal(t, "1.2.840.113549.1.1.1", got.(codec.ObjectIdentifier).String())
}

func TestObjectIdentifierRejectsTooFewArcs(t *testing.T) {
	c := codec.NewObjectIdentifier()
	buf := bitbuffer.New()
	err := c.Encode(buf, codec.ObjectIdentifier{1})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}

func TestObjectIdentifierRejectsInvalidFirstArc(t *testing.T) {
	c := codec.NewObjectIdentifier()
	buf := bitbuffer.New()
	err := c.Encode(buf, codec.ObjectIdentifier{3, 1})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}

func TestParseObjectIdentifierRoundTripsWithString(t *testing.T) {
	oid, err := codec.ParseObjectIdentifier("1.2.840.113549.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, codec.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}, oid)
	assert.Equal(t, "1.2.840.113549.1.1.1", oid.String())
}

func TestParseObjectIdentifierRejectsNonNumericComponent(t *testing.T) {
	_, err := codec.ParseObjectIdentifier("1.2.x")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}
