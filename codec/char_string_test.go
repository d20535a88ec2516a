package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIA5StringDefaultAlphabetRoundTrip(t *testing.T) {
	c := codec.NewIA5String(codec.SizeConstraint{}, "")
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, "Hello!"))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", got)
}

func TestVisibleStringOverrideAlphabetRoundTrip(t *testing.T) {
	c := codec.NewVisibleString(codec.SizeConstraint{}, "dcba")
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, "abcd"))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", got)
}

func TestCharStringOverrideDeduplicatesAlphabet(t *testing.T) {
	// "aabb" canonicalizes to the alphabet {a, b}; 'c' is then out of range.
	c := codec.NewVisibleString(codec.SizeConstraint{}, "aabb")
	buf := bitbuffer.New()
	err := c.Encode(buf, "c")
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}

func TestUTF8StringRoundTrip(t *testing.T) {
	c := codec.NewUTF8String(codec.SizeConstraint{})
	buf := bitbuffer.New()
	require.NoError(t, c.Encode(buf, "héllo wörld 中文"))

	require.NoError(t, buf.Seek(0))
	got, err := c.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld 中文", got)
}

func TestIA5StringRejectsCharacterOutsideAlphabet(t *testing.T) {
	c := codec.NewIA5String(codec.SizeConstraint{}, "abc")
	buf := bitbuffer.New()
	err := c.Encode(buf, "z")
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
}
