package asn1per_test

import (
	"testing"

	"github.com/asn1per/asn1per"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func dynamicSessionSchema() *schema.Schema {
	return &schema.Schema{
		Kind: schema.KindSequence,
		Fields: []schema.Field{
			{Name: "session_id", Schema: &schema.Schema{Kind: schema.KindInteger, Min: i64(0), Max: i64(65535)}},
			{Name: "active", Schema: &schema.Schema{Kind: schema.KindBoolean}, HasDefault: true, DefaultValue: false},
		},
	}
}

func TestSchemaCodecEncodeDecodeRoundTrip(t *testing.T) {
	sc, err := asn1per.NewSchemaCodec(dynamicSessionSchema())
	require.NoError(t, err)

	value := map[string]any{"session_id": int64(1000), "active": true}
	data, err := sc.Encode(value)
	require.NoError(t, err)

	got, err := sc.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestSchemaCodecHexRoundTrip(t *testing.T) {
	sc, err := asn1per.NewSchemaCodec(dynamicSessionSchema())
	require.NoError(t, err)

	value := map[string]any{"session_id": int64(42), "active": false}
	hexStr, err := sc.EncodeToHex(value)
	require.NoError(t, err)

	got, err := sc.DecodeFromHex(" " + hexStr + "H ")
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestSchemaCodecDecodeFromHexRejectsOddLength(t *testing.T) {
	sc, err := asn1per.NewSchemaCodec(dynamicSessionSchema())
	require.NoError(t, err)

	_, err = sc.DecodeFromHex("abc")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestSchemaCodecEncodeToRawBytesPreservesBitLength(t *testing.T) {
	sc, err := asn1per.NewSchemaCodec(&schema.Schema{Kind: schema.KindBoolean})
	require.NoError(t, err)

	_, bitLen, err := sc.EncodeToRawBytes(true)
	require.NoError(t, err)
	assert.Equal(t, 1, bitLen)
}

func TestSchemaCodecMetadataStripEquivalence(t *testing.T) {
	sc, err := asn1per.NewSchemaCodec(dynamicSessionSchema())
	require.NoError(t, err)

	value := map[string]any{"session_id": int64(5), "active": true}
	data, err := sc.Encode(value)
	require.NoError(t, err)

	plain, err := sc.Decode(data)
	require.NoError(t, err)

	node, err := sc.DecodeWithMetadata(data)
	require.NoError(t, err)
	assert.Equal(t, plain, codec.StripMetadata(node))
}

func TestNewSchemaCodecFromCodecForRecursiveRegistry(t *testing.T) {
	schemas := map[string]schema.Schema{
		"TreeNode": {
			Kind: schema.KindSequence,
			Fields: []schema.Field{
				{Name: "value", Schema: &schema.Schema{Kind: schema.KindInteger, Min: i64(0), Max: i64(255)}},
				{Name: "children", Schema: &schema.Schema{
					Kind: schema.KindSequenceOf,
					Item: &schema.Schema{Kind: schema.KindRef, Ref: "TreeNode"},
				}},
			},
		},
	}
	codecs, err := codec.BuildAll(schemas)
	require.NoError(t, err)

	sc := asn1per.NewSchemaCodecFromCodec(codecs["TreeNode"])
	value := map[string]any{"value": int64(1), "children": []any{
		map[string]any{"value": int64(2), "children": []any{}},
	}}

	data, err := sc.Encode(value)
	require.NoError(t, err)
	got, err := sc.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}
