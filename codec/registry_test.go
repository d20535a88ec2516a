package codec_test

import (
	"testing"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/codec"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treeNodeSchema() map[string]schema.Schema {
	return map[string]schema.Schema{
		"TreeNode": {
			Kind: schema.KindSequence,
			Fields: []schema.Field{
				{Name: "value", Schema: &schema.Schema{Kind: schema.KindInteger, Min: schemaIntPtr(0), Max: schemaIntPtr(255)}},
				{Name: "children", Schema: &schema.Schema{
					Kind: schema.KindSequenceOf,
					Item: &schema.Schema{Kind: schema.KindRef, Ref: "TreeNode"},
				}},
			},
		},
	}
}

func TestBuildAllResolvesRecursiveRef(t *testing.T) {
	codecs, err := codec.BuildAll(treeNodeSchema())
	require.NoError(t, err)

	tree := codecs["TreeNode"]
	leaf := map[string]any{"value": int64(2), "children": []any{}}
	value := map[string]any{
		"value":    int64(1),
		"children": []any{leaf},
	}

	buf := bitbuffer.New()
	require.NoError(t, tree.Encode(buf, value))

	require.NoError(t, buf.Seek(0))
	got, err := tree.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestBuildAllUnresolvedRefIsSchemaError(t *testing.T) {
	schemas := map[string]schema.Schema{
		"A": {Kind: schema.KindRef, Ref: "Missing"},
	}
	codecs, err := codec.BuildAll(schemas)
	require.NoError(t, err) // building itself succeeds; the ref is lazy

	buf := bitbuffer.New()
	err = codecs["A"].Encode(buf, int64(1))
	assert.ErrorIs(t, err, errs.ErrSchemaError)
}
