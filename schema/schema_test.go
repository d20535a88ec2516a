package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSONRejectsUnknownFields(t *testing.T) {
	var s schema.Schema
	err := json.Unmarshal([]byte(`{"kind":"boolean","bogus_field":1}`), &s)
	assert.ErrorIs(t, err, errs.ErrSchemaError)
}

func TestUnmarshalJSONRoundTripsInteger(t *testing.T) {
	var s schema.Schema
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"integer","min":0,"max":255}`), &s))
	assert.Equal(t, schema.KindInteger, s.Kind)
	require.NotNil(t, s.Min)
	require.NotNil(t, s.Max)
	assert.Equal(t, int64(0), *s.Min)
	assert.Equal(t, int64(255), *s.Max)
}

func TestValidateRejectsFixedSizeWithMinSize(t *testing.T) {
	fixed, min := 4, 1
	s := schema.Schema{Kind: schema.KindOctetString, FixedSize: &fixed, MinSize: &min}
	assert.ErrorIs(t, s.Validate(), errs.ErrSchemaError)
}

func TestValidateRejectsDuplicateFieldNames(t *testing.T) {
	s := schema.Schema{
		Kind: schema.KindSequence,
		Fields: []schema.Field{
			{Name: "a", Schema: &schema.Schema{Kind: schema.KindBoolean}},
			{Name: "a", Schema: &schema.Schema{Kind: schema.KindBoolean}},
		},
	}
	assert.ErrorIs(t, s.Validate(), errs.ErrSchemaError)
}

func TestValidateRejectsDuplicateAlternativeNames(t *testing.T) {
	s := schema.Schema{
		Kind: schema.KindChoice,
		Alternatives: []schema.Alternative{
			{Name: "a", Schema: &schema.Schema{Kind: schema.KindBoolean}},
			{Name: "a", Schema: &schema.Schema{Kind: schema.KindInteger}},
		},
	}
	assert.ErrorIs(t, s.Validate(), errs.ErrSchemaError)
}

func TestValidateRejectsChoiceWithNoAlternatives(t *testing.T) {
	s := schema.Schema{Kind: schema.KindChoice}
	assert.ErrorIs(t, s.Validate(), errs.ErrSchemaError)
}

func TestValidateRejectsEmptyRef(t *testing.T) {
	s := schema.Schema{Kind: schema.KindRef}
	assert.ErrorIs(t, s.Validate(), errs.ErrSchemaError)
}
