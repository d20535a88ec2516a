package schemastore_test

import (
	"testing"

	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/format"
	"github.com/asn1per/asn1per/schema"
	"github.com/asn1per/asn1per/schemastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func min64(v int64) *int64 { return &v }

func sampleSchema() *schema.Schema {
	return &schema.Schema{
		Kind: schema.KindInteger,
		Min:  min64(0),
		Max:  min64(255),
	}
}

func TestSaveLoadRoundTripNoCompression(t *testing.T) {
	data, err := schemastore.Save(sampleSchema(), format.CompressionNone)
	require.NoError(t, err)

	got, err := schemastore.Load(data)
	require.NoError(t, err)
	assert.Equal(t, sampleSchema(), got)
}

func TestSaveLoadRoundTripZstd(t *testing.T) {
	data, err := schemastore.Save(sampleSchema(), format.CompressionZstd)
	require.NoError(t, err)

	got, err := schemastore.Load(data)
	require.NoError(t, err)
	assert.Equal(t, sampleSchema(), got)
}

func TestSaveRegistryLoadRegistryRoundTrip(t *testing.T) {
	schemas := map[string]schema.Schema{
		"Id": *sampleSchema(),
	}
	data, err := schemastore.SaveRegistry(schemas, format.CompressionLZ4)
	require.NoError(t, err)

	got, err := schemastore.LoadRegistry(data)
	require.NoError(t, err)
	assert.Equal(t, schemas, got)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	_, err := schemastore.Load([]byte("XXXX\x01\x01payload"))
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	_, err := schemastore.Load([]byte("A1"))
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}
