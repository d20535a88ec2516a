package format_test

import (
	"testing"

	"github.com/asn1per/asn1per/format"
	"github.com/stretchr/testify/assert"
)

func TestCompressionTypeString(t *testing.T) {
	assert.Equal(t, "None", format.CompressionNone.String())
	assert.Equal(t, "Zstd", format.CompressionZstd.String())
	assert.Equal(t, "S2", format.CompressionS2.String())
	assert.Equal(t, "LZ4", format.CompressionLZ4.String())
	assert.Equal(t, "Unknown", format.CompressionType(0xFF).String())
}
