package hash_test

import (
	"testing"

	"github.com/asn1per/asn1per/internal/hash"
	"github.com/stretchr/testify/assert"
)

func TestBytesIsDeterministic(t *testing.T) {
	data := []byte{0x25, 0x09, 0x15}

	assert.Equal(t, hash.Bytes(data), hash.Bytes(data))
	assert.NotEqual(t, hash.Bytes(data), hash.Bytes([]byte{0x25, 0x09, 0x16}))
}
