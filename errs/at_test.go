package errs_test

import (
	"errors"
	"testing"

	"github.com/asn1per/asn1per/errs"
	"github.com/stretchr/testify/require"
)

func TestAtWrapsSentinel(t *testing.T) {
	err := errs.At(errs.ErrBufferUnderflow, 42, "read %d bits, only %d remain", 8, 3)

	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrBufferUnderflow))
	require.Contains(t, err.Error(), "bit 42")
	require.Contains(t, err.Error(), "read 8 bits")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		errs.ErrConstraintViolation,
		errs.ErrSchemaViolation,
		errs.ErrSchemaError,
		errs.ErrInvalidEncoding,
		errs.ErrBufferUnderflow,
		errs.ErrInvalidArgument,
		errs.ErrUnsupported,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "%v should not be %v", a, b)
		}
	}
}
