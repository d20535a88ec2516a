package errs

import "fmt"

// At wraps a sentinel error with the bit offset at which it occurred
// and a short message, matching the detail-wrapping convention used
// throughout the codec (every call site wraps a sentinel rather than
// returning it bare).
//
// Example:
//
//	return errs.At(errs.ErrBufferUnderflow, offset, "read %d bits, only %d remain", count, remaining)
func At(sentinel error, bitOffset int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w at bit %d: %s", sentinel, bitOffset, msg)
}
