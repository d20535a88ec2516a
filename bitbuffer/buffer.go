// Package bitbuffer provides the MSB-first bit-level stream that every PER
// codec in this module reads from and writes to. PER unaligned packs fields
// back-to-back with no byte padding between them, so the primitive unit of
// I/O here is the bit, not the byte.
//
// Buffer plays both roles a codec needs from a single type: built fresh via
// New, it is a write cursor that grows as bits are appended; wrapped around
// an existing octet string via Wrap, it is a read cursor over that data.
// Both roles share one bit-addressed backing store (internal/pool.ByteBuffer)
// so that a value written by one Buffer can be handed to another via
// ExtractBits/WriteRawBits without ever leaving bit-stream form — this is
// how a decoded metadata node's raw span is captured and how a PreEncoded
// value is spliced back into a stream.
package bitbuffer

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/internal/pool"
)

// Buffer is a growable, MSB-first bit stream. The zero value is not usable;
// construct one with New or Wrap.
//
// bitLen is the number of valid bits currently held. cursor is the read
// position: WriteX calls always append at bitLen and never move cursor,
// and ReadX calls consume forward from cursor without disturbing bitLen.
// A freshly built Buffer can therefore be read back from bit 0 without a
// Seek; Seek repositions cursor anywhere in [0, bitLen].
type Buffer struct {
	store  *pool.ByteBuffer
	bitLen int
	cursor int
}

// New returns an empty Buffer ready for writing, its backing store drawn
// from the shared pool. Call Release when the buffer's content has been
// copied out (via ToBytes, ToHex, or similar) and the Buffer itself is
// done being used, so its storage can be reused by the next New or Wrap.
func New() *Buffer {
	return &Buffer{store: pool.GetBuffer()}
}

// Wrap returns a Buffer for reading the full bit content of data.
func Wrap(data []byte) *Buffer {
	return WrapBits(data, len(data)*8)
}

// WrapBits returns a Buffer over the first bitLen bits of data. It panics if
// bitLen does not fit in data, since that is always a caller programming
// error rather than a malformed-input condition.
func WrapBits(data []byte, bitLen int) *Buffer {
	if bitLen < 0 || bitLen > len(data)*8 {
		panic("bitbuffer: bitLen out of range for data")
	}
	b := New()
	b.store.MustWrite(data)
	b.bitLen = bitLen
	return b
}

func (b *Buffer) byteLen() int {
	return (b.bitLen + 7) / 8
}

// ensureByteCap grows the backing store, zero-filling, so that byte index
// n-1 is addressable.
func (b *Buffer) ensureByteCap(n int) {
	if b.store.Len() >= n {
		return
	}
	b.store.Grow(n - b.store.Len())
	for b.store.Len() < n {
		b.store.AppendByte(0)
	}
}

// WriteBit appends a single bit (0 or 1).
func (b *Buffer) WriteBit(bit byte) error {
	if bit > 1 {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "bit value must be 0 or 1, got %d", bit)
	}
	byteIdx := b.bitLen / 8
	bitIdx := b.bitLen % 8
	b.ensureByteCap(byteIdx + 1)
	if bit == 1 {
		b.store.B[byteIdx] |= 1 << (7 - bitIdx)
	}
	b.bitLen++
	return nil
}

// ReadBit consumes and returns a single bit from the cursor.
func (b *Buffer) ReadBit() (byte, error) {
	if b.cursor >= b.bitLen {
		return 0, errs.At(errs.ErrBufferUnderflow, b.cursor, "no more bits to read")
	}
	byteIdx := b.cursor / 8
	bitIdx := b.cursor % 8
	bit := (b.store.B[byteIdx] >> (7 - bitIdx)) & 1
	b.cursor++
	return bit, nil
}

// WriteBits appends the low count bits of value, most significant first.
// count must be in [0, 32].
func (b *Buffer) WriteBits(value uint32, count int) error {
	if count < 0 || count > 32 {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "bit count must be between 0 and 32, got %d", count)
	}
	for i := count - 1; i >= 0; i-- {
		if err := b.WriteBit(byte((value >> uint(i)) & 1)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBits consumes count bits (count in [0, 32]) and returns them packed
// into a uint32, most significant bit first.
func (b *Buffer) ReadBits(count int) (uint32, error) {
	if count < 0 || count > 32 {
		return 0, errs.At(errs.ErrInvalidArgument, b.cursor, "bit count must be between 0 and 32, got %d", count)
	}
	var result uint32
	for i := 0; i < count; i++ {
		bit, err := b.ReadBit()
		if err != nil {
			return 0, err
		}
		result = (result << 1) | uint32(bit)
	}
	return result, nil
}

// WriteWideBits appends value using exactly count bits, most significant
// first. Unlike WriteBits there is no 32-bit ceiling, since unconstrained
// whole numbers and large BIT STRING lengths can exceed it. value must be
// non-negative and must fit in count bits.
func (b *Buffer) WriteWideBits(value *big.Int, count int) error {
	if count < 0 {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "bit count must be non-negative, got %d", count)
	}
	if value.Sign() < 0 {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "wide bit value must be non-negative")
	}
	if value.BitLen() > count {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "value needs %d bits but only %d are available", value.BitLen(), count)
	}
	for i := count - 1; i >= 0; i-- {
		if err := b.WriteBit(byte(value.Bit(i))); err != nil {
			return err
		}
	}
	return nil
}

// ReadWideBits consumes count bits and returns them as an arbitrary-
// precision, non-negative integer, most significant bit first.
func (b *Buffer) ReadWideBits(count int) (*big.Int, error) {
	if count < 0 {
		return nil, errs.At(errs.ErrInvalidArgument, b.cursor, "bit count must be non-negative, got %d", count)
	}
	result := new(big.Int)
	for i := 0; i < count; i++ {
		bit, err := b.ReadBit()
		if err != nil {
			return nil, err
		}
		result.Lsh(result, 1)
		if bit == 1 {
			result.SetBit(result, 0, 1)
		}
	}
	return result, nil
}

// WriteOctets appends data as whole bytes. It does not byte-align the
// stream first — PER unaligned never pads, so the octets land at whatever
// bit offset the cursor is already at.
func (b *Buffer) WriteOctets(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if b.bitLen%8 == 0 {
		byteIdx := b.bitLen / 8
		b.ensureByteCap(byteIdx + len(data))
		copy(b.store.B[byteIdx:], data)
		b.bitLen += len(data) * 8
		return nil
	}
	for _, by := range data {
		if err := b.WriteBits(uint32(by), 8); err != nil {
			return err
		}
	}
	return nil
}

// ReadOctets consumes n whole bytes from the cursor.
func (b *Buffer) ReadOctets(n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.At(errs.ErrInvalidArgument, b.cursor, "octet count must be non-negative, got %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	if b.Remaining() < n*8 {
		return nil, errs.At(errs.ErrBufferUnderflow, b.cursor, "need %d octets, only %d bits remain", n, b.Remaining())
	}
	out := make([]byte, n)
	if b.cursor%8 == 0 {
		byteIdx := b.cursor / 8
		copy(out, b.store.B[byteIdx:byteIdx+n])
		b.cursor += n * 8
		return out, nil
	}
	for i := range out {
		v, err := b.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ToBytes returns the buffer's valid content, padded with zero bits up to
// the next byte boundary. The returned slice is a copy.
func (b *Buffer) ToBytes() []byte {
	n := b.byteLen()
	out := make([]byte, n)
	copy(out, b.store.B[:n])
	return out
}

// ToHex returns ToBytes hex-encoded.
func (b *Buffer) ToHex() string {
	return hex.EncodeToString(b.ToBytes())
}

// ToBinaryString renders every valid bit as a '0'/'1' character, most
// significant bit first. Useful for test fixtures and debugging; not used
// on any hot path.
func (b *Buffer) ToBinaryString() string {
	var sb strings.Builder
	sb.Grow(b.bitLen)
	for i := 0; i < b.bitLen; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		if (b.store.B[byteIdx]>>(7-bitIdx))&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// FromBinaryString builds a Buffer from a string of '0'/'1' characters.
func FromBinaryString(s string) (*Buffer, error) {
	buf := New()
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			if err := buf.WriteBit(0); err != nil {
				return nil, err
			}
		case '1':
			if err := buf.WriteBit(1); err != nil {
				return nil, err
			}
		default:
			return nil, errs.At(errs.ErrInvalidArgument, buf.bitLen, "binary string may only contain '0' or '1', found %q at index %d", s[i], i)
		}
	}
	return buf, nil
}

// ExtractBits returns the length bits starting at startBit, MSB-aligned
// within the returned slice, without moving the cursor. It is how a decoder
// captures a DecodedNode's raw span.
func (b *Buffer) ExtractBits(startBit, length int) ([]byte, error) {
	if startBit < 0 || length < 0 || startBit+length > b.bitLen {
		return nil, errs.At(errs.ErrInvalidArgument, startBit, "range [%d,%d) out of bounds for %d-bit buffer", startBit, startBit+length, b.bitLen)
	}
	out := make([]byte, (length+7)/8)
	for i := 0; i < length; i++ {
		srcByte, srcBit := (startBit+i)/8, (startBit+i)%8
		if (b.store.B[srcByte]>>(7-srcBit))&1 == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}

// WriteRawBits appends the first bitLen bits of data, MSB-aligned the same
// way ExtractBits packs its output. This is the write-side counterpart used
// to splice an already-encoded value (a PreEncoded passthrough, or a BIT
// STRING's packed bits) into a stream being built.
func (b *Buffer) WriteRawBits(data []byte, bitLen int) error {
	if bitLen < 0 || bitLen > len(data)*8 {
		return errs.At(errs.ErrInvalidArgument, b.bitLen, "bitLen %d exceeds %d bits available in data", bitLen, len(data)*8)
	}
	for i := 0; i < bitLen; i++ {
		srcByte, srcBit := i/8, i%8
		if err := b.WriteBit((data[srcByte] >> (7 - srcBit)) & 1); err != nil {
			return err
		}
	}
	return nil
}

// Seek repositions the read cursor to an absolute bit offset.
func (b *Buffer) Seek(bitOffset int) error {
	if bitOffset < 0 || bitOffset > b.bitLen {
		return errs.At(errs.ErrInvalidArgument, b.cursor, "seek target %d out of range [0,%d]", bitOffset, b.bitLen)
	}
	b.cursor = bitOffset
	return nil
}

// Reset discards all content and returns the Buffer to its just-New state,
// retaining the backing store's allocation for reuse.
func (b *Buffer) Reset() {
	b.store.Reset()
	b.bitLen = 0
	b.cursor = 0
}

// Release returns the Buffer's backing store to the shared pool. The
// Buffer must not be used again afterward; call it only once a caller has
// copied out everything it needs (the bytes from ToBytes/ToHex, or a
// value already decoded from it).
func (b *Buffer) Release() {
	if b.store == nil {
		return
	}
	pool.PutBuffer(b.store)
	b.store = nil
	b.bitLen = 0
	b.cursor = 0
}

// Offset returns the current cursor position in bits.
func (b *Buffer) Offset() int {
	return b.cursor
}

// BitLength returns the number of valid bits held.
func (b *Buffer) BitLength() int {
	return b.bitLen
}

// Remaining returns the number of unread bits ahead of the cursor.
func (b *Buffer) Remaining() int {
	return b.bitLen - b.cursor
}
