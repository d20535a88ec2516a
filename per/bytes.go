package per

import "math/big"

// minimalUnsignedBytes returns the minimum-length big-endian unsigned
// encoding of a non-negative value, using a single zero byte for zero
// (big.Int.Bytes returns an empty slice for zero, which is not a valid
// octet-string content).
func minimalUnsignedBytes(value *big.Int) []byte {
	if value.Sign() == 0 {
		return []byte{0x00}
	}
	return value.Bytes()
}

// minimalTwosComplementBytes returns the minimum-length big-endian two's
// complement encoding of value (positive, negative, or zero). It grows the
// byte count one byte at a time until value fits in the signed range that
// width represents, then reduces modulo 2^(8*width) to get the unsigned
// bit pattern FillBytes expects.
func minimalTwosComplementBytes(value *big.Int) []byte {
	nBytes := 1
	for {
		nBits := uint(nBytes * 8)
		high := new(big.Int).Lsh(big.NewInt(1), nBits-1)
		low := new(big.Int).Neg(high)
		high.Sub(high, big.NewInt(1))
		if value.Cmp(low) >= 0 && value.Cmp(high) <= 0 {
			break
		}
		nBytes++
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	unsigned := new(big.Int).Mod(value, mod)
	out := make([]byte, nBytes)
	unsigned.FillBytes(out)
	return out
}

// decodeTwosComplementBytes inverts minimalTwosComplementBytes.
func decodeTwosComplementBytes(data []byte) *big.Int {
	v := new(big.Int).SetBytes(data)
	if len(data) > 0 && data[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(data)*8))
		v.Sub(v, mod)
	}
	return v
}
