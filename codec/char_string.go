package codec

import (
	"fmt"
	"sort"

	set3 "github.com/TomTonic/Set3"
	"golang.org/x/text/unicode/norm"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

// charStringCodec implements IA5String, VisibleString (known-multiplier,
// one alphabet index per character) and UTF8String (length-prefixed UTF-8
// bytes, utf8 == true).
type charStringCodec struct {
	size     SizeConstraint
	alphabet []rune
	indexOf  map[rune]int
	utf8     bool
}

// NewIA5String returns an IA5String codec. alphabetOverride, if non-empty,
// replaces the default IA5 alphabet (characters 0..127) with the effective
// alphabet built from its unique, sorted, NFC-normalized characters.
func NewIA5String(size SizeConstraint, alphabetOverride string) Codec {
	return withPassthrough(newCharStringCodec(size, alphabetOverride, defaultIA5Alphabet, false))
}

// NewVisibleString returns a VisibleString codec. alphabetOverride, if
// non-empty, replaces the default Visible alphabet (characters 32..126).
func NewVisibleString(size SizeConstraint, alphabetOverride string) Codec {
	return withPassthrough(newCharStringCodec(size, alphabetOverride, defaultVisibleAlphabet, false))
}

// NewUTF8String returns a UTF8String codec: a size-constrained length
// determinant followed by the value's raw UTF-8 bytes.
func NewUTF8String(size SizeConstraint) Codec {
	return withPassthrough(&charStringCodec{size: size, utf8: true})
}

func newCharStringCodec(size SizeConstraint, alphabetOverride string, defaultAlphabet func() []rune, utf8 bool) *charStringCodec {
	alphabet := defaultAlphabet()
	if alphabetOverride != "" {
		alphabet = effectiveAlphabet(alphabetOverride)
	}
	indexOf := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		indexOf[r] = i
	}
	return &charStringCodec{size: size, alphabet: alphabet, indexOf: indexOf, utf8: utf8}
}

func defaultIA5Alphabet() []rune {
	out := make([]rune, 128)
	for i := range out {
		out[i] = rune(i)
	}
	return out
}

func defaultVisibleAlphabet() []rune {
	out := make([]rune, 0, 95)
	for r := rune(32); r <= 126; r++ {
		out = append(out, r)
	}
	return out
}

// effectiveAlphabet canonicalizes an override string to NFC (so that
// visually identical but differently-composed characters collapse to one
// code point) and returns its sorted, deduplicated runes.
func effectiveAlphabet(override string) []rune {
	normalized := norm.NFC.String(override)
	seen := set3.Empty[rune]()
	out := make([]rune, 0, len(normalized))
	for _, r := range normalized {
		if !seen.Contains(r) {
			seen.Add(r)
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *charStringCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: character string requires a string value, got %T", errs.ErrSchemaViolation, value)
	}
	if c.utf8 {
		data := []byte(s)
		if err := c.size.encodeLength(buf, len(data)); err != nil {
			return err
		}
		return buf.WriteOctets(data)
	}

	runes := []rune(s)
	if err := c.size.encodeLength(buf, len(runes)); err != nil {
		return err
	}
	maxIdx := int64(len(c.alphabet) - 1)
	for _, r := range runes {
		idx, ok := c.indexOf[r]
		if !ok {
			return fmt.Errorf("%w: character %q is not in the effective alphabet", errs.ErrConstraintViolation, r)
		}
		if err := per.EncodeConstrained(buf, int64(idx), 0, maxIdx); err != nil {
			return err
		}
	}
	return nil
}

func (c *charStringCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	n, _, err := c.size.decodeLength(buf)
	if err != nil {
		return nil, err
	}
	if c.utf8 {
		data, err := buf.ReadOctets(n)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	}

	maxIdx := int64(len(c.alphabet) - 1)
	runes := make([]rune, n)
	for i := 0; i < n; i++ {
		idx, err := per.DecodeConstrained(buf, 0, maxIdx)
		if err != nil {
			return nil, err
		}
		if idx < 0 || int(idx) >= len(c.alphabet) {
			return nil, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "decoded alphabet index %d out of range", idx)
		}
		runes[i] = c.alphabet[idx]
	}
	return string(runes), nil
}

func (c *charStringCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	return decodeLeaf(buf, c)
}
