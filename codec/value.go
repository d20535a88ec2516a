// Package codec implements the PER-unaligned type codecs: BOOLEAN, NULL,
// INTEGER, ENUMERATED, BIT STRING, OCTET STRING, the character string
// kinds, OBJECT IDENTIFIER, SEQUENCE, SEQUENCE OF, and CHOICE, plus the
// Builder/Registry that compile a schema.Schema tree into a graph of them
// and the metadata-tracking decode path.
//
// Every codec implements Codec: Encode writes a Go value to a bit buffer,
// Decode reads one back, and DecodeWithMetadata reads one back wrapped in a
// DecodedNode carrying its exact source bit range.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
)

// Codec is the operation set every PER type codec implements.
type Codec interface {
	Encode(buf *bitbuffer.Buffer, value any) error
	Decode(buf *bitbuffer.Buffer) (any, error)
	DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error)
}

// BitString is the abstract value of a BIT STRING: a byte slice holding
// BitLen bits, MSB-aligned the same way bitbuffer.ExtractBits packs them.
type BitString struct {
	Bytes  []byte
	BitLen int
}

// ObjectIdentifier is a dot-notation arc sequence, e.g. {1, 2, 840, 113549}
// for "1.2.840.113549".
type ObjectIdentifier []uint64

// String renders the OID in dot notation.
func (oid ObjectIdentifier) String() string {
	parts := make([]string, len(oid))
	for i, arc := range oid {
		parts[i] = strconv.FormatUint(arc, 10)
	}
	return strings.Join(parts, ".")
}

// ParseObjectIdentifier parses an OID's dot-notation string form into its
// arc sequence. It does not check arc1/arc2 range constraints; those are
// enforced by the OBJECT IDENTIFIER codec's Encode, which every
// ObjectIdentifier value eventually passes through.
func ParseObjectIdentifier(s string) (ObjectIdentifier, error) {
	parts := strings.Split(s, ".")
	oid := make(ObjectIdentifier, len(parts))
	for i, p := range parts {
		arc, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: OBJECT IDENTIFIER component %q is not a non-negative integer", errs.ErrInvalidArgument, p)
		}
		oid[i] = arc
	}
	return oid, nil
}

// Choice is the abstract value of a CHOICE: which alternative was selected,
// and that alternative's value.
type Choice struct {
	Key   string
	Value any
}

// PreEncoded is an opaque, already-encoded bit span. Any codec's Encode
// writes it verbatim via write_raw_bits instead of running its normal
// encoding logic — this is how a parent structure embeds a substructure
// encoded separately, and how a DecodedNode's RawBytes can be spliced back
// into a stream being rebuilt.
type PreEncoded struct {
	Bytes  []byte
	BitLen int
}
