// Package schema defines the declarative, JSON-serializable tree that
// package codec's Builder and Registry compile into codec graphs. A Schema
// value is a tagged variant: Kind selects which of the other fields are
// meaningful, mirroring the one-struct-plus-discriminator shape JSON
// naturally wants rather than a Go interface per kind — callers load
// schemas from JSON documents (or the ASN.1-to-schema bridge) far more
// often than they construct them by hand.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/internal/nameset"
)

// Kind names which ASN.1 type a Schema node describes.
type Kind string

const (
	KindBoolean          Kind = "boolean"
	KindInteger          Kind = "integer"
	KindEnumerated       Kind = "enumerated"
	KindBitString        Kind = "bit_string"
	KindOctetString      Kind = "octet_string"
	KindIA5String        Kind = "ia5_string"
	KindVisibleString    Kind = "visible_string"
	KindUTF8String       Kind = "utf8_string"
	KindObjectIdentifier Kind = "object_identifier"
	KindNull             Kind = "null"
	KindSequence         Kind = "sequence"
	KindSequenceOf       Kind = "sequence_of"
	KindChoice           Kind = "choice"
	KindRef              Kind = "ref"
)

// Schema is one node of the declarative type tree. Only the fields
// relevant to Kind are populated; Validate checks that callers have not
// mixed fields across kinds in a way the codec builder cannot represent.
type Schema struct {
	Kind Kind `json:"kind"`

	// INTEGER value bounds. Extensible is shared: it marks an extensible
	// INTEGER, ENUMERATED, size constraint, SEQUENCE or CHOICE.
	Min        *int64 `json:"min,omitempty"`
	Max        *int64 `json:"max,omitempty"`
	Extensible bool   `json:"extensible,omitempty"`

	// BIT STRING / OCTET STRING / character string / SEQUENCE OF size
	// constraints. FixedSize is mutually exclusive with MinSize/MaxSize.
	FixedSize *int `json:"fixed_size,omitempty"`
	MinSize   *int `json:"min_size,omitempty"`
	MaxSize   *int `json:"max_size,omitempty"`

	// IA5String/VisibleString known-multiplier alphabet override. Empty
	// means the codec's built-in default for the kind.
	Alphabet string `json:"alphabet,omitempty"`

	// ENUMERATED identifiers, root and extension.
	Values          []string `json:"values,omitempty"`
	ExtensionValues []string `json:"extension_values,omitempty"`

	// SEQUENCE fields, root and extension, in declaration order.
	Fields          []Field `json:"fields,omitempty"`
	ExtensionFields []Field `json:"extension_fields,omitempty"`

	// SEQUENCE OF element type.
	Item *Schema `json:"item,omitempty"`

	// CHOICE alternatives, root and extension, in declaration order.
	Alternatives          []Alternative `json:"alternatives,omitempty"`
	ExtensionAlternatives []Alternative `json:"extension_alternatives,omitempty"`

	// Ref names a sibling type in the enclosing Registry (KindRef only).
	Ref string `json:"ref,omitempty"`
}

// Field is one SEQUENCE member.
type Field struct {
	Name         string  `json:"name"`
	Schema       *Schema `json:"schema"`
	Optional     bool    `json:"optional,omitempty"`
	HasDefault   bool    `json:"has_default,omitempty"`
	DefaultValue any     `json:"default_value,omitempty"`
}

// Alternative is one CHOICE member.
type Alternative struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

// UnmarshalJSON rejects unknown fields, surfacing them as a SchemaError
// rather than silently dropping typos in a hand-written schema document.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type alias Schema
	var a alias
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrSchemaError, err)
	}
	*s = Schema(a)
	return s.Validate()
}

// Validate checks the structural invariants a Schema node must satisfy
// regardless of which codec eventually consumes it: size-constraint
// fields are not mixed incompatibly, and name uniqueness holds across a
// whole SEQUENCE (root fields plus extension fields together) or a whole
// CHOICE (root alternatives plus extension alternatives together).
func (s *Schema) Validate() error {
	if s.FixedSize != nil && (s.MinSize != nil || s.MaxSize != nil) {
		return fmt.Errorf("%w: fixed_size is mutually exclusive with min_size/max_size", errs.ErrSchemaError)
	}
	if s.MinSize != nil && s.MaxSize != nil && *s.MaxSize < *s.MinSize {
		return fmt.Errorf("%w: max_size %d is less than min_size %d", errs.ErrSchemaError, *s.MaxSize, *s.MinSize)
	}

	switch s.Kind {
	case KindSequence:
		if err := validateUniqueFieldNames(s.Fields, s.ExtensionFields); err != nil {
			return err
		}
	case KindChoice:
		if len(s.Alternatives) == 0 {
			return fmt.Errorf("%w: CHOICE must declare at least one root alternative", errs.ErrSchemaError)
		}
		if err := validateUniqueAlternativeNames(s.Alternatives, s.ExtensionAlternatives); err != nil {
			return err
		}
	case KindEnumerated:
		if len(s.Values) == 0 {
			return fmt.Errorf("%w: ENUMERATED must declare at least one root value", errs.ErrSchemaError)
		}
	case KindRef:
		if s.Ref == "" {
			return fmt.Errorf("%w: $ref requires a non-empty name", errs.ErrSchemaError)
		}
	}
	return nil
}

// validateUniqueFieldNames checks name uniqueness across every field group
// passed in together, so a name may not legally appear in both a
// SEQUENCE's root fields and its extension fields.
func validateUniqueFieldNames(fieldGroups ...[]Field) error {
	tr := nameset.NewTracker()
	for _, fields := range fieldGroups {
		for _, f := range fields {
			if !tr.Track(f.Name) {
				return fmt.Errorf("%w: duplicate field name %q", errs.ErrSchemaError, f.Name)
			}
		}
	}
	return nil
}

// validateUniqueAlternativeNames checks name uniqueness across every
// alternative group passed in together, so a name may not legally appear
// in both a CHOICE's root alternatives and its extension alternatives.
func validateUniqueAlternativeNames(altGroups ...[]Alternative) error {
	tr := nameset.NewTracker()
	for _, alts := range altGroups {
		for _, a := range alts {
			if !tr.Track(a.Name) {
				return fmt.Errorf("%w: duplicate alternative name %q", errs.ErrSchemaError, a.Name)
			}
		}
	}
	return nil
}
