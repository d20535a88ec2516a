package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/schema"
)

// refResolver resolves a $ref node's target name to a Codec. nil means
// single-schema mode: a $ref has no registry context to resolve against.
type refResolver func(name string) (Codec, error)

// Build compiles a single schema tree into a Codec graph. A $ref node
// anywhere in the tree is a SchemaError, since there is no registry to
// resolve it against; use BuildAll for schemas that reference siblings.
func Build(s *schema.Schema) (Codec, error) {
	return build(s, nil)
}

func build(s *schema.Schema, resolve refResolver) (Codec, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Kind {
	case schema.KindBoolean:
		return NewBoolean(), nil
	case schema.KindNull:
		return NewNull(), nil
	case schema.KindInteger:
		return NewInteger(IntegerConstraint{Min: s.Min, Max: s.Max, Extensible: s.Extensible}), nil
	case schema.KindEnumerated:
		return NewEnumerated(s.Values, s.ExtensionValues, s.Extensible), nil
	case schema.KindBitString:
		return NewBitString(sizeConstraintFrom(s)), nil
	case schema.KindOctetString:
		return NewOctetString(sizeConstraintFrom(s)), nil
	case schema.KindIA5String:
		return NewIA5String(sizeConstraintFrom(s), s.Alphabet), nil
	case schema.KindVisibleString:
		return NewVisibleString(sizeConstraintFrom(s), s.Alphabet), nil
	case schema.KindUTF8String:
		return NewUTF8String(sizeConstraintFrom(s)), nil
	case schema.KindObjectIdentifier:
		return NewObjectIdentifier(), nil
	case schema.KindSequenceOf:
		if s.Item == nil {
			return nil, fmt.Errorf("%w: sequence_of requires an item schema", errs.ErrSchemaError)
		}
		item, err := build(s.Item, resolve)
		if err != nil {
			return nil, err
		}
		return NewSequenceOf(item, sizeConstraintFrom(s)), nil
	case schema.KindSequence:
		fields, err := buildFields(s.Fields, resolve)
		if err != nil {
			return nil, err
		}
		extFields, err := buildFields(s.ExtensionFields, resolve)
		if err != nil {
			return nil, err
		}
		return NewSequence(fields, extFields, s.Extensible), nil
	case schema.KindChoice:
		alts, err := buildAlternatives(s.Alternatives, resolve)
		if err != nil {
			return nil, err
		}
		extAlts, err := buildAlternatives(s.ExtensionAlternatives, resolve)
		if err != nil {
			return nil, err
		}
		return NewChoice(alts, extAlts, s.Extensible), nil
	case schema.KindRef:
		if resolve == nil {
			return nil, fmt.Errorf("%w: $ref %q encountered with no registry context", errs.ErrSchemaError, s.Ref)
		}
		return resolve(s.Ref)
	default:
		return nil, fmt.Errorf("%w: unknown schema kind %q", errs.ErrSchemaError, s.Kind)
	}
}

func sizeConstraintFrom(s *schema.Schema) SizeConstraint {
	return SizeConstraint{FixedSize: s.FixedSize, MinSize: s.MinSize, MaxSize: s.MaxSize, Extensible: s.Extensible}
}

func buildFields(fields []schema.Field, resolve refResolver) ([]SeqField, error) {
	out := make([]SeqField, len(fields))
	for i, f := range fields {
		if f.Schema == nil {
			return nil, fmt.Errorf("%w: field %q has no schema", errs.ErrSchemaError, f.Name)
		}
		c, err := build(f.Schema, resolve)
		if err != nil {
			return nil, err
		}
		out[i] = SeqField{Name: f.Name, Codec: c, Optional: f.Optional, HasDefault: f.HasDefault, DefaultValue: f.DefaultValue}
	}
	return out, nil
}

func buildAlternatives(alts []schema.Alternative, resolve refResolver) ([]ChoiceAlt, error) {
	out := make([]ChoiceAlt, len(alts))
	for i, a := range alts {
		if a.Schema == nil {
			return nil, fmt.Errorf("%w: alternative %q has no schema", errs.ErrSchemaError, a.Name)
		}
		c, err := build(a.Schema, resolve)
		if err != nil {
			return nil, err
		}
		out[i] = ChoiceAlt{Name: a.Name, Codec: c}
	}
	return out, nil
}
