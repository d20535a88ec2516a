package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

// SeqField is one SEQUENCE member: its wire codec plus OPTIONAL/DEFAULT
// declaration.
type SeqField struct {
	Name         string
	Codec        Codec
	Optional     bool
	HasDefault   bool
	DefaultValue any
}

type sequenceCodec struct {
	fields          []SeqField
	extensionFields []SeqField
	extensible      bool
}

// NewSequence returns a SEQUENCE codec. Values are represented as
// map[string]any, keyed by field name; absent OPTIONAL (non-DEFAULT)
// fields are simply missing keys.
func NewSequence(fields, extensionFields []SeqField, extensible bool) Codec {
	return withPassthrough(&sequenceCodec{fields: fields, extensionFields: extensionFields, extensible: extensible})
}

// rootDecision captures, for one root field, whether it goes in the
// preamble/body and what value to encode if so.
type rootDecision struct {
	present bool
	value   any
}

func (c *sequenceCodec) rootDecisions(m map[string]any) ([]rootDecision, error) {
	decisions := make([]rootDecision, len(c.fields))
	for i, f := range c.fields {
		v, ok := m[f.Name]
		switch {
		case !f.Optional && !f.HasDefault:
			if !ok {
				return nil, fmt.Errorf("%w: missing mandatory field %q", errs.ErrSchemaViolation, f.Name)
			}
			decisions[i] = rootDecision{present: true, value: v}
		case f.HasDefault:
			if ok && !valuesEqual(v, f.DefaultValue) {
				decisions[i] = rootDecision{present: true, value: v}
			}
		default:
			if ok {
				decisions[i] = rootDecision{present: true, value: v}
			}
		}
	}
	return decisions, nil
}

func (c *sequenceCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	m, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: SEQUENCE requires a map[string]any value, got %T", errs.ErrSchemaViolation, value)
	}

	extPresent := make([]bool, len(c.extensionFields))
	anyExtPresent := false
	if c.extensible {
		for i, f := range c.extensionFields {
			if _, present := m[f.Name]; present {
				extPresent[i] = true
				anyExtPresent = true
			}
		}
		bit := byte(0)
		if anyExtPresent {
			bit = 1
		}
		if err := buf.WriteBit(bit); err != nil {
			return err
		}
	}

	decisions, err := c.rootDecisions(m)
	if err != nil {
		return err
	}
	for i, f := range c.fields {
		if !f.Optional && !f.HasDefault {
			continue
		}
		bit := byte(0)
		if decisions[i].present {
			bit = 1
		}
		if err := buf.WriteBit(bit); err != nil {
			return err
		}
	}
	for i, f := range c.fields {
		if decisions[i].present {
			if err := f.Codec.Encode(buf, decisions[i].value); err != nil {
				return err
			}
		}
	}

	if c.extensible && anyExtPresent {
		if err := per.EncodeNormallySmall(buf, len(c.extensionFields)-1); err != nil {
			return err
		}
		for _, present := range extPresent {
			bit := byte(0)
			if present {
				bit = 1
			}
			if err := buf.WriteBit(bit); err != nil {
				return err
			}
		}
		for i, f := range c.extensionFields {
			if !extPresent[i] {
				continue
			}
			tmp := bitbuffer.New()
			if err := f.Codec.Encode(tmp, m[f.Name]); err != nil {
				tmp.Release()
				return err
			}
			body := tmp.ToBytes()
			tmp.Release()
			if err := per.EncodeUnconstrainedLength(buf, len(body)); err != nil {
				return err
			}
			if err := buf.WriteOctets(body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *sequenceCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	result := make(map[string]any, len(c.fields))

	extBit := byte(0)
	if c.extensible {
		b, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		extBit = b
	}

	presentRoot, err := c.decodeRootPresence(buf)
	if err != nil {
		return nil, err
	}
	for i, f := range c.fields {
		switch {
		case presentRoot[i]:
			v, err := f.Codec.Decode(buf)
			if err != nil {
				return nil, err
			}
			result[f.Name] = v
		case f.HasDefault:
			result[f.Name] = f.DefaultValue
		}
	}

	if c.extensible && extBit == 1 {
		if err := c.decodeExtensions(buf, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *sequenceCodec) decodeRootPresence(buf *bitbuffer.Buffer) ([]bool, error) {
	presentRoot := make([]bool, len(c.fields))
	for i, f := range c.fields {
		if f.Optional || f.HasDefault {
			b, err := buf.ReadBit()
			if err != nil {
				return nil, err
			}
			presentRoot[i] = b == 1
		} else {
			presentRoot[i] = true
		}
	}
	return presentRoot, nil
}

func (c *sequenceCodec) decodeExtensions(buf *bitbuffer.Buffer, result map[string]any) error {
	count, err := per.DecodeNormallySmall(buf)
	if err != nil {
		return err
	}
	count++
	presentExt := make([]bool, count)
	for i := range presentExt {
		b, err := buf.ReadBit()
		if err != nil {
			return err
		}
		presentExt[i] = b == 1
	}
	for i := 0; i < count; i++ {
		if !presentExt[i] {
			continue
		}
		n, err := per.DecodeUnconstrainedLength(buf)
		if err != nil {
			return err
		}
		body, err := buf.ReadOctets(n)
		if err != nil {
			return err
		}
		if i >= len(c.extensionFields) {
			continue // unknown extension: consumed, silently discarded
		}
		inner := bitbuffer.Wrap(body)
		v, err := c.extensionFields[i].Codec.Decode(inner)
		inner.Release()
		if err != nil {
			return err
		}
		result[c.extensionFields[i].Name] = v
	}
	return nil
}

func (c *sequenceCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	start := buf.Offset()
	children := make(map[string]*DecodedNode, len(c.fields)+len(c.extensionFields))

	extBit := byte(0)
	if c.extensible {
		b, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		extBit = b
	}

	presentRoot, err := c.decodeRootPresence(buf)
	if err != nil {
		return nil, err
	}
	for i, f := range c.fields {
		if presentRoot[i] {
			child, err := f.Codec.DecodeWithMetadata(buf)
			if err != nil {
				return nil, err
			}
			child.Optional = f.Optional || f.HasDefault
			child.Present = true
			children[f.Name] = child
			continue
		}
		var defaultValue any
		if f.HasDefault {
			defaultValue = f.DefaultValue
		}
		cursor := buf.Offset()
		children[f.Name] = &DecodedNode{
			Value: defaultValue, BitOffset: cursor, BitLength: 0, RawBytes: []byte{},
			Codec: f.Codec, Optional: true, Present: false, IsDefault: f.HasDefault,
		}
	}

	if c.extensible && extBit == 1 {
		if err := c.decodeExtensionsWithMetadata(buf, children); err != nil {
			return nil, err
		}
	}

	length := buf.Offset() - start
	raw, _ := buf.ExtractBits(start, length)
	return &DecodedNode{Value: children, BitOffset: start, BitLength: length, RawBytes: raw, Codec: c}, nil
}

func (c *sequenceCodec) decodeExtensionsWithMetadata(buf *bitbuffer.Buffer, children map[string]*DecodedNode) error {
	count, err := per.DecodeNormallySmall(buf)
	if err != nil {
		return err
	}
	count++
	presentExt := make([]bool, count)
	for i := range presentExt {
		b, err := buf.ReadBit()
		if err != nil {
			return err
		}
		presentExt[i] = b == 1
	}
	for i := 0; i < count; i++ {
		if !presentExt[i] {
			continue
		}
		n, err := per.DecodeUnconstrainedLength(buf)
		if err != nil {
			return err
		}
		bodyStart := buf.Offset()
		body, err := buf.ReadOctets(n)
		if err != nil {
			return err
		}
		if i >= len(c.extensionFields) {
			continue
		}
		f := c.extensionFields[i]
		inner := bitbuffer.Wrap(body)
		child, err := f.Codec.DecodeWithMetadata(inner)
		inner.Release()
		if err != nil {
			return err
		}
		child.IsExtension = true
		child.Present = true
		child.BitOffset = bodyStart
		children[f.Name] = child
	}
	return nil
}
