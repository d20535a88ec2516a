package codec

import (
	"fmt"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/per"
)

// ChoiceAlt is one CHOICE alternative: its name and wire codec.
type ChoiceAlt struct {
	Name  string
	Codec Codec
}

type choiceCodec struct {
	root       []ChoiceAlt
	extension  []ChoiceAlt
	extensible bool
	rootIndex  map[string]int
	extIndex   map[string]int
}

// NewChoice returns a CHOICE codec over root and, if extensible, extension
// alternatives. Values are represented as Choice.
func NewChoice(root, extension []ChoiceAlt, extensible bool) Codec {
	rootIndex := make(map[string]int, len(root))
	for i, a := range root {
		rootIndex[a.Name] = i
	}
	extIndex := make(map[string]int, len(extension))
	for i, a := range extension {
		extIndex[a.Name] = i
	}
	return withPassthrough(&choiceCodec{root: root, extension: extension, extensible: extensible, rootIndex: rootIndex, extIndex: extIndex})
}

func (c *choiceCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	ch, ok := value.(Choice)
	if !ok {
		return fmt.Errorf("%w: CHOICE requires a Choice value, got %T", errs.ErrSchemaViolation, value)
	}

	if idx, ok := c.rootIndex[ch.Key]; ok {
		if c.extensible {
			if err := buf.WriteBit(0); err != nil {
				return err
			}
		}
		if len(c.root) > 1 {
			if err := per.EncodeConstrained(buf, int64(idx), 0, int64(len(c.root)-1)); err != nil {
				return err
			}
		}
		return c.root[idx].Codec.Encode(buf, ch.Value)
	}

	if c.extensible {
		if idx, ok := c.extIndex[ch.Key]; ok {
			if err := buf.WriteBit(1); err != nil {
				return err
			}
			if err := per.EncodeNormallySmall(buf, idx); err != nil {
				return err
			}
			tmp := bitbuffer.New()
			defer tmp.Release()
			if err := c.extension[idx].Codec.Encode(tmp, ch.Value); err != nil {
				return err
			}
			body := tmp.ToBytes()
			if err := per.EncodeUnconstrainedLength(buf, len(body)); err != nil {
				return err
			}
			return buf.WriteOctets(body)
		}
	}
	return fmt.Errorf("%w: %q is not a declared CHOICE alternative", errs.ErrSchemaViolation, ch.Key)
}

func (c *choiceCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	isExt := false
	if c.extensible {
		b, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		isExt = b == 1
	}

	if isExt {
		idx, err := per.DecodeNormallySmall(buf)
		if err != nil {
			return nil, err
		}
		n, err := per.DecodeUnconstrainedLength(buf)
		if err != nil {
			return nil, err
		}
		body, err := buf.ReadOctets(n)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(c.extension) {
			return nil, errs.At(errs.ErrInvalidEncoding, buf.Offset(), "extension CHOICE index %d is unknown", idx)
		}
		inner := bitbuffer.Wrap(body)
		defer inner.Release()
		v, err := c.extension[idx].Codec.Decode(inner)
		if err != nil {
			return nil, err
		}
		return Choice{Key: c.extension[idx].Name, Value: v}, nil
	}

	idx := 0
	if len(c.root) > 1 {
		v, err := per.DecodeConstrained(buf, 0, int64(len(c.root)-1))
		if err != nil {
			return nil, err
		}
		idx = int(v)
	}
	value, err := c.root[idx].Codec.Decode(buf)
	if err != nil {
		return nil, err
	}
	return Choice{Key: c.root[idx].Name, Value: value}, nil
}

func (c *choiceCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	start := buf.Offset()
	isExt := false
	if c.extensible {
		b, err := buf.ReadBit()
		if err != nil {
			return nil, err
		}
		isExt = b == 1
	}

	var key string
	var child *DecodedNode
	if isExt {
		idx, err := per.DecodeNormallySmall(buf)
		if err != nil {
			return nil, err
		}
		n, err := per.DecodeUnconstrainedLength(buf)
		if err != nil {
			return nil, err
		}
		bodyStart := buf.Offset()
		body, err := buf.ReadOctets(n)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(c.extension) {
			return nil, errs.At(errs.ErrInvalidEncoding, bodyStart, "extension CHOICE index %d is unknown", idx)
		}
		inner := bitbuffer.Wrap(body)
		defer inner.Release()
		decoded, err := c.extension[idx].Codec.DecodeWithMetadata(inner)
		if err != nil {
			return nil, err
		}
		decoded.IsExtension = true
		decoded.BitOffset = bodyStart
		key, child = c.extension[idx].Name, decoded
	} else {
		idx := 0
		if len(c.root) > 1 {
			v, err := per.DecodeConstrained(buf, 0, int64(len(c.root)-1))
			if err != nil {
				return nil, err
			}
			idx = int(v)
		}
		decoded, err := c.root[idx].Codec.DecodeWithMetadata(buf)
		if err != nil {
			return nil, err
		}
		key, child = c.root[idx].Name, decoded
	}

	length := buf.Offset() - start
	raw, _ := buf.ExtractBits(start, length)
	return &DecodedNode{Value: ChoiceNode{Key: key, Child: child}, BitOffset: start, BitLength: length, RawBytes: raw, Codec: c}, nil
}
