package codec

import (
	"reflect"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/internal/hash"
)

// DecodedNode is the result of DecodeWithMetadata: a decoded value plus the
// exact source bit range it came from. For composite codecs Value holds
// map[string]*DecodedNode (SEQUENCE), []*DecodedNode (SEQUENCE OF), or
// ChoiceNode (CHOICE); children carry their own DecodedNode recursively.
type DecodedNode struct {
	Value     any
	BitOffset int
	BitLength int
	RawBytes  []byte
	Codec     Codec

	// Field metadata, meaningful only for a SEQUENCE's children.
	Optional    bool
	Present     bool
	IsDefault   bool
	IsExtension bool
}

// ChoiceNode is a CHOICE's decoded value: which alternative, and its
// decoded child node.
type ChoiceNode struct {
	Key   string
	Child *DecodedNode
}

// Fingerprint hashes RawBytes, giving callers a stable identifier for a
// decoded sub-structure's exact bit-span without re-encoding it — useful
// for signature verification or change detection over a nested value.
func (n *DecodedNode) Fingerprint() uint64 {
	return hash.Bytes(n.RawBytes)
}

// decodeLeaf runs a primitive codec's Decode and wraps the result in a
// DecodedNode whose span is exactly the bits that Decode consumed. Every
// primitive codec's DecodeWithMetadata is this one line.
func decodeLeaf(buf *bitbuffer.Buffer, c Codec) (*DecodedNode, error) {
	start := buf.Offset()
	value, err := c.Decode(buf)
	if err != nil {
		return nil, err
	}
	return newNode(buf, c, value, start), nil
}

func newNode(buf *bitbuffer.Buffer, c Codec, value any, start int) *DecodedNode {
	length := buf.Offset() - start
	raw, _ := buf.ExtractBits(start, length)
	return &DecodedNode{Value: value, BitOffset: start, BitLength: length, RawBytes: raw, Codec: c}
}

// StripMetadata reconstructs the plain value a direct Decode would have
// produced: primitives pass through unchanged, a SEQUENCE's absent
// OPTIONAL (non-DEFAULT) fields are omitted, SEQUENCE OF becomes a plain
// slice, and CHOICE becomes a Choice.
func StripMetadata(node *DecodedNode) any {
	switch v := node.Value.(type) {
	case map[string]*DecodedNode:
		out := make(map[string]any, len(v))
		for name, child := range v {
			if child.Optional && !child.Present && !child.IsDefault {
				continue
			}
			out[name] = StripMetadata(child)
		}
		return out
	case []*DecodedNode:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = StripMetadata(child)
		}
		return out
	case ChoiceNode:
		return Choice{Key: v.Key, Value: StripMetadata(v.Child)}
	default:
		return node.Value
	}
}

// valuesEqual implements the default-equality test a SEQUENCE codec uses
// to decide whether a present DEFAULT field still needs to go in the
// preamble and body.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
