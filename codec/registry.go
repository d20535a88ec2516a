package codec

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/asn1per/asn1per/bitbuffer"
	"github.com/asn1per/asn1per/errs"
	"github.com/asn1per/asn1per/internal/options"
	"github.com/asn1per/asn1per/schema"
)

// Registry compiles a name -> schema map into a name -> Codec map, resolving
// $ref nodes against its own entries so mutually recursive types can refer
// to each other without the builder recursing forever.
type Registry struct {
	codecs    map[string]Codec
	cache     *lru.Cache[string, Codec]
	group     singleflight.Group
	cacheSize int
}

// RegistryOption configures BuildAll.
type RegistryOption = options.Option[*Registry]

// WithLazyCacheSize overrides the bound on the registry's resolved-$ref
// cache. The default is one entry per schema in the map, which already
// covers every name a lazy codec could resolve to; pass a smaller size to
// bound memory for a registry built from a very large ASN.1 module where
// only a handful of recursive types are actually exercised at runtime.
func WithLazyCacheSize(n int) RegistryOption {
	return options.NoError[*Registry](func(r *Registry) { r.cacheSize = n })
}

// BuildAll compiles every schema in schemas and returns the resulting
// name -> Codec map. A $ref(name) anywhere in the trees produces a lazy
// codec that only looks up its target on first Encode/Decode call, so
// forward references between entries being built in the same call are
// fine as long as every referenced name is present in schemas.
func BuildAll(schemas map[string]schema.Schema, opts ...RegistryOption) (map[string]Codec, error) {
	r := &Registry{codecs: make(map[string]Codec, len(schemas)), cacheSize: lruCacheSize(len(schemas))}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	cache, err := lru.New[string, Codec](lruCacheSize(r.cacheSize))
	if err != nil {
		return nil, err
	}
	r.cache = cache

	for name, s := range schemas {
		s := s
		c, err := build(&s, r.resolve)
		if err != nil {
			return nil, fmt.Errorf("building schema %q: %w", name, err)
		}
		r.codecs[name] = c
	}
	return r.codecs, nil
}

func lruCacheSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func (r *Registry) resolve(name string) (Codec, error) {
	return &lazyCodec{registry: r, name: name}, nil
}

// lazyCodec is the proxy a $ref compiles to: it defers looking up its
// target in the registry until the first time it is actually used,
// breaking build-time cycles between mutually recursive schema entries.
type lazyCodec struct {
	registry *Registry
	name     string
}

func (l *lazyCodec) target() (Codec, error) {
	if c, ok := l.registry.cache.Get(l.name); ok {
		return c, nil
	}
	// singleflight collapses concurrent first-use resolutions of the same
	// name into one lookup, since codecs are shared across goroutines
	// once a Registry is built.
	v, err, _ := l.registry.group.Do(l.name, func() (any, error) {
		c, ok := l.registry.codecs[l.name]
		if !ok {
			return nil, fmt.Errorf("%w: unresolved $ref %q", errs.ErrSchemaError, l.name)
		}
		l.registry.cache.Add(l.name, c)
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Codec), nil
}

func (l *lazyCodec) Encode(buf *bitbuffer.Buffer, value any) error {
	target, err := l.target()
	if err != nil {
		return err
	}
	return target.Encode(buf, value)
}

func (l *lazyCodec) Decode(buf *bitbuffer.Buffer) (any, error) {
	target, err := l.target()
	if err != nil {
		return nil, err
	}
	return target.Decode(buf)
}

func (l *lazyCodec) DecodeWithMetadata(buf *bitbuffer.Buffer) (*DecodedNode, error) {
	target, err := l.target()
	if err != nil {
		return nil, err
	}
	return target.DecodeWithMetadata(buf)
}
