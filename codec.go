package tadow

import (
	"mime"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Codec turns raw bytes of one content type into structured data and back. Structured data is made of
// map[string]any, []any, string, float64, bool and nil.
type Codec interface {
	Decode(data []byte) (any, error)
	Encode(v any) ([]byte, error)
}

// CodecFuncs allows a pair of functions to implement [Codec].
type CodecFuncs struct {
	DecodeFunc func([]byte) (any, error)
	EncodeFunc func(any) ([]byte, error)
}

// Decode implements [Codec].
func (f CodecFuncs) Decode(data []byte) (any, error) { return f.DecodeFunc(data) }

// Encode implements [Codec].
func (f CodecFuncs) Encode(v any) ([]byte, error) { return f.EncodeFunc(v) }

// Codecs is the content negotiation registry. It binds content types to codecs and transcodes text from and
// to the configured character encoding. It must not be modified after the app starts serving.
type Codecs struct {
	charset string
	enc     encoding.Encoding // nil for utf-8
	codecs  map[string]Codec
	frozen  atomic.Bool
}

// NewCodecs creates a registry with the built-in json, xml and plain text codecs. It fails if the
// configured encoding is unknown.
func NewCodecs(cfg Config) (*Codecs, error) {
	cfg = cfg.withDefaults()

	enc, name := charset.Lookup(cfg.DefaultEncoding)
	if enc == nil {
		return nil, errors.Newf("unsupported character encoding: %q", cfg.DefaultEncoding)
	}

	if name == "utf-8" {
		enc = nil
	}

	r := &Codecs{charset: name, enc: enc, codecs: map[string]Codec{}}
	r.Register("application/json", JSONCodec{})
	r.Register("application/xml", XMLCodec{Charset: name})
	r.Register("text/xml", XMLCodec{Charset: name})
	r.Register("text/plain", TextCodec{})

	return r, nil
}

// Register binds the codec to the content type, replacing any earlier binding. It panics once the app that
// owns the registry is serving.
func (r *Codecs) Register(contentType string, c Codec) {
	if r.frozen.Load() {
		panic(frozenMessage)
	}

	r.codecs[mediaType(contentType)] = c
}

// Lookup returns the codec bound to the content type. Parameters of the content type are ignored.
func (r *Codecs) Lookup(contentType string) (Codec, bool) {
	c, ok := r.codecs[mediaType(contentType)]
	return c, ok
}

func (r *Codecs) freeze() { r.frozen.Store(true) }

// Charset returns the canonical name of the character encoding.
func (r *Codecs) Charset() string { return r.charset }

// Decode decodes data under the content type. Any failure to parse is reported as a malformed body.
func (r *Codecs) Decode(data []byte, contentType string) (any, error) {
	c, ok := r.Lookup(contentType)
	if !ok {
		return nil, UnsupportedContentType(contentType)
	}

	if r.enc != nil {
		utf8, _, err := transform.Bytes(r.enc.NewDecoder(), data)
		if err != nil {
			return nil, MalformedBody(errors.Wrapf(err, "failed to decode %s text", r.charset))
		}

		data = utf8
	}

	v, err := c.Decode(data)
	if err != nil {
		return nil, MalformedBody(err)
	}

	return v, nil
}

// Encode encodes v under the content type.
func (r *Codecs) Encode(v any, contentType string) ([]byte, error) {
	c, ok := r.Lookup(contentType)
	if !ok {
		return nil, UnsupportedContentType(contentType)
	}

	data, err := c.Encode(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", contentType)
	}

	if r.enc != nil {
		if data, _, err = transform.Bytes(r.enc.NewEncoder(), data); err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s text", r.charset)
		}
	}

	return data, nil
}

// mediaType strips parameters from a content type and lowercases it.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}

	return strings.ToLower(strings.TrimSpace(mt))
}
