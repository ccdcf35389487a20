package tariffconv

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	eng "github.com/reoring/tariffconv/internal/engine"
	"github.com/reoring/tariffconv/internal/jsontok"
)

// tokenKind enumerates JSON token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// TokenKind is the exported alias so drivers outside this package can build
// tokens.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenNull        TokenKind = _tokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; schemas decide how to interpret it.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources. Every input format is
// presented to schemas as the same token stream.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONReader tokenizes JSON from r with goccy/go-json as it is read.
func JSONReader(r io.Reader) Source { return &engineSourceAdapter{inner: jsontok.NewReader(r)} }

// JSONBytes tokenizes a JSON byte slice.
func JSONBytes(b []byte) Source { return &engineSourceAdapter{inner: jsontok.NewBytes(b)} }

// YAMLBytes decodes the first YAML document in b and exposes it as a Source.
// Timestamp scalars keep their source text so the field codec sees exactly
// what was written. Decode failures surface on the first NextToken call.
func YAMLBytes(b []byte) Source {
	if len(bytes.TrimSpace(b)) == 0 {
		return &errSource{err: io.ErrUnexpectedEOF}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return &errSource{err: fmt.Errorf("yaml: %w", err)}
	}
	v, err := yamlValue(&doc)
	if err != nil {
		return &errSource{err: fmt.Errorf("yaml: %w", err)}
	}
	return treeSource(v)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode || (k.ShortTag() != "!!str" && k.ShortTag() != "!!merge") {
				return nil, fmt.Errorf("line %d: non-string mapping key %q", k.Line, k.Value)
			}
			if _, dup := m[k.Value]; dup {
				return nil, fmt.Errorf("line %d: mapping key %q already defined", k.Line, k.Value)
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[k.Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	if n.ShortTag() == "!!timestamp" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}

// TOMLBytes decodes a TOML document and exposes it as a Source. Local
// date-times, dates and times are passed on as offset-less text.
func TOMLBytes(b []byte) Source {
	var m map[string]any
	if _, err := toml.Decode(string(b), &m); err != nil {
		return &errSource{err: fmt.Errorf("toml: %w", err)}
	}
	if m == nil {
		m = map[string]any{}
	}
	return treeSource(tomlLocalTimes(m))
}

// Zone names BurntSushi/toml gives values written without an offset.
var tomlLocalLayouts = map[string]string{
	"datetime-local": "2006-01-02T15:04:05.999999999",
	"date-local":     "2006-01-02",
	"time-local":     "15:04:05.999999999",
}

func tomlLocalTimes(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = tomlLocalTimes(e)
		}
		return x
	case []map[string]any:
		for _, e := range x {
			tomlLocalTimes(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = tomlLocalTimes(e)
		}
		return x
	case time.Time:
		if layout, ok := tomlLocalLayouts[x.Location().String()]; ok {
			return x.Format(layout)
		}
		return x
	}
	return v
}

// SourceFor picks the driver for format f.
func SourceFor(f Format, b []byte) (Source, error) {
	switch f {
	case FormatJSON, "":
		return JSONBytes(b), nil
	case FormatYAML:
		return YAMLBytes(b), nil
	case FormatTOML:
		return TOMLBytes(b), nil
	}
	return nil, fmt.Errorf("tariffconv: unsupported input format %q", f)
}

func treeSource(v any) Source {
	nv, err := eng.NormalizeTree(v)
	if err != nil {
		return &errSource{err: err}
	}
	return &engineSourceAdapter{inner: eng.NewTreeSource(nv)}
}

// SourceFromEngine wraps an engine.TokenSource as a Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

// EngineTokenSource exposes the engine.TokenSource view of a Source.
func EngineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

// EnforceSource wraps a Source with runtime enforcement (duplicate keys, depth, bytes).
func EnforceSource(s Source, opt ParseOpt) Source {
	enforced := eng.WrapWithEnforcement(EngineTokenSource(s), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	})
	return SourceFromEngine(enforced)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	if s == Error {
		return eng.DupError
	}
	return eng.DupIgnore
}

type errSource struct{ err error }

func (e *errSource) NextToken() (Token, error) { return Token{}, e.err }
func (e *errSource) Location() int64           { return -1 }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	default:
		return _tokenNull
	}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
