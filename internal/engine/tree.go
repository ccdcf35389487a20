package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// NormalizeTree converts a value tree produced by a foreign decoder (YAML,
// TOML) into the shape DecodeAnyFromSource produces for JSON: map[string]any,
// []any, string, bool, nil and json.Number. Native date-times become RFC 3339
// strings; callers must pass offset-less values as text beforehand. Floats keep a fractional marker so integer schemas still reject them.
func NormalizeTree(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, json.Number:
		return x, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ne, err := NormalizeTree(e)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string object key %v (%T)", k, k)
			}
			ne, err := NormalizeTree(e)
			if err != nil {
				return nil, err
			}
			out[ks] = ne
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			ne, err := NormalizeTree(e)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
		return out, nil
	case []map[string]any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			ne, err := NormalizeTree(e)
			if err != nil {
				return nil, err
			}
			out = append(out, ne)
		}
		return out, nil
	case int:
		return json.Number(strconv.FormatInt(int64(x), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(x), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(x), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(x), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(x, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(x, 10)), nil
	case float32:
		return floatNumber(float64(x))
	case float64:
		return floatNumber(x)
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", v)
	}
}

func floatNumber(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s), nil
}

// NewTreeSource replays a normalized value tree as tokens so that trees from
// non-JSON decoders go through the same enforcement and decoding as JSON.
// Object keys are emitted in sorted order.
func NewTreeSource(v any) TokenSource {
	ts := &treeSource{}
	ts.flatten(v)
	return ts
}

type treeSource struct {
	toks []Token
	pos  int
}

func (t *treeSource) flatten(v any) {
	switch x := v.(type) {
	case map[string]any:
		t.toks = append(t.toks, Token{Kind: KindBeginObject, Offset: -1})
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.toks = append(t.toks, Token{Kind: KindKey, String: k, Offset: -1})
			t.flatten(x[k])
		}
		t.toks = append(t.toks, Token{Kind: KindEndObject, Offset: -1})
	case []any:
		t.toks = append(t.toks, Token{Kind: KindBeginArray, Offset: -1})
		for _, e := range x {
			t.flatten(e)
		}
		t.toks = append(t.toks, Token{Kind: KindEndArray, Offset: -1})
	case string:
		t.toks = append(t.toks, Token{Kind: KindString, String: x, Offset: -1})
	case json.Number:
		t.toks = append(t.toks, Token{Kind: KindNumber, Number: string(x), Offset: -1})
	case bool:
		t.toks = append(t.toks, Token{Kind: KindBool, Bool: x, Offset: -1})
	default:
		t.toks = append(t.toks, Token{Kind: KindNull, Offset: -1})
	}
}

func (t *treeSource) NextToken() (Token, error) {
	if t.pos >= len(t.toks) {
		return Token{}, io.EOF
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok, nil
}

func (t *treeSource) Location() int64 { return -1 }
