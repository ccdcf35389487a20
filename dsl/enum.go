package dsl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

// Enum returns a schema for a closed set of values carried on the wire as
// string tokens. The table must be one-to-one; Enum panics otherwise since a
// broken table is a programming error.
func Enum[T comparable](tokens map[string]T) tariffconv.Schema[T] {
	s := &enumSchema[T]{byToken: make(map[string]T, len(tokens)), byValue: make(map[T]string, len(tokens))}
	for tok, v := range tokens {
		if prev, dup := s.byValue[v]; dup {
			panic(fmt.Sprintf("dsl.Enum: value %v mapped by both %q and %q", v, prev, tok))
		}
		s.byToken[tok] = v
		s.byValue[v] = tok
		s.allowed = append(s.allowed, tok)
	}
	sort.Strings(s.allowed)
	return s
}

// EnumOf adapts Enum to AnyAdapter for use in typed object builders.
func EnumOf[T comparable](tokens map[string]T) AnyAdapter {
	return anyAdapterFromSchema[T](Enum(tokens))
}

type enumSchema[T comparable] struct {
	byToken map[string]T
	byValue map[T]string
	allowed []string
}

func (e *enumSchema[T]) hint() string { return "one of: " + strings.Join(e.allowed, ", ") }

func (e *enumSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	s, ok := v.(string)
	if !ok {
		return zero, invalidType("expected string")
	}
	tv, ok := e.byToken[s]
	if !ok {
		it := tariffconv.Root().Issue(tariffconv.CodeInvalidEnum, i18n.T(tariffconv.CodeInvalidEnum, nil), "allowed", e.allowed, "got", s)
		it.Hint = e.hint()
		return zero, tariffconv.Issues{it}
	}
	return tv, nil
}

func (e *enumSchema[T]) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("expected string")
	}
	return nil
}

func (e *enumSchema[T]) ValidateValue(ctx context.Context, v T) error {
	if _, ok := e.byValue[v]; !ok {
		return tariffconv.Issues{{Path: "/", Code: tariffconv.CodeInvalidEnum, Message: i18n.T(tariffconv.CodeInvalidEnum, nil), Hint: e.hint()}}
	}
	return nil
}

func (e *enumSchema[T]) Encode(ctx context.Context, v T) (any, error) {
	tok, ok := e.byValue[v]
	if !ok {
		return nil, tariffconv.Issues{{Path: "/", Code: tariffconv.CodeEncode, Message: i18n.T(tariffconv.CodeEncode, nil), Hint: fmt.Sprintf("no token for value %v", v)}}
	}
	return tok, nil
}
