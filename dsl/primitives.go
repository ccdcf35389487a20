package dsl

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

// String returns the minimal string schema implementation.
func String() tariffconv.Schema[string] { return stringSchema{} }

// Bool returns the minimal bool schema implementation.
func Bool() tariffconv.Schema[bool] { return boolSchema{} }

// Uint32 returns the schema for non-negative whole numbers that fit in 32 bits.
func Uint32() tariffconv.Schema[uint32] { return uint32Schema{} }

// stringAsSchema wraps stringSchema and projects to a domain type T with underlying string.
type stringAsSchema[T ~string] struct{}

func (stringAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	s, err := (stringSchema{}).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(s), nil
}
func (stringAsSchema[T]) TypeCheck(ctx context.Context, v any) error {
	return (stringSchema{}).TypeCheck(ctx, v)
}
func (stringAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (stringSchema{}).ValidateValue(ctx, string(v))
}
func (stringAsSchema[T]) Encode(ctx context.Context, v T) (any, error) {
	return (stringSchema{}).Encode(ctx, string(v))
}

// StringOf returns an AnyAdapter for a string wire schema projected to domain type T.
func StringOf[T ~string]() AnyAdapter {
	return anyAdapterFromSchema[T](stringAsSchema[T]{})
}

// boolAsSchema wraps boolSchema and projects to a domain type T with underlying bool.
type boolAsSchema[T ~bool] struct{}

func (boolAsSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	b, err := (boolSchema{}).Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return T(b), nil
}
func (boolAsSchema[T]) TypeCheck(ctx context.Context, v any) error {
	return (boolSchema{}).TypeCheck(ctx, v)
}
func (boolAsSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return (boolSchema{}).ValidateValue(ctx, bool(v))
}
func (boolAsSchema[T]) Encode(ctx context.Context, v T) (any, error) {
	return (boolSchema{}).Encode(ctx, bool(v))
}

// BoolOf returns an AnyAdapter for a bool wire schema projected to domain type T.
func BoolOf[T ~bool]() AnyAdapter {
	return anyAdapterFromSchema[T](boolAsSchema[T]{})
}

// Uint32Of returns an AnyAdapter for the uint32 schema.
func Uint32Of() AnyAdapter { return anyAdapterFromSchema[uint32](uint32Schema{}) }

type stringSchema struct{}

type boolSchema struct{}

type uint32Schema struct{}

func invalidType(hint string) tariffconv.Issues {
	return tariffconv.Issues{{Path: "/", Code: tariffconv.CodeInvalidType, Message: i18n.T(tariffconv.CodeInvalidType, nil), Hint: hint}}
}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidType("expected string")
	}
	return s, nil
}

func (stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(string); !ok {
		return invalidType("expected string")
	}
	return nil
}

func (stringSchema) ValidateValue(ctx context.Context, v string) error { return nil }

func (stringSchema) Encode(ctx context.Context, v string) (any, error) { return v, nil }

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalidType("expected boolean")
	}
	return b, nil
}

func (boolSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(bool); !ok {
		return invalidType("expected boolean")
	}
	return nil
}

func (boolSchema) ValidateValue(ctx context.Context, v bool) error { return nil }

func (boolSchema) Encode(ctx context.Context, v bool) (any, error) { return v, nil }

// Parse accepts json.Number (the shape every Source produces) and native Go
// integers. Fractions and exponents are rejected even when integral.
func (uint32Schema) Parse(ctx context.Context, v any) (uint32, error) {
	switch n := v.(type) {
	case json.Number:
		return parseUint32Text(string(n))
	case float64:
		if n != math.Trunc(n) {
			return 0, invalidType("expected integer")
		}
		return checkUint32Range(strconv.FormatFloat(n, 'f', -1, 64), n < 0, n > math.MaxUint32)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return checkUint32Range(strconv.FormatInt(i, 10), i < 0, i > math.MaxUint32)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		return checkUint32Range(strconv.FormatUint(u, 10), false, u > math.MaxUint32)
	}
	return 0, invalidType("expected integer")
}

func parseUint32Text(s string) (uint32, error) {
	if strings.ContainsAny(s, ".eE") {
		return 0, invalidType("expected integer")
	}
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, invalidType("expected integer")
		}
		return checkUint32Range(s, i < 0 || err != nil, false)
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return checkUint32Range(s, false, true)
		}
		return 0, invalidType("expected integer")
	}
	return checkUint32Range(s, false, u > math.MaxUint32)
}

func checkUint32Range(text string, negative, over bool) (uint32, error) {
	switch {
	case negative:
		return 0, tariffconv.Issues{tariffconv.Root().Issue(tariffconv.CodeTooSmall, i18n.T(tariffconv.CodeTooSmall, nil), "min", 0, "got", text)}
	case over:
		return 0, tariffconv.Issues{tariffconv.Root().Issue(tariffconv.CodeOverflow, i18n.T(tariffconv.CodeOverflow, nil), "max", uint64(math.MaxUint32), "got", text)}
	}
	u, _ := strconv.ParseUint(text, 10, 32)
	return uint32(u), nil
}

func (uint32Schema) TypeCheck(ctx context.Context, v any) error {
	switch n := v.(type) {
	case json.Number:
		if strings.ContainsAny(string(n), ".eE") {
			return invalidType("expected integer")
		}
		return nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float64:
		return nil
	}
	return invalidType("expected integer")
}

func (uint32Schema) ValidateValue(ctx context.Context, v uint32) error { return nil }

func (uint32Schema) Encode(ctx context.Context, v uint32) (any, error) { return v, nil }
