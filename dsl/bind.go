package dsl

import (
	"context"
	"reflect"

	tariffconv "github.com/reoring/tariffconv"
)

// Bind builds an object schema and binds it to struct type T (free function for Go version compatibility).
func Bind[T any](b *objectBuilder) (tariffconv.Schema[T], error) {
	s, err := b.Build()
	if err != nil {
		var zero tariffconv.Schema[T]
		return zero, err
	}
	os, ok := s.(*objectSchema)
	if !ok {
		var zero tariffconv.Schema[T]
		return zero, tariffconv.Issues{tariffconv.Issue{Path: "/", Code: tariffconv.CodeParseError, Message: "unexpected schema type for Bind"}}
	}
	return newTypedObjectSchema[T](os)
}

// MustBind is like Bind but panics on error (free function for Go version compatibility).
func MustBind[T any](b *objectBuilder) tariffconv.Schema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// typedObjectSchema adapts an objectSchema to a typed struct T using key resolution.
type typedObjectSchema[T any] struct {
	inner      *objectSchema
	t          reflect.Type
	fieldByKey map[string]int // DSL key -> struct field index
}

func newTypedObjectSchema[T any](os *objectSchema) (tariffconv.Schema[T], error) {
	var zero tariffconv.Schema[T]
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return zero, tariffconv.Issues{tariffconv.Issue{Path: "/", Code: tariffconv.CodeParseError, Message: "Bind[T] requires struct T"}}
	}
	idxByName := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tariffconv.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	fm := make(map[string]int, len(os.fields))
	for _, k := range os.order {
		i, ok := idxByName[k]
		if !ok {
			return zero, tariffconv.Issues{tariffconv.Issue{Path: "/" + k, Code: tariffconv.CodeParseError, Message: "no struct field for key", Hint: rt.String()}}
		}
		fm[k] = i
	}
	return &typedObjectSchema[T]{inner: os, t: rt, fieldByKey: fm}, nil
}

// Parse maps wire -> map via inner, then into struct fields by mapping.
func (s *typedObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(s.t).Elem()
	for key, idx := range s.fieldByKey {
		val, ok := m[key]
		if !ok || val == nil {
			continue
		}
		fv := rv.Field(idx)
		vv := reflect.ValueOf(val)
		if vv.Type().AssignableTo(fv.Type()) {
			fv.Set(vv)
		} else if vv.Type().ConvertibleTo(fv.Type()) {
			fv.Set(vv.Convert(fv.Type()))
		} else {
			return zero, tariffconv.Issues{tariffconv.Issue{Path: "/" + key, Code: tariffconv.CodeInvalidType, Message: "field type mismatch", Hint: fv.Type().String()}}
		}
	}
	return rv.Interface().(T), nil
}

func (s *typedObjectSchema[T]) TypeCheck(ctx context.Context, v any) error {
	return s.inner.TypeCheck(ctx, v)
}

// ValidateValue treats every struct field as present; typed zero values do
// not trigger required.
func (s *typedObjectSchema[T]) ValidateValue(ctx context.Context, v T) error {
	return s.inner.ValidateValue(ctx, s.toMap(v))
}

// Encode projects the struct into Fields in declaration order.
func (s *typedObjectSchema[T]) Encode(ctx context.Context, v T) (any, error) {
	return s.inner.Encode(ctx, s.toMap(v))
}

func (s *typedObjectSchema[T]) toMap(v T) map[string]any {
	rv := reflect.ValueOf(v)
	m := make(map[string]any, len(s.fieldByKey))
	for key, idx := range s.fieldByKey {
		m[key] = rv.Field(idx).Interface()
	}
	return m
}

