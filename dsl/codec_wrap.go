package dsl

import (
	"context"

	tariffconv "github.com/reoring/tariffconv"
)

// Codec adapts a Codec[A,B] into a Schema[B] that accepts wire A and produces domain B.
// Parse: In.Parse -> Decode -> Out.ValidateValue
// TypeCheck (wire input): delegate to In().
// ValidateValue (domain value): delegate to Out().
// Encode: Codec.Encode -> In.Encode.
func Codec[A, B any](c tariffconv.Codec[A, B]) tariffconv.Schema[B] { return codecSchema[A, B]{c: c} }

// CodecOf adapts a Codec[A,B] directly to an AnyAdapter for Field builders.
func CodecOf[A, B any](c tariffconv.Codec[A, B]) AnyAdapter {
	return anyAdapterFromSchema[B](Codec[A, B](c))
}

type codecSchema[A, B any] struct{ c tariffconv.Codec[A, B] }

func (s codecSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	// wire -> A
	a, err := s.c.In().Parse(ctx, v)
	if err != nil {
		return zero, issuesFromErr("/", tariffconv.CodeParseError, err)
	}
	// A -> B
	b, err := s.c.Decode(ctx, a)
	if err != nil {
		return zero, issuesFromErr("/", tariffconv.CodeInvalidFormat, err)
	}
	if err := s.c.Out().ValidateValue(ctx, b); err != nil {
		return zero, err
	}
	return b, nil
}

func (s codecSchema[A, B]) TypeCheck(ctx context.Context, v any) error {
	return s.c.In().TypeCheck(ctx, v)
}
func (s codecSchema[A, B]) ValidateValue(ctx context.Context, v B) error {
	return s.c.Out().ValidateValue(ctx, v)
}

func (s codecSchema[A, B]) Encode(ctx context.Context, v B) (any, error) {
	a, err := s.c.Encode(ctx, v)
	if err != nil {
		return nil, issuesFromErr("/", tariffconv.CodeEncode, err)
	}
	return s.c.In().Encode(ctx, a)
}
