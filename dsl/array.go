package dsl

import (
	"context"
	"strconv"

	tariffconv "github.com/reoring/tariffconv"
)

// Array returns an array schema with the given element schema.
func Array[E any](elem tariffconv.Schema[E]) tariffconv.Schema[[]E] {
	return &ArraySchema[E]{elem: elem}
}

// ArraySchema validates every element with elem and keeps input order.
type ArraySchema[E any] struct {
	elem tariffconv.Schema[E]
}

// ArrayOf adapts Array[E] to AnyAdapter for use in typed object builders.
// Example: Field("gifts", dsl.ArrayOf[Gift](giftSchema))
func ArrayOf[E any](elem tariffconv.Schema[E]) AnyAdapter {
	return anyAdapterFromSchema[[]E](Array[E](elem))
}

func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	switch src := v.(type) {
	case []E:
		if err := a.ValidateValue(ctx, src); err != nil {
			return nil, err
		}
		return src, nil
	case []any:
		res := make([]E, 0, len(src))
		var iss tariffconv.Issues
		for i := range src {
			ev, err := a.elem.Parse(ctx, src[i])
			if err != nil {
				iss = tariffconv.AppendIssues(iss, tariffconv.Rebase("/"+strconv.Itoa(i), issuesFromErr("/", tariffconv.CodeParseError, err))...)
				if tariffconv.IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
			res = append(res, ev)
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return res, nil
	default:
		return nil, invalidType("expected array")
	}
}

func (a *ArraySchema[E]) TypeCheck(ctx context.Context, v any) error {
	switch v.(type) {
	case []E, []any:
		return nil
	default:
		return invalidType("expected array")
	}
}

func (a *ArraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			return tariffconv.Rebase("/"+strconv.Itoa(i), issuesFromErr("/", tariffconv.CodeInvalidType, err))
		}
	}
	return nil
}

// Encode returns a non-nil []any so that empty arrays survive every back end.
func (a *ArraySchema[E]) Encode(ctx context.Context, v []E) (any, error) {
	out := make([]any, 0, len(v))
	for i := range v {
		ev, err := a.elem.Encode(ctx, v[i])
		if err != nil {
			return nil, tariffconv.Rebase("/"+strconv.Itoa(i), issuesFromErr("/", tariffconv.CodeEncode, err))
		}
		out = append(out, ev)
	}
	return out, nil
}
