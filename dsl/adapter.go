package dsl

import (
	"context"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper so that fields of
// different types can live in one object builder.
type AnyAdapter struct {
	parse         func(context.Context, any) (any, error)
	validateValue func(context.Context, any) error
	encode        func(context.Context, any) (any, error)
}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func anyAdapterFromSchema[T any](s tariffconv.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		validateValue: func(ctx context.Context, v any) error {
			tv, ok := v.(T)
			if !ok {
				return tariffconv.Issues{tariffconv.Issue{Path: "/", Code: tariffconv.CodeInvalidType, Message: i18n.T(tariffconv.CodeInvalidType, nil), Hint: "invalid field type"}}
			}
			return s.ValidateValue(ctx, tv)
		},
		encode: func(ctx context.Context, v any) (any, error) {
			tv, ok := v.(T)
			if !ok {
				return nil, tariffconv.Issues{tariffconv.Issue{Path: "/", Code: tariffconv.CodeEncode, Message: i18n.T(tariffconv.CodeEncode, nil), Hint: "invalid field type"}}
			}
			return s.Encode(ctx, tv)
		},
	}
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with code.
func issuesFromErr(path, code string, err error) tariffconv.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := tariffconv.AsIssues(err); ok {
		return iss
	}
	return tariffconv.Issues{tariffconv.Issue{Path: path, Code: code, Message: err.Error(), Cause: err}}
}
