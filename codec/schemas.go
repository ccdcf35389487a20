package codec

import (
	"context"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

// valueSchema is a domain-side schema accepting values already typed as T.
// check, when set, carries the domain invariant.
type valueSchema[T any] struct {
	check func(T) error
}

func (s valueSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, invalidDomainType()
	}
	if err := s.ValidateValue(ctx, t); err != nil {
		var zero T
		return zero, err
	}
	return t, nil
}

func (s valueSchema[T]) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(T); !ok {
		return invalidDomainType()
	}
	return nil
}

func (s valueSchema[T]) ValidateValue(ctx context.Context, v T) error {
	if s.check == nil {
		return nil
	}
	return s.check(v)
}

func (s valueSchema[T]) Encode(ctx context.Context, v T) (any, error) { return v, nil }

func invalidDomainType() tariffconv.Issues {
	return tariffconv.Issues{{Path: "/", Code: tariffconv.CodeInvalidType, Message: i18n.T(tariffconv.CodeInvalidType, nil), Hint: "unexpected domain type"}}
}

// invalidFormat reports wire text that does not match format; Hint carries
// the format name.
func invalidFormat(format string, cause error) tariffconv.Issues {
	return tariffconv.Issues{{
		Path:    "/",
		Code:    tariffconv.CodeInvalidFormat,
		Message: i18n.T(tariffconv.CodeInvalidFormat, map[string]string{"format": format}),
		Hint:    format,
		Cause:   cause,
	}}
}

func encodeError(format string, cause error) tariffconv.Issues {
	return tariffconv.Issues{{
		Path:    "/",
		Code:    tariffconv.CodeEncode,
		Message: i18n.T(tariffconv.CodeEncode, map[string]string{"format": format}),
		Hint:    format,
		Cause:   cause,
	}}
}
