package dsl

import (
	"context"
	"sort"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy tariffconv.UnknownPolicy
	order         []string // declaration order, used for encoding
	sortedKeys    []string // parse order, deterministic issue selection
}

// Ensure objectSchema implements tariffconv.Schema[map[string]any]
var _ tariffconv.Schema[map[string]any] = (*objectSchema)(nil)

func newObjectSchema(b *objectBuilder) *objectSchema {
	fields := make(map[string]AnyAdapter, len(b.fields))
	for k, ad := range b.fields {
		fields[k] = ad
	}
	req := make(map[string]struct{}, len(b.required))
	for k := range b.required {
		req[k] = struct{}{}
	}
	order := append([]string(nil), b.order...)
	sorted := append([]string(nil), b.order...)
	sort.Strings(sorted)
	return &objectSchema{fields: fields, required: req, unknownPolicy: b.unknownPolicy, order: order, sortedKeys: sorted}
}

func requiredIssue(k string) tariffconv.Issue {
	return tariffconv.Issue{Path: "/" + k, Code: tariffconv.CodeRequired, Message: i18n.T(tariffconv.CodeRequired, nil), Hint: "required property missing"}
}

// parseField parses a present field value and rebases child issues under "/field".
func (o *objectSchema) parseField(ctx context.Context, k string, ad AnyAdapter, val any) (any, tariffconv.Issues) {
	parsed, err := ad.parse(ctx, val)
	if err != nil {
		return nil, tariffconv.Rebase("/"+k, issuesFromErr("/", tariffconv.CodeParseError, err))
	}
	return parsed, nil
}

// collectKnown parses known fields in key-sorted order and enforces required ones.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, tariffconv.Issues) {
	out := make(map[string]any, len(o.fields))
	var iss tariffconv.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, i2 := o.parseField(ctx, k, ad, val)
			if len(i2) > 0 {
				iss = tariffconv.AppendIssues(iss, i2...)
				if tariffconv.IsFailFast(ctx) {
					return out, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		if _, req := o.required[k]; req {
			iss = tariffconv.AppendIssues(iss, requiredIssue(k))
			if tariffconv.IsFailFast(ctx) {
				return out, iss
			}
		}
	}
	return out, iss
}

// collectUnknown reports unknown keys under UnknownStrict; UnknownStrip drops them.
func (o *objectSchema) collectUnknown(src map[string]any) tariffconv.Issues {
	if o.unknownPolicy != tariffconv.UnknownStrict {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss tariffconv.Issues
	for _, k := range uks {
		iss = tariffconv.AppendIssues(iss, tariffconv.Issue{Path: "/" + k, Code: tariffconv.CodeUnknownKey, Message: i18n.T(tariffconv.CodeUnknownKey, nil)})
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("expected object")
	}
	out, iss := o.collectKnown(ctx, src)
	if tariffconv.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	if issUnknown := o.collectUnknown(src); len(issUnknown) > 0 {
		iss = tariffconv.AppendIssues(iss, issUnknown...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *objectSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := v.(map[string]any); !ok {
		return invalidType("expected object")
	}
	return nil
}

func (o *objectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		if val, ok := v[k]; ok {
			if err := ad.validateValue(ctx, val); err != nil {
				return tariffconv.Rebase("/"+k, issuesFromErr("/", tariffconv.CodeInvalidType, err))
			}
		} else if _, req := o.required[k]; req {
			return tariffconv.Issues{requiredIssue(k)}
		}
	}
	return nil
}

// Encode emits present fields in declaration order. A missing required field
// is an encode_error since a decoded value always carries it.
func (o *objectSchema) Encode(ctx context.Context, v map[string]any) (any, error) {
	out := make(tariffconv.Fields, 0, len(o.order))
	for _, k := range o.order {
		val, ok := v[k]
		if !ok {
			if _, req := o.required[k]; req {
				return nil, tariffconv.Issues{tariffconv.Issue{Path: "/" + k, Code: tariffconv.CodeEncode, Message: i18n.T(tariffconv.CodeEncode, nil), Hint: "required property missing"}}
			}
			continue
		}
		wv, err := o.fields[k].encode(ctx, val)
		if err != nil {
			return nil, tariffconv.Rebase("/"+k, issuesFromErr("/", tariffconv.CodeEncode, err))
		}
		out = append(out, tariffconv.Field{Key: k, Value: wv})
	}
	return out, nil
}
