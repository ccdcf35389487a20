package dsl

import (
	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

type objectBuilder struct {
	fields        map[string]AnyAdapter
	order         []string
	required      map[string]struct{}
	unknownPolicy tariffconv.UnknownPolicy
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are stripped unless
// UnknownStrict is set.
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: tariffconv.UnknownStrip,
	}
}

// Field registers a field with its adapter. Declaration order is the encode
// order; registering a name twice replaces the adapter in place.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	if _, ok := b.fields[name]; !ok {
		b.order = append(b.order, name)
	}
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) Require(names ...string) *objectBuilder { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *objectBuilder          { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder           { return f.b.UnknownStrip() }
func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep {
	return f.b.Field(name, ad)
}
func (f *fieldStep) Build() (tariffconv.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() tariffconv.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = tariffconv.UnknownStrict
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = tariffconv.UnknownStrip
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (tariffconv.Schema[map[string]any], error) {
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			return nil, tariffconv.Issues{tariffconv.Issue{Path: "/" + k, Code: tariffconv.CodeParseError, Message: i18n.T(tariffconv.CodeParseError, nil), Hint: "required field has no schema"}}
		}
	}
	return newObjectSchema(b), nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() tariffconv.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
