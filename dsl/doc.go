// Package dsl provides a type-safe schema DSL for tariffconv.
//
// Overview
//   - Builder API: declare object semantics (unknown/required) with Object()/Field()/Required()/UnknownStrict()/MustBuild().
//   - Typed build: generate a safe projection wire -> T with ObjectOf[T]().Field(...).MustBind().
//   - Primitives/Array/Enum: String()/Bool()/Uint32(), Array(elem) and Enum(tokens) are provided.
//   - AnyAdapter: adapt existing Schema[T] to AnyAdapter via `SchemaOf[T](s)` to embed into builders.
//   - Codec: lift a tariffconv.Codec[A,B] into a field schema with Codec/CodecOf.
//
// Every schema built here also encodes: Encode turns a typed value back into
// the wire tree (tariffconv.Fields for objects, []any for arrays) with object
// keys in declaration order.
//
// Entry points
//   - Object(): create an object builder; chain Field/Required/Unknown* then MustBuild()/Build.
//   - ObjectOf[T](): typed builder; at the end call MustBind()/Bind[T] to construct Schema[T].
//   - Array(elem)/ArrayOf(elem): ordered arrays validated element by element.
//   - Enum(tokens)/EnumOf(tokens): closed token tables, exhaustive in both directions.
//   - SchemaOf[T](s): adapter from Schema[T] to AnyAdapter (to pass into Field).
//
// File layout (roles)
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
//   - object_core.go: objectSchema (Parse/ValidateValue/Encode).
//   - object_typed_builder.go, bind.go: typed builder and struct binding.
//   - array.go, enum.go, primitives.go: leaf and container schemas.
//   - (aux) adapter.go/of_helpers.go/codec_wrap.go around AnyAdapter and codecs.
//
// Error model
//
// Objects visit fields in sorted key order so the first issue is stable.
// Child issues are rebased under the field name ("/stream/user_id") and
// array element issues under the index ("/gifts/1/price"). With fail-fast set
// on the context the first issue is returned alone.
//
// Example (quickstart)
//
//	type Gift struct {
//	    ID          uint32 `json:"id"`
//	    Description string `json:"description"`
//	}
//
//	gift := dsl.ObjectOf[Gift]().
//	    Field("id", dsl.Uint32Of()).Required().
//	    Field("description", dsl.StringOf[string]()).Required().
//	    MustBind()
//
//	g, err := tariffconv.ParseFrom(ctx, gift, tariffconv.JSONBytes([]byte(`{"id":1,"description":"rose"}`)))
//	tree, err := gift.Encode(ctx, g) // tariffconv.Fields{{"id", uint32(1)}, {"description", "rose"}}
package dsl
