// Package tariffconv converts streaming-service tariff requests between textual
// formats through one typed schema.
//
// It provides:
//
//   - Type-safe validation and transformation based on Schema/Codec (Parse/Decode/Encode)
//   - A stable error model via Issues (JSON Pointer, code, message) grouped into Categories
//   - Token Sources for JSON (goccy/go-json), YAML and TOML input with duplicate-key/depth/size enforcement
//   - An ordered wire tree (Fields) that the emit back ends turn into text
//
// Design policy:
//   - Keep only public contracts in the root package; put detailed implementations under internal/.
//   - Place DSL under dsl/, codecs under codec/, the domain under tariff/, back ends under emit/
//     and the CLI under cmd/tariffconv.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	req, err := tariff.DecodeRequest(ctx, tariffconv.JSONBytes(data))
//	tree, err := tariff.RequestSchema().Encode(ctx, req)
//	out, err := emit.YAML().Encode(tree)
package tariffconv
