package tariff

import (
	"context"
	"sync"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/codec"
	"github.com/reoring/tariffconv/dsl"
)

var (
	requestOnce   sync.Once
	requestSchema tariffconv.Schema[Request]
)

// RequestSchema returns the schema of the whole document. Every field is
// required at every level; unknown keys are ignored.
func RequestSchema() tariffconv.Schema[Request] {
	requestOnce.Do(func() { requestSchema = buildRequestSchema() })
	return requestSchema
}

// KindSchema maps the "type" tokens onto Kind.
func KindSchema() tariffconv.Schema[Kind] { return dsl.Enum(kindTokens) }

func buildRequestSchema() tariffconv.Schema[Request] {
	duration := dsl.CodecOf[string](codec.Duration())

	public := dsl.ObjectOf[PublicTariff]().
		Field("id", dsl.Uint32Of()).Required().
		Field("price", dsl.Uint32Of()).Required().
		Field("duration", duration).Required().
		Field("description", dsl.StringOf[string]()).Required().
		MustBind()

	private := dsl.ObjectOf[PrivateTariff]().
		Field("client_price", dsl.Uint32Of()).Required().
		Field("duration", duration).Required().
		Field("description", dsl.StringOf[string]()).Required().
		MustBind()

	stream := dsl.ObjectOf[Stream]().
		Field("user_id", dsl.CodecOf[string](codec.UUID())).Required().
		Field("is_private", dsl.BoolOf[bool]()).Required().
		Field("settings", dsl.Uint32Of()).Required().
		Field("shard_url", dsl.CodecOf[string](codec.URL())).Required().
		Field("public_tariff", dsl.SchemaOf(public)).Required().
		Field("private_tariff", dsl.SchemaOf(private)).Required().
		MustBind()

	gift := dsl.ObjectOf[Gift]().
		Field("id", dsl.Uint32Of()).Required().
		Field("price", dsl.Uint32Of()).Required().
		Field("description", dsl.StringOf[string]()).Required().
		MustBind()

	debug := dsl.ObjectOf[Debug]().
		Field("duration", duration).Required().
		Field("at", dsl.CodecOf[string](codec.TimeRFC3339())).Required().
		MustBind()

	return dsl.ObjectOf[Request]().
		Field("type", dsl.SchemaOf(KindSchema())).Required().
		Field("stream", dsl.SchemaOf(stream)).Required().
		Field("gifts", dsl.ArrayOf(gift)).Required().
		Field("debug", dsl.SchemaOf(debug)).Required().
		MustBind()
}

// DecodeRequest parses src into a Request. On failure the zero Request is
// returned with Issues describing every problem found.
func DecodeRequest(ctx context.Context, src tariffconv.Source, opts ...tariffconv.ParseOpt) (Request, error) {
	return tariffconv.ParseFrom(ctx, RequestSchema(), src, opts...)
}

// EncodeRequest projects r into the ordered wire tree.
func EncodeRequest(ctx context.Context, r Request) (tariffconv.Fields, error) {
	tree, err := RequestSchema().Encode(ctx, r)
	if err != nil {
		return nil, err
	}
	return tree.(tariffconv.Fields), nil
}
