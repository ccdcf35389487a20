package tariff

import (
	"context"
	"sync"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/codec"
	"github.com/reoring/tariffconv/dsl"
)

// DatePrefix tags Event.Date on the wire.
const DatePrefix = "Date: "

// Event is a named date. On the wire Date carries the DatePrefix tag; decoding
// strips it when present and keeps untagged values unchanged.
type Event struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

var (
	eventOnce   sync.Once
	eventSchema tariffconv.Schema[Event]
)

func EventSchema() tariffconv.Schema[Event] {
	eventOnce.Do(func() {
		eventSchema = dsl.ObjectOf[Event]().
			Field("name", dsl.StringOf[string]()).Required().
			Field("date", dsl.CodecOf[string](codec.TaggedString(DatePrefix))).Required().
			MustBind()
	})
	return eventSchema
}

func DecodeEvent(ctx context.Context, src tariffconv.Source, opts ...tariffconv.ParseOpt) (Event, error) {
	return tariffconv.ParseFrom(ctx, EventSchema(), src, opts...)
}

func EncodeEvent(ctx context.Context, e Event) (tariffconv.Fields, error) {
	tree, err := EventSchema().Encode(ctx, e)
	if err != nil {
		return nil, err
	}
	return tree.(tariffconv.Fields), nil
}
