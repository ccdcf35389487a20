package convert

import (
	"context"
	"fmt"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/emit"
	"github.com/reoring/tariffconv/tariff"
)

// EventRoundTrip encodes ev to JSON and decodes that JSON back, returning
// both so callers can show the tagged wire form next to the decoded value.
func EventRoundTrip(ctx context.Context, ev tariff.Event) ([]byte, tariff.Event, error) {
	tree, err := tariff.EncodeEvent(ctx, ev)
	if err != nil {
		return nil, tariff.Event{}, fmt.Errorf("encode event: %w", err)
	}
	data, err := emit.JSON().Encode(tree)
	if err != nil {
		return nil, tariff.Event{}, fmt.Errorf("encode event: %w", err)
	}
	back, err := tariff.DecodeEvent(ctx, tariffconv.JSONBytes(data))
	if err != nil {
		return data, tariff.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return data, back, nil
}
