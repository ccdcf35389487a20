package codec

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/dsl"
)

// UUID returns a Codec between the canonical hyphenated text form
// (8-4-4-4-12 hex digits) and uuid.UUID. Braced, URN and unhyphenated forms
// are rejected.
func UUID() tariffconv.Codec[string, uuid.UUID] {
	return uuidCodec{}
}

type uuidCodec struct{}

func (uuidCodec) In() tariffconv.Schema[string]     { return dsl.String() }
func (uuidCodec) Out() tariffconv.Schema[uuid.UUID] { return valueSchema[uuid.UUID]{} }

func (uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	if len(a) != 36 {
		return uuid.Nil, invalidFormat("uuid", fmt.Errorf("invalid UUID length: %d", len(a)))
	}
	id, err := uuid.Parse(a)
	if err != nil {
		return uuid.Nil, invalidFormat("uuid", err)
	}
	return id, nil
}

func (uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) {
	return b.String(), nil
}
