package codec

import (
	"context"
	"strings"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/dsl"
)

// TaggedString returns a Codec that writes prefix+value and strips prefix on
// the way back in. Values that lack the prefix decode unchanged, so decoding
// never fails for a string input.
func TaggedString(prefix string) tariffconv.Codec[string, string] {
	return taggedCodec{prefix: prefix}
}

type taggedCodec struct{ prefix string }

func (taggedCodec) In() tariffconv.Schema[string]  { return dsl.String() }
func (taggedCodec) Out() tariffconv.Schema[string] { return dsl.String() }

func (c taggedCodec) Decode(ctx context.Context, a string) (string, error) {
	return strings.TrimPrefix(a, c.prefix), nil
}

func (c taggedCodec) Encode(ctx context.Context, b string) (string, error) {
	return c.prefix + b, nil
}
