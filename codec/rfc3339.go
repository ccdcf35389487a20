package codec

import (
	"context"
	"time"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/dsl"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and
// time.Time. The offset is mandatory on the wire; decoded values are in UTC.
func TimeRFC3339() tariffconv.Codec[string, time.Time] {
	return &rfc3339Codec{
		in:  dsl.String(),
		out: valueSchema[time.Time]{},
	}
}

type rfc3339Codec struct {
	in  tariffconv.Schema[string]
	out tariffconv.Schema[time.Time]
}

func (c *rfc3339Codec) In() tariffconv.Schema[string]     { return c.in }
func (c *rfc3339Codec) Out() tariffconv.Schema[time.Time] { return c.out }

func (c *rfc3339Codec) Decode(ctx context.Context, a string) (time.Time, error) {
	// wire(string) -> domain(time.Time) -> Out.ValidateValue
	t, err := parseRFC3339(a)
	if err != nil {
		return time.Time{}, invalidFormat("rfc3339", err)
	}
	t = t.UTC()
	if err := c.out.ValidateValue(ctx, t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func (c *rfc3339Codec) Encode(ctx context.Context, b time.Time) (string, error) {
	// Validate using Out, convert to wire(string), then re-validate via In.Parse
	if err := c.out.ValidateValue(ctx, b); err != nil {
		return "", err
	}
	s := formatRFC3339Canonical(b)
	if _, err := c.in.Parse(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
