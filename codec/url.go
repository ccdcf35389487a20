package codec

import (
	"context"
	"errors"
	"net/url"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/dsl"
)

var errNotAbsolute = errors.New("url must carry a scheme and a host")

// URL returns a Codec between absolute URL text and *url.URL. Both a scheme
// and a host are required.
func URL() tariffconv.Codec[string, *url.URL] {
	return urlCodec{}
}

type urlCodec struct{}

func (urlCodec) In() tariffconv.Schema[string] { return dsl.String() }
func (urlCodec) Out() tariffconv.Schema[*url.URL] {
	return valueSchema[*url.URL]{check: func(u *url.URL) error {
		if u == nil || u.Scheme == "" || u.Host == "" {
			return invalidFormat("url", errNotAbsolute)
		}
		return nil
	}}
}

func (c urlCodec) Decode(ctx context.Context, a string) (*url.URL, error) {
	u, err := url.Parse(a)
	if err != nil {
		return nil, invalidFormat("url", err)
	}
	if err := c.Out().ValidateValue(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c urlCodec) Encode(ctx context.Context, b *url.URL) (string, error) {
	if err := c.Out().ValidateValue(ctx, b); err != nil {
		return "", encodeError("url", errNotAbsolute)
	}
	return b.String(), nil
}
