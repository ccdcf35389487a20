package tariffconv

import (
	"context"
	"errors"
	"io"

	"github.com/reoring/tariffconv/i18n"
	eng "github.com/reoring/tariffconv/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source
// under enforcement, builds an any value, and delegates validation to the
// Schema. With no opts, DefaultParseOpt applies.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := DefaultParseOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	// propagate fail-fast intent via context for schema implementations
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return zero, toIssues(err)
	}
	return s.Parse(ctx, v)
}

// ParseReader parses r in format f with s. JSON is tokenized while it is
// read; YAML and TOML are read whole first. When MaxBytes is set, input past
// the cap yields CodeTruncated. Read failures yield CodeIO.
func ParseReader[T any](ctx context.Context, s Schema[T], f Format, r io.Reader, opts ...ParseOpt) (T, error) {
	var zero T
	opt := DefaultParseOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	cr := &countingReader{r: r}

	if f == FormatJSON || f == "" {
		v, err := ParseFrom[T](ctx, s, JSONReader(cr), opt)
		if cr.err != nil {
			return zero, ioIssues(cr.err)
		}
		if opt.MaxBytes > 0 && cr.n > opt.MaxBytes {
			return zero, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return v, err
	}

	data, err := io.ReadAll(cr)
	if err != nil {
		return zero, ioIssues(err)
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return zero, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	src, err := SourceFor(f, data)
	if err != nil {
		return zero, singleIssue(CodeParseError, err.Error())
	}
	return ParseFrom[T](ctx, s, src, opt)
}

// countingReader records how many bytes were read and the first read error
// other than io.EOF.
type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && c.err == nil {
		c.err = err
	}
	return n, err
}

// ---- helpers (decode, error mapping) ----

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	return eng.DecodeAnyFromSource(EngineTokenSource(EnforceSource(src, opt)))
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func ioIssues(err error) Issues {
	return Issues{{Path: "/", Code: CodeIO, Message: i18n.T(CodeIO, nil), Hint: err.Error(), Cause: err}}
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
