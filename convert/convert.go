// Package convert runs the one-shot request conversion: read one document,
// decode it into a tariff.Request, re-encode it in every target format.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/emit"
	"github.com/reoring/tariffconv/tariff"
)

// DefaultTargets are the output formats used when Options.To is empty.
var DefaultTargets = []tariffconv.Format{tariffconv.FormatYAML, tariffconv.FormatTOML}

// Options configures a conversion.
type Options struct {
	From  tariffconv.Format   // input format; JSON when empty (File infers it from the extension)
	To    []tariffconv.Format // output formats in order; DefaultTargets when empty
	// FailFast stops decoding at the first issue.
	FailFast bool
	// MaxBytes caps the input size; zero means no cap.
	MaxBytes int64
	// Logger receives one event per stage; nil logs nothing.
	Logger *zerolog.Logger
}

// Document is one encoded output.
type Document struct {
	Format tariffconv.Format
	Data   []byte
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o Options) parseOpt() tariffconv.ParseOpt {
	p := tariffconv.DefaultParseOpt()
	p.FailFast = o.FailFast
	p.MaxBytes = o.MaxBytes
	return p
}

func (o Options) targets() []tariffconv.Format {
	if len(o.To) == 0 {
		return DefaultTargets
	}
	return o.To
}

// Run decodes r and encodes the result into every target format. Documents
// are returned only when every encoding succeeded.
func Run(ctx context.Context, r io.Reader, opt Options) ([]Document, error) {
	log := opt.logger()
	from := opt.From
	if from == "" {
		from = tariffconv.FormatJSON
	}
	encoders := make([]emit.Encoder, 0, len(opt.targets()))
	for _, f := range opt.targets() {
		enc, err := emit.ForFormat(f)
		if err != nil {
			return nil, err
		}
		encoders = append(encoders, enc)
	}

	req, err := tariffconv.ParseReader(ctx, tariff.RequestSchema(), from, r, opt.parseOpt())
	if err != nil {
		return nil, fmt.Errorf("decode %s request: %w", from, err)
	}
	log.Debug().
		Str("format", string(from)).
		Str("type", req.Kind.String()).
		Int("gifts", len(req.Gifts)).
		Msg("request decoded")

	tree, err := tariff.EncodeRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	docs := make([]Document, 0, len(encoders))
	for _, enc := range encoders {
		data, err := enc.Encode(tree)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc.Format(), err)
		}
		log.Debug().Str("format", string(enc.Format())).Int("bytes", len(data)).Msg("document encoded")
		docs = append(docs, Document{Format: enc.Format(), Data: data})
	}
	return docs, nil
}

// File converts the document at path. When opt.From is empty the format is
// taken from the file extension, falling back to JSON.
func File(ctx context.Context, path string, opt Options) ([]Document, error) {
	if opt.From == "" {
		if f, ok := tariffconv.FormatFromPath(path); ok {
			opt.From = f
		}
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, ioIssue(err)
	}
	defer fh.Close()

	l := opt.logger()
	l.Info().Str("path", path).Msg("converting request")
	return Run(ctx, fh, opt)
}

// WriteTo prints every document under a header line naming its format.
func WriteTo(w io.Writer, docs []Document) error {
	var buf bytes.Buffer
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "# %s\n", d.Format)
		buf.Write(d.Data)
		if n := len(d.Data); n == 0 || d.Data[n-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return ioIssue(err)
	}
	return nil
}

func ioIssue(err error) error {
	return tariffconv.Issues{{Path: "/", Code: tariffconv.CodeIO, Message: err.Error(), Cause: err}}
}
