// Package emit turns the wire tree produced by Schema.Encode into text.
package emit

import (
	"fmt"

	tariffconv "github.com/reoring/tariffconv"
	"github.com/reoring/tariffconv/i18n"
)

// Encoder renders a wire tree (tariffconv.Fields, []any and scalars) in one
// textual format.
type Encoder interface {
	Format() tariffconv.Format
	Encode(tree any) ([]byte, error)
}

// ForFormat returns the Encoder for f.
func ForFormat(f tariffconv.Format) (Encoder, error) {
	switch f {
	case tariffconv.FormatJSON:
		return JSON(), nil
	case tariffconv.FormatYAML:
		return YAML(), nil
	case tariffconv.FormatTOML:
		return TOML(), nil
	}
	return nil, fmt.Errorf("emit: unsupported output format %q", f)
}

func encodeIssue(f tariffconv.Format, path string, cause error) tariffconv.Issues {
	return tariffconv.Issues{{
		Path:    path,
		Code:    tariffconv.CodeEncode,
		Message: i18n.T(tariffconv.CodeEncode, map[string]string{"format": string(f)}),
		Cause:   cause,
	}}
}

func unsupported(v any) error { return fmt.Errorf("unsupported wire value %T", v) }
