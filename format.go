package tariffconv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a textual wire syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported wire syntax.
func Formats() []Format { return []Format{FormatJSON, FormatYAML, FormatTOML} }

// ParseFormat resolves a format name case-insensitively. "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("tariffconv: unknown format %q", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// Ext returns the canonical file extension without the dot.
func (f Format) Ext() string { return string(f) }
