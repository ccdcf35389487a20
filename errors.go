package tariffconv

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeOverflow      = "overflow"
	CodeTruncated     = "truncated"
	// Outside the document itself.
	CodeIO     = "io_error"
	CodeEncode = "encode_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /gifts/1/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"max":4294967295, "got":"4294967296"}).
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As can reach through an Issues value.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base. Issues reported at the root ("/"
// or "") land exactly on base.
func Rebase(base string, iss Issues) Issues {
	if base == "" || base == "/" {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// Category groups issue codes into the failure classes surfaced to callers.
type Category int

const (
	CategoryNone Category = iota
	CategoryIO
	CategoryStructural
	CategoryFieldCodec
	CategoryEncode
)

func (c Category) String() string {
	switch c {
	case CategoryIO:
		return "io"
	case CategoryStructural:
		return "structural"
	case CategoryFieldCodec:
		return "field_codec"
	case CategoryEncode:
		return "encode"
	default:
		return "none"
	}
}

// CategoryOfCode maps a single issue code to its Category.
func CategoryOfCode(code string) Category {
	switch code {
	case CodeIO:
		return CategoryIO
	case CodeInvalidFormat:
		return CategoryFieldCodec
	case CodeEncode:
		return CategoryEncode
	case "":
		return CategoryNone
	default:
		return CategoryStructural
	}
}

// CategoryOf classifies err by its first issue. Errors that carry no Issues
// are treated as IO failures because every in-document failure is reported as
// Issues.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryNone
	}
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return CategoryIO
	}
	return CategoryOfCode(iss[0].Code)
}
