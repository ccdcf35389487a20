package tariffconv

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                      // Reject unknown keys with an error.
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore or Error (duplicate object keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Error
)

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
}

// DefaultParseOpt rejects duplicate keys and caps nesting at 64 levels. It is
// used by ParseFrom when no options are passed.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{
		Strictness: Strictness{OnDuplicateKey: Error},
		MaxDepth:   64,
	}
}
