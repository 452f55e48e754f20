package equiv

import (
	"errors"
	"fmt"
	"strings"
)

// Failure codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch    = "type_mismatch"
	CodeNullMismatch    = "null_mismatch"
	CodeNotCastable     = "not_castable"
	CodeValueMismatch   = "value_mismatch"
	CodeCountMismatch   = "count_mismatch"
	CodeMissingMember   = "missing_member"
	CodeMissingTable    = "missing_table"
	CodeUnexpectedTable = "unexpected_table"
	CodeMissingItem     = "missing_item"
	CodeUnexpectedItem  = "unexpected_item"
	CodeMissingKey      = "missing_key"
	CodeUnexpectedKey   = "unexpected_key"
)

// ErrNoStep indicates that no equivalency step in the configured chain could
// handle a node pair. This is a library-invariant violation (an incomplete
// step chain), not a structural mismatch, and aborts the traversal.
var ErrNoStep = errors.New("equiv: no equivalency step can handle node pair")

// Failure represents a single structural mismatch found during comparison.
type Failure struct {
	Path    string // Dotted member path (for example: Tables[Orders].Rows[2].Price).
	Code    string // One of the codes listed above.
	Message string
	Context string // Reportable context label active when the failure was recorded.
	// Expected and Actual carry the two offending values when the failure is a
	// value-level mismatch; both are nil for presence/shape failures.
	Expected any
	Actual   any
	// Params carries structured parameters (e.g., {"want":3, "got":5})
	// for i18n and observability.
	Params map[string]any
}

// Failures is a collection of structural mismatches that implements error.
type Failures []Failure

// Error summarizes the first few failures.
func (ff Failures) Error() string {
	if len(ff) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ff)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		f := ff[i]
		if f.Path == "" {
			fmt.Fprintf(b, "%s at <root>", f.Code)
			continue
		}
		fmt.Fprintf(b, "%s at %s", f.Code, f.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendFailures appends failures to the destination, initializing the slice
// when needed.
func AppendFailures(dst Failures, more ...Failure) Failures {
	if dst == nil {
		dst = Failures{}
	}
	dst = append(dst, more...)
	return dst
}

// AsFailures extracts Failures from an error using errors.As internally.
func AsFailures(err error) (Failures, bool) {
	if err == nil {
		return nil, false
	}
	var ff Failures
	if errors.As(err, &ff) {
		return ff, true
	}
	return nil, false
}

// FailureAt creates a Failure at the given path with provided code, message
// and params map. This is a convenience helper to improve readability at call
// sites with many parameters.
func FailureAt(p Path, code, msg string, params map[string]any) Failure {
	return Failure{Path: p.String(), Code: code, Message: msg, Params: params}
}
