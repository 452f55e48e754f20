package equiv

import (
	"fmt"
	"strconv"
	"strings"
)

// Scope is the failure-accumulation context for one traversal. Structural
// mismatches are recorded into the scope instead of being raised, so one
// comparison can report every difference at once.
//
// Scopes form a stack mirroring the traversal: Begin creates the root,
// Nested/At derive children. All accumulated failures are owned by the root;
// children keep a back-reference for reporting only. Scopes are thread-affine
// and must be nested in strict stack order. Flush drains the accumulated
// failures exactly once.
type Scope struct {
	parent *Scope
	label  string
	path   Path
	root   *scopeRoot
}

type scopeRoot struct {
	failures Failures
	flushed  bool
}

// Begin opens a root scope with a reportable context label (substituted for
// the {context} placeholder in failure message templates).
func Begin(label string) *Scope {
	return &Scope{label: label, root: &scopeRoot{}}
}

// Nested derives a child scope with a new context label, keeping the current
// path. The child records into the same root accumulator.
func (s *Scope) Nested(label string) *Scope {
	return &Scope{parent: s, label: label, path: s.path, root: s.root}
}

// At derives a child scope positioned at the given path.
func (s *Scope) At(p Path) *Scope {
	return &Scope{parent: s, label: s.label, path: p, root: s.root}
}

// Label reports the scope's context label.
func (s *Scope) Label() string { return s.label }

// Path reports the traversal path the scope is positioned at.
func (s *Scope) Path() Path { return s.path }

// Fail records one failure, stamping the scope's path and context label when
// the failure does not carry its own.
func (s *Scope) Fail(f Failure) {
	if f.Path == "" {
		f.Path = s.path.String()
	}
	if f.Context == "" {
		f.Context = s.label
	}
	s.root.failures = AppendFailures(s.root.failures, f)
}

// FailWith records one failure at the current path. The template supports
// {context} / {context:fallback} for the scope label and {0}, {1}, ... for
// the positional args.
func (s *Scope) FailWith(code, template string, args ...any) {
	s.Fail(Failure{
		Code:    code,
		Message: renderTemplate(template, s.label, args),
	})
}

// ForCondition is the short form that records a failure only when ok is
// false: scope.ForCondition(a == b).FailWith(...).
func (s *Scope) ForCondition(ok bool) Condition {
	return Condition{scope: s, failed: !ok}
}

// Condition is the pending half of a ForCondition check.
type Condition struct {
	scope  *Scope
	failed bool
}

// FailWith records the failure when the condition did not hold.
func (c Condition) FailWith(code, template string, args ...any) {
	if c.failed {
		c.scope.FailWith(code, template, args...)
	}
}

// Fail records the given failure when the condition did not hold.
func (c Condition) Fail(f Failure) {
	if c.failed {
		c.scope.Fail(f)
	}
}

// HasFailures reports whether any failure has been accumulated so far.
func (s *Scope) HasFailures() bool { return len(s.root.failures) > 0 }

// Flush drains the accumulated failures. The first call returns everything
// recorded during the traversal; repeated calls return nil, so a deferred
// Flush after an early return never double-reports.
func (s *Scope) Flush() Failures {
	if s.root.flushed {
		return nil
	}
	s.root.flushed = true
	out := s.root.failures
	s.root.failures = nil
	return out
}

// renderTemplate substitutes {context}, {context:fallback} and positional
// {N} placeholders. Unknown placeholders are kept verbatim.
func renderTemplate(template, label string, args []any) string {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		token := rest[open+1 : open+end]
		rest = rest[open+end+1:]
		switch {
		case token == "context":
			b.WriteString(orDefault(label, "value"))
		case strings.HasPrefix(token, "context:"):
			b.WriteString(orDefault(label, strings.TrimPrefix(token, "context:")))
		default:
			if i, err := strconv.Atoi(token); err == nil && i >= 0 && i < len(args) {
				fmt.Fprintf(&b, "%v", args[i])
			} else {
				b.WriteString("{" + token + "}")
			}
		}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
