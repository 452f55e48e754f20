package equiv_test

import (
	"strings"
	"testing"

	equiv "github.com/reoring/equiv"
)

func TestFailures_ErrorSummary(t *testing.T) {
	ff := equiv.Failures{
		{Path: "A", Code: equiv.CodeValueMismatch},
		{Path: "B", Code: equiv.CodeTypeMismatch},
		{Path: "C", Code: equiv.CodeCountMismatch},
		{Path: "D", Code: equiv.CodeMissingTable},
	}
	s := ff.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("expected overflow marker in summary, got %q", s)
	}
	if equiv.Failures(nil).Error() != "" {
		t.Fatalf("empty failures must render as empty string")
	}
}

func TestAppendFailures_InitializesDestination(t *testing.T) {
	ff := equiv.AppendFailures(nil, equiv.Failure{Code: equiv.CodeValueMismatch})
	if len(ff) != 1 {
		t.Fatalf("expected one failure, got %d", len(ff))
	}
}

func TestAsFailures_RejectsOtherErrors(t *testing.T) {
	if _, ok := equiv.AsFailures(equiv.ErrNoStep); ok {
		t.Fatalf("ErrNoStep is not a Failures value")
	}
	if _, ok := equiv.AsFailures(nil); ok {
		t.Fatalf("nil error carries no failures")
	}
}

func TestRender_ListsEveryFailureWithPath(t *testing.T) {
	ff := equiv.Failures{
		{Path: "Tables[Orders].Rows[0][price]", Code: equiv.CodeValueMismatch, Message: "values differ"},
		{Code: equiv.CodeCountMismatch},
	}
	out := equiv.Render(ff)
	if !strings.Contains(out, "found 2 difference(s)") {
		t.Fatalf("expected header, got %q", out)
	}
	if !strings.Contains(out, "Tables[Orders].Rows[0][price]") {
		t.Fatalf("expected path in report, got %q", out)
	}
	// The second failure has no message; the localized code label fills in.
	if !strings.Contains(out, "counts differ") {
		t.Fatalf("expected localized fallback message, got %q", out)
	}
	if !strings.Contains(out, "<root>") {
		t.Fatalf("expected root marker for the pathless failure, got %q", out)
	}
}
