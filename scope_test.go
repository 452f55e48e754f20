package equiv_test

import (
	"strings"
	"testing"

	equiv "github.com/reoring/equiv"
)

func TestScope_AccumulatesInsteadOfThrowing(t *testing.T) {
	s := equiv.Begin("DataSet")
	s.FailWith(equiv.CodeValueMismatch, "Expected {context} to be {0}, but found {1}.", 1, 2)
	s.FailWith(equiv.CodeCountMismatch, "counts differ")
	ff := s.Flush()
	if len(ff) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(ff))
	}
	if ff[0].Message != "Expected DataSet to be 1, but found 2." {
		t.Fatalf("unexpected message: %q", ff[0].Message)
	}
	if ff[0].Context != "DataSet" {
		t.Fatalf("expected context label DataSet, got %q", ff[0].Context)
	}
}

func TestScope_ForConditionShortForm(t *testing.T) {
	s := equiv.Begin("")
	s.ForCondition(true).FailWith(equiv.CodeValueMismatch, "never recorded")
	s.ForCondition(false).FailWith(equiv.CodeValueMismatch, "recorded")
	ff := s.Flush()
	if len(ff) != 1 || ff[0].Message != "recorded" {
		t.Fatalf("expected exactly the failed condition, got %v", ff)
	}
}

func TestScope_NestedScopesShareRootAccumulator(t *testing.T) {
	root := equiv.Begin("DataSet")
	child := root.Nested("Orders").At(equiv.RootPathOf[outer]().Field("A"))
	child.FailWith(equiv.CodeValueMismatch, "from {context}")
	ff := root.Flush()
	if len(ff) != 1 {
		t.Fatalf("expected child failure to surface at root, got %v", ff)
	}
	if ff[0].Path != "A" || ff[0].Context != "Orders" {
		t.Fatalf("expected path A in context Orders, got %+v", ff[0])
	}
	if ff[0].Message != "from Orders" {
		t.Fatalf("unexpected message: %q", ff[0].Message)
	}
}

func TestScope_FlushDrainsExactlyOnce(t *testing.T) {
	s := equiv.Begin("")
	s.FailWith(equiv.CodeValueMismatch, "once")
	if ff := s.Flush(); len(ff) != 1 {
		t.Fatalf("first flush should drain the failure, got %v", ff)
	}
	if ff := s.Flush(); ff != nil {
		t.Fatalf("second flush must return nil, got %v", ff)
	}
}

func TestScope_ContextFallbackPlaceholder(t *testing.T) {
	s := equiv.Begin("")
	s.FailWith(equiv.CodeValueMismatch, "Expected {context:DataSet} to match.")
	ff := s.Flush()
	if !strings.Contains(ff[0].Message, "DataSet") {
		t.Fatalf("expected fallback label in message, got %q", ff[0].Message)
	}
}
