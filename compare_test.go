package equiv_test

import (
	"context"
	"errors"
	"testing"

	equiv "github.com/reoring/equiv"
)

type person struct {
	Name string
	Age  int
}

func TestCompare_EqualStructsReportNothing(t *testing.T) {
	ctx := context.Background()
	if err := equiv.Compare(ctx, person{"Ada", 36}, person{"Ada", 36}); err != nil {
		t.Fatalf("expected equivalence, got %v", err)
	}
}

func TestCompare_SingleMemberMismatch(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, person{"Ada", 37})
	ff, ok := equiv.AsFailures(err)
	if !ok {
		t.Fatalf("expected Failures, got %v", err)
	}
	if len(ff) != 1 {
		t.Fatalf("expected exactly one failure, got %v", ff)
	}
	if ff[0].Path != "Age" || ff[0].Code != equiv.CodeValueMismatch {
		t.Fatalf("unexpected failure: %+v", ff[0])
	}
	if ff[0].Expected != 37 || ff[0].Actual != 36 {
		t.Fatalf("expected value capture 37/36, got %+v", ff[0])
	}
}

func TestCompare_AllMismatchesAccumulate(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, person{"Grace", 37})
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 2 {
		t.Fatalf("expected both mismatches, got %v", ff)
	}
}

func TestCompare_FailFastStopsDescending(t *testing.T) {
	ctx := equiv.WithFailFast(context.Background(), true)
	err := equiv.Compare(ctx, person{"Ada", 36}, person{"Grace", 37})
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 1 {
		t.Fatalf("expected a single failure under fail-fast, got %v", ff)
	}
}

func TestCompare_TypeMismatchWithoutOptIn(t *testing.T) {
	type renamed struct {
		Name string
		Age  int
	}
	ctx := context.Background()
	err := equiv.Compare(ctx, renamed{"Ada", 36}, person{"Ada", 36})
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 1 || ff[0].Code != equiv.CodeTypeMismatch {
		t.Fatalf("expected a type mismatch failure, got %v", err)
	}
	if err := equiv.Compare(ctx, renamed{"Ada", 36}, person{"Ada", 36}, equiv.WithAllowMismatchedTypes()); err != nil {
		t.Fatalf("expected member-wise equivalence across types, got %v", err)
	}
}

func TestCompare_SliceCountAndItems(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, []int{1, 2}, []int{1, 5, 9})
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 2 {
		t.Fatalf("expected count mismatch plus one item mismatch, got %v", ff)
	}
	if ff[0].Code != equiv.CodeCountMismatch {
		t.Fatalf("expected count mismatch first, got %+v", ff[0])
	}
	if ff[1].Path != "[1]" || ff[1].Code != equiv.CodeValueMismatch {
		t.Fatalf("expected item failure at [1], got %+v", ff[1])
	}
}

func TestCompare_MapKeyUnion(t *testing.T) {
	ctx := context.Background()
	subject := map[string]int{"a": 1, "c": 3}
	expectation := map[string]int{"a": 1, "b": 2}
	err := equiv.Compare(ctx, subject, expectation)
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 2 {
		t.Fatalf("expected missing and unexpected key failures, got %v", ff)
	}
	byCode := map[string]string{}
	for _, f := range ff {
		byCode[f.Code] = f.Path
	}
	if byCode[equiv.CodeMissingKey] != "[b]" || byCode[equiv.CodeUnexpectedKey] != "[c]" {
		t.Fatalf("unexpected key failures: %v", byCode)
	}
}

type ring struct {
	Name string
	Next *ring
}

func TestCompare_CyclicGraphsTerminate(t *testing.T) {
	a := &ring{Name: "a"}
	b := &ring{Name: "b"}
	a.Next, b.Next = b, a
	c := &ring{Name: "a"}
	d := &ring{Name: "b"}
	c.Next, d.Next = d, c

	ctx := context.Background()
	if err := equiv.Compare(ctx, a, c); err != nil {
		t.Fatalf("expected cyclic graphs to compare equivalent, got %v", err)
	}

	d.Name = "x"
	err := equiv.Compare(ctx, a, c)
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 1 || ff[0].Path != "Next.Name" {
		t.Fatalf("expected one failure at Next.Name, got %v", ff)
	}
}

func TestCompare_ExcludedMemberSuppressesMismatch(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, person{"Ada", 99},
		equiv.WithExcludedMember(equiv.MemberOf(func(p *person) *int { return &p.Age })))
	if err != nil {
		t.Fatalf("expected exclusion to suppress the mismatch, got %v", err)
	}
}

func TestCompare_IncludeOnlyMembers(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, person{"Grace", 99},
		equiv.WithIncludedMembers("Age"))
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 1 || ff[0].Path != "Age" {
		t.Fatalf("expected only the Age mismatch, got %v", ff)
	}
}

func TestCompare_MappedMemberMatching(t *testing.T) {
	type expectedShape struct {
		Name  string
		Years int
	}
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, expectedShape{"Ada", 36},
		equiv.WithAllowMismatchedTypes(),
		equiv.WithMatchingRule(equiv.MapMember("Years", "Age")))
	if err != nil {
		t.Fatalf("expected mapped members to compare, got %v", err)
	}
}

func TestCompare_CaseInsensitiveMatching(t *testing.T) {
	type loud struct {
		NAME string
	}
	type quiet struct {
		Name string
	}
	ctx := context.Background()
	err := equiv.Compare(ctx, loud{"Ada"}, quiet{"Ada"},
		equiv.WithAllowMismatchedTypes(),
		equiv.WithMatchingRule(equiv.MatchMembersByCaseInsensitiveName()))
	if err != nil {
		t.Fatalf("expected case-insensitive match, got %v", err)
	}
}

func TestCompare_UnmatchedMemberIsSkipped(t *testing.T) {
	type wider struct {
		Name  string
		Extra string
	}
	ctx := context.Background()
	// Expectation has a member the subject lacks; no matching rule finds it,
	// so it is skipped rather than failed.
	err := equiv.Compare(ctx, person{"Ada", 36}, wider{Name: "Ada", Extra: "x"},
		equiv.WithAllowMismatchedTypes())
	if err != nil {
		t.Fatalf("expected unmatched member to be skipped, got %v", err)
	}
}

func TestCompare_EmptyStepChainIsLoud(t *testing.T) {
	ctx := context.Background()
	err := equiv.Compare(ctx, 1, 2, equiv.WithSteps())
	if !errors.Is(err, equiv.ErrNoStep) {
		t.Fatalf("expected ErrNoStep, got %v", err)
	}
	if _, ok := equiv.AsFailures(err); ok {
		t.Fatalf("ErrNoStep must not masquerade as Failures")
	}
}

func TestIs_ReportsEquivalence(t *testing.T) {
	ctx := context.Background()
	if !equiv.Is(ctx, person{"Ada", 36}, person{"Ada", 36}) {
		t.Fatalf("expected Is to report equivalence")
	}
	if equiv.Is(ctx, person{"Ada", 36}, person{"Ada", 37}) {
		t.Fatalf("expected Is to report difference")
	}
}

func TestCompare_StrictMatchingReportsMissingMember(t *testing.T) {
	type wider struct {
		Name  string
		Extra string
	}
	ctx := context.Background()
	err := equiv.Compare(ctx, person{"Ada", 36}, wider{Name: "Ada", Extra: "x"},
		equiv.WithAllowMismatchedTypes(),
		equiv.WithStrictMemberMatching())
	ff, _ := equiv.AsFailures(err)
	if len(ff) != 1 {
		t.Fatalf("expected one missing-member failure, got %v", ff)
	}
	if ff[0].Code != equiv.CodeMissingMember || ff[0].Path != "Extra" {
		t.Fatalf("unexpected failure: %+v", ff[0])
	}
}
