package equiv_test

import (
	"errors"
	"reflect"
	"testing"

	equiv "github.com/reoring/equiv"
)

type inner struct {
	Name string
}

type outer struct {
	A     inner
	Items []int
	Meta  map[string]string
}

func TestPath_BuilderRendering(t *testing.T) {
	p := equiv.RootPathOf[outer]().Field("A").Field("Name")
	if got := p.String(); got != "A.Name" {
		t.Fatalf("expected A.Name, got %q", got)
	}
	p = equiv.RootPathOf[outer]().Field("Items").Index(2)
	if got := p.String(); got != "Items[2]" {
		t.Fatalf("expected Items[2], got %q", got)
	}
	p = equiv.RootPathOf[outer]().Field("Meta").Key("en")
	if got := p.String(); got != "Meta[en]" {
		t.Fatalf("expected Meta[en], got %q", got)
	}
}

func TestPath_RootIdentity(t *testing.T) {
	p := equiv.RootPathOf[outer]()
	if !p.IsRoot() || p.String() != "" {
		t.Fatalf("expected empty root path, got %q", p.String())
	}
	if p.DeclaringType() != reflect.TypeOf(outer{}) {
		t.Fatalf("expected declaring type outer, got %v", p.DeclaringType())
	}
}

func TestParsePath_SupportedShapes(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"A.Name", "A.Name"},
		{"Items[2]", "Items[2]"},
		{`Meta["en"]`, "Meta[en]"},
		{"", ""},
	}
	for _, tc := range cases {
		p, err := equiv.ParsePath[outer](tc.expr)
		if err != nil {
			t.Fatalf("ParsePath(%q): unexpected error: %v", tc.expr, err)
		}
		if got := p.String(); got != tc.want {
			t.Fatalf("ParsePath(%q) = %q, want %q", tc.expr, got, tc.want)
		}
	}
}

func TestParsePath_RejectsUnsupportedShapes(t *testing.T) {
	for _, expr := range []string{
		"A+B",
		"A..Name",
		".A",
		"A.",
		"Items[i]",
		"Items[1+2]",
		"Items[",
		"f()",
	} {
		_, err := equiv.ParsePath[outer](expr)
		if !errors.Is(err, equiv.ErrInvalidPathExpr) {
			t.Fatalf("ParsePath(%q): expected ErrInvalidPathExpr, got %v", expr, err)
		}
	}
}

func TestCheckPath_MatchesParseRejection(t *testing.T) {
	if err := equiv.CheckPath("A.Name"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := equiv.CheckPath("A..B"); !errors.Is(err, equiv.ErrInvalidPathExpr) {
		t.Fatalf("expected ErrInvalidPathExpr, got %v", err)
	}
}

func TestMemberOf_TopLevelField(t *testing.T) {
	p := equiv.MemberOf(func(o *outer) *inner { return &o.A })
	if got := p.String(); got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
}

func TestPathOf_NestedField(t *testing.T) {
	p := equiv.PathOf[outer, string](func(o *outer) *string { return &o.A.Name })
	if got := p.String(); got != "A.Name" {
		t.Fatalf("expected A.Name, got %q", got)
	}
	lit, err := equiv.ParsePath[outer]("A.Name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Equal(lit) {
		t.Fatalf("selector path %v and literal path %v should be equal", p, lit)
	}
}

func TestPathsOf_CompositeSelectors(t *testing.T) {
	ps := equiv.PathsOf[outer](
		func(o *outer) any { return &o.Items },
		func(o *outer) any { return &o.A.Name },
	)
	if len(ps) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(ps))
	}
	if ps[0].String() != "Items" || ps[1].String() != "A.Name" {
		t.Fatalf("unexpected paths: %v, %v", ps[0], ps[1])
	}
}

func TestPathOf_FirstFieldOfFirstField(t *testing.T) {
	// A sits at offset 0 of outer and Name at offset 0 of inner, so the
	// selector address alone cannot tell A and A.Name apart; the field type
	// must break the tie.
	p := equiv.PathOf[outer, string](func(o *outer) *string { return &o.A.Name })
	if got := p.String(); got != "A.Name" {
		t.Fatalf("expected A.Name, got %q", got)
	}
	// Selecting the enclosing struct field still resolves to the parent.
	q := equiv.PathOf[outer, inner](func(o *outer) *inner { return &o.A })
	if got := q.String(); got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
	ps := equiv.PathsOf[outer](func(o *outer) any { return &o.A.Name })
	if len(ps) != 1 || ps[0].String() != "A.Name" {
		t.Fatalf("expected [A.Name], got %v", ps)
	}
}

func TestMemberOf_RejectsNestedSelector(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a nested-field selector")
		}
	}()
	// Nested offset-0 field: shares the address of top-level A but has a
	// different type, so MemberOf must refuse it rather than report A.
	equiv.MemberOf(func(o *outer) *string { return &o.A.Name })
}
