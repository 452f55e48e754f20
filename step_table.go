package equiv

import (
	"reflect"

	"github.com/reoring/equiv/dataset"
)

// tableStep compares two data tables: scalar metadata, extended properties,
// the column set by name, and rows by position.
type tableStep struct{}

var (
	dataTableType    = reflect.TypeOf(dataset.DataTable{})
	dataTablePtrType = reflect.TypeOf((*dataset.DataTable)(nil))
)

func (tableStep) CanHandle(ctx *Context, opts *Options) bool {
	t := ctx.ExpectationType()
	return t == dataTableType || t == dataTablePtrType
}

func (tableStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	if isNilValue(ctx.Expectation) {
		ctx.Scope.ForCondition(isNilValue(ctx.Subject)).FailWith(CodeNullMismatch,
			"Expected {context:DataTable} to be <null>, but found {0}.", ctx.Subject)
		return true, nil
	}
	exp, _ := asDataTable(ctx.Expectation)
	if isNilValue(ctx.Subject) {
		ctx.Scope.FailWith(CodeNullMismatch,
			"Expected {context:DataTable} to be non-null, but found <null>.")
		return true, nil
	}
	subj, ok := asDataTable(ctx.Subject)
	if !ok {
		ctx.Scope.FailWith(CodeNotCastable,
			"Expected {context:DataTable} to be a DataTable, but found {0}.", ctx.SubjectType())
		return true, nil
	}
	if !opts.AllowsMismatchedTypes() && ctx.SubjectType() != ctx.ExpectationType() {
		ctx.Scope.FailWith(CodeTypeMismatch,
			"Expected {context:DataTable} to be of type {0}, but found {1}.",
			ctx.ExpectationType(), ctx.SubjectType())
		return true, nil
	}

	// The table name doubles as the reportable context label.
	scope := ctx.Scope.Nested(exp.TableName)

	selected := selectedNames(opts, ctx)
	for name := range opts.tableMemberExclusions {
		delete(selected, name)
	}

	for _, p := range tableScalars {
		if _, ok := selected[p.name]; !ok {
			continue
		}
		ev, sv := p.get(exp), p.get(subj)
		scope.At(ctx.Node.Field(p.name)).ForCondition(reflect.DeepEqual(ev, sv)).
			Fail(Failure{
				Code:     CodeValueMismatch,
				Message:  renderTemplate("Expected {0} of {context:DataTable} to be {1}, but found {2}.", scope.Label(), []any{p.name, ev, sv}),
				Expected: ev,
				Actual:   sv,
			})
	}

	if _, ok := selected["ExtendedProperties"]; ok {
		if expected, found := memberByName(ctx.ExpectationType(), "ExtendedProperties", false); found {
			if matched, found := opts.MatchMember(expected, ctx); found {
				if err := v.AssertEquality(ctx.AsNestedMember(expected, matched), opts); err != nil {
					return true, err
				}
			}
		}
	}

	if _, ok := selected["Columns"]; ok {
		if err := compareColumnSets(ctx, v, opts, scope, subj, exp); err != nil {
			return true, err
		}
	}
	if _, ok := selected["Rows"]; ok {
		if err := compareRows(ctx, v, opts, scope, subj, exp); err != nil {
			return true, err
		}
	}
	return true, nil
}

// compareColumnSets walks the union of column names; columns are matched by
// name, never by position.
func compareColumnSets(ctx *Context, v *Validator, opts *Options, scope *Scope, subj, exp *dataset.DataTable) error {
	scope.At(ctx.Node.Field("Columns")).
		ForCondition(len(subj.Columns) == len(exp.Columns)).
		FailWith(CodeCountMismatch,
			"Expected {context:DataTable} to contain {0} column(s), but found {1}.",
			len(exp.Columns), len(subj.Columns))

	for _, name := range columnNameUnion(exp, subj) {
		expC := exp.Column(name)
		subjC := subj.Column(name)
		node := ctx.Node.Field("Columns").Key(name)
		switch {
		case subjC == nil:
			scope.At(node).FailWith(CodeMissingItem,
				"Expected {context:DataTable} to contain a column named {0}, but did not find it.", name)
		case expC == nil:
			scope.At(node).FailWith(CodeUnexpectedItem,
				"Found unexpected column named {0} in {context:DataTable}.", name)
		default:
			if err := v.AssertEquality(ctx.derive(node, subjC, expC, nil), opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// compareRows asserts the row counts and recurses into the common prefix
// pairwise. Cell comparison is by column name through the map step.
func compareRows(ctx *Context, v *Validator, opts *Options, scope *Scope, subj, exp *dataset.DataTable) error {
	scope.At(ctx.Node.Field("Rows")).
		ForCondition(len(subj.Rows) == len(exp.Rows)).
		FailWith(CodeCountMismatch,
			"Expected {context:DataTable} to contain {0} row(s), but found {1}.",
			len(exp.Rows), len(subj.Rows))

	n := min(len(subj.Rows), len(exp.Rows))
	for i := 0; i < n; i++ {
		node := ctx.Node.Field("Rows").Index(i)
		if err := v.AssertEquality(ctx.derive(node, subj.Rows[i], exp.Rows[i], nil), opts); err != nil {
			return err
		}
	}
	return nil
}

func columnNameUnion(exp, subj *dataset.DataTable) []string {
	seen := map[string]struct{}{}
	names := make([]string, 0, len(exp.Columns)+len(subj.Columns))
	for _, n := range append(exp.ColumnNames(), subj.ColumnNames()...) {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names
}

func asDataTable(v any) (*dataset.DataTable, bool) {
	switch t := v.(type) {
	case *dataset.DataTable:
		return t, true
	case dataset.DataTable:
		return &t, true
	default:
		return nil, false
	}
}

var tableScalars = []struct {
	name string
	get  func(*dataset.DataTable) any
}{
	{"TableName", func(t *dataset.DataTable) any { return t.TableName }},
	{"DisplayExpression", func(t *dataset.DataTable) any { return t.DisplayExpression }},
	{"CaseSensitive", func(t *dataset.DataTable) any { return t.CaseSensitive }},
	{"Locale", func(t *dataset.DataTable) any { return t.Locale }},
	{"Namespace", func(t *dataset.DataTable) any { return t.Namespace }},
	{"Prefix", func(t *dataset.DataTable) any { return t.Prefix }},
}
