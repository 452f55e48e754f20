package equiv

import (
	"reflect"

	"github.com/reoring/equiv/dataset"
)

// datasetStep compares two hierarchical datasets field-by-field and
// table-by-table. Every mismatch is an accumulated failure; the step always
// reports the pair as handled, even when it recorded failures.
type datasetStep struct{}

var (
	dataSetType    = reflect.TypeOf(dataset.DataSet{})
	dataSetPtrType = reflect.TypeOf((*dataset.DataSet)(nil))
)

func (datasetStep) CanHandle(ctx *Context, opts *Options) bool {
	t := ctx.ExpectationType()
	return t == dataSetType || t == dataSetPtrType
}

func (datasetStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	scope := ctx.Scope
	if scope.Label() == "" {
		scope = scope.Nested("DataSet")
	}

	if isNilValue(ctx.Expectation) {
		scope.ForCondition(isNilValue(ctx.Subject)).FailWith(CodeNullMismatch,
			"Expected {context:DataSet} to be <null>, but found {0}.", ctx.Subject)
		return true, nil
	}
	exp, _ := asDataSet(ctx.Expectation)
	if isNilValue(ctx.Subject) {
		scope.FailWith(CodeNullMismatch,
			"Expected {context:DataSet} to be non-null, but found <null>.")
		return true, nil
	}
	subj, ok := asDataSet(ctx.Subject)
	if !ok {
		// Distinct from the nil case: the subject holds a value that is not
		// a dataset at all.
		scope.FailWith(CodeNotCastable,
			"Expected {context:DataSet} to be a DataSet, but found {0}.", ctx.SubjectType())
		return true, nil
	}
	if !opts.AllowsMismatchedTypes() && ctx.SubjectType() != ctx.ExpectationType() {
		scope.FailWith(CodeTypeMismatch,
			"Expected {context:DataSet} to be of type {0}, but found {1}.",
			ctx.ExpectationType(), ctx.SubjectType())
		return true, nil
	}

	selected := selectedNames(opts, ctx)

	// Scalar properties are compared independently; all are attempted even
	// when earlier ones already failed.
	for _, p := range datasetScalars {
		if _, ok := selected[p.name]; !ok {
			continue
		}
		ev, sv := p.get(exp), p.get(subj)
		scope.At(ctx.Node.Field(p.name)).ForCondition(reflect.DeepEqual(ev, sv)).
			Fail(Failure{
				Code:     CodeValueMismatch,
				Message:  renderTemplate("Expected {0} of {context:DataSet} to be {1}, but found {2}.", scope.Label(), []any{p.name, ev, sv}),
				Expected: ev,
				Actual:   sv,
			})
	}

	for _, name := range []string{"ExtendedProperties", "Relations"} {
		if _, ok := selected[name]; !ok {
			continue
		}
		expected, ok := memberByName(ctx.ExpectationType(), name, false)
		if !ok {
			continue
		}
		matched, ok := opts.MatchMember(expected, ctx)
		if !ok {
			continue
		}
		if err := v.AssertEquality(ctx.AsNestedMember(expected, matched), opts); err != nil {
			return true, err
		}
	}

	if _, ok := selected["Tables"]; ok {
		if err := compareTableSets(ctx, v, opts, scope, subj, exp, selected); err != nil {
			return true, err
		}
	}
	return true, nil
}

// compareTableSets asserts the table counts, propagates dataset-level scalar
// exclusions down to table level, and walks the union of table names.
func compareTableSets(ctx *Context, v *Validator, opts *Options, scope *Scope, subj, exp *dataset.DataSet, selected map[string]struct{}) error {
	scope.At(ctx.Node.Field("Tables")).
		ForCondition(len(subj.Tables) == len(exp.Tables)).
		FailWith(CodeCountMismatch,
			"Expected {context:DataSet} to contain {0} table(s), but found {1}.",
			len(exp.Tables), len(subj.Tables))

	// When mismatched concrete types are tolerated, a dataset-level decision
	// to skip CaseSensitive or Locale must hold for the tables as well.
	// This is the one documented pre-recursion mutation; it happens on the
	// per-call clone, once, before any table recursion.
	if opts.AllowsMismatchedTypes() {
		excl := map[string]struct{}{}
		for _, name := range []string{"CaseSensitive", "Locale"} {
			if _, ok := selected[name]; !ok {
				excl[name] = struct{}{}
			}
		}
		if len(excl) > 0 {
			opts.tableMemberExclusions = excl
		}
	}

	for _, name := range tableNameUnion(exp, subj) {
		if opts.TableExcluded(name) {
			continue
		}
		expT := exp.Table(name)
		subjT := subj.Table(name)
		node := ctx.Node.Field("Tables").Key(name)
		switch {
		case subjT == nil:
			scope.At(node).FailWith(CodeMissingTable,
				"Expected {context:DataSet} to contain a table named {0}, but did not find it.", name)
		case expT == nil:
			scope.At(node).FailWith(CodeUnexpectedTable,
				"Found unexpected table named {0} in {context:DataSet}.", name)
		default:
			// Tables are matched by name, so the name, not a positional
			// index, is the collection item's reported identity.
			if err := v.AssertEquality(ctx.derive(node, subjT, expT, nil), opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// tableNameUnion lists every table name present on either side, expectation
// order first, without duplicates.
func tableNameUnion(exp, subj *dataset.DataSet) []string {
	seen := map[string]struct{}{}
	names := make([]string, 0, len(exp.Tables)+len(subj.Tables))
	for _, n := range append(exp.TableNames(), subj.TableNames()...) {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names
}

// selectedNames runs the selection chain and keys the result by member name.
func selectedNames(opts *Options, ctx *Context) map[string]struct{} {
	out := map[string]struct{}{}
	for _, m := range opts.SelectMembers(ctx) {
		out[m.Name] = struct{}{}
	}
	return out
}

// asDataSet accepts both the value and pointer form.
func asDataSet(v any) (*dataset.DataSet, bool) {
	switch d := v.(type) {
	case *dataset.DataSet:
		return d, true
	case dataset.DataSet:
		return &d, true
	default:
		return nil, false
	}
}

var datasetScalars = []struct {
	name string
	get  func(*dataset.DataSet) any
}{
	{"DataSetName", func(d *dataset.DataSet) any { return d.DataSetName }},
	{"CaseSensitive", func(d *dataset.DataSet) any { return d.CaseSensitive }},
	{"EnforceConstraints", func(d *dataset.DataSet) any { return d.EnforceConstraints }},
	{"HasErrors", func(d *dataset.DataSet) any { return d.HasErrors }},
	{"Locale", func(d *dataset.DataSet) any { return d.Locale }},
	{"Namespace", func(d *dataset.DataSet) any { return d.Namespace }},
	{"Prefix", func(d *dataset.DataSet) any { return d.Prefix }},
	{"RemotingFormat", func(d *dataset.DataSet) any { return d.RemotingFormat }},
	{"SchemaSerializationMode", func(d *dataset.DataSet) any { return d.SchemaSerializationMode }},
}
