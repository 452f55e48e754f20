package equiv

// Package equiv is a structural equivalency engine: it walks an expected and
// an actual object graph in lockstep and reports every difference at once.
//
// - A configurable, ordered chain of equivalency steps (Step) picks the
//   comparison strategy per node pair; the dataset step compares hierarchical
//   tabular data table-by-table and field-by-field.
// - Selection rules choose which members participate; matching rules map an
//   expectation member to its subject counterpart.
// - Failures accumulate into an explicit Scope with full path context
//   (Failures implements error); nothing throws on the first mismatch.
// - Cyclic graphs terminate: identity pairs already on the recursion path
//   compare as equivalent.
//
// Design policy:
// - Keep only public APIs in the root package; the tabular model lives under
//   dataset/, localization under i18n/, and the CLI under cmd/equiv.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  err := equiv.Compare(ctx, actual, expected)
//  if ff, ok := equiv.AsFailures(err); ok {
//      fmt.Print(equiv.Render(ff))
//  }
//
//  err = equiv.Compare(ctx, got, want,
//      equiv.WithExcludedMembers("Locale"),
//      equiv.WithExcludedTable("audit_log"))
