package equiv

// structStep compares struct pairs member-wise: the selection-rule chain
// picks the authoritative member set from the expectation's runtime type, the
// matching-rule chain locates each counterpart on the subject, and matched
// pairs recurse as nested members. Unmatched members are skipped, not failed.
type structStep struct{}

func (structStep) CanHandle(ctx *Context, opts *Options) bool {
	// Only structs exposing members; opaque structs (no exported fields,
	// e.g. language tags) fall through to the leaf step.
	return len(MembersOf(ctx.ExpectationType())) > 0
}

func (structStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	if !opts.AllowsMismatchedTypes() && ctx.SubjectType() != ctx.ExpectationType() {
		ctx.Scope.FailWith(CodeTypeMismatch,
			"Expected {context:value} to be of type {0}, but found {1}.",
			ctx.ExpectationType(), ctx.SubjectType())
		return true, nil
	}
	for _, expected := range opts.SelectMembers(ctx) {
		matched, ok := opts.MatchMember(expected, ctx)
		if !ok {
			if opts.StrictMatching() {
				ctx.Scope.Fail(FailureAt(ctx.Node.Field(expected.Name), CodeMissingMember,
					renderTemplate("Expectation has member {0}, but {context:subject} does not.",
						ctx.Scope.Label(), []any{expected.Name}),
					map[string]any{"member": expected.Name}))
			}
			continue
		}
		child := ctx.AsNestedMember(expected, matched)
		if err := v.AssertEquality(child, opts); err != nil {
			return true, err
		}
	}
	return true, nil
}
