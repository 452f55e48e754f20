package equiv

// Options bundles the configuration for one comparison: the selection-rule
// chain, the matching-rule chain, the step chain and structural toggles.
// Options are immutable from the caller's point of view: Compare clones them
// per top-level call, so the documented pre-recursion mutation performed by
// the dataset step (propagating excluded scalar properties to table level)
// never leaks from one comparison into the next.
type Options struct {
	selectionRules []SelectionRule
	matchingRules  []MatchingRule
	steps          []Step

	allowMismatchedTypes bool
	strictMatching       bool
	rootLabel            string
	excludedTables       map[string]struct{}

	// tableMemberExclusions is set once by the dataset step before table
	// recursion begins (see step_dataset.go) and consulted by the table step.
	// It exists only on the per-call clone.
	tableMemberExclusions map[string]struct{}
}

// Option mutates Options during construction.
type Option func(*Options)

// NewOptions builds an Options with the default rule and step chains applied,
// then the given options in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		matchingRules:  []MatchingRule{MatchMembersByName()},
		steps:          DefaultSteps(),
		excludedTables: map[string]struct{}{},
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// clone deep-copies the per-call mutable state. Rule and step chains are
// shared by reference; they are stateless.
func (o *Options) clone() *Options {
	c := *o
	c.selectionRules = append([]SelectionRule(nil), o.selectionRules...)
	c.matchingRules = append([]MatchingRule(nil), o.matchingRules...)
	c.steps = append([]Step(nil), o.steps...)
	c.excludedTables = make(map[string]struct{}, len(o.excludedTables))
	for k := range o.excludedTables {
		c.excludedTables[k] = struct{}{}
	}
	c.tableMemberExclusions = nil
	return &c
}

// AllowsMismatchedTypes reports whether subject and expectation may have
// different concrete types.
func (o *Options) AllowsMismatchedTypes() bool { return o.allowMismatchedTypes }

// StrictMatching reports whether an expectation member no matching rule can
// locate on the subject is a failure rather than a skip.
func (o *Options) StrictMatching() bool { return o.strictMatching }

// TableExcluded reports whether a table name is excluded from comparison
// entirely, including presence/absence reporting.
func (o *Options) TableExcluded(name string) bool {
	_, ok := o.excludedTables[name]
	return ok
}

// SelectMembers runs the selection-rule chain for the given node. The chain
// starts from every exported member of the expectation's runtime type; later
// rules refine the set established by earlier ones (ordered application, not
// independent voting).
func (o *Options) SelectMembers(ctx *Context) []Member {
	selected := MembersOf(ctx.RuntimeType)
	for _, r := range o.selectionRules {
		selected = r.SelectMembers(selected, ctx, o)
	}
	return selected
}

// MatchMember consults the matching-rule chain in registration order; the
// first rule to produce a match wins. ok is false when no rule matched, which
// callers treat as "skip this member", not as a failure.
func (o *Options) MatchMember(expected Member, ctx *Context) (Member, bool) {
	for _, r := range o.matchingRules {
		if m, ok := r.Match(expected, ctx.Subject, ctx.SubjectType(), o); ok {
			return m, true
		}
	}
	return Member{}, false
}

// ---- Option constructors ----

// WithAllowMismatchedTypes permits subject and expectation to differ in
// concrete type; members are still compared by name.
func WithAllowMismatchedTypes() Option {
	return func(o *Options) { o.allowMismatchedTypes = true }
}

// WithStrictMemberMatching makes an unmatched expectation member a
// missing_member failure instead of a silent skip.
func WithStrictMemberMatching() Option {
	return func(o *Options) { o.strictMatching = true }
}

// WithRootLabel sets the reportable context label of the root scope
// (substituted for {context} in failure messages).
func WithRootLabel(label string) Option {
	return func(o *Options) { o.rootLabel = label }
}

// WithSelectionRule appends a selection rule to the chain.
func WithSelectionRule(r SelectionRule) Option {
	return func(o *Options) { o.selectionRules = append(o.selectionRules, r) }
}

// WithMatchingRule prepends a matching rule, so caller-supplied rules win
// over the default same-name rule.
func WithMatchingRule(r MatchingRule) Option {
	return func(o *Options) { o.matchingRules = append([]MatchingRule{r}, o.matchingRules...) }
}

// WithSteps replaces the step chain. The order is significant: the first step
// whose CanHandle returns true owns the node pair.
func WithSteps(steps ...Step) Option {
	return func(o *Options) { o.steps = steps }
}

// WithExcludedMember excludes the member at the given path from comparison.
func WithExcludedMember(p Path) Option {
	return WithSelectionRule(ExcludeMember(p))
}

// WithExcludedMembers excludes members by name at every node.
func WithExcludedMembers(names ...string) Option {
	return WithSelectionRule(ExcludeMembers(names...))
}

// WithIncludedMembers restricts comparison to the named members.
func WithIncludedMembers(names ...string) Option {
	return WithSelectionRule(IncludeOnlyMembers(names...))
}

// WithExcludedTable suppresses all reporting for the named table, including
// presence/absence failures.
func WithExcludedTable(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.excludedTables[n] = struct{}{}
		}
	}
}
