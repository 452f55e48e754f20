package equiv

// SelectionRule refines the set of members participating in comparison at a
// node. Rules run in registration order over the running set established by
// earlier rules; the base set is every exported member of the expectation's
// runtime type.
type SelectionRule interface {
	SelectMembers(selected []Member, ctx *Context, opts *Options) []Member
}

// SelectionRuleFunc adapts a function to a SelectionRule.
type SelectionRuleFunc func(selected []Member, ctx *Context, opts *Options) []Member

func (f SelectionRuleFunc) SelectMembers(selected []Member, ctx *Context, opts *Options) []Member {
	return f(selected, ctx, opts)
}

// ExcludeMember removes the member at exactly the given path. The declaring
// type of the path is honored when set.
func ExcludeMember(p Path) SelectionRule {
	return SelectionRuleFunc(func(selected []Member, ctx *Context, opts *Options) []Member {
		out := selected[:0:0]
		for _, m := range selected {
			mp := ctx.Node.Field(m.Name)
			if mp.Matches(p.String()) && (p.DeclaringType() == nil || derefType(p.DeclaringType()) == derefType(ctx.Node.DeclaringType())) {
				continue
			}
			out = append(out, m)
		}
		return out
	})
}

// ExcludeMembers removes members by name at every node.
func ExcludeMembers(names ...string) SelectionRule {
	drop := map[string]struct{}{}
	for _, n := range names {
		drop[n] = struct{}{}
	}
	return SelectionRuleFunc(func(selected []Member, ctx *Context, opts *Options) []Member {
		out := selected[:0:0]
		for _, m := range selected {
			if _, skip := drop[m.Name]; skip {
				continue
			}
			out = append(out, m)
		}
		return out
	})
}

// IncludeOnlyMembers keeps only the named members.
func IncludeOnlyMembers(names ...string) SelectionRule {
	keep := map[string]struct{}{}
	for _, n := range names {
		keep[n] = struct{}{}
	}
	return SelectionRuleFunc(func(selected []Member, ctx *Context, opts *Options) []Member {
		out := selected[:0:0]
		for _, m := range selected {
			if _, ok := keep[m.Name]; ok {
				out = append(out, m)
			}
		}
		return out
	})
}
