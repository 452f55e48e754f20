package equiv

import "reflect"

// MatchingRule locates, for a member selected on the expectation side, the
// corresponding member on the subject side. Rules are consulted in
// registration order until one yields a match; a member no rule can match is
// skipped, which is not a failure.
type MatchingRule interface {
	Match(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool)
}

// MatchingRuleFunc adapts a function to a MatchingRule.
type MatchingRuleFunc func(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool)

func (f MatchingRuleFunc) Match(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool) {
	return f(expected, subject, subjectType, opts)
}

// MatchMembersByName matches subject members with the exact same external
// name. This is the default rule.
func MatchMembersByName() MatchingRule {
	return MatchingRuleFunc(func(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool) {
		return memberByName(subjectType, expected.Name, false)
	})
}

// MatchMembersByCaseInsensitiveName matches subject members ignoring name
// casing.
func MatchMembersByCaseInsensitiveName() MatchingRule {
	return MatchingRuleFunc(func(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool) {
		return memberByName(subjectType, expected.Name, true)
	})
}

// MapMember matches one expectation member onto a differently named subject
// member.
func MapMember(expectationName, subjectName string) MatchingRule {
	return MatchingRuleFunc(func(expected Member, subject any, subjectType reflect.Type, opts *Options) (Member, bool) {
		if expected.Name != expectationName {
			return Member{}, false
		}
		return memberByName(subjectType, subjectName, false)
	})
}
