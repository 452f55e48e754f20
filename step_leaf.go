package equiv

import "reflect"

// leafStep closes the chain: it accepts every pair and compares by deep
// value equality. Mismatch messages carry a go-cmp diff when one can be
// rendered for the pair.
type leafStep struct{}

func (leafStep) CanHandle(ctx *Context, opts *Options) bool { return true }

func (leafStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	if reflect.DeepEqual(ctx.Subject, ctx.Expectation) {
		return true, nil
	}
	f := Failure{
		Code:     CodeValueMismatch,
		Message:  renderTemplate("Expected {context:value} to be {0}, but found {1}.", ctx.Scope.Label(), []any{ctx.Expectation, ctx.Subject}),
		Expected: ctx.Expectation,
		Actual:   ctx.Subject,
	}
	if d := safeDiff(ctx.Expectation, ctx.Subject); d != "" {
		f.Params = map[string]any{"diff": d}
	}
	ctx.Scope.Fail(f)
	return true, nil
}
