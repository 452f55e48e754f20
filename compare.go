package equiv

import (
	"context"
	"reflect"
)

// Compare walks subject and expectation in lockstep and returns nil when the
// graphs are structurally equivalent. On mismatch it returns a Failures value
// carrying every accumulated difference with its path context; comparison
// never stops at the first mismatch unless fail-fast was requested via
// WithFailFast on ctx.
//
// Errors other than Failures indicate misuse of the library (ErrNoStep: the
// configured step chain cannot handle a node pair).
func Compare(ctx context.Context, subject, expectation any, options ...Option) error {
	return CompareWith(ctx, NewOptions(options...), subject, expectation)
}

// CompareWith runs one comparison against a prebuilt Options. The options are
// cloned per call: reusing one Options across sequential comparisons yields
// identical results for identical inputs.
func CompareWith(ctx context.Context, o *Options, subject, expectation any) error {
	if o == nil {
		o = NewOptions()
	}
	call := o.clone()
	v := NewValidator(call.steps)
	scope := Begin(call.rootLabel)
	expType := reflect.TypeOf(expectation)
	root := &Context{
		Ctx:             ctx,
		Subject:         subject,
		Expectation:     expectation,
		CompileTimeType: expType,
		RuntimeType:     expType,
		Node:            RootPath(expType),
		Scope:           scope,
		validator:       v,
	}
	err := v.AssertEquality(root, call)
	failures := scope.Flush()
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return failures
	}
	return nil
}

// Is reports whether subject and expectation are structurally equivalent
// under the given options.
func Is(ctx context.Context, subject, expectation any, options ...Option) bool {
	return Compare(ctx, subject, expectation, options...) == nil
}
