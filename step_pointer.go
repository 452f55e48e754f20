package equiv

import "reflect"

// pointerStep unwraps pointer pairs so later steps see the pointees. It only
// claims pairs where the expectation side is a pointer; typed steps that want
// the pointer itself (the dataset steps) run earlier in the chain.
type pointerStep struct{}

func (pointerStep) CanHandle(ctx *Context, opts *Options) bool {
	return ctx.ExpectationType() != nil && ctx.ExpectationType().Kind() == reflect.Pointer ||
		ctx.SubjectType() != nil && ctx.SubjectType().Kind() == reflect.Pointer
}

func (pointerStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	expNil := isNilValue(ctx.Expectation)
	subjNil := isNilValue(ctx.Subject)
	switch {
	case expNil && subjNil:
		return true, nil
	case expNil != subjNil:
		ctx.Scope.FailWith(CodeNullMismatch,
			"Expected {context:value} to be {0}, but found {1}.",
			describeNil(ctx.Expectation), describeNil(ctx.Subject))
		return true, nil
	}
	child := &Context{
		Ctx:             ctx.Ctx,
		Subject:         deref(ctx.Subject),
		Expectation:     deref(ctx.Expectation),
		CompileTimeType: derefType(ctx.CompileTimeType),
		RuntimeType:     derefType(ctx.RuntimeType),
		Node:            ctx.Node,
		Scope:           ctx.Scope,
		validator:       ctx.validator,
	}
	return true, v.AssertEquality(child, opts)
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

func derefType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func describeNil(v any) string {
	if isNilValue(v) {
		return "<null>"
	}
	return "non-null"
}
