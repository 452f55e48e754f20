package equiv

import (
	"context"
	"reflect"
)

// Context carries the immutable per-node traversal state: the two values
// under comparison, their type metadata, the path so far and the ambient
// failure scope. Derived contexts (AsNestedMember, AsCollectionItem) are
// created per recursion step and form a tree rooted at the top-level call;
// no back-references are kept. Cycle detection is identity tracking owned by
// the validator, not by the context.
type Context struct {
	Ctx             context.Context
	Subject         any
	Expectation     any
	CompileTimeType reflect.Type
	RuntimeType     reflect.Type
	Node            Path
	Scope           *Scope

	validator *Validator
}

// SubjectType reports the runtime type of the subject value, or nil for a
// nil subject.
func (c *Context) SubjectType() reflect.Type { return reflect.TypeOf(c.Subject) }

// ExpectationType reports the runtime type of the expectation value, falling
// back to the compile-time type for nil expectations.
func (c *Context) ExpectationType() reflect.Type {
	if t := reflect.TypeOf(c.Expectation); t != nil {
		return t
	}
	return c.CompileTimeType
}

// AsNestedMember derives the context for recursing into a member pair: the
// expectation member drives the path segment and compile-time type, the
// matched subject member supplies the subject-side value. Returns nil when
// no further comparison is needed (the pair is already on the active
// recursion path).
func (c *Context) AsNestedMember(expected, matched Member) *Context {
	subj := matched.ReadFrom(c.Subject)
	exp := expected.ReadFrom(c.Expectation)
	return c.derive(c.Node.Field(expected.Name), subj, exp, expected.Type)
}

// AsCollectionItem derives the context for one item of a collection whose
// items are matched by name (the key becomes the path segment). Returns nil
// when no further comparison is needed.
func (c *Context) AsCollectionItem(key string, subjectItem, expectationItem any) *Context {
	return c.derive(c.Node.Key(key), subjectItem, expectationItem, nil)
}

// AsIndexedItem derives the context for one positionally matched collection
// item. Returns nil when no further comparison is needed.
func (c *Context) AsIndexedItem(i int, subjectItem, expectationItem any) *Context {
	return c.derive(c.Node.Index(i), subjectItem, expectationItem, nil)
}

func (c *Context) derive(node Path, subj, exp any, compileTime reflect.Type) *Context {
	if c.validator != nil && c.validator.onActivePath(subj, exp) {
		return nil
	}
	if compileTime == nil {
		compileTime = reflect.TypeOf(exp)
	}
	runtime := reflect.TypeOf(exp)
	if runtime == nil {
		runtime = compileTime
	}
	return &Context{
		Ctx:             c.Ctx,
		Subject:         subj,
		Expectation:     exp,
		CompileTimeType: compileTime,
		RuntimeType:     runtime,
		Node:            node,
		Scope:           c.Scope.At(node),
		validator:       c.validator,
	}
}

// ---- Comparison-time context flags ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast comparison
// behavior: traversal stops descending once the first failure is recorded.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current comparison should stop on the first
// failure.
func IsFailFast(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	b, _ := ctx.Value(_ctxKeyFailFast).(bool)
	return b
}
