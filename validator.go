package equiv

import (
	"fmt"
	"reflect"
)

// Validator orchestrates one traversal: it selects the first step in the
// ordered chain whose CanHandle accepts the node pair and delegates to it.
// Recursion into children is the responsibility of the handling step, which
// calls back into AssertEquality with derived contexts.
type Validator struct {
	steps  []Step
	active map[visitKey]struct{}
}

// NewValidator builds a validator over the given step chain.
func NewValidator(steps []Step) *Validator {
	return &Validator{steps: steps, active: map[visitKey]struct{}{}}
}

// AssertEquality compares the context's node pair. A nil context means a
// derivation already decided the pair needs no comparison. Structural
// mismatches go into the ambient scope; the returned error is reserved for
// library-invariant violations (no step can handle the pair).
func (v *Validator) AssertEquality(ctx *Context, opts *Options) error {
	if ctx == nil {
		return nil
	}
	if IsFailFast(ctx.Ctx) && ctx.Scope.HasFailures() {
		return nil
	}
	if k, ok := visitKeyFor(ctx.Subject, ctx.Expectation); ok {
		if _, seen := v.active[k]; seen {
			// Re-entering an identity pair already on the recursion path:
			// the cyclic edge is treated as equivalent.
			return nil
		}
		v.active[k] = struct{}{}
		defer delete(v.active, k)
	}
	for _, st := range v.steps {
		if !st.CanHandle(ctx, opts) {
			continue
		}
		handled, err := st.Handle(ctx, v, opts)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("%w: subject %T, expectation %T at %q",
		ErrNoStep, ctx.Subject, ctx.Expectation, ctx.Node.String())
}

// onActivePath reports whether the identity pair is currently being compared
// higher up the recursion stack.
func (v *Validator) onActivePath(subj, exp any) bool {
	k, ok := visitKeyFor(subj, exp)
	if !ok {
		return false
	}
	_, seen := v.active[k]
	return seen
}

// visitKey is the identity of a (subject, expectation) reference pair on the
// active recursion path.
type visitKey struct {
	subject     uintptr
	expectation uintptr
}

// visitKeyFor derives an identity key for reference-kinded values. Value
// kinds (scalars, structs by value) cannot form cycles and are not tracked.
func visitKeyFor(subj, exp any) (visitKey, bool) {
	sp, ok := referencePointer(subj)
	if !ok {
		return visitKey{}, false
	}
	ep, ok := referencePointer(exp)
	if !ok {
		return visitKey{}, false
	}
	return visitKey{subject: sp, expectation: ep}, true
}

func referencePointer(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}
