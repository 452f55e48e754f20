package equiv

import "reflect"

// Step is one pluggable comparison strategy in the ordered chain. CanHandle
// decides whether the step owns a node pair; Handle performs the comparison,
// recording mismatches into the ambient scope and recursing through the
// validator for nested pairs. Handle returning true means "no other step
// should attempt this pair", not "comparison succeeded".
type Step interface {
	CanHandle(ctx *Context, opts *Options) bool
	Handle(ctx *Context, v *Validator, opts *Options) (bool, error)
}

// DefaultSteps returns the built-in ordered chain. Type-specific steps come
// first; the leaf step closes the chain and accepts everything.
func DefaultSteps() []Step {
	return []Step{
		datasetStep{},
		tableStep{},
		pointerStep{},
		mapStep{},
		sliceStep{},
		structStep{},
		leafStep{},
	}
}

// isNilValue reports whether v is nil or a nil reference value.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
