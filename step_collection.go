package equiv

import (
	"fmt"
	"reflect"
	"sort"
)

// sliceStep compares slices and arrays positionally: a count mismatch is one
// failure (comparison continues over the common prefix), then items recurse
// pairwise by index.
type sliceStep struct{}

func (sliceStep) CanHandle(ctx *Context, opts *Options) bool {
	k := kindOf(ctx.ExpectationType())
	return k == reflect.Slice || k == reflect.Array
}

func (sliceStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	if done := checkCollectionNils(ctx); done {
		return true, nil
	}
	sv := reflect.ValueOf(ctx.Subject)
	ev := reflect.ValueOf(ctx.Expectation)
	sk := sv.Kind()
	if sk != reflect.Slice && sk != reflect.Array {
		ctx.Scope.FailWith(CodeTypeMismatch,
			"Expected {context:value} to be a collection, but found {0}.", ctx.SubjectType())
		return true, nil
	}
	ctx.Scope.ForCondition(sv.Len() == ev.Len()).FailWith(CodeCountMismatch,
		"Expected {context:value} to contain {0} item(s), but found {1}.", ev.Len(), sv.Len())
	n := min(sv.Len(), ev.Len())
	for i := 0; i < n; i++ {
		child := ctx.AsIndexedItem(i, sv.Index(i).Interface(), ev.Index(i).Interface())
		if err := v.AssertEquality(child, opts); err != nil {
			return true, err
		}
	}
	return true, nil
}

// mapStep compares maps by key union: keys missing from the subject and keys
// only the subject has are each one failure; shared keys recurse as named
// collection items.
type mapStep struct{}

func (mapStep) CanHandle(ctx *Context, opts *Options) bool {
	return kindOf(ctx.ExpectationType()) == reflect.Map
}

func (mapStep) Handle(ctx *Context, v *Validator, opts *Options) (bool, error) {
	if done := checkCollectionNils(ctx); done {
		return true, nil
	}
	sv := reflect.ValueOf(ctx.Subject)
	ev := reflect.ValueOf(ctx.Expectation)
	if sv.Kind() != reflect.Map {
		ctx.Scope.FailWith(CodeTypeMismatch,
			"Expected {context:value} to be a map, but found {0}.", ctx.SubjectType())
		return true, nil
	}
	for _, key := range sortedMapKeys(ev) {
		kv := key
		label := fmt.Sprintf("%v", kv.Interface())
		got := sv.MapIndex(kv)
		if !got.IsValid() {
			ctx.Scope.Fail(Failure{
				Path:    ctx.Node.Key(label).String(),
				Code:    CodeMissingKey,
				Message: renderTemplate("Expected {context:value} to contain key {0}, but did not find it.", ctx.Scope.Label(), []any{label}),
			})
			continue
		}
		child := ctx.AsCollectionItem(label, got.Interface(), ev.MapIndex(kv).Interface())
		if err := v.AssertEquality(child, opts); err != nil {
			return true, err
		}
	}
	for _, key := range sortedMapKeys(sv) {
		if ev.MapIndex(key).IsValid() {
			continue
		}
		label := fmt.Sprintf("%v", key.Interface())
		ctx.Scope.Fail(Failure{
			Path:    ctx.Node.Key(label).String(),
			Code:    CodeUnexpectedKey,
			Message: renderTemplate("Found unexpected key {0} in {context:value}.", ctx.Scope.Label(), []any{label}),
		})
	}
	return true, nil
}

// checkCollectionNils settles nil-vs-nil and nil-vs-non-nil pairs. Returns
// true when the pair is fully handled.
func checkCollectionNils(ctx *Context) bool {
	expNil := isNilValue(ctx.Expectation)
	subjNil := isNilValue(ctx.Subject)
	switch {
	case expNil && subjNil:
		return true
	case expNil != subjNil:
		ctx.Scope.FailWith(CodeNullMismatch,
			"Expected {context:value} to be {0}, but found {1}.",
			describeNil(ctx.Expectation), describeNil(ctx.Subject))
		return true
	}
	return false
}

// sortedMapKeys yields map keys in a deterministic order so failure output is
// stable across runs.
func sortedMapKeys(mv reflect.Value) []reflect.Value {
	keys := mv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprintf("%v", keys[i].Interface()) < fmt.Sprintf("%v", keys[j].Interface())
	})
	return keys
}

func kindOf(t reflect.Type) reflect.Kind {
	if t == nil {
		return reflect.Invalid
	}
	return t.Kind()
}
