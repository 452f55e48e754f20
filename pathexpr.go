package equiv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrInvalidPathExpr indicates a path expression whose shape the resolver does
// not support (arithmetic, method calls, non-constant indexes, empty
// segments). These are programmer errors and are raised immediately rather
// than accumulated as comparison failures.
var ErrInvalidPathExpr = errors.New("equiv: unsupported path expression")

// ParsePath resolves a path literal over T into a Path. Supported shapes are
// dotted member accesses and constant indexers:
//
//	"A.B"        -> A.B
//	"Items[2]"   -> Items[2]
//	`Meta["en"]` -> Meta[en]
//	""           -> the root path (declaring type T)
//
// Anything else (arithmetic, calls, non-constant indexes) is rejected with an
// error wrapping ErrInvalidPathExpr.
func ParsePath[T any](expr string) (Path, error) {
	return ParsePathFor(reflect.TypeOf((*T)(nil)).Elem(), expr)
}

// ParsePathFor is the non-generic form of ParsePath.
func ParsePathFor(declaring reflect.Type, expr string) (Path, error) {
	if declaring == nil {
		return Path{}, fmt.Errorf("%w: nil declaring type", ErrInvalidPathExpr)
	}
	p := RootPath(declaring)
	ok := walkPathExpr(expr, &p)
	if !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPathExpr, expr)
	}
	return p, nil
}

// CheckPath performs the identical walk and rejection logic as ParsePathFor
// without constructing a Path. Use it when only legality-checking is needed.
func CheckPath(expr string) error {
	if ok := walkPathExpr(expr, nil); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPathExpr, expr)
	}
	return nil
}

// walkPathExpr scans expr segment by segment, appending to dst when non-nil.
// Returns false on the first unsupported shape.
func walkPathExpr(expr string, dst *Path) bool {
	if strings.HasPrefix(expr, ".") {
		return false
	}
	rest := expr
	for rest != "" {
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return false
			}
			inner := rest[1:end]
			rest = rest[end+1:]
			if key, ok := constantIndex(inner); ok {
				if dst != nil {
					*dst = dst.append(pathSegment{text: key, bracket: true})
				}
				break
			}
			return false
		case rest[0] == '.':
			// A dot must be followed by an identifier, never by another dot,
			// a bracket, or the end of the expression.
			rest = rest[1:]
			if rest == "" || rest[0] == '.' || rest[0] == '[' {
				return false
			}
		default:
			name, tail, ok := scanIdent(rest)
			if !ok {
				return false
			}
			if dst != nil {
				*dst = dst.Field(name)
			}
			rest = tail
		}
	}
	return true
}

// constantIndex accepts a decimal integer or a quoted string constant and
// returns its rendered segment text.
func constantIndex(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s, true
	}
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		inner := s[1 : len(s)-1]
		if inner == "" || strings.ContainsAny(inner, `"'[]`) {
			return "", false
		}
		return inner, true
	}
	return "", false
}

// scanIdent consumes a leading Go-style identifier.
func scanIdent(s string) (ident, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '[' {
		c := s[i]
		alpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if !alpha && !(digit && i > 0) {
			return "", "", false
		}
		i++
	}
	if i == 0 {
		return "", "", false
	}
	return s[:i], s[i:], true
}

// MemberOf builds the Path of a top-level field of T selected by a typed
// accessor, guaranteeing compile-time linkage to the struct field:
//
//	MemberOf[Order](func(o *Order) *string { return &o.Status })
//
// The selector must return the address of a top-level field of T.
func MemberOf[T any, F any](selector func(*T) *F) Path {
	if selector == nil {
		panic("equiv.MemberOf: selector must not be nil")
	}
	var zero T
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		// The field type must match F as well: a nested field at offset 0
		// shares its parent's address.
		if !fv.CanAddr() || fv.Addr().Pointer() != fp || fv.Type() != ft {
			continue
		}
		name := ResolveMemberName(rt.Field(i))
		if name == "" || name == "-" {
			panic("equiv.MemberOf: selected field is not exported or disabled")
		}
		return RootPath(rt).Field(name)
	}
	panic("equiv.MemberOf: selector must return address of a top-level field of T")
}

// PathOf builds the Path of an arbitrary nested field of T:
//
//	PathOf[Order, string](func(o *Order) *string { return &o.User.UserID })
//
// Limitations: only descends through struct fields (non-pointer). Pointer
// hops are not supported.
func PathOf[T any, F any](selector func(*T) *F) Path {
	if selector == nil {
		panic("equiv.PathOf: selector must not be nil")
	}
	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	names, ok := findPathNames(rv, target, reflect.TypeOf((*F)(nil)).Elem(), 0)
	if !ok || len(names) == 0 {
		panic("equiv.PathOf: selector must address a nested struct field (non-pointer)")
	}
	p := RootPath(rv.Type())
	for _, n := range names {
		p = p.Field(n)
	}
	return p
}

// PathsOf resolves several selectors at once, one Path per selector. This is
// the composite form for callers that configure multiple members in a single
// expression. Each selector must return the address of a (possibly nested)
// field of T.
func PathsOf[T any](selectors ...func(*T) any) []Path {
	out := make([]Path, 0, len(selectors))
	for _, sel := range selectors {
		if sel == nil {
			panic("equiv.PathsOf: selector must not be nil")
		}
		var zero T
		pv := reflect.ValueOf(sel(&zero))
		if pv.Kind() != reflect.Pointer || pv.IsNil() {
			panic("equiv.PathsOf: selector must return a field address")
		}
		rv := reflect.ValueOf(&zero).Elem()
		names, ok := findPathNames(rv, pv.Pointer(), pv.Type().Elem(), 0)
		if !ok || len(names) == 0 {
			panic("equiv.PathsOf: selector must address a field of T")
		}
		p := RootPath(rv.Type())
		for _, n := range names {
			p = p.Field(n)
		}
		out = append(out, p)
	}
	return out
}

const maxSelectorDepth = 32

// findPathNames resolves the selected field by address identity plus target
// type. The type check disambiguates a nested field at offset 0 from its
// enclosing field: both share an address, only one has the selected type.
func findPathNames(v reflect.Value, target uintptr, targetType reflect.Type, depth int) ([]string, bool) {
	if depth > maxSelectorDepth {
		return nil, false
	}
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == target && fv.Type() == targetType {
			name := ResolveMemberName(sf)
			if name == "" || name == "-" {
				return nil, false
			}
			return []string{name}, true
		}
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathNames(fv, target, targetType, depth+1); ok {
				name := ResolveMemberName(sf)
				if name == "" || name == "-" {
					return nil, false
				}
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}
