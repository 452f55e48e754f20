package equiv

import (
	"reflect"
	"strings"
	"sync"
)

// Member describes one selected member of a type: its external name, the type
// that declares it, and the capability to read its value from an instance.
// Members are produced by selection rules and consumed by matching rules and
// comparison steps. They are transient: recreated per traversal node.
type Member struct {
	Name      string
	Declaring reflect.Type
	Type      reflect.Type
	index     []int
}

// ReadFrom returns the member's current value on the given instance. The
// instance may be the declaring struct or a pointer to it.
func (m Member) ReadFrom(instance any) any {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	fv := rv.FieldByIndex(m.index)
	if !fv.IsValid() {
		return nil
	}
	return fv.Interface()
}

// ResolveMemberName applies the repository-wide rule to resolve a struct
// field's external name used by paths and member matching.
// Priority: equiv:"name=..." > json tag name > field name; "-" disables the field.
func ResolveMemberName(sf reflect.StructField) string {
	if gt := sf.Tag.Get("equiv"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

var memberCache sync.Map // reflect.Type -> []Member

// MembersOf returns the exported-member descriptor table for a struct type,
// building it once per type and caching it for O(1) access afterwards.
// Pointer types are unwrapped; non-struct types yield nil.
func MembersOf(t reflect.Type) []Member {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := memberCache.Load(t); ok {
		return cached.([]Member)
	}
	ms := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveMemberName(sf)
		if name == "" || name == "-" {
			continue
		}
		ms = append(ms, Member{
			Name:      name,
			Declaring: t,
			Type:      sf.Type,
			index:     sf.Index,
		})
	}
	memberCache.Store(t, ms)
	return ms
}

// memberByName performs a linear lookup over a type's member table. fold
// enables case-insensitive matching.
func memberByName(t reflect.Type, name string, fold bool) (Member, bool) {
	for _, m := range MembersOf(t) {
		if m.Name == name || (fold && strings.EqualFold(m.Name, name)) {
			return m, true
		}
	}
	return Member{}, false
}
