package equiv

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Path identifies a member location within an object graph: a declaring type
// plus dot/bracket-separated segments (for example: Parent.Child[2].Name).
// Two Paths are equal iff their normalized strings and declaring types match,
// which makes Path usable as an identity for exclusion/inclusion rules.
// Paths are immutable; derivation methods return a new value.
type Path struct {
	declaring reflect.Type
	segments  []pathSegment
}

type pathSegment struct {
	text    string
	bracket bool // rendered as [text], attached without a preceding dot
}

// RootPath returns the empty path rooted at the given declaring type.
func RootPath(declaring reflect.Type) Path {
	return Path{declaring: declaring}
}

// RootPathOf returns the empty path rooted at T.
func RootPathOf[T any]() Path {
	return RootPath(reflect.TypeOf((*T)(nil)).Elem())
}

// Field derives a path with a member-access segment appended.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	return p.append(pathSegment{text: name})
}

// Index derives a path with a constant-index segment appended ([i]).
func (p Path) Index(i int) Path {
	return p.append(pathSegment{text: strconv.Itoa(i), bracket: true})
}

// Key derives a path with a named-item segment appended ([k]). Used for
// collections whose items are matched by name rather than position, such as
// dataset tables.
func (p Path) Key(k string) Path {
	return p.append(pathSegment{text: k, bracket: true})
}

func (p Path) append(seg pathSegment) Path {
	segs := make([]pathSegment, 0, len(p.segments)+1)
	segs = append(segs, p.segments...)
	segs = append(segs, seg)
	return Path{declaring: p.declaring, segments: segs}
}

// DeclaringType reports the type the path is rooted at.
func (p Path) DeclaringType() reflect.Type { return p.declaring }

// IsRoot reports whether the path has no segments (the identity path).
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// String renders the path. Segments are joined with dots and the literal
// ".[" sequence collapses to "[" so indexers attach directly to their
// preceding name.
func (p Path) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		if s.bracket {
			parts[i] = "[" + s.text + "]"
		} else {
			parts[i] = s.text
		}
	}
	return strings.ReplaceAll(strings.Join(parts, "."), ".[", "[")
}

// Equal reports whether two paths denote the same member location.
func (p Path) Equal(o Path) bool {
	return p.declaring == o.declaring && p.String() == o.String()
}

// Matches reports whether the path's rendered string equals s. The declaring
// type is ignored, which is the comparison exclusion rules use when the
// caller configured a bare string path.
func (p Path) Matches(s string) bool { return p.String() == s }

func (p Path) GoString() string {
	return fmt.Sprintf("equiv.Path(%s @ %v)", p.String(), p.declaring)
}
