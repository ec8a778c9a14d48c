package types

import (
	"fmt"
	"strings"

	"github.com/brmh/fnlc/internal/ident"
	"github.com/brmh/fnlc/internal/lexer"
)

// Type is implemented by every member of the ground type system: Bool,
// I64, Fn, and Uv. All four are reference types (always held behind a
// pointer) so that Unify can compare identity directly.
type Type interface {
	typ()
	String() string
}

// Bool is the type of True/False literals and __eqI64 results.
type Bool struct{}

func (*Bool) typ()          {}
func (*Bool) String() string { return "bool" }

// I64 is the type of integer literals and the three arithmetic primops.
type I64 struct{}

func (*I64) typ()          {}
func (*I64) String() string { return "i64" }

// Fn is a function type with zero or more argument types and a single
// result type. Fn values are never deduplicated: each call to
// Registry.Fn allocates a fresh *Fn even for structurally identical
// domains and codomains.
type Fn struct {
	Domain   []Type
	Codomain Type
}

func (*Fn) typ() {}

func (f *Fn) String() string {
	parts := make([]string, len(f.Domain))
	for i, d := range f.Domain {
		parts[i] = d.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Codomain)
}

// Uv is a unification variable: a union-find node that starts
// unbound (parent == nil) and is either unioned with another Uv or
// bound to a ground/Fn type as inference proceeds.
//
// find and union implement the standard path-compression,
// union-by-rank discipline; set runs the occurs check before binding,
// since a Uv can never be allowed to unify with a type that contains
// itself.
type Uv struct {
	name   ident.Name
	parent Type
	rank   int
}

func (*Uv) typ() {}

func (u *Uv) String() string {
	if u.parent != nil {
		return Find(u).String()
	}
	return "?" + u.name.String()
}

// find resolves u to its representative, compressing the path along
// the way so repeated calls are amortized constant time.
func (u *Uv) find() Type {
	if u.parent == nil {
		return u
	}
	root := Find(u.parent)
	u.parent = root
	return root
}

// Find resolves t to its union-find representative. For any Type that
// is not a *Uv, Find is the identity.
func Find(t Type) Type {
	if u, ok := t.(*Uv); ok {
		return u.find()
	}
	return t
}

// Registry owns the Bool and I64 singletons and mints fresh Uvs. A
// Registry is scoped to a single compilation, matching the lifetime
// of the ident.Interner it mints Uv display names from.
type Registry struct {
	boolType *Bool
	i64Type  *I64
	names    *ident.Interner
}

// NewRegistry returns a Registry that names its Uvs from names.
func NewRegistry(names *ident.Interner) *Registry {
	return &Registry{boolType: &Bool{}, i64Type: &I64{}, names: names}
}

// Bool returns the singleton Bool type.
func (r *Registry) Bool() *Bool { return r.boolType }

// I64 returns the singleton I64 type.
func (r *Registry) I64() *I64 { return r.i64Type }

// Fn returns a fresh, non-deduplicated function type.
func (r *Registry) Fn(domain []Type, codomain Type) *Fn {
	return &Fn{Domain: domain, Codomain: codomain}
}

// Uv allocates a fresh, unbound unification variable. hint is used
// only for diagnostics.
func (r *Registry) Uv(hint string) *Uv {
	return &Uv{name: r.names.FreshWith(hint)}
}

// UnifyError reports two ground types, or two Fns of incompatible
// shape, that cannot be made equal.
type UnifyError struct {
	Span        lexer.Span
	Left, Right Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// OccursError reports that binding Uv to Other would produce an
// infinite type, because Other (transitively) contains Uv.
type OccursError struct {
	Span  lexer.Span
	Uv    *Uv
	Other Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("%s occurs in %s", e.Uv, e.Other)
}

// Unify makes a and b equal, following the union-find representative
// of each first. Unifying two Uvs unions them; unifying a Uv with a
// ground or Fn type binds the Uv to it, after an occurs check.
// Unifying two ground types succeeds only if they are the same kind;
// unifying two Fns recurses pointwise over domain and codomain.
//
// On failure, Unify returns *UnifyError or *OccursError and leaves
// every union-find parent pointer it has not yet committed to
// untouched: a failed Unify call never partially mutates state beyond
// the sub-unifications that already succeeded.
func Unify(a, b Type, span lexer.Span) error {
	a = Find(a)
	b = Find(b)
	if a == b {
		return nil
	}

	au, aIsUv := a.(*Uv)
	bu, bIsUv := b.(*Uv)

	switch {
	case aIsUv && bIsUv:
		union(au, bu)
		return nil
	case aIsUv:
		return set(au, b, span)
	case bIsUv:
		return set(bu, a, span)
	}

	switch av := a.(type) {
	case *Bool:
		if _, ok := b.(*Bool); ok {
			return nil
		}
	case *I64:
		if _, ok := b.(*I64); ok {
			return nil
		}
	case *Fn:
		bf, ok := b.(*Fn)
		if !ok || len(av.Domain) != len(bf.Domain) {
			break
		}
		for i := range av.Domain {
			if err := Unify(av.Domain[i], bf.Domain[i], span); err != nil {
				return err
			}
		}
		return Unify(av.Codomain, bf.Codomain, span)
	}

	return &UnifyError{Span: span, Left: a, Right: b}
}

// union merges two unbound Uvs by rank.
func union(a, b *Uv) {
	if a == b {
		return
	}
	switch {
	case a.rank < b.rank:
		a.parent = b
	case a.rank > b.rank:
		b.parent = a
	default:
		b.parent = a
		a.rank++
	}
}

// set binds u to t after checking that u does not occur in t.
func set(u *Uv, t Type, span lexer.Span) error {
	if occurs(u, t) {
		return &OccursError{Span: span, Uv: u, Other: t}
	}
	u.parent = t
	return nil
}

// occurs reports whether u appears (transitively, through Fn
// structure) in t.
func occurs(u *Uv, t Type) bool {
	t = Find(t)
	switch tv := t.(type) {
	case *Uv:
		return tv == u
	case *Fn:
		for _, d := range tv.Domain {
			if occurs(u, d) {
				return true
			}
		}
		return occurs(u, tv.Codomain)
	default:
		return false
	}
}
