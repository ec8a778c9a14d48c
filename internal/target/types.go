package target

import "github.com/brmh/fnlc/internal/types"

// Type is one of the handful of primitive types this backend lowers
// to: i64 stays i64, bool becomes a byte-addressable i8, and
// comparisons produce an i1 that is immediately zero-extended to i8
// (eqI64) or truncated back down for a branch condition (If).
type Type int

const (
	I64 Type = iota
	I8
	I1
	Func
)

func (t Type) String() string {
	switch t {
	case I64:
		return "i64"
	case I8:
		return "i8"
	case I1:
		return "i1"
	case Func:
		return "func"
	default:
		return "?ty"
	}
}

// LowerType maps a types.Type to its target Type, per spec §4.7's
// "Types lower as" table: i64 -> i64, bool -> i8, Fn(d, c) -> Func.
// Uvs must already be resolved by the time a type reaches this
// backend — LowerType calls types.Find defensively but a *types.Uv
// surviving to lowering is a checker bug, not a user-facing error.
func LowerType(t types.Type) Type {
	switch types.Find(t).(type) {
	case *types.Bool:
		return I8
	case *types.I64:
		return I64
	case *types.Fn:
		return Func
	default:
		panic("target: type reached lowering unresolved")
	}
}

// LowerDomain lowers every element of domain in order.
func LowerDomain(domain []types.Type) []Type {
	out := make([]Type, len(domain))
	for i, d := range domain {
		out[i] = LowerType(d)
	}
	return out
}
