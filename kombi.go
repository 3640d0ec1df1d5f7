package kombi

import (
	"fmt"

	"github.com/cnf/structhash"
)

// --- A general purpose interface for semantic values ------------------------

// Ident is the contract between the engine and user-supplied semantic values.
// Every semantic datum and every error datum carries a stable string identity,
// which the engine uses as its memoisation key: two values with equal identity
// are interchangeable for memoisation purposes. The engine never inspects a
// value beyond its identity.
//
// Four standard identity policies exist:
//
//    None     nil Ident           ignore semantics in memo
//    Same     Opaque(v)           ignore semantics, but carry a value
//    Static   Tagged(tag, v)      bucket values by a user-chosen tag
//    Dynamic  Canonical(v)        distinguish values by their content
//
// Applications are free to implement Ident directly whenever they want full
// control over the identity string.
type Ident interface {
	Identity() string
}

// Valuer is implemented by identity wrappers which carry a payload.
type Valuer interface {
	Value() interface{}
}

// ValueOf unwraps the payload of an identity wrapper. It returns the value
// itself if v does not wrap anything, and nil for a nil identity.
func ValueOf(v Ident) interface{} {
	if v == nil {
		return nil
	}
	if w, ok := v.(Valuer); ok {
		return w.Value()
	}
	return v
}

// --- Identity policies -------------------------------------------------

type opaque struct {
	v interface{}
}

// Opaque wraps a value with an empty identity ("Same" policy). The value is
// carried through the parse, but memoisation will treat all opaque values as
// interchangeable.
func Opaque(v interface{}) Ident {
	return opaque{v: v}
}

func (o opaque) Identity() string   { return "" }
func (o opaque) Value() interface{} { return o.v }

func (o opaque) String() string {
	return fmt.Sprintf("%v", o.v)
}

type tagged struct {
	tag string
	v   interface{}
}

// Tagged wraps a value with a user-chosen constant identity ("Static" policy).
func Tagged(tag string, v interface{}) Ident {
	return tagged{tag: tag, v: v}
}

func (t tagged) Identity() string   { return t.tag }
func (t tagged) Value() interface{} { return t.v }

func (t tagged) String() string {
	return fmt.Sprintf("%s(%v)", t.tag, t.v)
}

type canonical struct {
	v interface{}
}

// Canonical wraps a value with an identity derived from a canonical
// serialisation of its content ("Dynamic" policy). Two values serialise to
// the same identity iff they are structurally equal.
func Canonical(v interface{}) Ident {
	return canonical{v: v}
}

func (c canonical) Identity() string {
	return string(structhash.Dump(c.v, 1))
}

func (c canonical) Value() interface{} { return c.v }

func (c canonical) String() string {
	return fmt.Sprintf("%v", c.v)
}

// --- Caller callbacks ---------------------------------------------------

// ErrorFn mints a semantic error value for a failure at an input position.
// Every combinator which can fail takes producers of this type; the engine
// never invents semantic error contents itself.
type ErrorFn func(target string, index int) Ident

// MapFn rewrites the semantic value (or error value) of a state.
type MapFn func(s *State) Ident

// CheckFn inspects a successful state and returns a non-nil error value to
// veto it, or nil to let it pass.
type CheckFn func(s *State) Ident

// ActionFn combines the per-step semantic values of a fully matched chain
// into the chain's final value.
type ActionFn func(data []Ident) Ident

// RecoverFn mints a replacement semantic value from an error state at a
// synchronisation point.
type RecoverFn func(s *State) Ident

// Expect is a convenience error producer. It mints tagged error values whose
// identity is the expectation and whose payload is a readable message.
func Expect(what string) ErrorFn {
	return func(target string, index int) Ident {
		return Tagged(what, fmt.Sprintf("expected %s at position %d", what, index))
	}
}
