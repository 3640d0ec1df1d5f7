package token

import (
	"github.com/npillmayer/kombi"
)

// --- Polymorphic combinators ----------------------------------------------
//
// These four exist for both layers; the symbol package carries the
// continuation-passing variants.

// Map applies p, then rewrites the semantic plane of the outcome: on success
// the data value is replaced with mdata(state), on failure the error value
// is replaced with merror(state). Neither index nor tokens change. A nil
// mapper leaves the respective plane untouched.
func Map(p *Parser, mdata, merror kombi.MapFn) *Parser {
	return newParser("map", func(st *kombi.State) *kombi.State {
		out := p.Apply(st)
		if out.IsError() {
			if merror != nil {
				return out.IntoError(merror(out))
			}
			return out
		}
		if mdata != nil {
			return out.WithData(mdata(out))
		}
		return out
	})
}

// Assert applies p and, on success, lets check inspect the resulting state.
// A non-nil error value from check converts the success into an error at the
// same position with the same tokens. Failures of p pass through unchanged.
func Assert(p *Parser, check kombi.CheckFn) *Parser {
	return newParser("assert", func(st *kombi.State) *kombi.State {
		out := p.Apply(st)
		if out.IsError() {
			return out
		}
		if e := check(out); e != nil {
			return out.IntoError(e)
		}
		return out
	})
}

// Chain sequences ps left-to-right, threading the state through every step
// and accumulating tokens. Ordinary parsers pass error states through
// unchanged, so the first error flows to the end of the chain with whatever
// tokens were already appended, unless a downstream Recovery step
// intercepts it.
//
// With a non-nil action, Chain collects the semantic value produced by each
// step in positional order and, if the final state is a success, replaces
// its value with action(values). The action is not invoked when the chain
// ends in an error.
func Chain(ps []*Parser, action kombi.ActionFn) *Parser {
	return newParser("chain", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		cur := st
		data := make([]kombi.Ident, len(ps))
		for i, p := range ps {
			cur = p.Apply(cur)
			data[i] = cur.Data() // nil while cur is an error
		}
		if cur.IsError() || action == nil {
			return cur
		}
		return cur.WithData(action(data))
	})
}

// Contextual is syntactic sugar over Chain: the parsers following initial
// are built lazily by the factory on first use, and the resulting sequence
// is delegated to Chain without an action. It allows a grammar author to
// assemble a sequence whose tail refers to combinators not yet defined at
// construction time.
func Contextual(initial *Parser, factory func() []*Parser) *Parser {
	var chain *Parser
	return newParser("contextual", func(st *kombi.State) *kombi.State {
		if chain == nil {
			chain = Chain(append([]*Parser{initial}, factory()...), nil)
		}
		return chain.Apply(st)
	})
}
