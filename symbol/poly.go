package symbol

import (
	"github.com/npillmayer/kombi"
)

// --- Polymorphic combinators, CPS variants ---------------------------------

// Map applies p and rewrites the semantic plane of every outcome before
// forwarding it: data values through mdata, error values through merror. A
// nil mapper leaves the respective plane untouched. Index and tokens never
// change.
func Map(p *Parser, mdata, merror kombi.MapFn) *Parser {
	return newParser("map", func(s *kombi.State, k Continuation, stack *Stack) {
		p.subscribe(s, func(r *kombi.State) {
			if r.IsError() {
				if merror != nil {
					r = r.IntoError(merror(r))
				}
			} else if mdata != nil {
				r = r.WithData(mdata(r))
			}
			k(r)
		}, stack)
	})
}

// Assert applies p and lets check inspect every successful outcome. A
// non-nil error value converts that outcome into an error at the same
// position with the same tokens. Failed outcomes pass through unchanged.
func Assert(p *Parser, check kombi.CheckFn) *Parser {
	return newParser("assert", func(s *kombi.State, k Continuation, stack *Stack) {
		p.subscribe(s, func(r *kombi.State) {
			if !r.IsError() {
				if e := check(r); e != nil {
					r = r.IntoError(e)
				}
			}
			k(r)
		}, stack)
	})
}

// Chain sequences ps left-to-right, threading every outcome of one step into
// the next and accumulating tokens. The per-step semantic values are carried
// as an explicit vector through the continuation chain; when the final state
// of a branch is a success and an action is given, the branch's value is
// replaced by action(values), invoked once per distinct branch. Branches
// ending in an error publish the error unchanged (the action is skipped),
// with whatever tokens were appended before the failure. As in the token
// layer, a Recovery step (promoted with ToSymbol) may intercept the error
// mid-sequence.
func Chain(ps []*Parser, action kombi.ActionFn) *Parser {
	return newParser("chain", func(s *kombi.State, k Continuation, stack *Stack) {
		if s.IsError() {
			k(s)
			return
		}
		var step func(i int, cur *kombi.State, data []kombi.Ident)
		step = func(i int, cur *kombi.State, data []kombi.Ident) {
			if i == len(ps) {
				if cur.IsError() || action == nil {
					k(cur)
					return
				}
				k(cur.WithData(action(data)))
				return
			}
			ps[i].subscribe(cur, func(r *kombi.State) {
				next := make([]kombi.Ident, len(data), len(data)+1)
				copy(next, data)
				next = append(next, r.Data()) // nil while r is an error
				step(i+1, r, next)
			}, stack)
		}
		step(0, s, nil)
	})
}

// Contextual is syntactic sugar over Chain: the parsers following initial
// are built lazily by the factory on first use, and the sequence is
// delegated to Chain without an action.
func Contextual(initial *Parser, factory func() []*Parser) *Parser {
	var chain *Parser
	return newParser("contextual", func(s *kombi.State, k Continuation, stack *Stack) {
		if chain == nil {
			chain = Chain(append([]*Parser{initial}, factory()...), nil)
		}
		chain.subscribe(s, k, stack)
	})
}
