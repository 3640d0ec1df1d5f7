package token

import (
	"github.com/npillmayer/kombi"
)

// --- Structural combinators ----------------------------------------------

// Many is the greedy Kleene closure: it applies p repeatedly until p errors
// or the input is exhausted, and returns the last successful state. Applying
// Many to a parser which never succeeds returns the input state unchanged.
//
// Many stops when p succeeds without advancing the index; a parser which
// consumes nothing would otherwise loop forever.
func Many(p *Parser) *Parser {
	return newParser("many", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		last := st
		for !last.AtEnd() {
			next := p.Apply(last)
			if next.IsError() {
				break
			}
			stuck := next.Index() <= last.Index()
			last = next
			if stuck {
				tracer().Debugf("many: inner parser did not advance, stopping")
				break
			}
		}
		return last
	})
}

// Many1 behaves like Many, but requires at least one token to have been
// appended; otherwise it fails with onEmpty at the entry position.
func Many1(p *Parser, onEmpty kombi.ErrorFn) *Parser {
	m := Many(p)
	return newParser("many1", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		out := m.Apply(st)
		if len(out.Tokens()) == len(st.Tokens()) {
			return st.IntoError(onEmpty(st.Target(), st.Index()))
		}
		return out
	})
}

// Optional applies p and returns its result on success. If p errors, the
// original state is returned unchanged: no input consumed, no token
// appended.
func Optional(p *Parser) *Parser {
	return newParser("optional", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		next := p.Apply(st)
		if next.IsError() {
			return st
		}
		return next
	})
}

// Until advances over the input one code unit at a time until the terminator
// succeeds at the current position. On success it produces a single token
// equal to the skipped substring (possibly empty) and an index pointing just
// before the terminator's match; the terminator is not consumed. Reaching
// the end of the input without a terminator match fails with onEOF.
func Until(terminator *Parser, onEOF kombi.ErrorFn) *Parser {
	return newParser("until", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		for i := st.Index(); i < len(st.Target()); i++ {
			probe := st.Forward(i - st.Index())
			if !terminator.Apply(probe).IsError() {
				skipped := st.Target()[st.Index():i]
				return st.Consume(i-st.Index(), skipped)
			}
		}
		return st.IntoError(onEOF(st.Target(), st.Index()))
	})
}

// Choice is the ordered, committed choice and the backtracking construct of
// the token layer: each alternative is tried against the same input state
// and the first success wins. The errors of failing alternatives are
// discarded; if all alternatives fail, Choice fails with onAllFail.
func Choice(ps []*Parser, onAllFail kombi.ErrorFn) *Parser {
	return newParser("choice", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		for _, p := range ps {
			if out := p.Apply(st); !out.IsError() {
				return out
			}
		}
		return st.IntoError(onAllFail(st.Target(), st.Index()))
	})
}

// Lookahead runs probe at the current state, hands the probed state to the
// decider, and applies the parser the decider picks to the original state:
// whatever the probe consumed is discarded. Errors from the probe are not
// short-circuited; they reach the decider as part of the probed state.
func Lookahead(probe *Parser, decide func(probed *kombi.State) *Parser) *Parser {
	return newParser("lookahead", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		probed := probe.Apply(st)
		next := decide(probed)
		return next.Apply(st)
	})
}

// SideEffect invokes fn with the current state and returns the state
// unchanged. It exists to permit externally observable effects, logging for
// instance, without disturbing the parse. fn fires for error states too.
func SideEffect(fn func(*kombi.State)) *Parser {
	return newParser("sideEffect", func(st *kombi.State) *kombi.State {
		fn(st)
		return st
	})
}
