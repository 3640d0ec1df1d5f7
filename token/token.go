/*
Package token implements the token-combinator layer: LL(k) recursive-descent
parsing with backtracking and unbounded lookahead.

A token combinator is a transformer from one parse state to the next. Every
combinator instance owns a memo table keyed by the identity of the incoming
state, so that re-parsing the same position with the same semantics is free.
The table is flushed whenever a state with a different target string is
observed, which bounds memory across repeated runs over the same combinator
graph.

Token combinators are linear in the input size. They do not handle left
recursion or ambiguity; for those, promote them into the symbol layer with
symbol.ToSymbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package token

import (
	"github.com/npillmayer/kombi"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kombi.token'.
func tracer() tracing.Trace {
	return tracing.Select("kombi.token")
}

// Transform is a raw state transformer. Transformers must treat states as
// immutable and derive new ones.
type Transform func(*kombi.State) *kombi.State

// Parser is a token combinator: a named state transformer with a memo table.
// Create parsers with the combinator constructors of this package.
type Parser struct {
	name   string
	t      Transform
	memo   map[string]*kombi.State
	target string // last seen target; memo is flushed when it changes
	seen   bool   // has any target been seen yet?
}

func newParser(name string, t Transform) *Parser {
	return &Parser{name: name, t: t}
}

// Name returns a diagnostic name for the combinator.
func (p *Parser) Name() string { return p.name }

// Apply runs the combinator on a state, consulting and filling the memo
// table. This is the wrapped transformer; all composition goes through it.
func (p *Parser) Apply(s *kombi.State) *kombi.State {
	if !p.seen || p.target != s.Target() {
		if p.seen {
			tracer().Debugf("%s: target changed, flushing %d memo entries", p.name, len(p.memo))
		}
		p.memo = make(map[string]*kombi.State)
		p.target = s.Target()
		p.seen = true
	}
	id := s.Identity()
	if out, ok := p.memo[id]; ok {
		return out
	}
	out := p.t(s)
	p.memo[id] = out
	return out
}

// Run parses target, starting at the given index with an initial semantic
// value, and returns exactly one final state: either the result or the
// error the grammar produced.
func (p *Parser) Run(target string, initial kombi.Ident, index int) *kombi.State {
	s0 := kombi.NewResult(target, index, nil, initial)
	out := p.Apply(s0)
	tracer().Debugf("%s: run over %q yields %s", p.name, target, out)
	return out
}
