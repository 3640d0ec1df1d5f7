/*
Package symbol implements the symbol-combinator layer: a Generalised LL (GLL)
parser built from continuation-passing combinators and a deferred-work stack.

Symbol combinators accept every context-free grammar, including ambiguous,
left-, right- and indirectly recursive ones, and produce all distinct
parse results in worst-case cubic time on the input length.

Instead of a graph-structured stack, each combinator instance keeps a
localised memo table: one entry per distinct input-state identity, holding
the set of result states published so far (deduplicated by identity, in
insertion order) and the list of continuations subscribed to that entry. The
entry acts as a GSS node, the continuation list as its return edges and the
result set as its popped set. Work is never executed by direct recursion;
it is deferred onto a LIFO parse stack owned by the driver.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package symbol

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/kombi"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kombi.symbol'.
func tracer() tracing.Trace {
	return tracing.Select("kombi.symbol")
}

// Continuation receives one result state per distinct parse outcome of the
// subscribed combinator. Continuations are invoked at most once per distinct
// result identity.
type Continuation func(*kombi.State)

// Transform is a raw CPS state transformer. It receives the input state, a
// continuation for publishing outcomes, and the parse stack for deferring
// work. Transformers must not call another combinator's transformer by
// direct recursion; they go through subscribe, which defers onto the stack.
type Transform func(s *kombi.State, k Continuation, stack *Stack)

// Parser is a symbol combinator. Create parsers with the combinator
// constructors of this package.
type Parser struct {
	serial uint // stable identity for work deduplication
	name   string
	t      Transform
	memo   map[string]*entry
	target string
	seen   bool
}

// entry is the memo record for one distinct input-state identity: the
// localised GSS node of this combinator.
type entry struct {
	results *linkedhashmap.Map // result identity → *kombi.State, insertion order
	conts   *arraylist.List    // subscribed Continuations
	full    int                // completed (full-input-length) results, breadth guard
}

// serial numbers for parsers; the engine is single-threaded.
var parserSerials uint

func newParser(name string, t Transform) *Parser {
	parserSerials++
	return &Parser{serial: parserSerials, name: name, t: t}
}

// Name returns a diagnostic name for the combinator.
func (p *Parser) Name() string { return p.name }

// subscribe is the wrapped transformer; all composition goes through it.
//
// First encounter of a state identity inserts a fresh memo entry and defers
// the raw transformer onto the stack, with a publishing continuation that
// stores each distinct result and replays it to every subscriber. Later
// encounters merely subscribe k and replay the results gathered so far.
func (p *Parser) subscribe(s *kombi.State, k Continuation, stack *Stack) {
	if !p.seen || p.target != s.Target() {
		if p.seen {
			tracer().Debugf("%s: target changed, flushing %d memo entries", p.name, len(p.memo))
		}
		p.memo = make(map[string]*entry)
		p.target = s.Target()
		p.seen = true
	}
	id := s.Identity()
	if e, ok := p.memo[id]; ok {
		e.conts.Add(k)
		it := e.results.Iterator()
		for it.Next() {
			tracer().Debugf("%s: replaying %v to late subscriber", p.name, it.Value())
			k(it.Value().(*kombi.State))
		}
		return
	}
	e := &entry{results: linkedhashmap.New(), conts: arraylist.New()}
	e.conts.Add(k)
	p.memo[id] = e
	stack.push(p, s, func(r *kombi.State) {
		p.publish(e, r)
	})
}

// publish records a result state under an entry, unless a result with the
// same identity has been seen before, and replays it to every continuation
// subscribed so far. Continuations added while publishing are not replayed
// here; they receive the result from the result set at subscribe time, so
// delivery is exactly-once.
func (p *Parser) publish(e *entry, r *kombi.State) {
	rid := r.Identity()
	if _, seen := e.results.Get(rid); seen {
		tracer().Debugf("%s: suppressing duplicate result %v", p.name, r)
		return
	}
	if !r.IsError() && r.AtEnd() {
		e.full++
		if limit := kombi.MaxAmbiguityBreadth(); limit > 0 && e.full > limit {
			breadthExceeded(limit)
		}
	}
	e.results.Put(rid, r)
	tracer().Debugf("%s: publishing %v to %d subscriber(s)", p.name, r, e.conts.Size())
	subscribers := e.conts.Values()
	for _, c := range subscribers {
		c.(Continuation)(r)
	}
}

// Wrap turns a raw transform into a combinator. Most grammars never need
// this; it is the extension point for custom combinators.
func Wrap(name string, t Transform) *Parser {
	return newParser(name, t)
}
