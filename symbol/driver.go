package symbol

import (
	"sort"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/kombi"
)

// --- Drivers ---------------------------------------------------------------

// Generator is the lazy driver: a resumable sequence of parse results in
// publication order. The generator performs no work between calls to Next,
// so a host may stop pulling at any point and pay nothing for the parses it
// never asked for.
type Generator struct {
	stack     *Stack
	collected *arraylist.List // published root results, insertion order
	yielded   int
	err       error
}

// Generator seeds a parse of target, starting at the given index with an
// initial semantic value, and returns the lazy driver for it. The parse
// stack is owned by this generator and does not survive it.
func (p *Parser) Generator(target string, initial kombi.Ident, index int) *Generator {
	g := &Generator{
		stack:     newStack(),
		collected: arraylist.New(),
	}
	s0 := kombi.NewResult(target, index, nil, initial)
	p.subscribe(s0, func(r *kombi.State) {
		g.collected.Add(r)
	}, g.stack)
	return g
}

// Next resumes the parse until at least one not-yet-yielded result has been
// collected, then yields it. It reports false when the search space is
// exhausted or a fault terminated the run (see Err).
func (g *Generator) Next() (state *kombi.State, ok bool) {
	if g.err != nil {
		return nil, false
	}
	defer func() {
		if r := recover(); r != nil {
			fault, is := r.(kombi.Fault)
			if !is {
				panic(r)
			}
			tracer().Errorf("run terminated: %v", fault)
			g.err = fault
			state, ok = nil, false
		}
	}()
	for g.yielded >= g.collected.Size() {
		if !g.stack.step() {
			break
		}
	}
	if g.yielded < g.collected.Size() {
		v, _ := g.collected.Get(g.yielded)
		g.yielded++
		return v.(*kombi.State), true
	}
	return nil, false
}

// Err returns the engine fault which terminated the run, if any. Semantic
// parse errors are not faults; they are yielded as error states.
func (g *Generator) Err() error {
	return g.err
}

// Run is the eager driver. It drains the search space and returns the
// farthest-progress parses: all collected states are ordered by index, only
// those with the maximum index are kept, and among those the non-error
// states win if any exist, otherwise the set of best-position errors is
// returned. Distinct results at the maximum index are returned in
// publication order.
func (p *Parser) Run(target string, initial kombi.Ident, index int) ([]*kombi.State, error) {
	g := p.Generator(target, initial, index)
	var all []*kombi.State
	for {
		s, ok := g.Next()
		if !ok {
			break
		}
		all = append(all, s)
	}
	if err := g.Err(); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Index() < all[j].Index()
	})
	max := all[len(all)-1].Index()
	first := len(all)
	for first > 0 && all[first-1].Index() == max {
		first--
	}
	best := all[first:]
	results := make([]*kombi.State, 0, len(best))
	for _, s := range best {
		if !s.IsError() {
			results = append(results, s)
		}
	}
	if len(results) > 0 {
		return results, nil
	}
	return best, nil
}

// Future is the outcome of an asynchronous run. Await blocks until the
// parse has finished.
type Future struct {
	done   chan struct{}
	states []*kombi.State
	err    error
}

// Await returns the eager run's outcome, blocking if necessary.
func (f *Future) Await() ([]*kombi.State, error) {
	<-f.done
	return f.states, f.err
}

// RunAsync starts an eager run and immediately returns a Future for it.
// Parsing itself stays single-threaded and fully synchronous; the future
// exists purely for API symmetry. A combinator graph must not be shared
// between a pending future and other runs.
func (p *Parser) RunAsync(target string, initial kombi.Ident, index int) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.states, f.err = p.Run(target, initial, index)
	}()
	return f
}
