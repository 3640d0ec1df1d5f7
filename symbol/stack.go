package symbol

import (
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/kombi"
	"github.com/npillmayer/schuko/gconf"
)

// --- Parse stack -----------------------------------------------------------

// Stack is the LIFO work queue driving the GLL search: every unit of parse
// work is an item deferred onto it, and the driver pops and executes items
// one at a time. LIFO order yields depth-first exploration of alternatives.
// A stack is owned by a single driver invocation and does not survive it.
type Stack struct {
	work    *arraystack.Stack // of *workItem
	pending map[string]bool   // "{parser-serial}|{state-identity}" keys
}

// workItem is a deferred (transformer, state, continuation) triple.
type workItem struct {
	parser *Parser
	state  *kombi.State
	k      Continuation
}

func newStack() *Stack {
	return &Stack{
		work:    arraystack.New(),
		pending: make(map[string]bool),
	}
}

// push defers a unit of work, unless work for the same combinator on the
// same state identity has already been enqueued during this run.
func (st *Stack) push(p *Parser, s *kombi.State, k Continuation) {
	key := strconv.FormatUint(uint64(p.serial), 10) + "|" + s.Identity()
	if st.pending[key] {
		tracer().Debugf("stack: suppressing duplicate work %s on %v", p.name, s)
		return
	}
	st.pending[key] = true
	st.work.Push(&workItem{parser: p, state: s, k: k})
}

// step pops and executes one unit of work. It reports false when the stack
// is exhausted.
func (st *Stack) step() bool {
	v, ok := st.work.Pop()
	if !ok {
		return false
	}
	item := v.(*workItem)
	tracer().Debugf("stack: running %s on %v", item.parser.name, item.state)
	item.parser.t(item.state, item.k, st)
	return true
}

// --- Breadth guard -----------------------------------------------------

// breadthExceeded signals the breadth-exceeded engine fault. The fault
// normally unwinds to the driver, which reports it as an error; with the
// configuration flag kombi.panic-on-breadth-exceeded set, a verbose panic
// is raised instead to support post-mortem debugging.
func breadthExceeded(limit int) {
	fault := kombi.Fault{
		Reason: "ambiguity breadth limit (" + strconv.Itoa(limit) + ") exceeded",
	}
	if gconf.GetBool("kombi.panic-on-breadth-exceeded") {
		panic(`GLL parse exceeded the ambiguity breadth limit.

Configuration flag kombi.panic-on-breadth-exceeded is set to true. It is
aimed at helping to debug an infinitely ambiguous grammar and do a
post-mortem of where the result set exploded. However, if this is a
production environment and you did not expect this to panic, please unset
kombi.panic-on-breadth-exceeded to its default (false).

` + fault.Error())
	}
	panic(fault)
}
