package symbol

import (
	"testing"

	"github.com/npillmayer/kombi"
	"github.com/npillmayer/kombi/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// error producers used throughout the symbol tests
var (
	atEOF    = kombi.Expect("more input")
	mismatch = kombi.Expect("match")
)

// lit is a semantic value with dynamic identity: its own content.
type lit string

func (l lit) Identity() string { return string(l) }

// litTok matches a literal and attaches it as semantic value.
func litTok(s string) *Parser {
	return ToSymbol(token.Map(token.Str(s, atEOF, mismatch),
		func(st *kombi.State) kombi.Ident { return lit(s) }, nil))
}

// lazyOf breaks definition cycles in test grammars.
func lazyOf(p **Parser) *Parser {
	return Lazy(func() *Parser { return *p })
}

func TestEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	states, err := Empty().Run("abc", kombi.Tagged("d", nil), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Index() != 0 || states[0].Data().Identity() != "d" {
		t.Errorf("empty should publish the input state unchanged, got %v", states)
	}
}

func TestToSymbolLaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	// toSymbol(p).run(t, d, i)[0] equals p.run(t, d, i)[0] for any token p
	tp := token.Str("ab", atEOF, mismatch)
	sp := ToSymbol(token.Str("ab", atEOF, mismatch))
	for _, input := range []string{"abc", "xyz", ""} {
		want := tp.Run(input, nil, 0)
		states, err := sp.Run(input, nil, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(states) != 1 || states[0].Identity() != want.Identity() {
			t.Errorf("toSymbol(p) differs from p on %q: %v vs %v", input, states, want)
		}
	}
}

func TestAlternativesWithEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Alternatives(litTok("a"), Empty())
	// on failing input, the epsilon result at the current index survives
	states, err := p.Run("b", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].IsError() || states[0].Index() != 0 {
		t.Errorf("alternatives([p, empty]) on failure: want the state at the current index, got %v", states)
	}
	// on success the generator sees both outcomes
	g := p.Generator("a", nil, 0)
	var got []*kombi.State
	for s, ok := g.Next(); ok; s, ok = g.Next() {
		got = append(got, s)
	}
	if len(got) != 2 { // the epsilon outcome plus the consuming one
		t.Fatalf("expected 2 outcomes, got %d: %v", len(got), got)
	}
	seen := map[int]bool{}
	for _, s := range got {
		if !s.IsError() {
			seen[s.Index()] = true
		}
	}
	if !seen[0] || !seen[1] {
		t.Errorf("expected the epsilon outcome and the consuming outcome, got %v", got)
	}
}

func TestSymbolMapAssert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Map(litTok("a"), func(s *kombi.State) kombi.Ident { return lit("A") }, nil)
	states, err := p.Run("a", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Data().Identity() != "A" {
		t.Errorf("symbol map did not rewrite data: %v", states)
	}
	q := Assert(litTok("a"), func(s *kombi.State) kombi.Ident {
		return kombi.Tagged("vetoed", nil)
	})
	states, err = q.Run("a", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || !states[0].IsError() || states[0].Err().Identity() != "vetoed" {
		t.Errorf("symbol assert did not veto: %v", states)
	}
}

func TestSymbolChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Chain([]*Parser{litTok("a"), litTok("b")}, func(data []kombi.Ident) kombi.Ident {
		return lit(data[0].Identity() + data[1].Identity())
	})
	states, err := p.Run("ab", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Data().Identity() != "ab" {
		t.Errorf("symbol chain action saw wrong vector: %v", states)
	}
	want := []string{"a", "b"}
	for i, tok := range states[0].Tokens() {
		if tok != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok, want[i])
		}
	}
}

func TestSymbolContextual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	var tail *Parser
	p := Contextual(litTok("a"), func() []*Parser {
		return []*Parser{tail}
	})
	tail = litTok("b")
	states, err := p.Run("ab", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Index() != 2 {
		t.Errorf("contextual: unexpected states %v", states)
	}
}

func TestErrorRecoveryGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	// grammar: alternatives(a, chain(b, error(E))), chained into recovery(R)
	g := Alternatives(
		litTok("a"),
		Chain([]*Parser{litTok("b"), ToSymbol(token.Error(kombi.Expect("E")))}, nil),
	)
	p := Chain([]*Parser{g, ToSymbol(token.Recovery(func(s *kombi.State) kombi.Ident {
		return kombi.Tagged("R", nil)
	}))}, nil)
	//
	states, err := p.Run("b", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("want a single recovered result, got %v", states)
	}
	s := states[0]
	if s.IsError() || s.Data().Identity() != "R" {
		t.Errorf("recovery should produce data R, got %v", s)
	}
	if len(s.Tokens()) != 1 || s.Tokens()[0] != "b" {
		t.Errorf("recovered state should keep token b, got %v", s.Tokens())
	}
	//
	states, err = p.Run("a", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Data().Identity() != "a" {
		t.Errorf("on input a the original data must survive, got %v", states)
	}
}

func TestSymbolMemoFlushOnTargetChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := litTok("a")
	if _, err := p.Run("aaa", nil, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run("aab", nil, 0); err != nil {
		t.Fatal(err)
	}
	for key := range p.memo {
		if len(key) < 3 || key[:3] != "aab" {
			t.Errorf("memo still contains an entry for the previous target: %q", key)
		}
	}
}
