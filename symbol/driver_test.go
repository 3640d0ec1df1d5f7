package symbol

import (
	"testing"

	"github.com/npillmayer/kombi/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestGeneratorPublicationOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	// L = L a | a produces prefixes of increasing length, in publication order
	var L *Parser
	L = Alternatives(
		Chain([]*Parser{lazyOf(&L), litTok("a")}, nil),
		litTok("a"),
	)
	g := L.Generator("aaa", nil, 0)
	lastIndex := -1
	count := 0
	for s, ok := g.Next(); ok; s, ok = g.Next() {
		if s.IsError() {
			continue
		}
		if s.Index() <= lastIndex {
			t.Errorf("results not in increasing publication order: %v after %d", s, lastIndex)
		}
		lastIndex = s.Index()
		count++
	}
	if err := g.Err(); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("want results at indexes 1, 2, 3, got %d results", count)
	}
}

func TestGeneratorIsDrainable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	var L *Parser
	L = Alternatives(
		Chain([]*Parser{lazyOf(&L), litTok("a")}, nil),
		litTok("a"),
	)
	g := L.Generator("aaaa", nil, 0)
	s, ok := g.Next()
	if !ok || s == nil {
		t.Fatalf("generator yielded nothing")
	}
	// stopping here is legal; the engine performs no further work
	if g.Err() != nil {
		t.Fatal(g.Err())
	}
}

func TestEagerRunPrefersFarthestProgress(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	// one alternative stops early, the other consumes more input
	p := Alternatives(
		litTok("a"),
		Chain([]*Parser{litTok("a"), litTok("b")}, nil),
	)
	states, err := p.Run("ab", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Index() != 2 {
		t.Errorf("eager run should keep only maximal-index results, got %v", states)
	}
}

func TestEagerRunFallsBackToErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Alternatives(
		Chain([]*Parser{litTok("a"), litTok("b")}, nil),
		Chain([]*Parser{litTok("a"), litTok("c")}, nil),
	)
	states, err := p.Run("ax", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) == 0 {
		t.Fatalf("expected the best-position errors")
	}
	for _, s := range states {
		if !s.IsError() {
			t.Errorf("expected only error states, got %v", s)
		}
		if s.Index() != 1 {
			t.Errorf("errors should sit at the farthest reached index 1, got %v", s)
		}
	}
}

func TestRunAsync(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Chain([]*Parser{litTok("a"), litTok("b")}, nil)
	states, err := p.RunAsync("ab", nil, 0).Await()
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Index() != 2 {
		t.Errorf("async run differs from eager run: %v", states)
	}
}

func TestRunAtOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := ToSymbol(token.Str("b", atEOF, mismatch))
	states, err := p.Run("ab", nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].Index() != 2 || states[0].Tokens()[0] != "b" {
		t.Errorf("run at offset 1: unexpected states %v", states)
	}
}

func TestRerunReplaysFromMemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "kombi.symbol")
	defer teardown()
	//
	p := Chain([]*Parser{litTok("a"), litTok("b")}, nil)
	first, err := p.Run("ab", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Run("ab", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) || first[0].Identity() != second[0].Identity() {
		t.Errorf("rerun over the same target must be observationally identical: %v vs %v",
			first, second)
	}
}
