package symbol

import (
	"github.com/npillmayer/kombi"
	"github.com/npillmayer/kombi/token"
)

// --- Symbol combinators ------------------------------------------------

// Empty publishes the input state unchanged as a successful parse position.
// It is the explicit epsilon production, and the building block for optional
// symbols in the symbol layer.
func Empty() *Parser {
	return newParser("empty", func(s *kombi.State, k Continuation, stack *Stack) {
		k(s)
	})
}

// ToSymbol promotes a token combinator into the symbol layer. The token
// transformer runs synchronously and its single outcome is published.
func ToSymbol(p *token.Parser) *Parser {
	return newParser("token("+p.Name()+")", func(s *kombi.State, k Continuation, stack *Stack) {
		k(p.Apply(s))
	})
}

// Lazy delays construction of the inner combinator until first use and
// memoises the constructed instance thereafter. Self-referential grammar
// definitions need it:
//
//    var expr *symbol.Parser
//    expr = symbol.Alternatives(
//        symbol.Chain([]*symbol.Parser{symbol.Lazy(func() *symbol.Parser { return expr }), …}, act),
//        …)
func Lazy(thunk func() *Parser) *Parser {
	var inner *Parser
	return newParser("lazy", func(s *kombi.State, k Continuation, stack *Stack) {
		if inner == nil {
			inner = thunk()
		}
		inner.subscribe(s, k, stack)
	})
}

// Alternatives explores every alternative: for a non-error input state all
// given combinators are dispatched against it, and every distinct outcome is
// published. Unlike the token layer's Choice there is no commitment to the
// first success; ambiguity survives, deduplicated by result identity. Error
// input states are forwarded unchanged.
func Alternatives(ps ...*Parser) *Parser {
	return newParser("alternatives", func(s *kombi.State, k Continuation, stack *Stack) {
		if s.IsError() {
			k(s)
			return
		}
		for _, p := range ps {
			p.subscribe(s, k, stack)
		}
	})
}
