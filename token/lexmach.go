package token

import (
	"strings"

	"github.com/npillmayer/kombi"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// Lexeme matches whatever token a pre-compiled lexmachine DFA recognises at
// the current index. The match must start exactly at the current position;
// on success the lexeme is consumed and appended as a single token. It fails
// with onEOF at the end of input and with onMismatch when the DFA does not
// recognise a token at the current position.
//
// The lexer's rules must produce *lexmachine.Token values; assemble them
// with MakeToken (or NewLexer, which does so for you). Rules whose action
// returns nil are treated as a mismatch here; a scannerless engine has no
// notion of skipped input.
func Lexeme(lexer *lexmachine.Lexer, onEOF, onMismatch kombi.ErrorFn) *Parser {
	return newParser("lexeme", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		if st.AtEnd() {
			return st.IntoError(onEOF(st.Target(), st.Index()))
		}
		scan, err := lexer.Scanner([]byte(st.Target()))
		if err != nil {
			tracer().Errorf("lexeme: cannot create scanner: %v", err)
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		scan.TC = st.Index() // reposition the DFA at the current index
		tok, err, eof := scan.Next()
		if eof {
			return st.IntoError(onEOF(st.Target(), st.Index()))
		}
		if err != nil {
			if _, is := err.(*machines.UnconsumedInput); !is {
				tracer().Errorf("lexeme: scanner error: %v", err)
			}
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		token, ok := tok.(*lexmachine.Token)
		if !ok || token == nil {
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		if token.TC != st.Index() {
			// DFA matched, but not anchored at the current position
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		lexeme := string(token.Lexeme)
		return st.Consume(len(lexeme), lexeme)
	})
}

// NewLexer assembles and compiles a lexmachine DFA for use with Lexeme. It
// receives an optional init function for pattern rules, a list of literals
// ('[', ';', …) and a map translating token strings to their values.
//
// NewLexer returns an error if compiling the DFA failed.
func NewLexer(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]int) (*lexmachine.Lexer, error) {
	lexer := lexmachine.NewLexer()
	if init != nil {
		init(lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	return lexer, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
