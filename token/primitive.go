package token

import (
	"regexp"
	"strings"

	"github.com/npillmayer/kombi"
)

// --- Primitive combinators ----------------------------------------------

// Str matches when the input at the current index starts with s. On success
// it consumes len(s) code units and appends s as a token. It fails with
// onEOF when the index is at or beyond the end of the input, and with
// onMismatch when the prefix differs.
func Str(s string, onEOF, onMismatch kombi.ErrorFn) *Parser {
	return newParser("str("+s+")", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		if st.AtEnd() {
			return st.IntoError(onEOF(st.Target(), st.Index()))
		}
		if !strings.HasPrefix(st.Rest(), s) {
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		return st.Consume(len(s), s)
	})
}

// Regex matches the given pattern anchored at the current index: the match
// must begin at offset 0 of the unconsumed remainder. On success it consumes
// the matched length and appends the matched substring as a single token.
// EOF and mismatch behaviour mirror Str.
//
// Patterns are authored by the caller and interpreted by the host's regexp
// package; the engine performs no rewriting of the pattern.
func Regex(pattern string, onEOF, onMismatch kombi.ErrorFn) *Parser {
	re := regexp.MustCompile(pattern)
	return newParser("regex("+pattern+")", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		if st.AtEnd() {
			return st.IntoError(onEOF(st.Target(), st.Index()))
		}
		loc := re.FindStringIndex(st.Rest())
		if loc == nil || loc[0] != 0 {
			return st.IntoError(onMismatch(st.Target(), st.Index()))
		}
		matched := st.Rest()[:loc[1]]
		return st.Consume(loc[1], matched)
	})
}

// Error converts a result state into an error state at the same position,
// with the same tokens, carrying the produced semantic error value. Error
// states pass through unchanged. This is how error productions report a
// recognised-but-invalid region.
func Error(e kombi.ErrorFn) *Parser {
	return newParser("error", func(st *kombi.State) *kombi.State {
		if st.IsError() {
			return st
		}
		return st.IntoError(e(st.Target(), st.Index()))
	})
}

// Recovery is the dual of Error: result states pass through unchanged, while
// an error state is converted back into a result at the same position with a
// semantic value minted from the error state. Recovery combinators are the
// synchronisation points of a grammar.
func Recovery(fromError kombi.RecoverFn) *Parser {
	return newParser("recovery", func(st *kombi.State) *kombi.State {
		if !st.IsError() {
			return st
		}
		return st.IntoResult(fromError(st))
	})
}
