package kombi

import (
	"fmt"
	"strconv"
)

// --- Parse state ------------------------------------------------------

// State is the immutable snapshot passed between combinators. It is a tagged
// union of two variants sharing target, index and token list:
//
//    Result   carries a semantic value (Data)
//    Error    carries a semantic error value (Err)
//
// Combinators never mutate a state; they derive new ones. The derivation
// methods below copy the token list on append, so states may be shared
// freely between alternatives.
type State struct {
	target string
	index  int
	tokens []string
	data   Ident
	err    Ident
	isErr  bool
}

// NewResult creates a successful parse state. It panics with a Fault if the
// state would violate the engine invariants (see check()).
func NewResult(target string, index int, tokens []string, data Ident) *State {
	s := &State{target: target, index: index, tokens: tokens, data: data}
	s.check()
	return s
}

// NewError creates a failed parse state carrying a semantic error value.
// It panics with a Fault on invariant violation.
func NewError(target string, index int, tokens []string, err Ident) *State {
	s := &State{target: target, index: index, tokens: tokens, err: err, isErr: true}
	s.check()
	return s
}

// Invariants for every state: 0 ≤ index ≤ len(target), and the total length
// of consumed tokens may not exceed index.
func (s *State) check() {
	if s.index < 0 || s.index > len(s.target) {
		panic(Fault{Reason: fmt.Sprintf("state index %d outside target of length %d",
			s.index, len(s.target))})
	}
	consumed := 0
	for _, tok := range s.tokens {
		consumed += len(tok)
	}
	if consumed > s.index {
		panic(Fault{Reason: fmt.Sprintf("consumed token length %d exceeds index %d",
			consumed, s.index)})
	}
}

// Target returns the input string this state refers to.
func (s *State) Target() string { return s.target }

// Index returns the current input position (a code-unit index).
func (s *State) Index() int { return s.index }

// Tokens returns the tokens consumed so far. Callers must not modify the
// returned slice.
func (s *State) Tokens() []string { return s.tokens }

// Data returns the semantic value of a result state (nil for error states).
func (s *State) Data() Ident {
	if s.isErr {
		return nil
	}
	return s.data
}

// Err returns the semantic error value of an error state (nil for results).
func (s *State) Err() Ident {
	if !s.isErr {
		return nil
	}
	return s.err
}

// IsError returns true for the error variant.
func (s *State) IsError() bool { return s.isErr }

// AtEnd returns true when the input is exhausted at this state.
func (s *State) AtEnd() bool { return s.index >= len(s.target) }

// Rest returns the unconsumed remainder of the input.
func (s *State) Rest() string { return s.target[s.index:] }

// Identity is the memoisation key for this state: "{target}_{index}", with
// "_{semantic identity}" appended only when the semantic identity of the
// carried value (or error value) is non-empty.
func (s *State) Identity() string {
	id := s.target + "_" + strconv.Itoa(s.index)
	sem := s.data
	if s.isErr {
		sem = s.err
	}
	if sem != nil {
		if semid := sem.Identity(); semid != "" {
			id += "_" + semid
		}
	}
	return id
}

// --- Derivations --------------------------------------------------------

// Consume derives a result state advanced by n code units, with tok appended
// to the token list. The semantic value is carried through unchanged.
func (s *State) Consume(n int, tok string) *State {
	tokens := make([]string, len(s.tokens), len(s.tokens)+1)
	copy(tokens, s.tokens)
	tokens = append(tokens, tok)
	return NewResult(s.target, s.index+n, tokens, s.data)
}

// Forward derives a result state advanced by n code units without consuming
// a token. Used for probing positions.
func (s *State) Forward(n int) *State {
	return NewResult(s.target, s.index+n, s.tokens, s.data)
}

// WithData derives a result state with a replaced semantic value.
func (s *State) WithData(data Ident) *State {
	return NewResult(s.target, s.index, s.tokens, data)
}

// IntoError derives an error state at the same position with the same
// tokens, carrying the given semantic error value.
func (s *State) IntoError(err Ident) *State {
	return NewError(s.target, s.index, s.tokens, err)
}

// IntoResult derives a result state at the same position with the same
// tokens, carrying the given semantic value. This is the recovery operation.
func (s *State) IntoResult(data Ident) *State {
	return NewResult(s.target, s.index, s.tokens, data)
}

func (s *State) String() string {
	if s.isErr {
		return fmt.Sprintf("Error@%d(%v)", s.index, s.err)
	}
	return fmt.Sprintf("Result@%d(%v)", s.index, s.data)
}
