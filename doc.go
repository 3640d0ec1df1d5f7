/*
Package kombi is a parser-combinator engine for context-free grammars.

Kombi provides two layered combinator families which share a common
parse-state model:

■ token: Package token implements LL(k) recursive-descent combinators with
backtracking and unbounded lookahead. Token combinators are linear in the
input size, but cannot cope with left recursion or ambiguity.

■ symbol: Package symbol implements a Generalised LL (GLL) algorithm on top
of continuation-passing combinators and a deferred-work stack. Symbol
combinators accept every context-free grammar, including ambiguous and
left-recursive ones, and produce all distinct parse results
in worst-case cubic time.

The base package contains the data types which are used throughout both
layers: semantic values with string identities, and the immutable parse
state. Identity strings are the memoisation keys on which both layers rely;
see the Ident interface for the available identity policies.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package kombi
