package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/kombi"
	"github.com/npillmayer/kombi/symbol"
	"github.com/npillmayer/kombi/token"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'kombi.repl'.
func tracer() tracing.Trace {
	return tracing.Select("kombi.repl")
}

// main() starts an interactive CLI, where users may enter arithmetic
// expressions. The REPL parses each line with a left-recursive expression
// grammar running on the GLL symbol layer, evaluates it through chain
// actions, and prints the resulting parse state(s). It is intended as a
// sandbox for experiments with the combinator engine.
//
//  Expr   ➞ Expr [+-] Term  |  Term
//  Term   ➞ Term [*/] Factor  |  Factor
//  Factor ➞ number  |  ( Expr )
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	tracing.Select("kombi.symbol").SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	tracing.Select("kombi.token").SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the kombi REPL") // colored welcome message
	//
	grammar := makeExprParser()
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	//
	// set up REPL
	repl, err := readline.New("kombi> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	if input != "" {
		eval(grammar, input)
	}
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		eval(grammar, line)
	}
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// eval parses one input line and renders all maximal parses as a tree.
func eval(grammar *symbol.Parser, line string) {
	states, err := grammar.Run(line, nil, 0)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if len(states) == 0 {
		pterm.Error.Println("no parse")
		return
	}
	ll := pterm.LeveledList{}
	for _, s := range states {
		if s.IsError() {
			ll = append(ll, pterm.LeveledListItem{
				Level: 0,
				Text:  fmt.Sprintf("error at %d: %v", s.Index(), s.Err()),
			})
			continue
		}
		if !s.AtEnd() {
			ll = append(ll, pterm.LeveledListItem{
				Level: 0,
				Text:  fmt.Sprintf("partial parse, stopped at %d", s.Index()),
			})
		}
		ll = append(ll, pterm.LeveledListItem{
			Level: 0,
			Text:  fmt.Sprintf("= %v", kombi.ValueOf(s.Data())),
		})
		for _, tok := range s.Tokens() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: tok})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

// --- Expression grammar --------------------------------------------------

// num is the semantic value of the expression grammar. It uses the dynamic
// identity policy: two parses with equal value collapse in the memo.
type num float64

func (n num) Identity() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// makeExprParser builds the stratified expression grammar on the symbol
// layer. Left recursion keeps the operators left-associative; the GLL
// machinery takes care of termination.
func makeExprParser() *symbol.Parser {
	lit := func(s string) *symbol.Parser {
		p := token.Str(s, kombi.Expect(s), kombi.Expect(s))
		return symbol.ToSymbol(token.Map(p, func(st *kombi.State) kombi.Ident {
			return kombi.Tagged(s, s)
		}, nil))
	}
	number := symbol.ToSymbol(token.Map(
		token.Regex("[0-9]+", kombi.Expect("number"), kombi.Expect("number")),
		func(st *kombi.State) kombi.Ident {
			toks := st.Tokens()
			f, _ := strconv.ParseFloat(toks[len(toks)-1], 64)
			return num(f)
		}, nil))
	apply := func(data []kombi.Ident) kombi.Ident {
		l := kombi.ValueOf(data[0]).(num)
		r := kombi.ValueOf(data[2]).(num)
		switch kombi.ValueOf(data[1]) {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		}
		return l / r
	}
	var expr, term, factor *symbol.Parser
	lazy := func(p **symbol.Parser) *symbol.Parser {
		return symbol.Lazy(func() *symbol.Parser { return *p })
	}
	factor = symbol.Alternatives(
		number,
		symbol.Chain([]*symbol.Parser{lit("("), lazy(&expr), lit(")")},
			func(data []kombi.Ident) kombi.Ident { return data[1] }),
	)
	term = symbol.Alternatives(
		symbol.Chain([]*symbol.Parser{lazy(&term), symbol.Alternatives(lit("*"), lit("/")), factor}, apply),
		factor,
	)
	expr = symbol.Alternatives(
		symbol.Chain([]*symbol.Parser{lazy(&expr), symbol.Alternatives(lit("+"), lit("-")), term}, apply),
		term,
	)
	return expr
}
