// Package usm compiles source written with the keywords of any supported
// natural language into one canonical AST.
//
// The pipeline runs in four stages: lexing (with language detection),
// surface-pattern normalization, parsing, and semantic analysis. Compile
// is the façade over all four; the internal packages remain usable on
// their own for tooling that needs a single stage.
package usm

import (
	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/parser"
	"github.com/usmlang/usm/internal/parser/ast"
	"github.com/usmlang/usm/internal/semantic"
	"github.com/usmlang/usm/internal/surface"
)

// Result is the output of one Compile run. Program and Diagnostics are
// populated only when lexing and parsing succeeded.
type Result struct {
	// Language is the resolved source language: the caller's hint, or the
	// detected language when no hint was given.
	Language string

	// Tokens is the normalized token stream the parser consumed.
	Tokens []lexer.Token

	// Program is the canonical AST.
	Program *ast.Program

	// Diagnostics are the semantic findings; empty for a valid program.
	Diagnostics []semantic.Diagnostic
}

// Compile runs the full pipeline over source. languageHint may be empty
// to let detection choose. A non-nil error is a lexical or syntax error;
// semantic findings are reported through Result.Diagnostics instead.
func Compile(source, languageHint string) (*Result, error) {
	tokens, lang, err := lexer.Tokenize(source, languageHint)
	if err != nil {
		return nil, err
	}
	tokens = surface.Default().Normalize(tokens, lang)

	program, err := parser.Parse(tokens, lang)
	if err != nil {
		return nil, err
	}

	return &Result{
		Language:    lang,
		Tokens:      tokens,
		Program:     program,
		Diagnostics: semantic.Analyze(program),
	}, nil
}

// Check compiles source and reports whether it is lexically, syntactically,
// and semantically valid.
func Check(source, languageHint string) (bool, error) {
	result, err := Compile(source, languageHint)
	if err != nil {
		return false, err
	}
	return len(result.Diagnostics) == 0, nil
}
