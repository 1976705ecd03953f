package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usmlang/usm"
	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/parser/ast"
	"github.com/usmlang/usm/internal/surface"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the normalized token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			tokens, lang, err := lexer.Tokenize(source, sourceLang)
			if err != nil {
				return fmt.Errorf("%s", renderError(args[0], err))
			}
			tokens = surface.Default().Normalize(tokens, lang)

			fmt.Fprintf(cmd.OutOrStdout(), "language: %s\n", lang)
			for _, tok := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d:%-3d %s\n", tok.Line, tok.Column, tok)
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the canonical AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}
			result, err := usm.Compile(source, sourceLang)
			if err != nil {
				return fmt.Errorf("%s", renderError(args[0], err))
			}
			fmt.Fprint(cmd.OutOrStdout(), ast.Sprint(result.Program))
			return nil
		},
	}
}
