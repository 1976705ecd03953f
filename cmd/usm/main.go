// Command usm is the multilingual front end driver: it tokenizes, parses,
// and checks source files written with the keywords of any supported
// language, and prints the canonical AST or localized diagnostics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/message"
	"github.com/usmlang/usm/internal/parser"
)

var (
	// sourceLang is the --language hint; empty means detect.
	sourceLang string

	// messageLang selects the language diagnostics are rendered in.
	messageLang string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "usm",
		Short:         "Multilingual programming language front end",
		Long:          "usm compiles programs written with the keywords and numerals\nof any supported natural language into one canonical AST.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&sourceLang, "language", "l", "",
		"source language hint (default: detect from keywords)")
	root.PersistentFlags().StringVarP(&messageLang, "message-language", "m", message.FallbackLanguage,
		"language for diagnostic messages")

	root.AddCommand(newTokensCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newLanguagesCmd())
	return root
}

// readSource loads the single file argument; "-" reads standard input.
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderError formats a pipeline error with its source position, in the
// message language. Errors without a message key pass through unchanged.
func renderError(path string, err error) string {
	switch e := err.(type) {
	case *lexer.Error:
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Line, e.Column, e.Localize(messageLang))
	case *parser.Error:
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Line, e.Column, e.Localize(messageLang))
	}
	return err.Error()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "usm:", err)
		os.Exit(1)
	}
}
