package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/usmlang/usm/internal/concept"
)

func newLanguagesCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reg := concept.Default()
			if !verify {
				for _, lang := range reg.SupportedLanguages() {
					fmt.Fprintln(out, lang)
				}
				return nil
			}

			failed := false
			for _, lang := range reg.SupportedLanguages() {
				missing, err := reg.ValidateCompleteness(lang)
				if err != nil {
					return err
				}
				ambiguous, err := reg.ValidateAmbiguity(lang)
				if err != nil {
					return err
				}
				if len(missing) == 0 && len(ambiguous) == 0 {
					fmt.Fprintf(out, "%s: ok (%d concepts)\n", lang, len(reg.Concepts()))
					continue
				}
				failed = true
				for _, id := range missing {
					fmt.Fprintf(out, "%s: missing spelling for %s\n", lang, id)
				}
				words := make([]string, 0, len(ambiguous))
				for word := range ambiguous {
					words = append(words, word)
				}
				sort.Strings(words)
				for _, word := range words {
					fmt.Fprintf(out, "%s: %q bound to %v\n", lang, word, ambiguous[word])
				}
			}
			if failed {
				return errors.New("keyword tables are inconsistent")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "check every language for missing or ambiguous keywords")
	return cmd
}
