package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/usmlang/usm"
)

func newCheckCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a source file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return watchAndCheck(cmd, args[0])
			}
			if !runCheck(cmd.OutOrStdout(), args[0]) {
				return errors.New("check failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-check whenever the file changes")
	return cmd
}

// runCheck compiles one file and prints its findings. It returns true when
// the file is clean.
func runCheck(out io.Writer, path string) bool {
	source, err := readSource(path)
	if err != nil {
		fmt.Fprintln(out, err)
		return false
	}
	result, err := usm.Compile(source, sourceLang)
	if err != nil {
		fmt.Fprintln(out, renderError(path, err))
		return false
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "%s:%d:%d: %s\n", path, d.Line, d.Column, d.Localize(messageLang))
	}
	if len(result.Diagnostics) > 0 {
		return false
	}
	fmt.Fprintf(out, "%s: ok (%s)\n", path, result.Language)
	return true
}

// watchAndCheck re-runs the check on every write to the file until the
// command is interrupted. Editors that replace the file on save emit
// Rename instead of Write, so the watcher re-adds the path after a
// rename to keep following the new inode.
func watchAndCheck(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	runCheck(out, path)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Rename != 0 {
				// The original inode is gone; track the new file.
				watcher.Remove(path)
				if err := watcher.Add(path); err != nil {
					return err
				}
			}
			runCheck(out, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "watch:", err)
		}
	}
}
