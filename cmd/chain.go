// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/raiden-deploy/pkg/application"
	"github.com/luxfi/raiden-deploy/pkg/constants"
	"github.com/luxfi/raiden-deploy/pkg/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SplitChain cuts args into the shared arguments given before the first
// command and one segment per command, each starting with the command name.
// A flag value is never taken for a command name.
func SplitChain(root *cobra.Command, args []string) ([]string, [][]string) {
	commands := map[string]*cobra.Command{}
	for _, c := range root.Commands() {
		commands[c.Name()] = c
		for _, alias := range c.Aliases {
			commands[alias] = c
		}
	}

	var (
		shared   []string
		segments [][]string
		current  *cobra.Command
	)
	add := func(arg string) {
		if current == nil {
			shared = append(shared, arg)
			return
		}
		segments[len(segments)-1] = append(segments[len(segments)-1], arg)
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if c, ok := commands[arg]; ok {
			current = c
			segments = append(segments, []string{arg})
			continue
		}
		add(arg)
		if arg == "--" {
			for _, rest := range args[i+1:] {
				add(rest)
			}
			break
		}
		if takesValue(root, current, arg) && i+1 < len(args) {
			i++
			add(args[i])
		}
	}
	return shared, segments
}

// takesValue tells whether arg is a flag whose value is the next argument.
func takesValue(root, current *cobra.Command, arg string) bool {
	if len(arg) < 2 || arg[0] != '-' || strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	lookup := func(fs *pflag.FlagSet) {
		if f != nil {
			return
		}
		if strings.HasPrefix(arg, "--") {
			f = fs.Lookup(arg[2:])
		} else if len(arg) == 2 {
			f = fs.ShorthandLookup(arg[1:])
		}
	}
	if current != nil {
		lookup(current.Flags())
	}
	lookup(root.PersistentFlags())
	return f != nil && f.NoOptDefVal == ""
}

// RunChain runs every command of args in order on one app, so they share
// the deployment session. Every command line is parsed and its inputs checked
// before the first command runs; the first failure stops the chain.
func RunChain(ctx context.Context, app *application.App, args []string) error {
	defer app.Close()

	shared, segments := SplitChain(NewRootCmd(app), args)
	if len(segments) == 0 {
		rootCmd := NewRootCmd(app)
		rootCmd.SetArgs(shared)
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			return usageError(err)
		}
		return nil
	}

	chain := make([][]string, 0, len(segments))
	var first *session.Inputs
	for _, segment := range segments {
		segmentArgs := make([]string, 0, len(shared)+len(segment))
		segmentArgs = append(segmentArgs, segment[0])
		segmentArgs = append(segmentArgs, shared...)
		segmentArgs = append(segmentArgs, segment[1:]...)
		checked, err := preflight(NewRootCmd(app), segmentArgs)
		if err != nil {
			return err
		}
		if checked {
			if first == nil {
				in := app.Settings.Session
				first = &in
			} else if !first.Equal(app.Settings.Session) {
				return fmt.Errorf("%w: shared options of %s differ from the ones given earlier in the chain",
					constants.ErrConfiguration, segment[0])
			}
		}
		chain = append(chain, segmentArgs)
	}
	for _, segmentArgs := range chain {
		rootCmd := NewRootCmd(app)
		rootCmd.SetArgs(segmentArgs)
		if err := rootCmd.ExecuteContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// preflight parses one command line on a throwaway command tree and runs its
// pre-run hooks, which resolve the shared options and check the command's
// inputs against the manifest without contacting the ledger. It reports
// whether the hooks ran; they are skipped for help requests.
func preflight(rootCmd *cobra.Command, args []string) (bool, error) {
	cmd, rest, err := rootCmd.Find(args)
	if err != nil {
		return false, usageError(err)
	}
	cmd.InitDefaultHelpFlag()
	if err := cmd.ParseFlags(rest); err != nil {
		return false, cmd.FlagErrorFunc()(cmd, err)
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return false, nil
	}
	positional := cmd.Flags().Args()
	if err := cmd.ValidateArgs(positional); err != nil {
		return false, err
	}
	for p := cmd; p != nil; p = p.Parent() {
		if p.PersistentPreRunE != nil {
			if err := p.PersistentPreRunE(cmd, positional); err != nil {
				return false, err
			}
			break
		}
	}
	if cmd.PreRunE != nil {
		if err := cmd.PreRunE(cmd, positional); err != nil {
			return false, err
		}
	}
	return true, nil
}

// usageError classifies errors of a command line naming no command, which
// can only be unknown commands or bad flags.
func usageError(err error) error {
	if errors.Is(err, constants.ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %w", constants.ErrConfiguration, err)
}
