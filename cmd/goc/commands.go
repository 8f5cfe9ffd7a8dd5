// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"goc/internal/compiler"
	"goc/internal/ir"
	"goc/repl"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type buildFlags struct {
	emit       string
	dominators string
	noVerify   bool
	output     string
}

type globalFlags struct {
	verbose int
	logFile string
}

func newRootCommand() *cobra.Command {
	var global globalFlags

	root := &cobra.Command{
		Use:           "goc",
		Short:         "Compile goc programs to SSA form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if global.logFile != "" {
				path = &global.logFile
			}
			commonlog.Configure(global.verbose, path)
		},
	}
	root.PersistentFlags().CountVarP(&global.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	root.PersistentFlags().StringVar(&global.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newBuildCommand(), newReplCommand(), newVersionCommand())
	return root
}

func newBuildCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build <file.goc>",
		Short: "Build the SSA form of a program and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.emit, "emit", "dot", "output format: dot, ssa, cfg or ast")
	cmd.Flags().StringVar(&flags.dominators, "dom", "reachability", "dominator algorithm: reachability or iterative")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "skip the SSA verifier")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file")
	return cmd
}

func newReplCommand() *cobra.Command {
	var dominators string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read statements interactively and print their SSA form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := ir.ParseDominatorAlgorithm(dominators)
			if err != nil {
				return err
			}
			opts := compiler.DefaultOptions()
			opts.IR.Dominators = alg

			fmt.Fprintln(cmd.OutOrStdout(), "goc REPL: end a program with a return statement")
			repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			return nil
		},
	}
	cmd.Flags().StringVar(&dominators, "dom", "reachability", "dominator algorithm: reachability or iterative")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goc %s\n", version)
		},
	}
}

func runBuild(stdout, stderr io.Writer, path string, flags buildFlags) error {
	alg, err := ir.ParseDominatorAlgorithm(flags.dominators)
	if err != nil {
		return err
	}
	switch flags.emit {
	case "dot", "ssa", "cfg", "ast":
	default:
		return fmt.Errorf("unknown emit format %q (want dot, ssa, cfg or ast)", flags.emit)
	}

	opts := compiler.DefaultOptions()
	opts.IR.Dominators = alg
	opts.IR.Verify = !flags.noVerify
	opts.SSA = flags.emit != "cfg" && flags.emit != "ast"

	result, err := compiler.CompileFile(path, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(stderr, result.Format())
	if result.Failed() {
		color.New(color.FgRed).Fprintf(stderr, "Compilation failed after %s\n", formatDuration(result.Duration))
		return fmt.Errorf("%s: compilation failed", path)
	}

	var out string
	switch flags.emit {
	case "ast":
		out = result.Program.String()
	case "ssa":
		out = ir.PrintListing(result.Function)
	default:
		out = ir.PrintDot(result.Function.Graph)
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, out)
	}

	color.New(color.FgGreen).Fprintf(stderr, "Successfully processed %s in %s\n", path, formatDuration(result.Duration))
	return nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
