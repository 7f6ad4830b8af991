// Copyright (c) 2024 the wl-codegen authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

func main() {
	exitCode := 0
	rootCmd := newRootCommand(context.Background(), &exitCode)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// newRootCommand assembles the CLI. The exit status of the command that
// ran is stored in exitCode.
func newRootCommand(ctx context.Context, exitCode *int) *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "wl-codegen [-v] COMMAND",
		Short: "Compile Wayland-style protocol schemas into Go code",
		Long: "wl-codegen compiles TOML protocol schemas and emits one Go file per\n" +
			"protocol. Settings for generate may be kept in " + defaultConfigPath + ".",
		Example: "  wl-codegen check -d core.toml shell.toml\n" +
			"  wl-codegen generate --role server -o internal/wl protocols/*.toml",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log compiler progress to stderr")
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		*exitCode = 1
		return nil
	}

	commands := []command{
		&cmdGenerate{},
		&cmdCheck{},
		&cmdDump{},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				log, err := newLogger(verbose)
				if err != nil {
					return err
				}
				*exitCode = cmd.run(withLogger(ctx, log), args)
				_ = log.Sync()
				return nil
			},
		}
		rootCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}
	return rootCmd
}
