// Package main implements the command line tool that programs a ROM emulator
// over a serial port.
package main

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/rksdna/emrom/internal/cli"
	"github.com/rksdna/emrom/internal/config"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	root := cli.NewRootCommand(buildinfo.Version(version, commit, date), run)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if cli.ExitCode(err) == cli.ExitUsage {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		}
	}
	os.Exit(cli.ExitCode(err))
}

func run(cmd *cobra.Command, opts cli.Options, commands []cli.Command) error {
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if !opts.Quiet {
		logger.Info("emrom", log.String("version", cmd.Version))
	}

	runner := cli.NewRunner(opts, logger, cmd.OutOrStdout(), cli.OpenSerial)
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Error("Closing serial port failed", log.Err(err))
		}
	}()

	return runner.Run(cmd.Context(), commands)
}
