package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// RunFunc executes a parsed session.
type RunFunc func(cmd *cobra.Command, opts Options, commands []Command) error

// NewRootCommand builds the emrom command line. Positional arguments form
// the session, flags may appear anywhere.
func NewRootCommand(version string, run RunFunc) *cobra.Command {
	opts := DefaultOptions()

	root := &cobra.Command{
		Use:           "emrom [flags] COMMAND [ARG] [COMMAND [ARG]]...",
		Short:         "ROM emulator programming tool",
		Long:          "Read, write and erase the memory of a ROM emulator over a serial port.\n\n" + commandList(),
		Example:       "  emrom connect /dev/ttyUSB0 write firmware.hex disconnect\n  emrom c /dev/ttyUSB0 r dump.hex d",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			commands, err := ParseCommands(args)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				return cmd.Help()
			}
			return run(cmd, opts, commands)
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{err: err}
	})
	root.SetUsageTemplate(root.UsageTemplate() + "\n" + exitCodeList())

	flags := root.Flags()
	flags.IntVar(&opts.Baud, "baud", opts.Baud, "serial line speed")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "time allowed for each device reply")
	flags.IntVar(&opts.Width, "width", opts.Width, "data bytes per record written by read")
	flags.Uint8Var(&opts.Fill, "fill", opts.Fill, "value of bytes not set by the file written by write")
	flags.StringVar(&opts.Ack, "ack", opts.Ack, "write acknowledgement mode (echo/checksum)")
	flags.BoolVar(&opts.Verify, "verify", opts.Verify, "read device memory back after write and compare")
	flags.IntVar(&opts.Retries, "retries", opts.Retries, "number of times a device command is repeated after a serial error")
	flags.BoolVar(&opts.Reset, "reset", opts.Reset, "pulse DTR after connect to reset the device")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "perform operations quietly")

	return root
}

// Parse parses args into options and commands without running anything.
func Parse(args []string) ([]Command, Options, error) {
	var (
		commands []Command
		options  = DefaultOptions()
	)

	root := NewRootCommand("", func(_ *cobra.Command, opts Options, cmds []Command) error {
		commands, options = cmds, opts
		return nil
	})
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		return nil, options, err
	}
	return commands, options, nil
}

// Usage returns the command and exit code tables.
func Usage() string {
	return commandList() + "\n" + exitCodeList()
}

func commandList() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, spec := range commandSpecs {
		name := spec.alias + ", " + spec.name
		if spec.arg != "" {
			name += " " + spec.arg
		}
		fmt.Fprintf(&b, "  %-20s %s\n", name, spec.usage)
	}
	return b.String()
}

func exitCodeList() string {
	var b strings.Builder
	b.WriteString("Exit codes:\n")
	for _, e := range exitCodes {
		fmt.Fprintf(&b, "  %3d %s\n", e.code, e.usage)
	}
	return b.String()
}
