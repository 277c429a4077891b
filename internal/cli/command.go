// Package cli handles command line interface logic
package cli

import (
	"fmt"
	"strconv"
)

// Kind identifies a command.
type Kind int

// Commands in the order they are listed in the usage text.
const (
	Connect Kind = iota + 1
	Read
	Write
	Erase
	Disconnect
	Help
)

// Command is one step of a session, for example "write fw.hex".
type Command struct {
	Kind Kind

	// Arg is the serial port for Connect and the record file for Read and
	// Write. It is empty for the other kinds.
	Arg string
}

func (c Command) String() string {
	spec := specFor(c.Kind)
	if spec == nil {
		return fmt.Sprintf("Kind(%d)", int(c.Kind))
	}
	if c.Arg == "" {
		return spec.name
	}
	return spec.name + " " + strconv.Quote(c.Arg)
}

type commandSpec struct {
	kind  Kind
	alias string
	name  string
	arg   string
	usage string
}

var commandSpecs = []commandSpec{
	{Connect, "c", "connect", "PORT", "Open serial port and connect to device"},
	{Read, "r", "read", "FILE", "Read data from device memory to file"},
	{Write, "w", "write", "FILE", "Write data from file to device memory"},
	{Erase, "e", "erase", "", "Erase device memory"},
	{Disconnect, "d", "disconnect", "", "Disconnect device and close serial port"},
	{Help, "h", "help", "", "Print this help"},
}

func specFor(kind Kind) *commandSpec {
	for i := range commandSpecs {
		if commandSpecs[i].kind == kind {
			return &commandSpecs[i]
		}
	}
	return nil
}

func lookup(word string) *commandSpec {
	for i := range commandSpecs {
		if commandSpecs[i].name == word || commandSpecs[i].alias == word {
			return &commandSpecs[i]
		}
	}
	return nil
}

// ParseCommands turns positional arguments into commands. Commands taking
// an argument consume the word that follows them. The whole list is
// checked before anything runs.
func ParseCommands(args []string) ([]Command, error) {
	var commands []Command

	for i := 0; i < len(args); i++ {
		spec := lookup(args[i])
		if spec == nil {
			return nil, &UsageError{msg: fmt.Sprintf("invalid command %q", args[i])}
		}

		cmd := Command{Kind: spec.kind}
		if spec.arg != "" {
			if i+1 >= len(args) {
				return nil, &UsageError{msg: fmt.Sprintf("command %q requires a %s argument", args[i], spec.arg)}
			}
			i++
			cmd.Arg = args[i]
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}
