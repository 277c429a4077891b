package cli

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []Command
	}{
		{
			name: "full session",
			args: []string{"connect", "/dev/ttyUSB0", "write", "fw.hex", "disconnect"},
			expected: []Command{
				{Kind: Connect, Arg: "/dev/ttyUSB0"},
				{Kind: Write, Arg: "fw.hex"},
				{Kind: Disconnect},
			},
		},
		{
			name: "aliases",
			args: []string{"c", "COM3", "e", "r", "dump.hex", "d", "h"},
			expected: []Command{
				{Kind: Connect, Arg: "COM3"},
				{Kind: Erase},
				{Kind: Read, Arg: "dump.hex"},
				{Kind: Disconnect},
				{Kind: Help},
			},
		},
		{
			name: "argument that looks like a command",
			args: []string{"read", "erase"},
			expected: []Command{
				{Kind: Read, Arg: "erase"},
			},
		},
		{
			name: "empty",
			args: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands, err := ParseCommands(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.expected), len(commands))
			for i := range tt.expected {
				assert.Equal(t, tt.expected[i], commands[i])
			}
		})
	}
}

func TestParseCommandsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown command", []string{"flash", "fw.hex"}, `invalid command "flash"`},
		{"missing port", []string{"connect"}, "requires a PORT argument"},
		{"missing file after others", []string{"c", "/dev/ttyS0", "w"}, "requires a FILE argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommands(tt.args)
			var usageErr *UsageError
			assert.ErrorAs(t, err, &usageErr)
			assert.ErrorContains(t, err, tt.msg)
			assert.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, `connect "/dev/ttyUSB0"`, Command{Kind: Connect, Arg: "/dev/ttyUSB0"}.String())
	assert.Equal(t, "erase", Command{Kind: Erase}.String())
	assert.Equal(t, "Kind(42)", Command{Kind: 42}.String())
}

func TestParse(t *testing.T) {
	commands, opts, err := Parse([]string{
		"--baud", "57600", "connect", "/dev/ttyACM0",
		"--timeout=1s", "--width", "32", "--fill", "0x00",
		"--ack", "checksum", "--verify", "--retries", "2", "--reset", "-q",
		"write", "fw.hex",
	})
	assert.NoError(t, err)
	assert.Equal(t, []Command{{Kind: Connect, Arg: "/dev/ttyACM0"}, {Kind: Write, Arg: "fw.hex"}}, commands)

	assert.Equal(t, 57600, opts.Baud)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, 32, opts.Width)
	assert.Equal(t, uint8(0), opts.Fill)
	assert.Equal(t, "checksum", opts.Ack)
	assert.True(t, opts.Verify)
	assert.Equal(t, 2, opts.Retries)
	assert.True(t, opts.Reset)
	assert.True(t, opts.Quiet)
	assert.False(t, opts.Debug)
}

func TestParseDefaults(t *testing.T) {
	commands, opts, err := Parse([]string{"erase"})
	assert.NoError(t, err)
	assert.Equal(t, []Command{{Kind: Erase}}, commands)
	assert.Equal(t, DefaultOptions(), opts)
	assert.Equal(t, 115200, opts.Baud)
	assert.Equal(t, 250*time.Millisecond, opts.Timeout)
	assert.Equal(t, uint8(0xFF), opts.Fill)
}

func TestParseNoCommands(t *testing.T) {
	commands, _, err := Parse(nil)
	assert.NoError(t, err)
	assert.Len(t, commands, 0)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--speed", "9600", "erase"}},
		{"malformed flag value", []string{"--baud", "fast", "erase"}},
		{"fill out of range", []string{"--fill", "256", "erase"}},
		{"width too large", []string{"--width", "256", "erase"}},
		{"width zero", []string{"--width", "0", "erase"}},
		{"unknown ack mode", []string{"--ack", "crc", "erase"}},
		{"negative retries", []string{"--retries", "-1", "erase"}},
		{"zero timeout", []string{"--timeout", "0s", "erase"}},
		{"unknown command", []string{"program", "fw.hex"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.args)
			assert.Error(t, err)
			assert.Equal(t, ExitUsage, ExitCode(err))
		})
	}
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for _, want := range []string{
		"c, connect PORT",
		"w, write FILE",
		"h, help",
		"Exit codes:",
		" 24 Invalid device memory location",
		"  0 No errors, all done",
	} {
		assert.Contains(t, usage, want)
	}
}
