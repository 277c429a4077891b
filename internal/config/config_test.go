package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name         string
		debug, quiet bool
		expected     log.Level
	}{
		{"debug", true, false, log.DebugLevel},
		{"debug wins over quiet", true, true, log.DebugLevel},
		{"quiet", false, true, log.ErrorLevel},
		{"default", false, false, log.DefaultLevel()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(tt.debug, tt.quiet)
			assert.Equal(t, tt.expected, logger.Level())
		})
	}
}
