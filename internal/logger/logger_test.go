package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := NewLogger(level)
		require.NoError(t, err, "level %s", level)
		assert.NotNil(t, log)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger("chatty")
	assert.Error(t, err)
}
