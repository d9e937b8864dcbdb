package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	quiet, err := New(false)
	require.NoError(t, err)
	require.False(t, quiet.Core().Enabled(zap.DebugLevel))
	require.True(t, quiet.Core().Enabled(zap.InfoLevel))

	verbose, err := New(true)
	require.NoError(t, err)
	require.True(t, verbose.Core().Enabled(zap.DebugLevel))
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	require.False(t, log.Core().Enabled(zap.ErrorLevel))
}
