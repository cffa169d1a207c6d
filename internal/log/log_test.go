// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func TestSupportedSubsystems(t *testing.T) {
	require.Equal(t, []string{"ADDR", "SCHK", "SCRP"}, SupportedSubsystems())
}

func TestSetLogLevels(t *testing.T) {
	SetLogLevels("debug")
	for id, logger := range subsystemLoggers {
		require.Equal(t, btclog.LevelDebug, logger.Level(), id)
	}

	SetLogLevel("SCRP", "trace")
	require.Equal(t, btclog.LevelTrace, scrpLog.Level())
	require.Equal(t, btclog.LevelDebug, addrLog.Level())

	// Unknown subsystems are ignored and unknown levels mean info.
	SetLogLevel("NOPE", "trace")
	SetLogLevel("SCHK", "loud")
	require.Equal(t, btclog.LevelInfo, SchkLog.Level())

	require.True(t, ValidLogLevel("warn"))
	require.False(t, ValidLogLevel("loud"))

	SetLogLevels("info")
}

func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "scriptcheck.log")
	require.NoError(t, InitLogRotator(logFile))
	defer func() {
		LogRotator.Close()
		LogRotator = nil
	}()

	SchkLog.Infof("rotator test")
	require.FileExists(t, logFile)
}
