package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCmd_LoadFailureIsFatal(t *testing.T) {
	withCfg(t)
	t.Cleanup(func() { serveData = ""; servePort = 0 })

	// A cleaned file that never existed: serve must exit non-zero instead of
	// starting a listener with nothing to show.
	serveData = filepath.Join(t.TempDir(), "absent.csv")
	servePort = 0

	err := serveCmd.RunE(serveCmd, nil)
	assert.Error(t, err)
}
