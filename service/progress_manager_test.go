package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressManager_NonTerminalWriterIsSilent(t *testing.T) {
	var buf bytes.Buffer
	pm := NewProgressManager()
	pm.SetWriter(&buf)

	assert.False(t, pm.IsInteractive())

	pm.Initialize(3)
	pm.Start()
	for i := 1; i <= 3; i++ {
		pm.Update(i, 3)
	}
	pm.Complete(true)
	pm.Close()

	assert.Empty(t, buf.String(), "no bar is drawn on a non-terminal writer")
}

func TestNoOpProgressManager(t *testing.T) {
	pm := NewNoOpProgressManager()
	assert.False(t, pm.IsInteractive())
	assert.NotPanics(t, func() {
		pm.Initialize(10)
		pm.Start()
		pm.Update(5, 10)
		pm.Complete(false)
		pm.Close()
	})
}
