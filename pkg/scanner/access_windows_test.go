//go:build windows

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExecutableWindows(t *testing.T) {
	t.Setenv("PATHEXT", ".COM;.EXE;.BAT;.CMD;.PS1")

	assert.True(t, IsExecutable(`C:\tools\run.EXE`))
	assert.True(t, IsExecutable(`C:\tools\setup.ps1`))
	assert.False(t, IsExecutable(`C:\tools\notes.txt`))
	assert.False(t, IsExecutable(`C:\tools\Makefile`))
}

func TestExecutableExtensionsDefault(t *testing.T) {
	t.Setenv("PATHEXT", "")

	assert.Equal(t, defaultExecutableExtensions, executableExtensions())
}
