//go:build unix

package pty

import (
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[?25l\x1b[1;31mSomething went wrong\x1b[0m\r\n\x1b]0;title\x07\x1b(Bdone\x1b="
	assert.Equal(t, "Something went wrong\ndone", StripANSI(in))
}

func TestSession_SendAndWait(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	s, err := Start(exec.Command(sh, "-c", `printf 'ready\n'; read line; printf 'got:%s\n' "$line"`), Size{Rows: 24, Cols: 80})
	require.NoError(t, err)
	defer s.Close()

	require.True(t, s.WaitForText("ready", 5*time.Second), "output: %q", s.Output())
	require.NoError(t, s.Send("hello"+KeyEnter))
	assert.True(t, s.WaitForText("got:hello", 5*time.Second), "output: %q", s.Output())
	assert.NoError(t, s.Wait(5*time.Second))
}

func TestSession_WaitForTimesOut(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	s, err := Start(exec.Command(sh, "-c", "sleep 5"), Size{Rows: 24, Cols: 80})
	require.NoError(t, err)
	defer s.Close()

	start := time.Now()
	assert.False(t, s.WaitFor(func(out string) bool { return strings.Contains(out, "never") }, 100*time.Millisecond))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestSession_Resize(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	s, err := Start(exec.Command(sh, "-c", "sleep 5"), Size{Rows: 24, Cols: 80})
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Resize(Size{Rows: 40, Cols: 120}))
}
