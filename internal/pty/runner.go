// Package pty runs a program inside a pseudo-terminal and lets callers
// type into it and wait for text to appear. It drives the end-to-end tests
// of the terminal UI.
package pty

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// maxOutput caps how much output a Session retains.
const maxOutput = 1 << 20

// Common key sequences.
const (
	KeyEnter     = "\r"
	KeyEsc       = "\x1b"
	KeyCtrlC     = "\x03"
	KeyBackspace = "\x7f"
)

// ErrClosed is returned when writing to a finished session.
var ErrClosed = errors.New("pty session closed")

// ansiRe matches CSI, OSC, charset and keypad-mode sequences plus carriage returns.
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// StripANSI removes terminal control sequences from s.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// Session is a running process attached to a PTY.
type Session struct {
	cmd *exec.Cmd
	f   *os.File

	mu     sync.Mutex
	cond   *sync.Cond
	out    []byte
	closed bool

	exited chan struct{}
	err    error
}

// Start spawns cmd in a PTY of the given size and begins capturing output.
func Start(cmd *exec.Cmd, size Size) (*Session, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
	if err != nil {
		return nil, fmt.Errorf("start in pty: %w", err)
	}
	s := &Session{cmd: cmd, f: f, exited: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)
	go s.read()
	go func() {
		s.err = cmd.Wait()
		close(s.exited)
	}()
	return s, nil
}

func (s *Session) read() {
	buf := make([]byte, 8192)
	for {
		n, err := s.f.Read(buf)
		s.mu.Lock()
		if n > 0 {
			s.out = append(s.out, buf[:n]...)
			if over := len(s.out) - maxOutput; over > 0 {
				s.out = s.out[over:]
			}
		}
		if err != nil {
			s.closed = true
		}
		s.cond.Broadcast()
		s.mu.Unlock()
		if err != nil {
			return
		}
	}
}

// Send writes keys to the program's terminal.
func (s *Session) Send(keys string) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	_, err := s.f.Write([]byte(keys))
	return err
}

// Output returns everything captured so far with control sequences removed.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StripANSI(string(s.out))
}

// WaitFor blocks until pred holds for the stripped output or timeout elapses.
func (s *Session) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer timer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if pred(StripANSI(string(s.out))) {
			return true
		}
		if s.closed || !time.Now().Before(deadline) {
			return false
		}
		s.cond.Wait()
	}
}

// WaitForText waits until text appears in the output.
func (s *Session) WaitForText(text string, timeout time.Duration) bool {
	return s.WaitFor(func(out string) bool { return strings.Contains(out, text) }, timeout)
}

// Resize changes the terminal size.
func (s *Session) Resize(size Size) error {
	return pty.Setsize(s.f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Wait blocks until the process exits or timeout elapses. It returns the
// process error, or an error if the timeout hit first.
func (s *Session) Wait(timeout time.Duration) error {
	select {
	case <-s.exited:
		return s.err
	case <-time.After(timeout):
		return fmt.Errorf("process did not exit within %s", timeout)
	}
}

// Close kills the process if it is still running and releases the PTY.
func (s *Session) Close() error {
	select {
	case <-s.exited:
	default:
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		<-s.exited
	}
	return s.f.Close()
}
