package control

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	// CancelCode is the control character (Ctrl+X) that cancels as soon
	// as it is read.
	CancelCode = 0x18

	// InterruptCode is Ctrl+C. A raw terminal delivers it as input
	// instead of raising SIGINT, so it cancels too.
	InterruptCode = 0x03
)

// IsExitCommand reports whether a console line asks the agent to stop:
// a line starting with CancelCode, or exit, Exit or EXIT typed on its own.
func IsExitCommand(line string) bool {
	if len(line) > 0 && line[0] == CancelCode {
		return true
	}
	switch strings.TrimSpace(line) {
	case "exit", "Exit", "EXIT":
		return true
	}
	return false
}

// Console reads operator commands byte by byte. CancelCode cancels
// immediately; exit words cancel when their line ends.
type Console struct {
	latch
	closed  atomic.Bool
	raw     bool
	restore func() error
	once    sync.Once
	logger  *slog.Logger
}

// NewConsole starts reading r on a background goroutine. Bytes that do
// not form an exit command are ignored. The reader is consumed until EOF.
func NewConsole(r io.Reader) *Console {
	c := newConsole(false)
	go c.read(r)
	return c
}

// NewTerminalConsole switches the terminal behind f to raw mode so single
// keystrokes are delivered without Enter, then reads it like NewConsole.
// Close restores the terminal. It fails when f is not a terminal.
func NewTerminalConsole(f *os.File) (*Console, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set terminal raw mode: %w", err)
	}

	c := newConsole(true)
	c.restore = func() error { return term.Restore(fd, state) }
	go c.read(f)
	return c, nil
}

func newConsole(raw bool) *Console {
	return &Console{
		raw:    raw,
		logger: slog.Default().With("component", "control.console"),
	}
}

// Raw reports whether the console owns a terminal in raw mode.
func (c *Console) Raw() bool { return c.raw }

func (c *Console) read(r io.Reader) {
	br := bufio.NewReader(r)
	var line []byte

	for {
		b, err := br.ReadByte()
		if err != nil {
			if !c.closed.Load() && IsExitCommand(string(line)) {
				c.cancel("exit command received")
			}
			if !errors.Is(err, io.EOF) {
				c.logger.Warn("console input failed", "error", err)
			}
			return
		}
		if c.closed.Load() {
			return
		}

		switch {
		case b == CancelCode, c.raw && b == InterruptCode:
			c.cancel("cancel key received")
			return
		case b == '\n', c.raw && b == '\r':
			if IsExitCommand(string(line)) {
				c.cancel("exit command received")
				return
			}
			line = line[:0]
		default:
			line = append(line, b)
		}
	}
}

func (c *Console) cancel(msg string) {
	c.logger.Debug(msg)
	c.trip()
}

// Close stops acting on further input and restores a raw terminal. A
// read already blocked on the reader is not interrupted.
func (c *Console) Close() error {
	c.closed.Store(true)

	var err error
	c.once.Do(func() {
		if c.restore != nil {
			err = c.restore()
		}
	})
	return err
}

// NewTerminalWriter returns a writer for output shown on a raw terminal,
// which no longer turns "\n" into a carriage return plus line feed.
func NewTerminalWriter(w io.Writer) io.Writer {
	return terminalWriter{w: w}
}

type terminalWriter struct {
	w io.Writer
}

func (t terminalWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return t.w.Write(p)
	}
	if _, err := t.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
