// Package ssh turns SSH sessions into tcell terminals, one per session.
package ssh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned for sessions opened without a terminal.
var ErrNoPty = errors.New("ssh: session has no pty")

// Tty implements tcell.Tty on top of a gliderlabs/ssh session. Window
// changes reported by the client are delivered to tcell's resize callback.
type Tty struct {
	session gossh.Session
	term    string

	mu       sync.Mutex
	size     tcell.WindowSize
	onResize func()
}

// NewTty wraps s. It fails with ErrNoPty if the client did not ask for a
// terminal.
func NewTty(s gossh.Session) (*Tty, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	t := &Tty{
		session: s,
		term:    pty.Term,
		size:    windowSize(pty.Window),
	}
	go t.watch(winCh)
	return t, nil
}

// Term returns the TERM the client reported.
func (t *Tty) Term() string { return t.term }

func (t *Tty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *Tty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *Tty) Close() error                { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is opened and
// closed by the SSH server, and writes are not buffered.
func (t *Tty) Start() error { return nil }
func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	t.mu.Unlock()
}

// watch applies window changes until the session closes the channel.
func (t *Tty) watch(winCh <-chan gossh.Window) {
	for win := range winCh {
		t.mu.Lock()
		t.size = windowSize(win)
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}

func windowSize(w gossh.Window) tcell.WindowSize {
	return tcell.WindowSize{Width: w.Width, Height: w.Height}
}

// NewScreen creates an uninitialized tcell screen on t for terminal type
// term. It does not touch the process environment, so sessions with
// different terminals can start concurrently.
func NewScreen(t *Tty, term string) (tcell.Screen, error) {
	ti, err := terminfo.LookupTerminfo(term)
	if err != nil {
		return nil, fmt.Errorf("lookup terminfo %q: %w", term, err)
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(t, ti)
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return screen, nil
}
