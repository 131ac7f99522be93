package keyboard

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// Terminal is the controlling terminal switched into raw mode so single
// key presses arrive without waiting for Enter.
type Terminal struct {
	f     *os.File
	state *term.State

	closeOnce sync.Once
	closeErr  error
}

// OpenTerminal opens /dev/tty in raw mode. A file opened by path is
// registered with the runtime poller, so Close interrupts a pending Read.
func OpenTerminal() (*Terminal, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("keyboard: open terminal: %w", err)
	}

	t := &Terminal{f: f}
	err = t.control(func(fd int) error {
		if !term.IsTerminal(fd) {
			return fmt.Errorf("keyboard: %s is not a terminal", f.Name())
		}
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("keyboard: raw mode: %w", err)
		}
		t.state = state
		return nil
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

// control runs fn with the raw descriptor. File.Fd would switch the file
// back to blocking mode.
func (t *Terminal) control(fn func(fd int) error) error {
	rc, err := t.f.SyscallConn()
	if err != nil {
		return err
	}
	var fnErr error
	if err := rc.Control(func(fd uintptr) { fnErr = fn(int(fd)) }); err != nil {
		return err
	}
	return fnErr
}

// Read reads raw key bytes.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.f.Read(p)
}

// Size returns the terminal width and height.
func (t *Terminal) Size() (w, h int, err error) {
	err = t.control(func(fd int) error {
		var serr error
		w, h, serr = term.GetSize(fd)
		return serr
	})
	return w, h, err
}

// Close restores the previous terminal mode and closes the device. Later
// calls return the first result.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.control(func(fd int) error {
			return term.Restore(fd, t.state)
		})
		if cerr := t.f.Close(); t.closeErr == nil {
			t.closeErr = cerr
		}
	})
	return t.closeErr
}
