// Package keyboard implements an input source reading single key presses
// from a raw terminal.
package keyboard

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/registry"
)

// Name is the registry name of the keyboard source.
const Name = "keyboard"

var (
	// ErrQuit is reported when the player presses q, Ctrl-C or the
	// stream ends.
	ErrQuit = errors.New("keyboard: quit")
	// ErrNoReader is returned when the source is created without a reader.
	ErrNoReader = errors.New("keyboard: no reader")
)

const ctrlC = 0x03

func init() {
	registry.Register(Name, "w/a/s/d to move, x to switch color, q to quit", New)
}

// Decode maps a key to an action. Unknown keys return ActionNone.
func Decode(r rune) core.Action {
	switch r {
	case 'w', 'W':
		return core.ActionUp
	case 's', 'S':
		return core.ActionDown
	case 'a', 'A':
		return core.ActionLeft
	case 'd', 'D':
		return core.ActionRight
	case 'x', 'X':
		return core.ActionToggle
	default:
		return core.ActionNone
	}
}

// IsQuit reports whether r ends the session.
func IsQuit(r rune) bool {
	return r == 'q' || r == 'Q' || r == ctrlC
}

// Source reads keys from an io.Reader. When the reader is also an
// io.Closer, Stop closes it to interrupt a pending read; otherwise the
// goroutine exits on the next key.
type Source struct {
	r      io.Reader
	logger *log.Logger

	running  atomic.Bool
	started  bool
	wg       sync.WaitGroup
	errs     chan error
	stopOnce sync.Once
}

// New is the registry factory.
func New(opts registry.Options) (registry.Source, error) {
	if opts.Reader == nil {
		return nil, ErrNoReader
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Source{
		r:      opts.Reader,
		logger: opts.Logger.WithPrefix(Name),
		errs:   make(chan error, 1),
	}, nil
}

// Name returns "keyboard".
func (s *Source) Name() string {
	return Name
}

// Start begins reading keys in the background.
func (s *Source) Start(ctx context.Context, ch *input.Channel) error {
	s.running.Store(true)
	s.started = true
	s.wg.Add(1)
	go s.read(ctx, ch)
	return nil
}

func (s *Source) read(ctx context.Context, ch *input.Channel) {
	defer s.wg.Done()

	br := bufio.NewReader(s.r)
	for s.running.Load() && ctx.Err() == nil {
		r, _, err := br.ReadRune()
		if err != nil {
			if s.running.Load() {
				s.logger.Debug("read ended", "err", err)
				s.report(ErrQuit)
			}
			return
		}
		if IsQuit(r) {
			s.report(ErrQuit)
			return
		}
		if a := Decode(r); a != core.ActionNone {
			ch.Push(a)
		}
	}
}

func (s *Source) report(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// Stop ends the source. It waits for the reader goroutine only when the
// reader can be closed.
func (s *Source) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.running.Store(false)
		if !s.started {
			return
		}
		c, ok := s.r.(io.Closer)
		if !ok {
			return
		}
		err = c.Close()
		s.wg.Wait()
	})
	return err
}

// Err delivers ErrQuit when the player asked to leave.
func (s *Source) Err() <-chan error {
	return s.errs
}
