// Package subprocess implements an input source that runs an external
// program and decodes the integer codes it prints on stdout.
package subprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/registry"
)

// Name is the registry name of the subprocess source.
const Name = "subprocess"

// DefaultInterpreter runs the script when none is configured.
const DefaultInterpreter = "python"

// ErrNoScript is returned when the source is created without a script.
var ErrNoScript = errors.New("subprocess: no script given")

func init() {
	registry.Register(Name, "actions decoded from a script's stdout", New)
}

// Source runs "<interpreter> <script>" and feeds decoded actions into a
// Channel from a background goroutine.
type Source struct {
	interpreter string
	script      string
	logger      *log.Logger

	cmd    *exec.Cmd
	stdout io.ReadCloser

	running  atomic.Bool
	wg       sync.WaitGroup
	errs     chan error
	stopOnce sync.Once
	stopErr  error
}

// New is the registry factory.
func New(opts registry.Options) (registry.Source, error) {
	if opts.Script == "" {
		return nil, ErrNoScript
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	interp := opts.Interpreter
	if interp == "" {
		interp = DefaultInterpreter
	}
	return &Source{
		interpreter: interp,
		script:      opts.Script,
		logger:      opts.Logger.WithPrefix(Name),
		errs:        make(chan error, 1),
	}, nil
}

// Name returns "subprocess".
func (s *Source) Name() string {
	return Name
}

// Start spawns the process and begins decoding. Cancelling ctx kills it.
func (s *Source) Start(ctx context.Context, ch *input.Channel) error {
	cmd := exec.CommandContext(ctx, s.interpreter, s.script)
	cmd.Stderr = stderrWriter(s.logger)
	cmd.WaitDelay = time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("subprocess: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("subprocess: failed to start %s %s: %w", s.interpreter, s.script, err)
	}
	s.cmd = cmd
	s.stdout = stdout
	s.logger.Info("started", "interpreter", s.interpreter, "script", s.script, "pid", cmd.Process.Pid)

	s.running.Store(true)
	s.wg.Add(1)
	go s.read(ch)
	return nil
}

func (s *Source) read(ch *input.Channel) {
	defer s.wg.Done()

	dec := NewDecoder(s.stdout, s.logger)
	for s.running.Load() {
		a, err := dec.Next()
		if err != nil {
			if s.running.Load() {
				s.fail(err)
			}
			return
		}
		ch.Push(a)
	}
}

func (s *Source) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

// Stop kills the process, closes its pipe and waits for the reader
// goroutine. Closing the pipe also unblocks a read held open by a
// grandchild process.
func (s *Source) Stop() error {
	s.stopOnce.Do(func() {
		if s.cmd == nil {
			return
		}
		s.running.Store(false)

		if err := s.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			s.logger.Warn("kill failed", "err", err)
		}
		_ = s.stdout.Close()
		s.wg.Wait()

		// The process was killed, so a non-zero exit is expected.
		var exitErr *exec.ExitError
		if err := s.cmd.Wait(); err != nil && !errors.As(err, &exitErr) {
			s.stopErr = fmt.Errorf("subprocess: wait: %w", err)
		}
		s.logger.Info("stopped")
	})
	return s.stopErr
}

// Err delivers the decoding error that ended the stream.
func (s *Source) Err() <-chan error {
	return s.errs
}

// stderrWriter forwards the child's stderr to the logger as warnings.
func stderrWriter(logger *log.Logger) io.Writer {
	return logger.With("stream", "stderr").
		StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}).
		Writer()
}
