package subprocess

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/core"
)

// Marker precedes the action stream; everything before it is preamble.
const Marker = '#'

// Sentinel is emitted by producers when no gesture was recognised. It is
// dropped and re-arms the duplicate filter.
const Sentinel = 998

var (
	// ErrUnknownCode is returned for an integer outside 0..4.
	ErrUnknownCode = errors.New("subprocess: unknown input code")
	// ErrUnexpectedEOF is returned when the stream ends.
	ErrUnexpectedEOF = errors.New("subprocess: unexpected end of pipe")
)

// codes maps wire values to actions.
var codes = [...]core.Action{
	0: core.ActionLeft,
	1: core.ActionUp,
	2: core.ActionDown,
	3: core.ActionRight,
	4: core.ActionToggle,
}

// Decoder turns a producer's text stream into actions. A value equal to
// the previously accepted one is dropped, so a producer may repeat its
// current reading at any rate.
type Decoder struct {
	r      *bufio.Reader
	logger *log.Logger
	synced bool
	prev   int
}

// NewDecoder creates a Decoder reading from r. A nil logger discards.
func NewDecoder(r io.Reader, logger *log.Logger) *Decoder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Decoder{
		r:      bufio.NewReader(r),
		logger: logger,
		prev:   Sentinel,
	}
}

// Next blocks until the next accepted action. Every error is fatal for
// the stream.
func (d *Decoder) Next() (core.Action, error) {
	if !d.synced {
		if err := d.skipPreamble(); err != nil {
			return core.ActionNone, err
		}
		d.synced = true
	}

	for {
		var v int
		if _, err := fmt.Fscan(d.r, &v); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return core.ActionNone, ErrUnexpectedEOF
			}
			return core.ActionNone, fmt.Errorf("%w: %v", ErrUnknownCode, err)
		}
		d.logger.Debug("input value", "value", v)

		if v == Sentinel {
			d.prev = Sentinel
			continue
		}
		if v == d.prev {
			continue
		}
		d.prev = v

		if v < 0 || v >= len(codes) {
			return core.ActionNone, fmt.Errorf("%w: %d", ErrUnknownCode, v)
		}
		return codes[v], nil
	}
}

// skipPreamble consumes input up to and including Marker, logging the
// discarded text line by line.
func (d *Decoder) skipPreamble() error {
	var line []byte
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return ErrUnexpectedEOF
		}
		switch b {
		case Marker:
			if len(line) > 0 {
				d.logger.Debug("preamble", "line", string(line))
			}
			return nil
		case '\n':
			d.logger.Debug("preamble", "line", string(line))
			line = line[:0]
		default:
			line = append(line, b)
		}
	}
}
