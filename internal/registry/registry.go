// Package registry provides a global registry for input source factories.
// Sources register themselves in init() functions, allowing the CLI to
// select an input adapter by name without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormaze/internal/input"
)

// ErrUnknownSource is returned by Create for an unregistered name.
var ErrUnknownSource = errors.New("registry: unknown input source")

// Source produces player actions into a Channel from some external input.
// A Source runs its own goroutine between Start and Stop.
type Source interface {
	// Name returns the identifier the source was registered under.
	Name() string

	// Start launches the producer goroutine. Decoded actions are pushed
	// into ch. Start returns an error only if the source cannot begin,
	// e.g. a subprocess that fails to spawn.
	Start(ctx context.Context, ch *input.Channel) error

	// Stop clears the running flag, releases the external resource and
	// waits for the goroutine to exit. Safe to call more than once.
	Stop() error

	// Err delivers the fatal error that ended the source, if any.
	// The channel is buffered and receives at most one value.
	Err() <-chan error
}

// Options carries everything a factory may need. Sources ignore the
// fields that do not apply to them.
type Options struct {
	Script      string      // program run by the subprocess source
	Interpreter string      // interpreter used to run Script
	Reader      io.Reader   // raw key stream for the keyboard source
	Logger      *log.Logger // nil means discard
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	Name        string
	Description string
}

// Factory creates a new, unstarted source.
type Factory func(Options) (Source, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a source factory to the registry.
// Typically called from a source's init() function.
// Panics if a source with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered sources, sorted by name.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for name := range factories {
		result = append(result, SourceInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a source by name.
func Create(name string, opts Options) (Source, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, name)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return f(opts)
}

// Exists checks if a source with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
