package keyboard

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/input"
	"github.com/vovakirdan/colormaze/internal/registry"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		key      rune
		expected core.Action
	}{
		{'w', core.ActionUp},
		{'W', core.ActionUp},
		{'s', core.ActionDown},
		{'a', core.ActionLeft},
		{'D', core.ActionRight},
		{'x', core.ActionToggle},
		{'X', core.ActionToggle},
		{'z', core.ActionNone},
		{' ', core.ActionNone},
	}

	for _, tc := range tests {
		if got := Decode(tc.key); got != tc.expected {
			t.Errorf("Decode(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func waitErr(t *testing.T, src registry.Source) error {
	t.Helper()
	select {
	case err := <-src.Err():
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("source did not report")
		return nil
	}
}

func TestSourcePushesKeysUntilQuit(t *testing.T) {
	src, err := registry.Create(Name, registry.Options{Reader: strings.NewReader("wz dxq a")})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer src.Stop()

	ch := input.NewChannel()
	if err := src.Start(context.Background(), ch); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if err := waitErr(t, src); !errors.Is(err, ErrQuit) {
		t.Fatalf("Err() = %v, expected ErrQuit", err)
	}

	expected := []core.Action{core.ActionUp, core.ActionRight, core.ActionToggle}
	if ch.Len() != len(expected) {
		t.Fatalf("Len() = %d, expected %d", ch.Len(), len(expected))
	}
	for i, want := range expected {
		if got, _ := ch.TryPop(); got != want {
			t.Errorf("action %d = %v, expected %v", i, got, want)
		}
	}
}

func TestSourceEOFQuits(t *testing.T) {
	src, err := New(registry.Options{Reader: strings.NewReader("s")})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer src.Stop()

	ch := input.NewChannel()
	if err := src.Start(context.Background(), ch); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := waitErr(t, src); !errors.Is(err, ErrQuit) {
		t.Errorf("Err() = %v, expected ErrQuit", err)
	}
	if a, ok := ch.TryPop(); !ok || a != core.ActionDown {
		t.Errorf("TryPop() = %v, %v; expected Down", a, ok)
	}
}

func TestStopClosesReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	src, err := New(registry.Options{Reader: pr})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	ch := input.NewChannel()
	if err := src.Start(context.Background(), ch); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := pw.Write([]byte("a")); err != nil {
		t.Fatalf("write: %v", err)
	}

	done := make(chan struct{})
	go func() {
		src.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() blocked on a pending read")
	}

	select {
	case err := <-src.Err():
		t.Errorf("Err() after Stop() = %v, expected nothing", err)
	default:
	}
}

func TestNewRequiresReader(t *testing.T) {
	if _, err := New(registry.Options{}); !errors.Is(err, ErrNoReader) {
		t.Errorf("New() error = %v, expected ErrNoReader", err)
	}
}
