package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/input"
)

type scriptedSource struct {
	name    string
	actions []core.Action
	errs    chan error
}

func (s *scriptedSource) Name() string { return s.name }

func (s *scriptedSource) Start(_ context.Context, ch *input.Channel) error {
	for _, a := range s.actions {
		ch.Push(a)
	}
	return nil
}

func (s *scriptedSource) Stop() error { return nil }

func (s *scriptedSource) Err() <-chan error { return s.errs }

func TestRegisterAndCreate(t *testing.T) {
	var got Options
	Register("test-scripted", "scripted actions", func(opts Options) (Source, error) {
		got = opts
		return &scriptedSource{
			name:    "test-scripted",
			actions: []core.Action{core.ActionUp, core.ActionDown},
			errs:    make(chan error, 1),
		}, nil
	})

	if !Exists("test-scripted") {
		t.Fatal("Exists() = false after Register()")
	}

	src, err := Create("test-scripted", Options{Script: "bot.py"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got.Script != "bot.py" {
		t.Errorf("factory Options.Script = %q, expected bot.py", got.Script)
	}
	if got.Logger == nil {
		t.Error("Create() should default a nil logger")
	}

	ch := input.NewChannel()
	if err := src.Start(context.Background(), ch); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if ch.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", ch.Len())
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-source", Options{})
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("Create() error = %v, expected ErrUnknownSource", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Source, error) { return nil, nil }
	Register("test-dup", "", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("test-dup", "", f)
}

func TestListSorted(t *testing.T) {
	f := func(Options) (Source, error) { return nil, nil }
	Register("test-zz", "last", f)
	Register("test-aa", "first", f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}

	found := false
	for _, info := range list {
		if info.Name == "test-aa" {
			found = true
			if info.Description != "first" {
				t.Errorf("Description = %q, expected first", info.Description)
			}
		}
	}
	if !found {
		t.Error("List() missing test-aa")
	}
}
