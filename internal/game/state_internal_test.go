package game

import (
	"testing"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
	"github.com/vovakirdan/colormaze/internal/maze"
)

func TestUpdatePanicsOnInvalidColor(t *testing.T) {
	m := maze.FromPaths([][]core.Action{{core.ActionRight}})
	now := time.Now()
	s := New(m, now)
	s.color = core.TileNeutral

	defer func() {
		if recover() == nil {
			t.Error("Update() with a non-player color should panic")
		}
	}()
	s.Update(m, now)
}
