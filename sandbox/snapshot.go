package sandbox

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"golang.design/x/clipboard"
)

// Snapshot describes the latest batch directory and the player's pose.
func (s *Sandbox) Snapshot() string {
	var b strings.Builder
	batch := s.Batch()
	fmt.Fprintf(&b, "tick %d entities %d drifters %d instances %d\n", s.tick, s.World.Len(), s.Drifters(), batch.Instances())
	if batch != nil {
		for _, r := range batch.Ranges {
			fmt.Fprintf(&b, "  %-12s base %4d count %4d\n", r.Model.Name(), r.BaseOffset, r.Count)
		}
	}
	if t, ok := ecs.Get(s.World, s.player, component.TransformComponent); ok {
		fmt.Fprintf(&b, "player x=%.3f y=%.3f angle=%.3f\n", t.X, t.Y, t.Rotation)
	}
	return b.String()
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// CopySnapshot logs a snapshot and puts it on the system clipboard when one
// is available.
func (s *Sandbox) CopySnapshot() string {
	snap := s.Snapshot()
	log.Printf("sandbox: snapshot\n%s", snap)

	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
		if clipboardErr != nil {
			log.Printf("sandbox: clipboard unavailable: %v", clipboardErr)
		}
	})
	if clipboardErr == nil {
		clipboard.Write(clipboard.FmtText, []byte(snap))
	}
	return snap
}
