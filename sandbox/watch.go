package sandbox

import (
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/instanced/prefabs"
)

// Watch reloads the scene whenever a file under the on-disk prefab directory
// changes. Without that directory there is nothing to watch and Watch is a
// no-op.
func (s *Sandbox) Watch() error {
	if s.watcher != nil {
		return nil
	}
	root := prefabs.DiskRoot
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil
	}
	dirs := []string{root}
	if info, err := os.Stat(filepath.Join(root, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(root, "scripts"))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

func (s *Sandbox) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

// pollWatcher drains pending file events without blocking and reloads once.
func (s *Sandbox) pollWatcher() {
	if s.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if filepath.Base(name) == filepath.Base(s.cfg.Models) {
				log.Printf("sandbox: %s changed; models are fixed at startup, restart to apply", name)
				continue
			}
			if s.cfg.Debug {
				log.Printf("sandbox: %s changed", name)
			}
			changed = true
		case err := <-s.watcher.Errors:
			if err != nil {
				log.Printf("sandbox: watch: %v", err)
			}
		default:
			if changed {
				if err := s.Reload(); err != nil {
					log.Printf("sandbox: reload failed, keeping previous scene: %v", err)
				}
			}
			return
		}
	}
}
