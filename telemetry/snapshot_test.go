package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/shatter/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	dump := &Dump{
		Version:    SnapshotVersion,
		Seed:       42,
		Reason:     "agent destroyed",
		HalfWidth:  20,
		HalfHeight: 11.25,
		State: components.Snapshot{
			Tick:   1000,
			Health: 0,
			Score:  37,
			Targets: []components.TargetView{
				{Position: components.Vec2{X: 1, Y: -2}, Radius: 0.5, TargetRadius: 0.7, Stage: 1, Archetype: 3, Alive: true},
			},
			Projectiles: []components.ProjectileView{
				{Position: components.Vec2{X: 0.25, Y: 4}, Exploded: true},
			},
			Explosions: []components.Explosion{{Position: components.Vec2{X: 0.25, Y: 4}}},
		},
	}

	path, err := SaveSnapshot(dump, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_1000_agent_destroyed.json" {
		t.Errorf("file name = %s", filepath.Base(path))
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != 42 || loaded.State.Score != 37 || loaded.State.Tick != 1000 {
		t.Errorf("loaded header = %+v", loaded)
	}
	if len(loaded.State.Targets) != 1 || loaded.State.Targets[0] != dump.State.Targets[0] {
		t.Errorf("targets = %+v, want %+v", loaded.State.Targets, dump.State.Targets)
	}
	if len(loaded.State.Projectiles) != 1 || !loaded.State.Projectiles[0].Exploded {
		t.Errorf("projectiles = %+v", loaded.State.Projectiles)
	}
	if len(loaded.State.Explosions) != 1 {
		t.Errorf("explosions = %+v", loaded.State.Explosions)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSnapshot(path)
	if err == nil || !strings.Contains(err.Error(), "version 99") {
		t.Errorf("LoadSnapshot error = %v, want version error", err)
	}
}
