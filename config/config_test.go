package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Derived.MaxStage != 2 {
		t.Errorf("MaxStage = %d, want 2", cfg.Derived.MaxStage)
	}
	if cfg.Derived.InitialStage != 2 {
		t.Errorf("InitialStage = %d, want 2", cfg.Derived.InitialStage)
	}
	if cfg.Derived.SpawnRadius != 1 {
		t.Errorf("SpawnRadius = %v, want 1", cfg.Derived.SpawnRadius)
	}
	if cfg.Derived.DT32 != float32(cfg.Physics.DT) {
		t.Errorf("DT32 = %v, want %v", cfg.Derived.DT32, cfg.Physics.DT)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := "arena:\n  half_width: 10\n  half_height: 10\nspawn:\n  persistence: 0.9\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Arena.HalfWidth != 10 || cfg.Arena.HalfHeight != 10 {
		t.Errorf("arena = %+v, want 10x10", cfg.Arena)
	}
	if cfg.Spawn.Persistence != 0.9 {
		t.Errorf("persistence = %v, want 0.9", cfg.Spawn.Persistence)
	}
	// Untouched keys keep their defaults
	if cfg.Projectile.Speed != 12 {
		t.Errorf("projectile speed = %v, want 12", cfg.Projectile.Speed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero mass", func(c *Config) { c.Targets.Masses[0] = 0 }, "targets.masses[0]"},
		{"negative radius", func(c *Config) { c.Targets.Radii[1] = -1 }, "targets.radii[1]"},
		{"non monotonic radii", func(c *Config) { c.Targets.Radii = []float64{1, 0.5, 2} }, "smaller than stage"},
		{"table mismatch", func(c *Config) { c.Targets.Masses = c.Targets.Masses[:2] }, "masses has 2 stages"},
		{"initial stage out of range", func(c *Config) { c.Targets.InitialStage = 3 }, "initial_stage"},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }, "physics.dt"},
		{"negative extent", func(c *Config) { c.Arena.HalfWidth = -1 }, "arena"},
		{"fragment fraction", func(c *Config) { c.Targets.FragmentStartFraction = 1 }, "fragment_start_fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default().Clone()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default().Clone()
	cfg.Physics.DT = 0
	cfg.Agent.Radius = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"physics.dt", "agent.radius"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.yaml")
	cfg := Default()
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load dumped config: %v", err)
	}
	if got.Spawn.AvoidRadius != cfg.Spawn.AvoidRadius {
		t.Errorf("avoid_radius = %v, want %v", got.Spawn.AvoidRadius, cfg.Spawn.AvoidRadius)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}
