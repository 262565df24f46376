package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayVelocities OverlayID = "velocities"
	OverlayHitboxes   OverlayID = "hitboxes"
	OverlayGhosts     OverlayID = "ghosts"
	OverlayPerf       OverlayID = "perf"
	OverlayControls   OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display
	Default     bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}

	reg.Register(OverlayDescriptor{
		ID:          OverlayGhosts,
		Name:        "Wrap Ghosts",
		Description: "Draw copies of objects crossing the arena seam",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Default:     true,
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayVelocities,
		Name:        "Velocities",
		Description: "Show target velocity vectors",
		Key:         rl.KeyV,
		KeyLabel:    "V",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayHitboxes,
		Name:        "Hitboxes",
		Description: "Show full-grown target radii",
		Key:         rl.KeyB,
		KeyLabel:    "B",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Show tick phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
	})
	reg.Register(OverlayDescriptor{
		ID:          OverlayControls,
		Name:        "Controls",
		Description: "Show the key legend",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Default:     true,
	})
	return reg
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.enabled[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
