package ui

import (
	"fmt"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shatter/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score        int32
	Health       int32
	MaxHealth    int32
	Targets      int
	Projectiles  int
	Tick         int32
	Seed         int64
	FPS          int32
	HighScore    int
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders score, health and match info.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding

	r.DrawPanel(x-4, y-4, 250, 92)
	y = r.DrawLabelValue(x, y, "Score", fmt.Sprintf("%d", data.Score))
	y = r.DrawHealthBar(x, y, "Health", data.Health, data.MaxHealth, 240)
	y = r.DrawLabelValue(x, y, "Targets", fmt.Sprintf("%d  shots %d", data.Targets, data.Projectiles))
	r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d  %d fps", data.Tick, data.FPS))

	if data.HighScore > 0 {
		text := fmt.Sprintf("Best %d", data.HighScore)
		w := rl.MeasureText(text, r.Theme.FontSize)
		rl.DrawText(text, data.ScreenWidth-w-r.Theme.Padding, r.Theme.Padding, r.Theme.FontSize, r.Theme.LabelColor)
	}
}

// DrawGameOver renders the end-of-match panel and reports whether the
// restart button was pressed.
func (h *HUD) DrawGameOver(data HUDData) bool {
	r := h.renderer
	cx := data.ScreenWidth / 2
	cy := data.ScreenHeight / 2

	rl.DrawRectangle(0, 0, data.ScreenWidth, data.ScreenHeight, rl.Fade(rl.Black, 0.5))
	r.DrawPanel(cx-160, cy-90, 320, 180)
	r.DrawCentered("DESTROYED", cx, cy-74, r.Theme.TitleFontSize, rl.Red)
	r.DrawCentered(fmt.Sprintf("Score %d", data.Score), cx, cy-20, 20, r.Theme.ValueColor)
	r.DrawCentered(fmt.Sprintf("seed %d", data.Seed), cx, cy+6, r.Theme.FontSize, r.Theme.LabelColor)

	bounds := rl.Rectangle{X: float32(cx - 60), Y: float32(cy + 36), Width: 120, Height: 32}
	return gui.Button(bounds, "Restart")
}

// DrawPauseButton renders the pause toggle in the top right corner and
// reports whether it was pressed.
func (h *HUD) DrawPauseButton(screenWidth int32, paused bool) bool {
	bounds := rl.Rectangle{X: float32(screenWidth - 100), Y: 36, Width: 90, Height: 26}
	return gui.Button(bounds, toggleText(paused, "Resume", "Pause"))
}

// DrawPaused renders the paused banner.
func (h *HUD) DrawPaused(screenWidth, screenHeight int32) {
	h.renderer.DrawCentered("PAUSED", screenWidth/2, screenHeight/2-12, h.renderer.Theme.TitleFontSize, rl.Yellow)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}

// DrawControls renders the overlay key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, overlays *OverlayRegistry) {
	parts := []string{"LMB fire", "F free aim", "Space pause", "R restart", "Wheel zoom"}
	for _, desc := range overlays.All() {
		state := "off"
		if overlays.IsEnabled(desc.ID) {
			state = "on"
		}
		parts = append(parts, fmt.Sprintf("%s %s:%s", desc.KeyLabel, desc.Name, state))
	}
	rl.DrawText(strings.Join(parts, " | "), 10, screenHeight-22, 12, rl.Gray)
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	x, y := p.x, p.y

	r.DrawPanel(x-4, y-4, 220, int32(len(telemetry.Phases)+2)*r.Theme.LineHeight+28)
	y = r.DrawSectionHeader(x, y, "Tick Phases")
	y = r.DrawLabelValue(x, y, "Tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", stats.FPS))

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Yellow
		}
		rl.DrawText(phase, x, y, r.Theme.FontSize, color)
		rl.DrawText(
			fmt.Sprintf("%s %4.1f%%", stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x+r.Theme.LabelWidth, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}
