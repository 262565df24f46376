package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.FontSize+2, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawHealthBar draws a bar with color thresholds and a current/max label.
func (r *Renderer) DrawHealthBar(x, y int32, label string, current, total int32, width int32) int32 {
	ratio := healthRatio(current, total)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 60

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFillHigh
	if ratio < 0.3 {
		barColor = r.Theme.BarFillLow
	} else if ratio < 0.6 {
		barColor = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf("%d/%d", current, total), barX+barWidth+6, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawCentered draws text horizontally centred on cx.
func (r *Renderer) DrawCentered(text string, cx, y, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, cx-w/2, y, size, color)
}

func healthRatio(current, total int32) float32 {
	if total <= 0 {
		return 0
	}
	return min(1, max(0, float32(current)/float32(total)))
}
