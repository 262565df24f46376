package main

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/shatter/camera"
	"github.com/pthm-cable/shatter/components"
	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/game"
	"github.com/pthm-cable/shatter/renderer"
	"github.com/pthm-cable/shatter/storage"
	"github.com/pthm-cable/shatter/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a raylib window",
	Long: `Open a window and play. The agent follows the mouse and fires backward
while the left button is held. Press R to restart after being destroyed.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	ctx := cmd.Context()

	store, err := storage.Open(dbPath())
	if err != nil {
		slog.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Shatter")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(cfg, game.GameOptions{Seed: resolveSeed(), Perf: true})
	defer g.Close()

	v := newViewer(g, cfg, store)
	v.refreshHighScore(ctx)

	for !rl.WindowShouldClose() {
		v.update(ctx)
		v.draw()
	}
	if !g.Over() {
		g.End()
	}
	return nil
}

// viewer owns the window-side state of an interactive session.
type viewer struct {
	g     *game.Game
	cfg   *config.Config
	store *storage.Store

	cam        *camera.Camera
	scene      *renderer.Scene
	explosions *renderer.ExplosionRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	overlays   *ui.OverlayRegistry

	freeAim        bool
	paused         bool
	saved          bool
	restartPending bool // set by the Restart button during draw
	pausePending   bool // set by the Pause button during draw
	highScore      int
}

func newViewer(g *game.Game, cfg *config.Config, store *storage.Store) *viewer {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	cam := camera.New(w, h, g.Arena(), float32(cfg.Screen.PixelsPerUnit))
	return &viewer{
		g:          g,
		cfg:        cfg,
		store:      store,
		cam:        cam,
		scene:      renderer.NewScene(cam, float32(cfg.Projectile.Radius)),
		explosions: renderer.NewExplosionRenderer(),
		hud:        ui.NewHUD(),
		perfPanel:  ui.NewPerfPanel(int32(w)-230, 72),
		overlays:   ui.NewOverlayRegistry(),
		freeAim:    true,
	}
}

func (v *viewer) update(ctx context.Context) {
	frameDt := rl.GetFrameTime()

	if rl.IsWindowResized() {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		v.cam.Resize(w, h)
		v.perfPanel.SetPosition(int32(w)-230, 72)
	}
	v.overlays.HandleKeys()
	if rl.IsKeyPressed(rl.KeyF) {
		v.freeAim = !v.freeAim
	}
	if v.pausePending || rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
		v.pausePending = false
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + 0.1*wheel)
	}
	if v.restartPending || (rl.IsKeyPressed(rl.KeyR) && v.g.AgentDestroyed()) {
		v.restart(ctx)
		return
	}

	mouse := rl.GetMousePosition()
	v.g.SetInput(game.Input{
		Target:  v.cam.ScreenToWorld(components.Vec2{X: mouse.X, Y: mouse.Y}),
		Firing:  rl.IsMouseButtonDown(rl.MouseButtonLeft),
		FreeAim: v.freeAim,
	})

	v.g.Perf().RecordFrame()
	if v.paused {
		return
	}
	v.g.Advance(float64(frameDt))
	v.explosions.Add(v.g.FrameExplosions())
	v.explosions.Update(frameDt)

	if v.g.Over() && !v.saved {
		v.saveMatch(ctx)
	}
}

func (v *viewer) restart(ctx context.Context) {
	v.g.StartNewGame(resolveSeed())
	v.explosions.Clear()
	v.saved = false
	v.paused = false
	v.restartPending = false
	v.refreshHighScore(ctx)
}

func (v *viewer) saveMatch(ctx context.Context) {
	v.saved = true
	if v.store == nil {
		return
	}
	if _, err := v.store.SaveMatch(ctx, "play", "", v.g.Summary()); err != nil {
		slog.Error("failed to save match", "error", err)
	}
	v.refreshHighScore(ctx)
}

func (v *viewer) refreshHighScore(ctx context.Context) {
	if v.store == nil {
		return
	}
	high, err := v.store.HighScore(ctx, "play")
	if err != nil {
		slog.Warn("could not read high score", "error", err)
		return
	}
	v.highScore = high
}

func (v *viewer) draw() {
	snap := v.g.Snapshot()
	alpha := v.g.Interpolation()
	lead := alpha * v.cfg.Derived.DT32

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 20, A: 255})

	v.scene.Draw(snap, alpha, lead, renderer.SceneOptions{
		Ghosts:     v.overlays.IsEnabled(ui.OverlayGhosts),
		Velocities: v.overlays.IsEnabled(ui.OverlayVelocities),
		Hitboxes:   v.overlays.IsEnabled(ui.OverlayHitboxes),
	})
	v.explosions.Draw(v.cam)

	data := ui.HUDData{
		Score:        snap.Score,
		Health:       snap.Health,
		MaxHealth:    snap.MaxHealth,
		Targets:      len(snap.Targets),
		Projectiles:  len(snap.Projectiles),
		Tick:         snap.Tick,
		Seed:         v.g.Seed(),
		FPS:          rl.GetFPS(),
		HighScore:    v.highScore,
		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: int32(rl.GetScreenHeight()),
	}
	v.hud.Draw(data)
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perfPanel.Draw(v.g.Perf().Stats())
	}
	if v.overlays.IsEnabled(ui.OverlayControls) {
		v.hud.DrawControls(data.ScreenHeight, v.overlays)
	}
	if snap.AgentDestroyed {
		if v.hud.DrawGameOver(data) {
			v.restartPending = true
		}
	} else {
		if v.paused {
			v.hud.DrawPaused(data.ScreenWidth, data.ScreenHeight)
		}
		if v.hud.DrawPauseButton(data.ScreenWidth, v.paused) {
			v.pausePending = true
		}
	}

	rl.EndDrawing()
}
