package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/shatter/config"
	"github.com/pthm-cable/shatter/game"
	"github.com/pthm-cable/shatter/spectate"
	"github.com/pthm-cable/shatter/storage"
)

var (
	flagServeAddr      string
	flagServeRestart   time.Duration
	flagServeBroadcast int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream autopilot matches to websocket spectators",
	Long: `Run autopilot matches in real time and broadcast every committed
snapshot as JSON to spectators connected at /ws. A new match starts a short
while after the agent is destroyed.

Examples:
  shatter serve
  shatter serve --addr :9000 --broadcast-every 2`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().DurationVar(&flagServeRestart, "restart-delay", 3*time.Second, "Pause between matches")
	serveCmd.Flags().IntVar(&flagServeBroadcast, "broadcast-every", 1, "Broadcast every Nth frame")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Cfg()
	ctx := cmd.Context()

	store, err := storage.Open(dbPath())
	if err != nil {
		slog.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	hub := spectate.NewHub()
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok viewers=%d\n", hub.Viewers())
	})
	srv := &http.Server{Addr: flagServeAddr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("spectator server listening", "addr", flagServeAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	loopErr := serveMatches(ctx, cfg, hub, store)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("server shutdown", "error", err)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	default:
	}
	return loopErr
}

// serveMatches runs matches back to back at wall-clock speed until ctx ends.
func serveMatches(ctx context.Context, cfg *config.Config, hub *spectate.Hub, store *storage.Store) error {
	seed := resolveSeed()
	g := game.NewGame(cfg, game.GameOptions{Seed: seed})
	defer g.Close()
	pilot := game.NewAutopilot(seed)

	frame := time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	var endedAt time.Time
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now

			if g.Over() {
				if endedAt.IsZero() {
					endedAt = now
					if store != nil {
						if _, err := store.SaveMatch(ctx, "serve", "", g.Summary()); err != nil {
							slog.Error("failed to save match", "error", err)
						}
					}
				}
				if now.Sub(endedAt) < flagServeRestart {
					continue
				}
				seed++
				g.StartNewGame(seed)
				pilot = game.NewAutopilot(seed)
				endedAt = time.Time{}
			}

			// One input per frame, as a player would give.
			g.SetInput(pilot.Decide(g))
			if g.Advance(elapsed) == 0 {
				continue
			}

			frames++
			if frames%max(flagServeBroadcast, 1) != 0 {
				continue
			}
			if err := hub.Broadcast(g.Seed(), g.Snapshot()); err != nil {
				return err
			}
		}
	}
}
