package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHitStreak    BookmarkType = "hit_streak"
	BookmarkSwarm        BookmarkType = "swarm"
	BookmarkLastStand    BookmarkType = "last_stand"
	BookmarkArenaCleared BookmarkType = "arena_cleared"
)

// Bookmark marks a notable moment of a match.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	Tick        int32        `json:"tick"`
	Description string       `json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// Thresholds.
const (
	streakMinHits    = 5
	swarmMinTargets  = 10
	lastStandHealth  = 2
	clearedMinBefore = 5
)

// BookmarkDetector watches stats windows for notable moments.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	prev    WindowStats
	hasPrev bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Reset forgets all history, for a new match.
func (bd *BookmarkDetector) Reset() {
	bd.historyIdx = 0
	bd.historyFull = false
	bd.hasPrev = false
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkHitStreak(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSwarm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.hasPrev {
		if b := bd.checkLastStand(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkArenaCleared(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	bd.prev, bd.hasPrev = stats, true
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkHitStreak fires when projectile hits exceed twice the rolling average.
func (bd *BookmarkDetector) checkHitStreak(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.ProjectileHits < streakMinHits {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.ProjectileHits
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.ProjectileHits) <= avg*2 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkHitStreak,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d hits is %.1fx average (%.1f)", stats.ProjectileHits, float64(stats.ProjectileHits)/avg, avg),
	}
}

// checkSwarm fires when the live target count doubles its rolling average.
func (bd *BookmarkDetector) checkSwarm(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Targets < swarmMinTargets {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Targets
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Targets) < avg*2 {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkSwarm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d targets alive, average %.1f", stats.Targets, avg),
	}
}

// checkLastStand fires once when health first drops to the danger level.
func (bd *BookmarkDetector) checkLastStand(stats WindowStats) *Bookmark {
	if stats.Health > lastStandHealth || stats.Health <= 0 || bd.prev.Health <= lastStandHealth {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkLastStand,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Health down to %d from %d", stats.Health, bd.prev.Health),
	}
}

// checkArenaCleared fires when a busy arena is emptied.
func (bd *BookmarkDetector) checkArenaCleared(stats WindowStats) *Bookmark {
	if stats.Targets != 0 || bd.prev.Targets < clearedMinBefore {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkArenaCleared,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Cleared %d targets", bd.prev.Targets),
	}
}
