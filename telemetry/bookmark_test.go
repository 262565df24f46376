package telemetry

import (
	"testing"
)

func hasBookmark(bookmarks []Bookmark, bt BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == bt {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HitStreak(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 250), ProjectileHits: 2, Health: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1250, ProjectileHits: 9, Health: 10})
	if !hasBookmark(bookmarks, BookmarkHitStreak) {
		t.Error("expected hit_streak bookmark")
	}

	bookmarks = bd.Check(WindowStats{WindowEndTick: 1500, ProjectileHits: 3, Health: 10})
	if hasBookmark(bookmarks, BookmarkHitStreak) {
		t.Error("unexpected hit_streak bookmark for an ordinary window")
	}
}

func TestBookmarkDetector_Swarm(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 250), Targets: 5, Health: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1000, Targets: 14, Health: 10})
	if !hasBookmark(bookmarks, BookmarkSwarm) {
		t.Error("expected swarm bookmark")
	}
}

func TestBookmarkDetector_LastStand(t *testing.T) {
	tests := []struct {
		name   string
		before int
		after  int
		want   bool
	}{
		{"drop into danger", 5, 2, true},
		{"already in danger", 2, 1, false},
		{"still healthy", 5, 3, false},
		{"destroyed", 5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			bd.Check(WindowStats{WindowEndTick: 250, Health: tt.before})
			got := hasBookmark(bd.Check(WindowStats{WindowEndTick: 500, Health: tt.after}), BookmarkLastStand)
			if got != tt.want {
				t.Errorf("last_stand = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookmarkDetector_ArenaCleared(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 250, Targets: 6, Health: 10})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Targets: 0, Health: 10})
	if !hasBookmark(bookmarks, BookmarkArenaCleared) {
		t.Error("expected arena_cleared bookmark")
	}

	bd.Reset()
	bookmarks = bd.Check(WindowStats{WindowEndTick: 250, Targets: 0, Health: 10})
	if hasBookmark(bookmarks, BookmarkArenaCleared) {
		t.Error("arena_cleared fired without history after Reset")
	}
}
