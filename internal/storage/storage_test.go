package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/game"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func foolsMate(t *testing.T) *game.Game {
	t.Helper()
	g := game.New()
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := g.PlayString(m); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if !prefs.ColorOutput {
			t.Errorf("Expected colour output by default")
		}
		if prefs.MaxPlies != 400 {
			t.Errorf("Expected 400 max plies, got %d", prefs.MaxPlies)
		}
	})

	t.Run("NewStats", func(t *testing.T) {
		stats := NewStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.AveragePlies() != 0 {
			t.Errorf("Expected 0 average plies")
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if *prefs != *DefaultPreferences() {
		t.Errorf("Expected defaults before first save, got %+v", prefs)
	}

	prefs.ColorOutput = false
	prefs.MaxPlies = 120
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if got.ColorOutput || got.MaxPlies != 120 || got.LastPlayed.IsZero() {
		t.Errorf("Loaded preferences = %+v", got)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	mate := NewGameRecord("brave-otter", foolsMate(t), 3*time.Second)
	if mate.Winner != "Black" || mate.Status != "checkmate" || mate.Plies != 4 {
		t.Fatalf("Unexpected record %+v", mate)
	}
	if err := s.RecordGame(mate); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(mate); !errors.Is(err, ErrGameExists) {
		t.Errorf("Duplicate record: err = %v", err)
	}

	drawn, err := game.FromFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := drawn.PlayString("e1e2"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(NewGameRecord("calm-heron", drawn, time.Second)); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(NewGameRecord("idle-lynx", game.New(), 0)); err != nil {
		t.Fatal(err)
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 3 || stats.BlackWins != 1 || stats.Draws != 1 || stats.Unfinished != 1 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.DrawsByReason["insufficient material"] != 1 {
		t.Errorf("DrawsByReason = %v", stats.DrawsByReason)
	}
	if stats.LongestGame != 4 || stats.TotalPlies != 5 {
		t.Errorf("LongestGame = %d, TotalPlies = %d", stats.LongestGame, stats.TotalPlies)
	}

	loaded, err := s.LoadGame("brave-otter")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Moves) != 4 || loaded.Moves[3] != "d8h4" || loaded.FinalFEN != mate.FinalFEN {
		t.Errorf("Loaded game = %+v", loaded)
	}
	if _, err := s.LoadGame("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame(missing) err = %v", err)
	}

	names, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"brave-otter", "calm-heron", "idle-lynx"}
	if len(names) != len(want) {
		t.Fatalf("ListGames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListGames = %v, want %v", names, want)
		}
	}
}

func TestPromotionRecorded(t *testing.T) {
	g, err := game.FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.PlayString("a7a8n"); err != nil {
		t.Fatal(err)
	}
	rec := NewGameRecord("quick-fox", g, 0)
	if len(rec.Moves) != 1 || rec.Moves[0] != "a7a8n" {
		t.Errorf("Moves = %v", rec.Moves)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open(%s): %v", dir, err)
	}
	if err := s.RecordGame(NewGameRecord("solid-crane", foolsMate(t), 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.LoadGame("solid-crane"); err != nil {
		t.Errorf("Game lost across reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	t.Setenv("APPDATA", base)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	for name, get := range map[string]func() (string, error){
		"db":    GetDatabaseDir,
		"games": GetExportDir,
	} {
		dir, err := get()
		if err != nil {
			t.Fatalf("%s dir: %v", name, err)
		}
		if filepath.Dir(dir) != dataDir || filepath.Base(dir) != name {
			t.Errorf("%s dir = %s, want under %s", name, dir, dataDir)
		}
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("%s dir not created: %v", name, err)
		}
	}
	t.Logf("Data directory: %s", dataDir)
}

func TestExportGame(t *testing.T) {
	s := openTest(t)
	if err := s.RecordGame(NewGameRecord("fools-mate", foolsMate(t), time.Second)); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path, err := s.ExportGame("fools-mate", dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "fools-mate.txt") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"start rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1\n",
		"1. f2f3\n",
		"4. d8h4\n",
		"result checkmate Black\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Export missing %q:\n%s", want, text)
		}
	}

	if _, err := s.ExportGame("missing", dir); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("ExportGame(missing) err = %v", err)
	}
}
