package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	gamePrefix     = "game/"
)

// ErrGameExists is returned when a game name is already archived.
var ErrGameExists = errors.New("game already recorded")

// ErrGameNotFound is returned by LoadGame for an unknown name.
var ErrGameNotFound = errors.New("game not found")

// Preferences stores the CLI driver settings.
type Preferences struct {
	ColorOutput bool      `json:"color_output"`
	MaxPlies    int       `json:"max_plies"`
	LastPlayed  time.Time `json:"last_played"`
}

// DefaultPreferences returns default driver preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		ColorOutput: true,
		MaxPlies:    400,
	}
}

// GameRecord is the archived form of a finished (or abandoned) game.
type GameRecord struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Winner   string        `json:"winner,omitempty"`
	Plies    int           `json:"plies"`
	Moves    []string      `json:"moves"`
	StartFEN string        `json:"start_fen"`
	FinalFEN string        `json:"final_fen"`
	Duration time.Duration `json:"duration"`
	PlayedAt time.Time     `json:"played_at"`
}

// NewGameRecord captures the current state of g under name.
func NewGameRecord(name string, g *game.Game, d time.Duration) GameRecord {
	rec := GameRecord{
		Name:     name,
		Status:   g.Status().String(),
		StartFEN: g.StartFEN(),
		FinalFEN: g.FEN(),
		Duration: d,
		PlayedAt: time.Now(),
	}
	if w, ok := g.Winner(); ok {
		rec.Winner = w.String()
	}
	for _, ply := range g.History() {
		s := ply.Move.String()
		if ply.Promotion != board.Empty {
			s += string(ply.Promotion.Char())
		}
		rec.Moves = append(rec.Moves, s)
	}
	rec.Plies = len(rec.Moves)
	return rec
}

// Stats aggregates the results of every recorded game.
type Stats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	Unfinished    int            `json:"unfinished"`
	DrawsByReason map[string]int `json:"draws_by_reason"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
}

// NewStats returns empty statistics
func NewStats() *Stats {
	return &Stats{DrawsByReason: make(map[string]int)}
}

// AveragePlies returns the mean game length in plies.
func (s *Stats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves driver preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads driver preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	_, err := s.get(keyStats, stats)
	return stats, err
}

// RecordGame archives rec and folds it into the statistics in one transaction.
func (s *Storage) RecordGame(rec GameRecord) error {
	key := []byte(gamePrefix + rec.Name)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%s: %w", rec.Name, ErrGameExists)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		stats := NewStats()
		if err := getTxn(txn, keyStats, stats); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		stats.add(rec)

		if err := setTxn(txn, key, rec); err != nil {
			return err
		}
		return setTxn(txn, []byte(keyStats), stats)
	})
}

func (s *Stats) add(rec GameRecord) {
	s.GamesPlayed++
	s.TotalPlies += rec.Plies
	if rec.Plies > s.LongestGame {
		s.LongestGame = rec.Plies
	}
	if s.DrawsByReason == nil {
		s.DrawsByReason = make(map[string]int)
	}

	switch {
	case rec.Winner == "White":
		s.WhiteWins++
	case rec.Winner == "Black":
		s.BlackWins++
	case rec.Status == game.Ongoing.String():
		s.Unfinished++
	default:
		s.Draws++
		s.DrawsByReason[rec.Status]++
	}
}

// LoadGame returns the archived game with the given name.
func (s *Storage) LoadGame(name string) (*GameRecord, error) {
	rec := &GameRecord{}
	found, err := s.get(gamePrefix+name, rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", name, ErrGameNotFound)
	}
	return rec, nil
}

// ExportGame writes the archived game as a plain move list to
// dir/<name>.txt and returns the file path. An empty dir means GetExportDir.
// The file holds the starting FEN, one coordinate move per line, and the
// final FEN followed by the result.
func (s *Storage) ExportGame(name, dir string) (string, error) {
	rec, err := s.LoadGame(name)
	if err != nil {
		return "", err
	}
	if dir == "" {
		if dir, err = GetExportDir(); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s\n", rec.Name, rec.PlayedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "start %s\n", rec.StartFEN)
	for i, m := range rec.Moves {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m)
	}
	fmt.Fprintf(&sb, "final %s\n", rec.FinalFEN)
	result := rec.Status
	if rec.Winner != "" {
		result += " " + rec.Winner
	}
	fmt.Fprintf(&sb, "result %s\n", result)

	path := filepath.Join(dir, rec.Name+".txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", fmt.Errorf("export %s: %w", rec.Name, err)
	}
	return path, nil
}

// ListGames returns the names of every archived game in key order.
func (s *Storage) ListGames() ([]string, error) {
	var names []string
	prefix := []byte(gamePrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return names, err
}

func (s *Storage) put(key string, v any) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return setTxn(txn, []byte(key), v)
	})
}

// get decodes the value under key into v, reporting whether the key existed.
func (s *Storage) get(key string, v any) (bool, error) {
	found := true
	err := s.db.View(func(txn *badger.Txn) error {
		err := getTxn(txn, key, v)
		if err == badger.ErrKeyNotFound {
			found = false
			return nil // Use defaults
		}
		return err
	})
	return found, err
}

func setTxn(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func getTxn(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}
