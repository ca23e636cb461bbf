// Command chessrules plays a game of random legal moves through the rules
// core, prints it, and archives the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
	maxPlies   = flag.Int("max-plies", 0, "stop after this many plies (0 = stored preference)")
	dbDir      = flag.String("db", "", "badger directory (empty = platform data dir, - = do not record)")
	startFEN   = flag.String("fen", board.StartFEN, "starting position")
	quiet      = flag.Bool("quiet", false, "print only the final position")
	noColor    = flag.Bool("no-color", false, "disable coloured output")
	savePrefs  = flag.Bool("save-prefs", false, "store -max-plies and -no-color as defaults")
	exportDir  = flag.String("export", "", "also write the recorded game's move list to this directory (. = data dir)")
)

func main() {
	flag.Parse()
	log.SetPrefix("chessrules: ")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	store, err := openStorage(*dbDir)
	if err != nil {
		log.Printf("Warning: results will not be recorded: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		if prefs, err = store.LoadPreferences(); err != nil {
			log.Printf("Warning: using default preferences: %v", err)
			prefs = storage.DefaultPreferences()
		}
	}
	if *maxPlies > 0 {
		prefs.MaxPlies = *maxPlies
	}
	if *noColor {
		prefs.ColorOutput = false
	}
	if *savePrefs && store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: preferences not saved: %v", err)
		}
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	g, err := game.FromFEN(*startFEN)
	if err != nil {
		log.Fatalf("bad -fen: %v", err)
	}

	name := petname.Generate(2, "-")
	log.Printf("[GAME] %s seed=%d", name, *seed)

	renderer := ui.NewRenderer(!prefs.ColorOutput)
	start := time.Now()
	if err := playRandom(g, rng, prefs.MaxPlies, renderer); err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)

	fmt.Print(renderer.Render(g.Board()))
	fmt.Println(outcome(g))
	fmt.Println(g.FEN())

	if store != nil {
		recorded, err := record(store, name, g, elapsed)
		if err != nil {
			log.Fatalf("could not record game: %v", err)
		}
		if *exportDir != "" {
			dir := *exportDir
			if dir == "." {
				dir = ""
			}
			path, err := store.ExportGame(recorded, dir)
			if err != nil {
				log.Fatalf("could not export game: %v", err)
			}
			log.Printf("[STORAGE] exported %s to %s", recorded, path)
		}
	}
}

func openStorage(dir string) (*storage.Storage, error) {
	switch dir {
	case "-":
		return nil, nil
	case "":
		return storage.NewStorage()
	default:
		return storage.Open(dir)
	}
}

// playRandom plays uniformly random legal moves until the game ends or
// limit plies have been played.
func playRandom(g *game.Game, rng *rand.Rand, limit int, r *ui.Renderer) error {
	promotions := []board.PieceKind{board.Queen, board.Rook, board.Bishop, board.Knight}

	for ply := 0; g.Status() == game.Ongoing && (limit <= 0 || ply < limit); ply++ {
		moves := g.LegalMoves()
		m := moves[rng.Intn(len(moves))]

		promo := board.Empty
		if g.IsPromotion(m) {
			promo = promotions[rng.Intn(len(promotions))]
		}
		mover := g.Turn()
		if err := g.Play(m, promo); err != nil {
			return fmt.Errorf("ply %d %s: %w", ply+1, m, err)
		}

		if *quiet {
			continue
		}
		r.ClearHighlights()
		r.HighlightMove(m)
		if g.InCheck() {
			r.Highlights[g.Board().KingSquare(g.Turn())] = true
		}
		fmt.Printf("%d. %s %s\n", ply+1, mover, m)
		fmt.Print(r.Render(g.Board()))
	}
	return nil
}

func outcome(g *game.Game) string {
	if w, ok := g.Winner(); ok {
		return fmt.Sprintf("%s wins by %s", w, g.Status())
	}
	if g.Status() == game.Ongoing {
		return fmt.Sprintf("Stopped after %d plies", len(g.History()))
	}
	return fmt.Sprintf("Draw by %s", g.Status())
}

// record archives the game, renaming it when the generated name is taken, and
// returns the name it was stored under.
func record(store *storage.Storage, name string, g *game.Game, d time.Duration) (string, error) {
	rec := storage.NewGameRecord(name, g, d)
	for i := 2; ; i++ {
		err := store.RecordGame(rec)
		if !errors.Is(err, storage.ErrGameExists) {
			if err != nil {
				return "", err
			}
			break
		}
		rec.Name = fmt.Sprintf("%s-%d", name, i)
	}

	stats, err := store.LoadStats()
	if err != nil {
		return "", err
	}
	log.Printf("[STATS] recorded %s: %d games, white %d, black %d, draws %d, avg %.1f plies",
		rec.Name, stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.AveragePlies())
	return rec.Name, nil
}
