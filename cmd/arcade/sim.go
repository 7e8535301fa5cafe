package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/games/arcade"
	"github.com/vovakirdan/spark-arcade/internal/registry"
	"github.com/vovakirdan/spark-arcade/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimRuns     int
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Let the autopilot play a game headlessly",
	Long: `Run a game without a terminal UI, driven by the built-in autopilot.
Useful for checking a custom config or a difficulty preset.

The simulation advances at the --fps step as fast as it can. Each run ends
at game over or after --duration of simulated time.

Examples:
  arcade sim rush
  arcade sim spark --runs 5 --seed 42
  arcade sim orbs --config ./orbs.yaml --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", time.Minute, "Maximum simulated time per run")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store results in the scores database")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// simResult summarizes one autopilot run.
type simResult struct {
	Score   int
	Elapsed time.Duration
	Ended   bool
	Events  map[string]int
}

func runSim(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog := mustLogging(false)
	defer closeLog()

	var store core.Store = core.NewMemoryStore()
	var db *storage.Store
	if flagSimSave {
		if db = openStore(); db != nil {
			defer db.Close()
			store = db
		}
	}

	width, height := terminalSize()
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	dt := time.Second / time.Duration(fps)

	for run := 0; run < flagSimRuns; run++ {
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		cab, ok := game.(*arcade.Cabinet)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %q cannot be played by the autopilot\n", gameID)
			os.Exit(1)
		}

		seed := flagSeed
		if seed != 0 {
			seed += int64(run)
		}
		cab.Reset(core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: fps, Seed: seed, Store: store})

		res := simulate(cab, arcade.NewPilot(), dt, flagSimDuration)
		printResult(run+1, res)

		if db != nil && res.Ended && res.Score > 0 {
			st := cab.State()
			if _, err := db.SaveScore(gameID, st.RunID, st.Score, st.Duration); err != nil {
				log.Warn("score not saved", "err", err)
			}
		}
	}
}

// simulate steps the cabinet with the pilot until the run ends or the
// time limit passes.
func simulate(cab *arcade.Cabinet, pilot *arcade.Pilot, dt, limit time.Duration) simResult {
	res := simResult{Events: make(map[string]int)}
	mode := cab.Config().Rules.Actor.Mode

	for {
		step := cab.Step(pilot.Decide(cab.Snapshot(), mode), dt)
		for _, e := range step.Events {
			kind, _, _ := strings.Cut(e.String(), " ")
			res.Events[kind]++
		}
		if step.State.GameOver {
			res.Ended = true
			break
		}
		if step.State.Started && step.State.Duration >= limit {
			break
		}
	}

	st := cab.State()
	res.Score, res.Elapsed = st.Score, st.Duration
	return res
}

func printResult(run int, res simResult) {
	outcome := "time limit"
	if res.Ended {
		outcome = "game over"
	}
	fmt.Printf("Run %d: score %d after %s (%s)\n", run, res.Score, res.Elapsed.Round(10*time.Millisecond), outcome)

	kinds := make([]string, 0, len(res.Events))
	for k := range res.Events {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-14s %d\n", k, res.Events[k])
	}
}
