// Package arcade runs a configured simulation session as a registry.Game.
// The rush, spark and orbs packages are cabinets with their own skins.
package arcade

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spark-arcade/internal/config"
	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/sim"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config's own difficulty.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Options describe one cabinet.
type Options struct {
	ID    string
	Title string
	Skin  Skin
	// DoubleJumpKey is the store key of the double-jump preference.
	// Empty disables the toggle.
	DoubleJumpKey string
}

// Cabinet implements registry.Game around a sim.Session.
type Cabinet struct {
	opts    Options
	cfg     config.GameConfig
	runtime core.RuntimeConfig
	session *sim.Session
	logger  *log.Logger
	input   inputState
	cols    int
	rows    int
}

// New creates a cabinet. The config is loaded on Reset.
func New(opts Options) *Cabinet {
	return &Cabinet{opts: opts}
}

// ID returns the unique identifier for this game.
func (c *Cabinet) ID() string {
	return c.opts.ID
}

// Title returns the display name for this game.
func (c *Cabinet) Title() string {
	if c.cfg.Title != "" {
		return c.cfg.Title
	}
	return c.opts.Title
}

// Config returns the configuration of the current session.
func (c *Cabinet) Config() config.GameConfig {
	return c.cfg
}

// Reset loads the config and builds a fresh idle session.
func (c *Cabinet) Reset(runtime core.RuntimeConfig) {
	c.logger = log.Default().With("game", c.opts.ID)
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	c.runtime = runtime
	c.cols, c.rows = runtime.ScreenW, runtime.ScreenH

	cfg, err := config.Load(c.opts.ID, configPath)
	if err != nil {
		c.logger.Warn("config not loaded, using defaults", "err", err)
		if cfg, err = config.Default(c.opts.ID); err != nil {
			c.logger.Error("no default config", "err", err)
		}
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	c.cfg = cfg

	w, h := c.fieldSize()
	c.session = sim.NewSession(cfg.Rules, sim.Options{
		Seed:    runtime.Seed,
		Store:   runtime.Store,
		BestKey: c.opts.ID + ".best",
		Pacer:   config.NewDifficultyManager(cfg.Difficulty),
		Width:   w,
		Height:  h,
		Scale:   1,
	})
	if c.opts.DoubleJumpKey != "" {
		c.session.SetDoubleJump(core.ReadFlag(runtime.Store, c.opts.DoubleJumpKey, cfg.Rules.Actor.DoubleJump))
	}
	c.session.Subscribe(c.logEvent)
	c.input = inputState{}

	c.logger.Debug("cabinet ready", "seed", runtime.Seed, "field", fmt.Sprintf("%.0fx%.0f", w, h), "difficulty", difficultyPreset)
}

// fieldSize converts the terminal size to playfield pixels.
func (c *Cabinet) fieldSize() (float64, float64) {
	cells := c.cells()
	return float64(c.cols) * cells.Width, float64(c.rows-hudRows) * cells.Height
}

func (c *Cabinet) cells() config.CellSize {
	if !c.cfg.Cells.Valid() {
		return config.CellSize{Width: 12, Height: 24}
	}
	return c.cfg.Cells
}

// Step maps the frame to session actions and advances the session by dt.
func (c *Cabinet) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	if c.session == nil {
		return core.StepResult{State: c.State()}
	}

	var events []sim.Event
	for _, a := range c.actions(in) {
		events = append(events, c.session.OnAction(a)...)
	}
	c.release(dt.Seconds())
	events = append(events, c.session.Step(dt.Seconds())...)

	return core.StepResult{State: c.State(), Events: stringers(events)}
}

// Resize refits the playfield. Degenerate terminals are ignored by the session.
func (c *Cabinet) Resize(width, height int) {
	c.cols, c.rows = width, height
	if c.session == nil {
		return
	}
	w, h := c.fieldSize()
	c.session.Resize(w, h, 1)
}

// State returns the current game state.
func (c *Cabinet) State() core.GameState {
	if c.session == nil {
		return core.GameState{}
	}
	st := c.session.State()
	return core.GameState{
		Score:    c.session.Score(),
		Best:     c.session.Best(),
		Lives:    c.session.Lives(),
		Started:  st != sim.StateIdle,
		GameOver: st == sim.StateEnded,
		Paused:   st == sim.StatePaused,
		RunID:    c.session.RunID(),
		Duration: time.Duration(c.session.Elapsed() * float64(time.Second)),
	}
}

// Snapshot returns a copy of the session for renderers and pilots.
func (c *Cabinet) Snapshot() sim.Snapshot {
	if c.session == nil {
		return sim.Snapshot{}
	}
	return c.session.Snapshot()
}

// DoubleJump reports the double-jump preference of the current session.
func (c *Cabinet) DoubleJump() bool {
	return c.session != nil && c.session.Snapshot().Actor.DoubleJump
}

func (c *Cabinet) toggleDoubleJump() {
	if c.opts.DoubleJumpKey == "" || c.session == nil {
		return
	}
	on := !c.DoubleJump()
	c.session.SetDoubleJump(on)
	core.WriteFlag(c.runtime.Store, c.opts.DoubleJumpKey, on)
	c.logger.Info("double jump", "on", on)
}

func (c *Cabinet) logEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventStarted:
		c.logger.Info("run started", "run", e.RunID, "best", e.Best)
	case sim.EventEnded:
		c.logger.Info("run ended", "run", e.RunID, "score", e.Score, "best", e.Best,
			"elapsed", math.Round(c.session.Elapsed()*100)/100)
	case sim.EventNewBest:
		c.logger.Info("new best", "score", e.Score)
	case sim.EventSpawned, sim.EventBonusSpawned, sim.EventLanded:
		// Too frequent for debug output.
	default:
		c.logger.Debug(e.String())
	}
}

func stringers(events []sim.Event) []fmt.Stringer {
	if len(events) == 0 {
		return nil
	}
	out := make([]fmt.Stringer, len(events))
	for i, e := range events {
		out[i] = e
	}
	return out
}
