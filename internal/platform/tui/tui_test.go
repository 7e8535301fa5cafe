package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d moves right", runes("d"), core.ActionRight, false},
		{"s moves down", runes("s"), core.ActionDown, false},
		{"p pauses", runes("p"), core.ActionPause, false},
		{"r restarts", runes("r"), core.ActionRestart, false},
		{"j toggles", runes("j"), core.ActionToggle, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runes("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToFrameSkipsBack(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEsc}, &frame)
	if !frame.Empty() {
		t.Error("back should not reach the game")
	}
	km.MapKeyToFrame(runes("w"), &frame)
	if !frame.Has(core.ActionUp) {
		t.Error("w should set up")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestFrameTime(t *testing.T) {
	t0 := time.Unix(100, 0)
	tests := []struct {
		name      string
		prev, now time.Time
		want      time.Duration
	}{
		{"first tick", time.Time{}, t0, time.Second / 50},
		{"normal tick", t0, t0.Add(18 * time.Millisecond), 18 * time.Millisecond},
		{"stall is capped", t0, t0.Add(3 * time.Second), maxFrame},
		{"clock went back", t0, t0.Add(-time.Second), time.Second / 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameTime(tt.prev, tt.now, 50); got != tt.want {
				t.Errorf("frameTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeGame records what the model asks of it.
type fakeGame struct {
	state   core.GameState
	steps   int
	lastDt  time.Duration
	lastIn  core.InputFrame
	resized [2]int
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig)     { g.state = core.GameState{} }
func (g *fakeGame) Resize(w, h int)              { g.resized = [2]int{w, h} }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	g.steps++
	g.lastDt = dt
	g.lastIn = in.Clone()
	return core.StepResult{State: g.state}
}

func TestModelTickLoop(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 50})
	m.Init()

	next, _ := m.Update(TickMsg{Time: time.Unix(1, 0), Loop: m.loop + 1})
	m = next.(Model)
	if g.steps != 0 {
		t.Fatal("tick from another loop should be ignored")
	}

	next, _ = m.Update(runes("p"))
	m = next.(Model)
	next, cmd := m.Update(TickMsg{Time: time.Unix(1, 0), Loop: m.loop})
	m = next.(Model)
	if g.steps != 1 || cmd == nil {
		t.Fatalf("steps = %d, cmd = %v", g.steps, cmd)
	}
	if !g.lastIn.Has(core.ActionPause) {
		t.Error("key was not delivered to the game")
	}
	if g.lastDt != 20*time.Millisecond {
		t.Errorf("first dt = %v, want 20ms", g.lastDt)
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame not cleared after tick")
	}
}

func TestModelBack(t *testing.T) {
	tests := []struct {
		name      string
		state     core.GameState
		wantBack  bool
		wantPause bool
	}{
		{"idle leaves", core.GameState{}, true, false},
		{"running pauses", core.GameState{Started: true}, false, true},
		{"paused leaves", core.GameState{Started: true, Paused: true}, true, false},
		{"game over leaves", core.GameState{Started: true, GameOver: true}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(&fakeGame{}, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5})
			m.gameState = tt.state
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
			m = next.(Model)
			if m.BackToMenu() != tt.wantBack {
				t.Errorf("BackToMenu() = %v", m.BackToMenu())
			}
			if m.inputFrame.Has(core.ActionPause) != tt.wantPause {
				t.Errorf("pause queued = %v", m.inputFrame.Has(core.ActionPause))
			}
		})
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{state: core.GameState{Started: true, RunID: "r1"}}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	if g.resized != [2]int{100, 30} {
		t.Errorf("game resized to %v", g.resized)
	}
	if g.state.RunID != "r1" {
		t.Error("resize reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestSaveScoreOncePerRun(t *testing.T) {
	g := &fakeGame{state: core.GameState{Started: true, GameOver: true, RunID: "r1", Score: 10}}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 5})
	m.gameState = g.state
	m.saveScore()
	if m.savedRun != "r1" {
		t.Fatalf("savedRun = %q", m.savedRun)
	}

	m.gameState.RunID = "r2"
	m.gameState.GameOver = false
	m.saveScore()
	if m.savedRun != "r1" {
		t.Error("running game should not be saved")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(3, 1, '#', core.ColorOrange)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ab") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "#") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q", got)
	}
}
