package registry

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/spark-arcade/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                { return g.id }
func (g stubGame) Title() string             { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig)  {}
func (g stubGame) Resize(int, int)           {}
func (g stubGame) Render(*core.Screen)       {}
func (g stubGame) State() core.GameState     { return core.GameState{} }
func (g stubGame) Step(core.InputFrame, time.Duration) core.StepResult {
	return core.StepResult{}
}

func TestRegisterCreateList(t *testing.T) {
	created := 0
	Register("zz-stub", "Stub", func() Game {
		created++
		return stubGame{id: "zz-stub"}
	})
	Register("aa-stub", "Another", func() Game { return stubGame{id: "aa-stub"} })

	if created != 0 {
		t.Error("Register should not build the game")
	}
	if !Exists("zz-stub") || Exists("missing") {
		t.Error("Exists() mismatch")
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz-stub" || created != 1 {
		t.Errorf("Create returned %q after %d builds", g.ID(), created)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
	}
	first, last := strings.Index(strings.Join(ids, ","), "aa-stub"), strings.Index(strings.Join(ids, ","), "zz-stub")
	if first < 0 || last < 0 || first > last {
		t.Errorf("List() not sorted by ID: %v", ids)
	}
	for _, info := range list {
		if info.ID == "aa-stub" && info.Title != "Another" {
			t.Errorf("title = %q", info.Title)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", "Dup", func() Game { return stubGame{id: "dup-stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup-stub", "Dup", func() Game { return stubGame{id: "dup-stub"} })
}
