// Package spark is Run Spark: a three-life runner with spikes, walls and
// drones, plus shield and slow-time power-ups.
package spark

import (
	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/games/arcade"
	"github.com/vovakirdan/spark-arcade/internal/registry"
)

const (
	// ID is the registry and config identifier.
	ID = "spark"
	// DoubleJumpKey stores the double-jump preference.
	DoubleJumpKey = "spark.double_jump"
)

var skin = arcade.Skin{
	Actor:    arcade.Sprite{Rune: '█', Color: core.ColorActor},
	Ground:   arcade.Sprite{Rune: '▀', Color: core.ColorGround},
	Particle: arcade.Sprite{Rune: '*', Color: core.ColorParticle},
	Entities: map[string]arcade.Sprite{
		"spike":  {Rune: '▲', Color: core.ColorHazard},
		"wall":   {Rune: '█', Color: core.ColorObstacle},
		"drone":  {Rune: '◆', Color: core.ColorHazard},
		"shield": {Rune: '◎', Color: core.ColorShield},
		"slow":   {Rune: '◷', Color: core.ColorSlow},
	},
	Hint: "SPACE jump   J toggle double jump",
}

// New creates a Run Spark cabinet.
func New() *arcade.Cabinet {
	return arcade.New(arcade.Options{
		ID:            ID,
		Title:         "Run Spark",
		Skin:          skin,
		DoubleJumpKey: DoubleJumpKey,
	})
}

func init() {
	registry.Register(ID, "Run Spark", func() registry.Game {
		return New()
	})
}
