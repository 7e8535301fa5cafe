// Package orbs is Spark Orbs: steer freely, chain orb pickups into streaks
// and dodge meteors.
package orbs

import (
	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/games/arcade"
	"github.com/vovakirdan/spark-arcade/internal/registry"
)

// ID is the registry and config identifier.
const ID = "orbs"

var skin = arcade.Skin{
	Actor:    arcade.Sprite{Rune: '◉', Color: core.ColorActor},
	Particle: arcade.Sprite{Rune: '+', Color: core.ColorPickup},
	Entities: map[string]arcade.Sprite{
		"orb":    {Rune: '●', Color: core.ColorPickup},
		"meteor": {Rune: '✸', Color: core.ColorHazard},
	},
	Hint: "ARROWS / WASD move",
}

// New creates a Spark Orbs cabinet.
func New() *arcade.Cabinet {
	return arcade.New(arcade.Options{ID: ID, Title: "Spark Orbs", Skin: skin})
}

func init() {
	registry.Register(ID, "Spark Orbs", func() registry.Game {
		return New()
	})
}
