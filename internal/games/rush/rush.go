// Package rush is Run Rush: a one-life runner that jumps boxes and bars
// while the world keeps speeding up.
package rush

import (
	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/games/arcade"
	"github.com/vovakirdan/spark-arcade/internal/registry"
)

// ID is the registry and config identifier.
const ID = "rush"

// Visual characters for rendering
var skin = arcade.Skin{
	Actor:    arcade.Sprite{Rune: '█', Color: core.ColorActor},
	Ground:   arcade.Sprite{Rune: '═', Color: core.ColorGround},
	Particle: arcade.Sprite{Rune: '·', Color: core.ColorParticle},
	Entities: map[string]arcade.Sprite{
		"box": {Rune: '▓', Color: core.ColorObstacle},
		"bar": {Rune: '▬', Color: core.ColorObstacle},
	},
	Hint: "SPACE / UP jump",
}

// New creates a Run Rush cabinet.
func New() *arcade.Cabinet {
	return arcade.New(arcade.Options{ID: ID, Title: "Run Rush", Skin: skin})
}

func init() {
	registry.Register(ID, "Run Rush", func() registry.Game {
		return New()
	})
}
