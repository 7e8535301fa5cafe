package config

import (
	_ "embed"

	"github.com/vovakirdan/spark-arcade/internal/sim"
)

//go:embed defaults/rush.yaml
var defaultRushYAML []byte

//go:embed defaults/spark.yaml
var defaultSparkYAML []byte

//go:embed defaults/orbs.yaml
var defaultOrbsYAML []byte

var defaultConfigs = map[string]func() GameConfig{
	"rush":  DefaultRushConfig,
	"spark": DefaultSparkConfig,
	"orbs":  DefaultOrbsConfig,
}

var terminalCells = CellSize{Width: 12, Height: 24}

// DefaultRushConfig returns the default Run Rush configuration.
func DefaultRushConfig() GameConfig {
	return GameConfig{
		Title: "Run Rush",
		Cells: terminalCells,
		Rules: sim.Config{
			Clock: sim.ClockConfig{MaxStep: 0.033},
			World: sim.WorldConfig{
				StartSpeed:  360,
				Growth:      0.06,
				MaxSpeed:    1440,
				Floor:       0.8963,
				SpawnMargin: 40,
				PruneMargin: 120,
			},
			Actor: sim.ActorConfig{
				Mode:        sim.ModeRunner,
				Width:       44,
				Height:      64,
				AnchorX:     140,
				Gravity:     2400,
				JumpImpulse: 920,
				SquashDecay: 2.6,
			},
			Streams: []sim.StreamConfig{{
				Name:     "obstacles",
				Interval: sim.Between(0.75, 1.6),
				Decay:    0.03,
				Weights:  []sim.Weight{{Type: "box", Weight: 72}, {Type: "bar", Weight: 28}},
			}},
			Entities: []sim.EntityType{
				{Name: "box", Kind: sim.KindObstacle, Width: sim.Between(26, 50), Height: sim.Between(34, 78), Placement: sim.PlacementGround, Value: 12},
				{Name: "bar", Kind: sim.KindObstacle, Width: sim.Between(56, 92), Height: sim.Between(22, 40), Placement: sim.PlacementGround, Value: 12},
			},
			Vitals:    sim.VitalsConfig{Lives: 1},
			Scoring:   sim.ScoringConfig{TimeRate: 20, ScaleWithSpeed: true},
			Collision: sim.CollisionConfig{Shape: sim.ShapeBox},
			Particles: sim.ParticleConfig{
				Max:     200,
				Gravity: 900,
				Jump:    sim.Burst{Count: 16, VX: sim.Between(-120, -20), VY: sim.Between(-420, -120), Life: sim.Between(0.25, 0.55)},
				Pass:    sim.Burst{Count: 10, VX: sim.Between(120, 360), VY: sim.Between(-160, 160), Life: sim.Between(0.18, 0.38)},
				Hit:     sim.Burst{Count: 26, VX: sim.Between(-420, 280), VY: sim.Between(-520, 120), Life: sim.Between(0.25, 0.55)},
			},
			Session: sim.SessionConfig{JumpStarts: true},
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "time", MaxAt: 120},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.25, IntervalReduction: 0.3},
		},
		Presets: map[DifficultyPreset]PresetTweaks{
			DifficultyEasy: {SpeedScale: 0.85},
		},
	}
}

// DefaultSparkConfig returns the default Run Spark configuration.
func DefaultSparkConfig() GameConfig {
	return GameConfig{
		Title: "Run Spark",
		Cells: terminalCells,
		Rules: sim.Config{
			Clock: sim.ClockConfig{MaxStep: 0.0417},
			World: sim.WorldConfig{
				StartSpeed:  520,
				Accel:       14,
				MaxSpeed:    1600,
				Floor:       0.865,
				SpawnMargin: 40,
				PruneMargin: 50,
			},
			Actor: sim.ActorConfig{
				Mode:              sim.ModeRunner,
				Width:             46,
				Height:            56,
				AnchorRatio:       0.22,
				Gravity:           2600,
				JumpImpulse:       980,
				DoubleJumpImpulse: 900,
				HitKnock:          420,
				SquashDecay:       2.6,
			},
			Streams: []sim.StreamConfig{{
				Name:       "obstacles",
				Interval:   sim.Between(0.55, 1.25),
				SafeGap:    90,
				RetryDelay: 0.12,
				Weights: []sim.Weight{
					{Type: "spike", Weight: 55},
					{Type: "wall", Weight: 30},
					{Type: "drone", Weight: 15},
				},
				Bonus: &sim.BonusConfig{
					Chance:      0.16,
					MinInterval: 6.5,
					Weights:     []sim.Weight{{Type: "shield", Weight: 55}, {Type: "slow", Weight: 45}},
					Offset:      sim.Between(120, 220),
					Lift:        70,
					Top:         0.35,
					Clearance:   22,
				},
			}},
			Entities: []sim.EntityType{
				{Name: "spike", Kind: sim.KindObstacle, Width: sim.Fixed(34), Height: sim.Fixed(40), Placement: sim.PlacementGround, Value: 25},
				{Name: "wall", Kind: sim.KindObstacle, Width: sim.Fixed(40), Height: sim.Fixed(74), Placement: sim.PlacementGround, Value: 35},
				{Name: "drone", Kind: sim.KindObstacle, Width: sim.Fixed(42), Height: sim.Fixed(32), Placement: sim.PlacementFloating, Band: sim.Between(0.48, 0.66), Value: 45},
				{Name: "shield", Kind: sim.KindCollectible, Width: sim.Fixed(30), Effect: sim.EffectShield, Value: 120, Consume: true},
				{Name: "slow", Kind: sim.KindCollectible, Width: sim.Fixed(30), Effect: sim.EffectSlow, Value: 90, Consume: true},
			},
			Vitals: sim.VitalsConfig{
				Lives:                  3,
				InvulnerableTime:       1.1,
				ShieldInvulnerableTime: 0.55,
				HitStop:                0.06,
				BlockHitStop:           0.033,
			},
			Effects:   sim.EffectsConfig{SlowDuration: 3.2, SlowFactor: 0.55},
			Scoring:   sim.ScoringConfig{TimeRate: 60, DistanceRate: 0.01923},
			Collision: sim.CollisionConfig{Shape: sim.ShapeBox},
			Particles: sim.ParticleConfig{
				Max:     260,
				Gravity: 468,
				Jump:    sim.Burst{Count: 12, VX: sim.Between(-260, -120), VY: sim.Between(-160, -40), Life: sim.Between(0.25, 0.55)},
				Pass:    sim.Burst{Count: 8, VX: sim.Between(120, 360), VY: sim.Between(-160, 160), Life: sim.Between(0.18, 0.38)},
				Hit:     sim.Burst{Count: 24, VX: sim.Between(-420, 280), VY: sim.Between(-520, 120), Life: sim.Between(0.25, 0.55)},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 5000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.2, IntervalReduction: 0.25},
		},
		Presets: map[DifficultyPreset]PresetTweaks{
			DifficultyEasy: {Lives: 5},
			DifficultyHard: {Lives: 2},
		},
	}
}

// DefaultOrbsConfig returns the default Spark Orbs configuration.
func DefaultOrbsConfig() GameConfig {
	return GameConfig{
		Title: "Spark Orbs",
		Cells: terminalCells,
		Rules: sim.Config{
			World: sim.WorldConfig{StartSpeed: 180, MaxSpeed: 180, SpawnMargin: 40, PruneMargin: 50},
			Actor: sim.ActorConfig{
				Mode:      sim.ModeFree,
				Width:     56,
				Height:    56,
				AnchorX:   72,
				StartY:    0.5,
				MoveSpeed: 240,
			},
			Streams: []sim.StreamConfig{
				{Name: "orbs", Interval: sim.Fixed(1.5), Weights: []sim.Weight{{Type: "orb", Weight: 1}}},
				{Name: "meteors", Interval: sim.Fixed(2.0), Weights: []sim.Weight{{Type: "meteor", Weight: 1}}},
			},
			Entities: []sim.EntityType{
				{Name: "orb", Kind: sim.KindCollectible, Width: sim.Fixed(24), Placement: sim.PlacementFloating, Band: sim.Between(0.12, 0.96), Value: 15, Effect: sim.EffectEnergy, Consume: true},
				{Name: "meteor", Kind: sim.KindHazard, Width: sim.Between(44, 80), Placement: sim.PlacementFloating, Band: sim.Between(0.12, 0.96), Speed: 1.1667, Consume: true},
			},
			Vitals:    sim.VitalsConfig{Lives: 3, MaxLives: 8, StreakMax: 5, StreakBonus: 5},
			Collision: sim.CollisionConfig{Shape: sim.ShapeCircle},
			Particles: sim.ParticleConfig{
				Max: 120,
				Hit: sim.Burst{Count: 18, VX: sim.Between(-240, 240), VY: sim.Between(-240, 240), Life: sim.Between(0.2, 0.45)},
			},
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "score", MaxAt: 600},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.3, IntervalReduction: 0.3},
		},
		Presets: map[DifficultyPreset]PresetTweaks{
			DifficultyHard: {
				SpeedScale:  1.3333,
				MoveScale:   1.4,
				Values:      map[string]int{"orb": 30},
				EntitySpeed: map[string]float64{"meteor": 1.25},
				Intervals:   map[string]sim.Range{"meteors": sim.Fixed(1.4167)},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "rush":
		return defaultRushYAML
	case "spark":
		return defaultSparkYAML
	case "orbs":
		return defaultOrbsYAML
	default:
		return nil
	}
}

// GameIDs lists the games that ship a default configuration.
func GameIDs() []string {
	return []string{"rush", "spark", "orbs"}
}
