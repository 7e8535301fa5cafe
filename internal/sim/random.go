package sim

import "math/rand"

// Source is the single random stream a session draws from.
// *rand.Rand satisfies it; tests may substitute a scripted source.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a deterministic source for seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Uniform draws from [r.Min, r.Max). A degenerate range returns Min
// without consuming a draw.
func Uniform(src Source, r Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// UniformInt draws an integer from [lo, hi] inclusive.
func UniformInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Weight is one entry of a weighted choice.
type Weight struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

// Pick makes a weighted choice. Entries are considered in order, so equal
// seeds give equal picks. It returns false when no entry has a positive weight.
func Pick(src Source, weights []Weight) (string, bool) {
	total := 0.0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return "", false
	}

	roll := src.Float64() * total
	last := ""
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		if roll < w.Weight {
			return w.Type, true
		}
		roll -= w.Weight
		last = w.Type
	}
	// Floating point leftovers land on the last positive entry.
	return last, true
}
