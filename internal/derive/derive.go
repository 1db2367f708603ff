// Package derive computes the generated constants from a loaded stat bundle.
package derive

import (
	"fmt"
	"math"
	"strconv"

	"github.com/simtools/basestats/internal/data"
)

// expertisePointsPerPercent converts the per-percent expertise rating into
// the per-quarter-percent value the simulator expects.
const expertisePointsPerPercent = 4

// BaseStats is the per-class bundle emitted into the base stats map.
type BaseStats struct {
	Mana                float64 `yaml:"mana"`
	SpellCritPercent    float64 `yaml:"spell_crit_percent"`
	PhysicalCritPercent float64 `yaml:"physical_crit_percent"`
}

// Constants is everything the document emitter needs. Per-class maps hold
// playable classes only; the sentinel entry is added by the emitter.
type Constants struct {
	Ratings    map[data.Rating]float64
	CritPerAgi map[data.Class]float64
	CritPerInt map[data.Class]float64
	BaseStats  map[data.Class]BaseStats
}

// Derive samples the bundle at data.ReferenceLevel and data.BaseLevel.
func Derive(b *data.StatBundle) (*Constants, error) {
	if err := checkBundle(b); err != nil {
		return nil, err
	}

	ratings, err := deriveRatings(b.CombatRatings)
	if err != nil {
		return nil, err
	}
	critPerAgi, err := deriveCritPerPoint(b.MeleeCrit)
	if err != nil {
		return nil, fmt.Errorf("melee crit per agility: %w", err)
	}
	critPerInt, err := deriveCritPerPoint(b.SpellCrit)
	if err != nil {
		return nil, fmt.Errorf("spell crit per intellect: %w", err)
	}
	baseStats, err := deriveBaseStats(b)
	if err != nil {
		return nil, err
	}

	return &Constants{
		Ratings:    ratings,
		CritPerAgi: critPerAgi,
		CritPerInt: critPerInt,
		BaseStats:  baseStats,
	}, nil
}

func checkBundle(b *data.StatBundle) error {
	if b == nil {
		return fmt.Errorf("derive: nil stat bundle")
	}
	missing := ""
	switch {
	case b.BaseMana == nil:
		missing = "base mana"
	case b.MeleeCrit == nil:
		missing = "melee crit"
	case b.SpellCrit == nil:
		missing = "spell crit"
	case b.MeleeCritBase == nil:
		missing = "melee crit base"
	case b.SpellCritBase == nil:
		missing = "spell crit base"
	case b.CombatRatings == nil:
		missing = "combat ratings"
	}
	if missing != "" {
		return fmt.Errorf("derive: stat bundle has no %s table", missing)
	}
	return nil
}

// deriveRatings reads each rating column at the reference level. Values in
// the transposed table start at level 1, hence the -1.
func deriveRatings(t *data.Table) (map[data.Rating]float64, error) {
	out := make(map[data.Rating]float64, data.RatingCount)
	for _, r := range data.Ratings() {
		v, err := t.Float(r.Key(), data.ReferenceLevel-1)
		if err != nil {
			return nil, fmt.Errorf("rating %q: %w", r.Key(), err)
		}
		if r == data.RatingExpertise {
			v /= expertisePointsPerPercent
		}
		out[r] = v
	}
	return out, nil
}

func deriveCritPerPoint(t *data.Table) (map[data.Class]float64, error) {
	level := strconv.Itoa(data.ReferenceLevel)
	out := make(map[data.Class]float64, data.ClassCount)
	for _, c := range data.Classes() {
		raw, err := classValue(t, level, c)
		if err != nil {
			return nil, err
		}
		inv, err := reciprocal(raw)
		if err != nil {
			return nil, fmt.Errorf("%s in %s: %w", c.Name(), t.Name, err)
		}
		out[c] = inv
	}
	return out, nil
}

func deriveBaseStats(b *data.StatBundle) (map[data.Class]BaseStats, error) {
	refLevel := strconv.Itoa(data.ReferenceLevel)
	baseLevel := strconv.Itoa(data.BaseLevel)
	out := make(map[data.Class]BaseStats, data.ClassCount)
	for _, c := range data.Classes() {
		mana, err := classValue(b.BaseMana, refLevel, c)
		if err != nil {
			return nil, err
		}
		spellCrit, err := classValue(b.SpellCritBase, baseLevel, c)
		if err != nil {
			return nil, err
		}
		meleeCrit, err := classValue(b.MeleeCritBase, baseLevel, c)
		if err != nil {
			return nil, err
		}
		spellPct, err := percent(spellCrit)
		if err != nil {
			return nil, fmt.Errorf("class %s spell crit base: %w", c.Name(), err)
		}
		meleePct, err := percent(meleeCrit)
		if err != nil {
			return nil, fmt.Errorf("class %s melee crit base: %w", c.Name(), err)
		}
		out[c] = BaseStats{
			Mana:                mana,
			SpellCritPercent:    spellPct,
			PhysicalCritPercent: meleePct,
		}
	}
	return out, nil
}

func classValue(t *data.Table, level string, c data.Class) (float64, error) {
	offset, ok := c.Offset()
	if !ok {
		return 0, fmt.Errorf("%w: class %s has no column", data.ErrMissingKey, c.Name())
	}
	v, err := t.Float(level, offset)
	if err != nil {
		return 0, fmt.Errorf("class %s: %w", c.Name(), err)
	}
	return v, nil
}

// reciprocal refuses to produce a value the generated file cannot hold:
// zero and subnormal inputs would otherwise become +Inf.
func reciprocal(x float64) (float64, error) {
	if x == 0 {
		return 0, fmt.Errorf("%w: crit chance per point is zero", data.ErrDivideByZero)
	}
	r := 1 / x
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: crit chance per point %g has no finite reciprocal", data.ErrDivideByZero, x)
	}
	return r, nil
}

func percent(fraction float64) (float64, error) {
	p := fraction * 100
	if math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: %g overflows as a percentage", data.ErrParse, fraction)
	}
	return p, nil
}
