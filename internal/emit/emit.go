// Package emit renders derived constants as a Go source file for the
// simulator's core package.
package emit

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/tools/imports"

	"github.com/simtools/basestats/internal/data"
	"github.com/simtools/basestats/internal/derive"
)

// Output precision is part of the generated file's contract.
const (
	critFactorPrecision = 8
	baseStatPrecision   = 4
)

// Options selects the target package and import paths of the generated file.
type Options struct {
	Package     string
	ProtoImport string
	StatsImport string
	// Gofmt runs the rendered source through the Go formatter.
	Gofmt bool
	// FileName is only used in formatter error messages.
	FileName string
}

// DefaultOptions matches the simulator layout the file is generated for.
func DefaultOptions() Options {
	return Options{
		Package:     "core",
		ProtoImport: "github.com/wowsims/mop/sim/core/proto",
		StatsImport: "github.com/wowsims/mop/sim/core/stats",
		Gofmt:       true,
		FileName:    "base_stats_auto_gen.go",
	}
}

// ratingConstants lists the scalar declarations in emission order.
// Ratings come straight from the ratings table and are mostly whole
// numbers, so they are written as the shortest decimal that round-trips
// ("45", "2.5") and stay exact. Crit factors and base stats are derived
// and use fixed precision instead.
var ratingConstants = []struct {
	rating data.Rating
	ident  string
}{
	{data.RatingExpertise, "ExpertisePerQuarterPercentReduction"},
	{data.RatingHasteMelee, "HasteRatingPerHastePercent"},
	{data.RatingCritMelee, "CritRatingPerCritPercent"},
	{data.RatingHitMelee, "PhysicalHitRatingPerHitPercent"},
	{data.RatingHitSpell, "SpellHitRatingPerHitPercent"},
	{data.RatingDodge, "DodgeRatingPerDodgePercent"},
	{data.RatingParry, "ParryRatingPerParryPercent"},
	{data.RatingMastery, "MasteryRatingPerMasteryPoint"},
}

// Render produces the complete source file.
func Render(c *derive.Constants, opts Options) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("emit: nil constants")
	}
	if opts.Package == "" || opts.ProtoImport == "" || opts.StatsImport == "" {
		return nil, fmt.Errorf("emit: package and import paths are required")
	}

	var buf bytes.Buffer
	writeHeader(&buf, opts)
	if err := writeRatings(&buf, c); err != nil {
		return nil, err
	}
	if err := writeFactorMap(&buf, "CritPerAgiMaxLevel", c.CritPerAgi); err != nil {
		return nil, err
	}
	if err := writeFactorMap(&buf, "CritPerIntMaxLevel", c.CritPerInt); err != nil {
		return nil, err
	}
	if err := writeBaseStats(&buf, c.BaseStats); err != nil {
		return nil, err
	}

	if !opts.Gofmt {
		return buf.Bytes(), nil
	}
	out, err := imports.Process(opts.FileName, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("emit: format generated source: %w", err)
	}
	return out, nil
}

func writeHeader(buf *bytes.Buffer, opts Options) {
	buf.WriteString("// Code generated by basestatsgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(buf, "package %s\n\n", opts.Package)
	buf.WriteString("import (\n")
	fmt.Fprintf(buf, "\t%q\n", opts.ProtoImport)
	fmt.Fprintf(buf, "\t%q\n", opts.StatsImport)
	buf.WriteString(")\n\n")
}

func writeRatings(buf *bytes.Buffer, c *derive.Constants) error {
	for _, rc := range ratingConstants {
		v, ok := c.Ratings[rc.rating]
		if !ok {
			return fmt.Errorf("emit: %w: no value for rating %q", data.ErrMissingKey, rc.rating.Key())
		}
		fmt.Fprintf(buf, "const %s = %s\n", rc.ident, FormatRating(v))
	}
	buf.WriteString("\n")
	return nil
}

func writeFactorMap(buf *bytes.Buffer, name string, values map[data.Class]float64) error {
	fmt.Fprintf(buf, "var %s = map[proto.Class]float64{\n", name)
	fmt.Fprintf(buf, "\t%s: 0.0,\n", classKey(data.ClassUnknown))
	for _, c := range data.Classes() {
		v, ok := values[c]
		if !ok {
			return fmt.Errorf("emit: %w: %s has no value for %s", data.ErrMissingKey, name, c.Name())
		}
		fmt.Fprintf(buf, "\t%s: %s,\n", classKey(c), FormatCritFactor(v))
	}
	buf.WriteString("}\n\n")
	return nil
}

func writeBaseStats(buf *bytes.Buffer, values map[data.Class]derive.BaseStats) error {
	buf.WriteString("var ExtraClassBaseStats = map[proto.Class]stats.Stats{\n")
	fmt.Fprintf(buf, "\t%s: {},\n", classKey(data.ClassUnknown))
	for _, c := range data.Classes() {
		bs, ok := values[c]
		if !ok {
			return fmt.Errorf("emit: %w: base stats have no entry for %s", data.ErrMissingKey, c.Name())
		}
		fmt.Fprintf(buf, "\t%s: {\n", classKey(c))
		fmt.Fprintf(buf, "\t\tstats.Mana: %s,\n", FormatBaseStat(bs.Mana))
		fmt.Fprintf(buf, "\t\tstats.SpellCritPercent: %s,\n", FormatBaseStat(bs.SpellCritPercent))
		fmt.Fprintf(buf, "\t\tstats.PhysicalCritPercent: %s,\n", FormatBaseStat(bs.PhysicalCritPercent))
		buf.WriteString("\t},\n")
	}
	buf.WriteString("}\n")
	return nil
}

func classKey(c data.Class) string {
	return "proto.Class_Class" + c.Ident()
}

// FormatRating renders a rating constant with the shortest exact decimal.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCritFactor renders a crit-per-stat-point factor.
func FormatCritFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', critFactorPrecision, 64)
}

// FormatBaseStat renders a value of the base stats bundle.
func FormatBaseStat(v float64) string {
	return strconv.FormatFloat(v, 'f', baseStatPrecision, 64)
}
