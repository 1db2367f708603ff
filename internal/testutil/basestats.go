package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/simtools/basestats/internal/data"
)

// Levels is the number of level rows written to each level-keyed fixture.
const Levels = 90

// File names used by WriteTables; they match the generator defaults.
const (
	BaseManaFile      = "octbasempbyclass.txt"
	MeleeCritFile     = "chancetomeleecrit.txt"
	SpellCritFile     = "chancetospellcrit.txt"
	MeleeCritBaseFile = "chancetomeleecritbase.txt"
	SpellCritBaseFile = "chancetospellcritbase.txt"
	CombatRatingsFile = "combatratings.txt"
)

// ClassHeader is the column order of every class table.
var ClassHeader = []string{"Warrior", "Paladin", "Hunter", "Rogue", "Priest", "Death Knight", "Shaman", "Mage", "Warlock", "Monk", "Druid"}

// RatingHeader is the column order of the combat ratings fixture.
var RatingHeader = []string{"expertise", "haste melee", "crit melee", "hit melee", "hit spell", "dodge", "parry", "mastery"}

// Tables holds the six source grids, header record first. Tests edit cells
// before writing them out.
type Tables struct {
	BaseMana      [][]string
	MeleeCrit     [][]string
	SpellCrit     [][]string
	MeleeCritBase [][]string
	SpellCritBase [][]string
	CombatRatings [][]string
}

// DefaultTables returns well-formed grids with predictable values:
//   - base mana at level L, class column c: L*100+c
//   - melee crit per agility: (c+1)/100, spell crit per intellect: (c+1)/200
//   - base melee crit: (c+1)/1000, base spell crit: (c+2)/1000
//   - combat rating column r at level L: L*(r+1)
func DefaultTables() Tables {
	return Tables{
		BaseMana: levelGrid(Levels, func(level, c int) string {
			return strconv.Itoa(level*100 + c)
		}),
		MeleeCrit: levelGrid(Levels, func(_, c int) string {
			return formatFloat(float64(c+1) / 100)
		}),
		SpellCrit: levelGrid(Levels, func(_, c int) string {
			return formatFloat(float64(c+1) / 200)
		}),
		MeleeCritBase: levelGrid(1, func(_, c int) string {
			return formatFloat(float64(c+1) / 1000)
		}),
		SpellCritBase: levelGrid(1, func(_, c int) string {
			return formatFloat(float64(c+2) / 1000)
		}),
		CombatRatings: ratingGrid(Levels),
	}
}

func levelGrid(levels int, value func(level, c int) string) [][]string {
	header := append([]string{"Level"}, ClassHeader...)
	grid := [][]string{header}
	for level := 1; level <= levels; level++ {
		row := []string{strconv.Itoa(level)}
		for c := range ClassHeader {
			row = append(row, value(level, c))
		}
		grid = append(grid, row)
	}
	return grid
}

func ratingGrid(levels int) [][]string {
	header := append([]string{"Level"}, RatingHeader...)
	grid := [][]string{header}
	for level := 1; level <= levels; level++ {
		row := []string{strconv.Itoa(level)}
		for r := range RatingHeader {
			row = append(row, strconv.Itoa(level*(r+1)))
		}
		grid = append(grid, row)
	}
	return grid
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SetClassCell sets the value of class column c in the row keyed by key.
func SetClassCell(t testing.TB, grid [][]string, key string, c int, value string) {
	t.Helper()
	for _, row := range grid[1:] {
		if row[0] == key {
			row[c+1] = value
			return
		}
	}
	t.Fatalf("fixture has no row %q", key)
}

// SetRating sets rating column r at the given level of a combat ratings grid.
func SetRating(t testing.TB, grid [][]string, level, r int, value string) {
	t.Helper()
	if level < 1 || level >= len(grid) {
		t.Fatalf("fixture has no level %d", level)
	}
	grid[level][r+1] = value
}

// DropLastClass removes the final class column from every class table.
func (tb *Tables) DropLastClass() {
	for _, grid := range [][][]string{tb.BaseMana, tb.MeleeCrit, tb.SpellCrit, tb.MeleeCritBase, tb.SpellCritBase} {
		for i, row := range grid {
			grid[i] = row[:len(row)-1]
		}
	}
}

// WriteTables writes the grids as TSV files under dir and returns their paths.
func WriteTables(t testing.TB, dir string, tables Tables) data.Paths {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	paths := data.Paths{
		BaseMana:      filepath.Join(dir, BaseManaFile),
		MeleeCrit:     filepath.Join(dir, MeleeCritFile),
		SpellCrit:     filepath.Join(dir, SpellCritFile),
		MeleeCritBase: filepath.Join(dir, MeleeCritBaseFile),
		SpellCritBase: filepath.Join(dir, SpellCritBaseFile),
		CombatRatings: filepath.Join(dir, CombatRatingsFile),
	}
	writeGrid(t, paths.BaseMana, tables.BaseMana)
	writeGrid(t, paths.MeleeCrit, tables.MeleeCrit)
	writeGrid(t, paths.SpellCrit, tables.SpellCrit)
	writeGrid(t, paths.MeleeCritBase, tables.MeleeCritBase)
	writeGrid(t, paths.SpellCritBase, tables.SpellCritBase)
	writeGrid(t, paths.CombatRatings, tables.CombatRatings)
	return paths
}

// WriteDefaultTables writes DefaultTables under dir.
func WriteDefaultTables(t testing.TB, dir string) data.Paths {
	t.Helper()
	return WriteTables(t, dir, DefaultTables())
}

// TSV joins a grid into tab-separated text.
func TSV(grid [][]string) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeGrid(t testing.TB, path string, grid [][]string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(TSV(grid)), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", filepath.Base(path), err)
	}
}
