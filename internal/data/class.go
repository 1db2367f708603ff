package data

// Level constants used when sampling level-keyed tables.
const (
	ReferenceLevel = 90 // maximum character level of the ruleset
	BaseLevel      = 1  // row holding the base crit fractions
)

// Class identifies a playable class. ClassUnknown is the "no class" sentinel
// and has no column in any source table.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassWarrior
	ClassPaladin
	ClassHunter
	ClassRogue
	ClassPriest
	ClassDeathKnight
	ClassShaman
	ClassMage
	ClassWarlock
	ClassMonk
	ClassDruid

	ClassCount
)

type classInfo struct {
	name   string // display name, as in table headers
	ident  string // output identifier suffix
	offset int    // 0-based column offset after the row key
}

// classTable is indexed by Class; every value below ClassCount needs an entry.
var classTable = [ClassCount]classInfo{
	ClassUnknown:     {name: "Unknown", ident: "Unknown", offset: -1},
	ClassWarrior:     {name: "Warrior", ident: "Warrior", offset: 0},
	ClassPaladin:     {name: "Paladin", ident: "Paladin", offset: 1},
	ClassHunter:      {name: "Hunter", ident: "Hunter", offset: 2},
	ClassRogue:       {name: "Rogue", ident: "Rogue", offset: 3},
	ClassPriest:      {name: "Priest", ident: "Priest", offset: 4},
	ClassDeathKnight: {name: "Death Knight", ident: "DeathKnight", offset: 5},
	ClassShaman:      {name: "Shaman", ident: "Shaman", offset: 6},
	ClassMage:        {name: "Mage", ident: "Mage", offset: 7},
	ClassWarlock:     {name: "Warlock", ident: "Warlock", offset: 8},
	ClassMonk:        {name: "Monk", ident: "Monk", offset: 9},
	ClassDruid:       {name: "Druid", ident: "Druid", offset: 10},
}

// Classes returns the playable classes in emission order. The sentinel is
// not included.
func Classes() []Class {
	out := make([]Class, 0, ClassCount-1)
	for c := ClassWarrior; c < ClassCount; c++ {
		out = append(out, c)
	}
	return out
}

// Name returns the display name ("Death Knight").
func (c Class) Name() string {
	if c >= ClassCount {
		return "Invalid"
	}
	return classTable[c].name
}

// Ident returns the identifier used in generated code ("DeathKnight").
func (c Class) Ident() string {
	if c >= ClassCount {
		return "Invalid"
	}
	return classTable[c].ident
}

// Offset returns the column offset of the class inside a level row.
// ok is false for the sentinel and out-of-range values.
func (c Class) Offset() (offset int, ok bool) {
	if c == ClassUnknown || c >= ClassCount {
		return 0, false
	}
	return classTable[c].offset, true
}

func (c Class) String() string { return c.Name() }
