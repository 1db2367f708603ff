package data

import "fmt"

// Paths locates the six source tables.
type Paths struct {
	BaseMana      string
	MeleeCrit     string
	SpellCrit     string
	MeleeCritBase string
	SpellCritBase string
	CombatRatings string
}

// Role names the slot a table fills in a StatBundle.
type Role uint8

const (
	RoleBaseMana Role = iota
	RoleMeleeCrit
	RoleSpellCrit
	RoleMeleeCritBase
	RoleSpellCritBase
	RoleCombatRatings
)

func (r Role) String() string {
	switch r {
	case RoleBaseMana:
		return "base mana"
	case RoleMeleeCrit:
		return "melee crit"
	case RoleSpellCrit:
		return "spell crit"
	case RoleMeleeCritBase:
		return "melee crit base"
	case RoleSpellCritBase:
		return "spell crit base"
	case RoleCombatRatings:
		return "combat ratings"
	default:
		return "unknown"
	}
}

// StatBundle holds every table the derivation reads, one field per role.
type StatBundle struct {
	BaseMana      *Table // base mana, row per level, column per class
	MeleeCrit     *Table // melee crit chance per agility point, by level
	SpellCrit     *Table // spell crit chance per intellect point, by level
	MeleeCritBase *Table // base melee crit fraction, row "1"
	SpellCritBase *Table // base spell crit fraction, row "1"
	CombatRatings *Table // rating per percent, keyed by rating name
}

// TableSource pairs a role with its file and orientation.
type TableSource struct {
	Role        Role
	Path        string
	Orientation Orientation
}

// Sources lists the tables in load order.
func Sources(p Paths) []TableSource {
	return []TableSource{
		{Role: RoleBaseMana, Path: p.BaseMana, Orientation: RowKeyed},
		{Role: RoleMeleeCrit, Path: p.MeleeCrit, Orientation: RowKeyed},
		{Role: RoleSpellCrit, Path: p.SpellCrit, Orientation: RowKeyed},
		{Role: RoleMeleeCritBase, Path: p.MeleeCritBase, Orientation: RowKeyed},
		{Role: RoleSpellCritBase, Path: p.SpellCritBase, Orientation: RowKeyed},
		{Role: RoleCombatRatings, Path: p.CombatRatings, Orientation: ColumnKeyed},
	}
}

// Load reads the source table.
func (s TableSource) Load(opts ParseOptions) (*Table, error) {
	return LoadTable(s.Path, s.Orientation, opts)
}

// Set stores t in the slot for role.
func (b *StatBundle) Set(role Role, t *Table) error {
	switch role {
	case RoleBaseMana:
		b.BaseMana = t
	case RoleMeleeCrit:
		b.MeleeCrit = t
	case RoleSpellCrit:
		b.SpellCrit = t
	case RoleMeleeCritBase:
		b.MeleeCritBase = t
	case RoleSpellCritBase:
		b.SpellCritBase = t
	case RoleCombatRatings:
		b.CombatRatings = t
	default:
		return fmt.Errorf("stat bundle: unknown role %d", role)
	}
	return nil
}

// LoadStatBundle reads all six tables. Each file is fully read and closed
// before the next one is opened.
func LoadStatBundle(p Paths, opts ParseOptions) (*StatBundle, error) {
	b := &StatBundle{}
	for _, src := range Sources(p) {
		t, err := src.Load(opts)
		if err != nil {
			return nil, err
		}
		if err := b.Set(src.Role, t); err != nil {
			return nil, err
		}
	}
	return b, nil
}
