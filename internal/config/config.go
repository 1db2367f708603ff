package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/simtools/basestats/internal/data"
	"github.com/simtools/basestats/internal/emit"
)

type Config struct {
	Input   InputConfig   `toml:"input"`
	Output  OutputConfig  `toml:"output"`
	Tables  TablesConfig  `toml:"tables"`
	Logging LoggingConfig `toml:"logging"`
}

// InputConfig names the six source tables. File names are joined onto Dir
// unless they are absolute.
type InputConfig struct {
	Dir           string `toml:"dir"`
	BaseMana      string `toml:"base_mana"`       // row-keyed, level x class
	MeleeCrit     string `toml:"melee_crit"`      // row-keyed, level x class
	SpellCrit     string `toml:"spell_crit"`      // row-keyed, level x class
	MeleeCritBase string `toml:"melee_crit_base"` // row-keyed, level 1 only
	SpellCritBase string `toml:"spell_crit_base"` // row-keyed, level 1 only
	CombatRatings string `toml:"combat_ratings"`  // column-keyed, rating x level
}

type OutputConfig struct {
	Path        string `toml:"path"`
	Package     string `toml:"package"`
	ProtoImport string `toml:"proto_import"`
	StatsImport string `toml:"stats_import"`
	Gofmt       bool   `toml:"gofmt"`
}

type TablesConfig struct {
	StrictRows bool `toml:"strict_rows"` // reject ragged records instead of failing on lookup
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Paths resolves the input file names against Input.Dir.
func (c *Config) Paths() data.Paths {
	join := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(c.Input.Dir, name)
	}
	return data.Paths{
		BaseMana:      join(c.Input.BaseMana),
		MeleeCrit:     join(c.Input.MeleeCrit),
		SpellCrit:     join(c.Input.SpellCrit),
		MeleeCritBase: join(c.Input.MeleeCritBase),
		SpellCritBase: join(c.Input.SpellCritBase),
		CombatRatings: join(c.Input.CombatRatings),
	}
}

// EmitOptions converts the output section into renderer options.
func (c *Config) EmitOptions() emit.Options {
	opts := emit.DefaultOptions()
	opts.Package = c.Output.Package
	opts.ProtoImport = c.Output.ProtoImport
	opts.StatsImport = c.Output.StatsImport
	opts.Gofmt = c.Output.Gofmt
	opts.FileName = filepath.Base(c.Output.Path)
	return opts
}

func (c *Config) ParseOptions() data.ParseOptions {
	return data.ParseOptions{StrictRows: c.Tables.StrictRows}
}

func defaults() *Config {
	out := emit.DefaultOptions()
	return &Config{
		Input: InputConfig{
			Dir:           filepath.Join("assets", "db_inputs", "basestats"),
			BaseMana:      "octbasempbyclass.txt",
			MeleeCrit:     "chancetomeleecrit.txt",
			SpellCrit:     "chancetospellcrit.txt",
			MeleeCritBase: "chancetomeleecritbase.txt",
			SpellCritBase: "chancetospellcritbase.txt",
			CombatRatings: "combatratings.txt",
		},
		Output: OutputConfig{
			Path:        filepath.Join("sim", "core", "base_stats_auto_gen.go"),
			Package:     out.Package,
			ProtoImport: out.ProtoImport,
			StatsImport: out.StatsImport,
			Gofmt:       out.Gofmt,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
