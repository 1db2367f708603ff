package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	paths := cfg.Paths()
	assert.Equal(t, filepath.Join("assets", "db_inputs", "basestats", "octbasempbyclass.txt"), paths.BaseMana)
	assert.Equal(t, filepath.Join("assets", "db_inputs", "basestats", "combatratings.txt"), paths.CombatRatings)
	assert.Equal(t, filepath.Join("sim", "core", "base_stats_auto_gen.go"), cfg.Output.Path)
	assert.False(t, cfg.ParseOptions().StrictRows)

	opts := cfg.EmitOptions()
	assert.Equal(t, "core", opts.Package)
	assert.True(t, opts.Gofmt)
	assert.Equal(t, "base_stats_auto_gen.go", opts.FileName)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basestats.toml")
	abs := filepath.Join(dir, "ratings.tsv")
	body := `
[input]
dir = "tables"
combat_ratings = "` + filepath.ToSlash(abs) + `"

[output]
path = "out/gen.go"
package = "stats"
gofmt = false

[tables]
strict_rows = true

[logging]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	paths := cfg.Paths()
	assert.Equal(t, filepath.Join("tables", "chancetomeleecrit.txt"), paths.MeleeCrit)
	assert.Equal(t, filepath.FromSlash(filepath.ToSlash(abs)), paths.CombatRatings)
	assert.Equal(t, "out/gen.go", cfg.Output.Path)
	assert.True(t, cfg.Tables.StrictRows)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	opts := cfg.EmitOptions()
	assert.Equal(t, "stats", opts.Package)
	assert.False(t, opts.Gofmt)
	assert.Equal(t, "github.com/wowsims/mop/sim/core/proto", opts.ProtoImport, "unset keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[input\ndir ="), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvInputDir, "env/tables")
	t.Setenv(EnvOutput, "env/out.go")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.ApplyEnv()

	assert.Equal(t, "env/tables", cfg.Input.Dir)
	assert.Equal(t, "env/out.go", cfg.Output.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadDotEnv(t *testing.T) {
	const key = "BASESTATS_DOTENV_TEST"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=from-file\n"), 0o644))

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "from-file", os.Getenv(key))
}
