package pipeline

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simtools/basestats/internal/data"
	"github.com/simtools/basestats/internal/emit"
	"github.com/simtools/basestats/internal/testutil"
)

func newOptions(t *testing.T, tables testutil.Tables) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Paths:      testutil.WriteTables(t, filepath.Join(dir, "tables"), tables),
		OutputPath: filepath.Join(dir, "sim", "core", "base_stats_auto_gen.go"),
		Emit:       emit.DefaultOptions(),
	}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRunWritesDocument(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	log, logs := observedLogger()

	require.NoError(t, Run(opts, log))

	out, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "// Code generated by basestatsgen. DO NOT EDIT."))
	assert.Contains(t, doc, "const ExpertisePerQuarterPercentReduction = 22.5\n")
	assert.Contains(t, doc, "var ExtraClassBaseStats = map[proto.Class]stats.Stats{")

	writes := logs.FilterMessage("writing base stats").All()
	require.Len(t, writes, 1)
	assert.Equal(t, opts.OutputPath, writes[0].ContextMap()["path"])
	assert.Len(t, logs.FilterMessage("loaded table").All(), 6)
}

func TestRunCritRatingFromReferenceLevel(t *testing.T) {
	tables := testutil.DefaultTables()
	testutil.SetRating(t, tables.CombatRatings, data.ReferenceLevel, int(data.RatingCritMelee), "45")
	testutil.SetClassCell(t, tables.MeleeCrit, "90", 0, "0.05")
	opts := newOptions(t, tables)

	require.NoError(t, Run(opts, nil))

	out, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "const CritRatingPerCritPercent = 45\n")
	assert.Regexp(t, `proto\.Class_ClassWarrior:\s+20\.00000000,`, string(out))
}

func TestRunMissingClassWritesNothing(t *testing.T) {
	tables := testutil.DefaultTables()
	tables.DropLastClass()
	opts := newOptions(t, tables)
	log, logs := observedLogger()

	err := Run(opts, log)
	require.ErrorIs(t, err, data.ErrMissingKey)

	_, statErr := os.Stat(opts.OutputPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
	assert.Empty(t, logs.FilterMessage("writing base stats").All())
}

func TestRunFailureKeepsExistingOutput(t *testing.T) {
	tables := testutil.DefaultTables()
	testutil.SetClassCell(t, tables.MeleeCrit, "90", 3, "0")
	opts := newOptions(t, tables)
	require.NoError(t, os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755))
	require.NoError(t, os.WriteFile(opts.OutputPath, []byte("previous"), 0o644))

	err := Run(opts, nil)
	require.ErrorIs(t, err, data.ErrDivideByZero)

	out, readErr := os.ReadFile(opts.OutputPath)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(out))
}

func TestRunOverwritesExistingOutput(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	dir := filepath.Dir(opts.OutputPath)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(opts.OutputPath, []byte("stale content that is longer than nothing"), 0o644))

	require.NoError(t, Run(opts, nil))

	out, err := os.ReadFile(opts.OutputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "stale content")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, filepath.Base(opts.OutputPath), entries[0].Name())
}

func TestRunCheck(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	opts.Check = true

	err := Run(opts, nil)
	require.ErrorIs(t, err, ErrStale)
	_, statErr := os.Stat(opts.OutputPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist, "check must not write")

	opts.Check = false
	require.NoError(t, Run(opts, nil))

	opts.Check = true
	log, logs := observedLogger()
	require.NoError(t, Run(opts, log))
	assert.Len(t, logs.FilterMessage("base stats up to date").All(), 1)

	require.NoError(t, os.WriteFile(opts.OutputPath, []byte("edited"), 0o644))
	assert.ErrorIs(t, Run(opts, nil), ErrStale)
}

func TestRunSummary(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	var summary bytes.Buffer
	opts.Summary = &summary

	require.NoError(t, Run(opts, nil))
	assert.Contains(t, summary.String(), "reference_level: 90")
	assert.Contains(t, summary.String(), "class: Death Knight")
}

func TestRunValidatesOptions(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	opts.OutputPath = " "
	err := Run(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output path is required")

	opts = newOptions(t, testutil.DefaultTables())
	opts.Paths.CombatRatings = ""
	err = Run(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combat ratings path is required")
}

func TestRunMissingInput(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	require.NoError(t, os.Remove(opts.Paths.BaseMana))

	err := Run(opts, nil)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "base mana")
}

func TestRunStrictRows(t *testing.T) {
	tables := testutil.DefaultTables()
	tables.SpellCrit[5] = tables.SpellCrit[5][:4]
	opts := newOptions(t, tables)

	require.NoError(t, Run(opts, nil), "ragged rows away from the lookups are tolerated")

	opts.Parse.StrictRows = true
	assert.ErrorIs(t, Run(opts, nil), data.ErrParse)
}

func TestRunSummaryOnlyAfterSuccess(t *testing.T) {
	opts := newOptions(t, testutil.DefaultTables())
	var summary bytes.Buffer
	opts.Summary = &summary

	opts.Check = true
	require.ErrorIs(t, Run(opts, nil), ErrStale)
	assert.Empty(t, summary.String(), "a stale check must not print a summary")

	opts.Check = false
	require.NoError(t, os.MkdirAll(opts.OutputPath, 0o755))
	require.Error(t, Run(opts, nil), "output path is a directory")
	assert.Empty(t, summary.String(), "a failed write must not print a summary")
}

func TestRunSubnormalCritChanceWritesNothing(t *testing.T) {
	tables := testutil.DefaultTables()
	testutil.SetClassCell(t, tables.MeleeCrit, "90", 0, "1e-320")
	opts := newOptions(t, tables)

	err := Run(opts, nil)
	require.ErrorIs(t, err, data.ErrDivideByZero)

	_, statErr := os.Stat(opts.OutputPath)
	assert.ErrorIs(t, statErr, fs.ErrNotExist)
}
