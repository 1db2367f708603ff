package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/simtools/basestats/internal/data"
	"github.com/simtools/basestats/internal/derive"
	"github.com/simtools/basestats/internal/emit"
)

// ErrStale is returned by a check run when the file on disk differs from
// what would be generated.
var ErrStale = errors.New("generated file is out of date")

// Options defines the inputs of one generation run.
type Options struct {
	Paths      data.Paths
	Parse      data.ParseOptions
	OutputPath string
	Emit       emit.Options
	// Check compares against OutputPath instead of writing it.
	Check bool
	// Summary, when set, receives a YAML dump of the derived values.
	Summary io.Writer
}

// Run executes the pipeline. Nothing is written unless every table loads and
// every value derives.
func Run(opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	bundle, err := loadBundle(opts, log)
	if err != nil {
		return err
	}

	consts, err := derive.Derive(bundle)
	if err != nil {
		return fmt.Errorf("basestats: derive: %w", err)
	}

	doc, err := emit.Render(consts, opts.Emit)
	if err != nil {
		return fmt.Errorf("basestats: %w", err)
	}

	if opts.Check {
		if err := checkCurrent(opts.OutputPath, doc, log); err != nil {
			return err
		}
	} else {
		log.Info("writing base stats", zap.String("path", opts.OutputPath))
		if err := writeFileAtomic(opts.OutputPath, doc); err != nil {
			return fmt.Errorf("basestats: failed writing output %s: %w", opts.OutputPath, err)
		}
	}

	// The summary only describes a run that succeeded.
	if opts.Summary != nil {
		if err := emit.WriteSummary(opts.Summary, consts); err != nil {
			return fmt.Errorf("basestats: %w", err)
		}
	}
	return nil
}

func validateOptions(opts Options) error {
	required := []struct {
		name, value string
	}{
		{"base mana path", opts.Paths.BaseMana},
		{"melee crit path", opts.Paths.MeleeCrit},
		{"spell crit path", opts.Paths.SpellCrit},
		{"melee crit base path", opts.Paths.MeleeCritBase},
		{"spell crit base path", opts.Paths.SpellCritBase},
		{"combat ratings path", opts.Paths.CombatRatings},
		{"output path", opts.OutputPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("basestats: %s is required", r.name)
		}
	}
	return nil
}

func loadBundle(opts Options, log *zap.Logger) (*data.StatBundle, error) {
	bundle := &data.StatBundle{}
	for _, src := range data.Sources(opts.Paths) {
		t, err := src.Load(opts.Parse)
		if err != nil {
			return nil, fmt.Errorf("basestats: load %s table: %w", src.Role, err)
		}
		if err := bundle.Set(src.Role, t); err != nil {
			return nil, fmt.Errorf("basestats: %w", err)
		}
		log.Debug("loaded table",
			zap.Stringer("role", src.Role),
			zap.String("path", src.Path),
			zap.Stringer("orientation", src.Orientation),
			zap.Int("rows", t.Len()),
		)
	}
	return bundle, nil
}

func checkCurrent(path string, doc []byte, log *zap.Logger) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("basestats: %w: %s does not exist", ErrStale, path)
		}
		return fmt.Errorf("basestats: read %s: %w", path, err)
	}
	if !bytes.Equal(existing, doc) {
		return fmt.Errorf("basestats: %w: %s", ErrStale, path)
	}
	log.Info("base stats up to date", zap.String("path", path))
	return nil
}

// writeFileAtomic writes through a temp file in the target directory so a
// failed run never leaves a half-written document behind.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
