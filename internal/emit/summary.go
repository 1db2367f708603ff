package emit

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/simtools/basestats/internal/data"
	"github.com/simtools/basestats/internal/derive"
)

type summaryDoc struct {
	ReferenceLevel int            `yaml:"reference_level"`
	Ratings        []ratingEntry  `yaml:"ratings"`
	Classes        []classSummary `yaml:"classes"`
}

type ratingEntry struct {
	Key   string  `yaml:"key"`
	Const string  `yaml:"const"`
	Value float64 `yaml:"value"`
}

type classSummary struct {
	Class            string  `yaml:"class"`
	CritPerAgi       float64 `yaml:"crit_per_agi"`
	CritPerInt       float64 `yaml:"crit_per_int"`
	derive.BaseStats `yaml:",inline"`
}

// WriteSummary prints the derived values as YAML for review. Classes follow
// emission order; the sentinel is left out.
func WriteSummary(w io.Writer, c *derive.Constants) error {
	if c == nil {
		return fmt.Errorf("summary: nil constants")
	}
	doc := summaryDoc{ReferenceLevel: data.ReferenceLevel}
	for _, rc := range ratingConstants {
		doc.Ratings = append(doc.Ratings, ratingEntry{
			Key:   rc.rating.Key(),
			Const: rc.ident,
			Value: c.Ratings[rc.rating],
		})
	}
	for _, cls := range data.Classes() {
		doc.Classes = append(doc.Classes, classSummary{
			Class:      cls.Name(),
			CritPerAgi: c.CritPerAgi[cls],
			CritPerInt: c.CritPerInt[cls],
			BaseStats:  c.BaseStats[cls],
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("summary: marshal: %w", err)
	}
	return enc.Close()
}
