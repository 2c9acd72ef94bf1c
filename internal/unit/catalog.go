package unit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/numentry/internal/numeric"
)

// Catalog maps set names to unit sets loaded from a YAML document:
//
//	sets:
//	  frequency:
//	    - suffix: Hz
//	      scale: 1
//	    - suffix: kHz
//	      scale: 1e3
type Catalog map[string]Set

type catalogFile struct {
	Sets map[string][]catalogUnit `yaml:"sets"`
}

type catalogUnit struct {
	Suffix string    `yaml:"suffix"`
	Scale  scaleNode `yaml:"scale"`
}

type scaleNode struct {
	value Multiplier
	set   bool
}

// UnmarshalYAML parses the scale as decimal text so that values such as
// 1e-12 keep their exact value.
func (s *scaleNode) UnmarshalYAML(n *yaml.Node) error {
	d, err := numeric.Parse(n.Value, '.')
	if err != nil {
		return fmt.Errorf("line %d: scale %q: %w", n.Line, n.Value, err)
	}
	s.value.Scale = d
	s.set = true
	return nil
}

// ParseCatalog decodes a YAML unit catalog. Every set is validated.
func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unit catalog: %w", err)
	}

	c := make(Catalog, len(f.Sets))
	for name, units := range f.Sets {
		set := make(Set, 0, len(units))
		for _, u := range units {
			m := Multiplier{Suffix: u.Suffix, Scale: u.Scale.value.Scale}
			if !u.Scale.set {
				m.Scale = None.Scale
			}
			set = append(set, m)
		}
		if err := set.Validate(); err != nil {
			return nil, fmt.Errorf("unit catalog: set %q: %w", name, err)
		}
		c[strings.ToLower(name)] = set
	}
	return c, nil
}

// Lookup returns the named set, falling back to the predefined sets.
func (c Catalog) Lookup(name string) (Set, bool) {
	if s, ok := c[strings.ToLower(name)]; ok {
		return s, true
	}
	return Standard(name)
}
