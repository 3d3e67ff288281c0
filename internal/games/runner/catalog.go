package runner

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// Built-in patterns. Boxes and anvils are two cells wide, so their cell width
// is half the object width.
var (
	patternGetReady = MustPattern("get_ready", 36, 36, []string{
		".CC...CC...C.C",
		"C....C..C..C.C",
		"CCC..C..C..C.C",
		"C..C.C..C.....",
		".CC...CC...C.C",
	})

	builtinPatterns = []*Pattern{
		MustPattern("steps", 28, 44, []string{
			"...Bb................Bb.........",
			"..BbBb......C.C.C..BbBbBb.....Bb",
		}),
		MustPattern("pyramid", 28, 44, []string{
			"................BbBbBb..........................",
			".............BbBbBbBbBbBb.......................",
			"BbBbBbBb..BbBbBbBb.C..BbBbBb..BbBbBbBb..BbBbBbBb",
		}),
		MustPattern("anvil_bridge", 28, 44, []string{
			"....C.C.C.C.C.C...........................C.C.C.",
			"..........................AaAaAaAa..............",
			"................................................",
			".............Bb.................................",
			"BbBbBbBbBbBbBbBbBb..C.C.BbBb....C.C.C...BbBbBbBb",
		}),
		MustPattern("towers", 28, 44, []string{
			"Aa...............C.C...........Aa...............",
			".................C.C............................",
			"................BbBbBb...............C.C........",
			".............BbBbBbBbBbBb............C.C.....Bb.",
			"..........BbBbBb..C.C.BbBbBb.........C.C....BbBb",
		}),
		MustPattern("staircase", 28, 44, []string{
			"....................B.B.B.B.B.B.B.B.........A.A....C.C.C....",
			"...............B.B.B.B.B.B.B.B.B.B.B................C.C.C...",
			"..........B.B.B.B.B.B.B.B.B.B.B.B.B.B................C.C.C..",
			".....B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B................C.C.C.",
			"B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B.B................C.C.C",
		}),
	}
)

// BuiltinCatalog returns the default catalog: the get-ready intro followed by
// five randomly selected obstacle courses.
func BuiltinCatalog(rng *rand.Rand) *Catalog {
	c, err := NewCatalog(patternGetReady, builtinPatterns, rng)
	if err != nil {
		panic(err) // builtinPatterns is never empty
	}
	return c
}

// yamlCatalog is the on-disk format of a pattern catalog.
type yamlCatalog struct {
	Patterns []yamlPattern `yaml:"patterns"`
}

type yamlPattern struct {
	Name  string   `yaml:"name"`
	Intro bool     `yaml:"intro,omitempty"`
	Cell  yamlCell `yaml:"cell"`
	Rows  []string `yaml:"rows"`
}

type yamlCell struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ParseCatalogYAML parses a catalog file. At most one pattern may be marked
// as intro; every other pattern joins the random-selection set.
func ParseCatalogYAML(data []byte, rng *rand.Rand) (*Catalog, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	var intro *Pattern
	var patterns []*Pattern
	for _, yp := range yc.Patterns {
		p, err := NewPattern(yp.Name, yp.Cell.W, yp.Cell.H, yp.Rows)
		if err != nil {
			return nil, err
		}
		if yp.Intro {
			if intro != nil {
				return nil, fmt.Errorf("runner: patterns %q and %q are both marked intro", intro.Name, p.Name)
			}
			intro = p
			continue
		}
		patterns = append(patterns, p)
	}

	return NewCatalog(intro, patterns, rng)
}

// LoadCatalogFile reads and parses a catalog file.
func LoadCatalogFile(path string, rng *rand.Rand) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns %s: %w", path, err)
	}
	c, err := ParseCatalogYAML(data, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to parse patterns %s: %w", path, err)
	}
	return c, nil
}
