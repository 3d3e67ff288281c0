package runner

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrEmptyCatalog is returned when a catalog has no registered patterns.
var ErrEmptyCatalog = errors.New("runner: pattern catalog is empty")

// Pattern symbols. An upper-case obstacle letter starts a two-cell wide
// object; the lower-case letter after it marks the cell it covers.
const (
	SymbolEmpty     = '.'
	SymbolCoin      = 'C'
	SymbolBox       = 'B'
	SymbolBoxTail   = 'b'
	SymbolAnvil     = 'A'
	SymbolAnvilTail = 'a'
)

// Placement is one object described by a pattern, in grid coordinates with
// row 0 at the bottom.
type Placement struct {
	Kind Kind
	Col  int
	Row  int
}

// Pattern is an immutable grid layout of pickups and obstacles covering one
// screen-width segment of the world.
type Pattern struct {
	Name  string
	CellW float64 // Horizontal spacing between columns in pixels
	CellH float64 // Vertical spacing between rows in pixels

	rows       []string // Top row first, as authored
	cols       int
	placements []Placement
}

// NewPattern validates the authored rows and builds a pattern.
// Rows are listed top first; all rows must have the same length.
func NewPattern(name string, cellW, cellH float64, rows []string) (*Pattern, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("runner: pattern %q has no rows", name)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("runner: pattern %q has non-positive cell size", name)
	}

	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("runner: pattern %q row %d has %d columns, expected %d", name, i, len(r), cols)
		}
		for j := 0; j < len(r); j++ {
			switch r[j] {
			case SymbolEmpty, SymbolCoin, SymbolBox, SymbolBoxTail, SymbolAnvil, SymbolAnvilTail:
			default:
				return nil, fmt.Errorf("runner: pattern %q row %d col %d: unknown symbol %q", name, i, j, r[j])
			}
		}
	}

	p := &Pattern{
		Name:  name,
		CellW: cellW,
		CellH: cellH,
		rows:  append([]string(nil), rows...),
		cols:  cols,
	}
	p.placements = p.buildPlacements()
	return p, nil
}

// MustPattern is NewPattern for static catalogs; it panics on malformed rows.
func MustPattern(name string, cellW, cellH float64, rows []string) *Pattern {
	p, err := NewPattern(name, cellW, cellH, rows)
	if err != nil {
		panic(err)
	}
	return p
}

// Size returns the grid dimensions.
func (p *Pattern) Size() (cols, rows int) {
	return p.cols, len(p.rows)
}

// Rows returns the authored rows, top row first.
func (p *Pattern) Rows() []string {
	return append([]string(nil), p.rows...)
}

// Placements returns the objects of the pattern in column-major order, so
// that their X positions never decrease.
func (p *Pattern) Placements() []Placement {
	return p.placements
}

func (p *Pattern) buildPlacements() []Placement {
	var out []Placement
	height := len(p.rows)
	for col := 0; col < p.cols; col++ {
		for row := 0; row < height; row++ {
			c := p.rows[height-row-1][col]
			switch c {
			case SymbolCoin:
				out = append(out, Placement{Kind: KindCoin, Col: col, Row: row})
			case SymbolBox:
				out = append(out, Placement{Kind: KindBox, Col: col, Row: row})
			case SymbolAnvil:
				out = append(out, Placement{Kind: KindAnvil, Col: col, Row: row})
			}
		}
	}
	return out
}

// Count returns how many objects of the given kind the pattern places.
func (p *Pattern) Count(k Kind) int {
	n := 0
	for _, pl := range p.placements {
		if pl.Kind == k {
			n++
		}
	}
	return n
}

// Catalog is a fixed set of patterns plus an intro pattern shown at level
// start. Random selection uses the injected source so runs are reproducible.
type Catalog struct {
	intro    *Pattern
	patterns []*Pattern
	rng      *rand.Rand
}

// NewCatalog creates a catalog. At least one pattern is required; when intro
// is nil the first selection is random as well.
func NewCatalog(intro *Pattern, patterns []*Pattern, rng *rand.Rand) (*Catalog, error) {
	if len(patterns) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &Catalog{
		intro:    intro,
		patterns: append([]*Pattern(nil), patterns...),
		rng:      rng,
	}, nil
}

// IntroPattern returns the level-start pattern.
func (c *Catalog) IntroPattern() *Pattern {
	if c.intro == nil {
		return c.RandomPattern()
	}
	return c.intro
}

// RandomPattern returns a uniformly chosen pattern from the catalog.
func (c *Catalog) RandomPattern() *Pattern {
	return c.patterns[c.rng.Intn(len(c.patterns))]
}

// Patterns returns the random-selection set.
func (c *Catalog) Patterns() []*Pattern {
	return append([]*Pattern(nil), c.patterns...)
}

// Intro returns the intro pattern, which may be nil.
func (c *Catalog) Intro() *Pattern {
	return c.intro
}

// Reseed restarts random selection from a new seed.
func (c *Catalog) Reseed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}
