package runner

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinPatterns(t *testing.T) {
	c := testCatalog(1)

	if c.Intro() == nil || c.Intro().Name != "get_ready" {
		t.Errorf("intro = %v, expected get_ready", c.Intro())
	}
	if len(c.Patterns()) != 5 {
		t.Errorf("%d random patterns, expected 5", len(c.Patterns()))
	}
	for _, p := range append(c.Patterns(), c.Intro()) {
		if len(p.Placements()) == 0 {
			t.Errorf("pattern %q places nothing", p.Name)
		}
		cols, rows := p.Size()
		if cols == 0 || rows == 0 {
			t.Errorf("pattern %q has size %dx%d", p.Name, cols, rows)
		}
	}
}

func TestPatternRowsInverted(t *testing.T) {
	p := MustPattern("test", 28, 44, []string{
		"C.C",
		"BbC",
	})

	want := []Placement{
		{Kind: KindBox, Col: 0, Row: 0},
		{Kind: KindCoin, Col: 0, Row: 1},
		{Kind: KindCoin, Col: 2, Row: 0},
		{Kind: KindCoin, Col: 2, Row: 1},
	}
	got := p.Placements()
	if len(got) != len(want) {
		t.Fatalf("got %d placements, expected %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestNewPatternErrors(t *testing.T) {
	tests := []struct {
		name  string
		cellW float64
		rows  []string
	}{
		{"no rows", 28, nil},
		{"ragged rows", 28, []string{"C..", "C."}},
		{"unknown symbol", 28, []string{"C.X"}},
		{"zero cell", 0, []string{"C"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPattern(tc.name, tc.cellW, 44, tc.rows); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCatalogEmpty(t *testing.T) {
	if _, err := NewCatalog(nil, nil, nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestCatalogSelection(t *testing.T) {
	a := MustPattern("a", 28, 44, []string{"C"})
	b := MustPattern("b", 28, 44, []string{"Bb"})

	c, err := NewCatalog(nil, []*Pattern{a, b}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[c.RandomPattern().Name]++
	}
	if counts["a"] < 800 || counts["b"] < 800 {
		t.Errorf("selection is not uniform: %v", counts)
	}

	// Without an intro, the first pattern is random too.
	if p := c.IntroPattern(); p != a && p != b {
		t.Errorf("IntroPattern = %v", p)
	}
}

func TestCatalogDeterministic(t *testing.T) {
	c1, c2 := testCatalog(42), testCatalog(42)

	for i := 0; i < 50; i++ {
		if p1, p2 := c1.RandomPattern(), c2.RandomPattern(); p1 != p2 {
			t.Fatalf("pick %d differs: %s vs %s", i, p1.Name, p2.Name)
		}
	}

	c1.Reseed(9)
	c2.Reseed(9)
	for i := 0; i < 50; i++ {
		if p1, p2 := c1.RandomPattern(), c2.RandomPattern(); p1 != p2 {
			t.Fatalf("pick %d after reseed differs: %s vs %s", i, p1.Name, p2.Name)
		}
	}
}

const catalogYAML = `patterns:
  - name: hello
    intro: true
    cell: {w: 36, h: 36}
    rows:
      - "C.C"
      - "CCC"
  - name: wall
    cell: {w: 28, h: 44}
    rows:
      - "Bb"
      - "Bb"
  - name: trail
    cell: {w: 28, h: 44}
    rows:
      - "C.C.C"
`

func TestParseCatalogYAML(t *testing.T) {
	c, err := ParseCatalogYAML([]byte(catalogYAML), nil)
	if err != nil {
		t.Fatalf("ParseCatalogYAML failed: %v", err)
	}

	if c.Intro() == nil || c.Intro().Name != "hello" || c.Intro().CellW != 36 {
		t.Errorf("intro = %+v", c.Intro())
	}
	if len(c.Patterns()) != 2 {
		t.Errorf("%d patterns, expected 2", len(c.Patterns()))
	}
	if n := c.Patterns()[0].Count(KindBox); n != 2 {
		t.Errorf("wall has %d boxes, expected 2", n)
	}
}

func TestParseCatalogYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"two intros", "patterns:\n  - {name: a, intro: true, cell: {w: 1, h: 1}, rows: [C]}\n  - {name: b, intro: true, cell: {w: 1, h: 1}, rows: [C]}\n"},
		{"bad symbol", "patterns:\n  - {name: a, cell: {w: 1, h: 1}, rows: [Z]}\n"},
		{"not yaml", "patterns: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCatalogYAML([]byte(tc.data), nil); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := ParseCatalogYAML([]byte("patterns:\n  - {name: a, intro: true, cell: {w: 1, h: 1}, rows: [C]}\n"), nil)
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("intro only: expected ErrEmptyCatalog, got %v", err)
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadCatalogFile(path, nil)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	if c.Intro().Name != "hello" {
		t.Errorf("intro = %s, expected hello", c.Intro().Name)
	}

	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected an error for a missing file")
	}
}
