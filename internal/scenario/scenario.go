// Package scenario describes initial worlds in YAML and keeps the registry of
// built-in ones.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"chunk-ca/internal/paint"
	"chunk-ca/internal/world"

	"gopkg.in/yaml.v3"
)

// Scenario is an initial world: a chunk grid plus shapes painted over it.
type Scenario struct {
	Name   string    `yaml:"name"`
	Notes  string    `yaml:"notes,omitempty"`
	World  WorldSpec `yaml:"world"`
	Shapes []Shape   `yaml:"shapes"`
}

// WorldSpec sizes the chunk grid. Zero ChunksX/ChunksY leaves the grid to the
// caller.
type WorldSpec struct {
	ChunksX int     `yaml:"chunks_x"`
	ChunksY int     `yaml:"chunks_y"`
	Fill    float64 `yaml:"fill"` // initial GameOfLife density
}

// ShapeType names a paintable primitive.
type ShapeType string

const (
	ShapeRect    ShapeType = "rect"
	ShapeLine    ShapeType = "line"
	ShapePoint   ShapeType = "point"
	ShapePattern ShapeType = "pattern"
)

// Shape is one primitive in world tile coordinates.
//
//	rect:    X, Y, W, H
//	line:    X, Y to X2, Y2, stamped with Brush
//	point:   X, Y, stamped with Brush
//	pattern: Rows of '#' (Kind) and '.' (skip) with the top-left at X, Y
type Shape struct {
	Type  ShapeType  `yaml:"shape"`
	Kind  world.Kind `yaml:"kind"`
	X     int        `yaml:"x"`
	Y     int        `yaml:"y"`
	X2    int        `yaml:"x2,omitempty"`
	Y2    int        `yaml:"y2,omitempty"`
	W     int        `yaml:"w,omitempty"`
	H     int        `yaml:"h,omitempty"`
	Brush int        `yaml:"brush,omitempty"`
	Rows  []string   `yaml:"rows,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every malformed shape.
func (s *Scenario) Validate() error {
	var errs []error
	if s.World.ChunksX < 0 || s.World.ChunksY < 0 {
		errs = append(errs, fmt.Errorf("world: negative chunk grid %dx%d", s.World.ChunksX, s.World.ChunksY))
	}
	if s.World.Fill < 0 || s.World.Fill > 1 {
		errs = append(errs, fmt.Errorf("world: fill %.2f outside [0,1]", s.World.Fill))
	}
	for i, sh := range s.Shapes {
		if err := sh.validate(); err != nil {
			errs = append(errs, fmt.Errorf("shape %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (sh Shape) validate() error {
	switch sh.Type {
	case ShapeRect:
		if sh.W <= 0 || sh.H <= 0 {
			return fmt.Errorf("rect needs positive w and h, got %dx%d", sh.W, sh.H)
		}
	case ShapeLine, ShapePoint:
	case ShapePattern:
		if len(sh.Rows) == 0 {
			return errors.New("pattern has no rows")
		}
		for _, row := range sh.Rows {
			if strings.Trim(row, "#.") != "" {
				return fmt.Errorf("pattern row %q may only contain '#' and '.'", row)
			}
		}
	case "":
		return errors.New("missing shape type")
	default:
		return fmt.Errorf("unknown shape %q", sh.Type)
	}
	return nil
}

// Apply creates the scenario's chunk grid and paints its shapes into l. It
// returns the number of tiles written; shapes outside alive chunks are
// clipped.
func (s *Scenario) Apply(l *world.ChunkList) int {
	if s.World.ChunksX > 0 && s.World.ChunksY > 0 {
		l.Populate(s.World.ChunksX, s.World.ChunksY, s.World.Fill)
	}
	n := 0
	for _, sh := range s.Shapes {
		n += sh.apply(l)
	}
	return n
}

func (sh Shape) apply(w paint.Writer) int {
	b := paint.Brush{Kind: sh.Kind, Size: sh.Brush}
	n := 0
	switch sh.Type {
	case ShapeRect:
		for y := sh.Y; y < sh.Y+sh.H; y++ {
			for x := sh.X; x < sh.X+sh.W; x++ {
				if w.SetTile(x, y, sh.Kind) {
					n++
				}
			}
		}
	case ShapeLine:
		n = b.Stroke(w, paint.Point{X: sh.X, Y: sh.Y}, paint.Point{X: sh.X2, Y: sh.Y2})
	case ShapePoint:
		n = b.Stamp(w, paint.Point{X: sh.X, Y: sh.Y})
	case ShapePattern:
		for dy, row := range sh.Rows {
			for dx, ch := range row {
				if ch == '#' && w.SetTile(sh.X+dx, sh.Y+dy, sh.Kind) {
					n++
				}
			}
		}
	}
	return n
}
