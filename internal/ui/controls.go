package ui

import (
	"fmt"

	"chunk-ca/internal/core"
)

// Source provides the values shown in the HUD.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// IntSetter applies a HUD adjustment. It reports whether the value changed.
type IntSetter interface {
	SetIntParameter(key string, v int) bool
}

// Control is an integer parameter the HUD exposes with -/+ buttons.
type Control struct {
	Key   string
	Label string
	Step  int
	Min   int
	Max   int
}

// Clamp limits v to the control's range.
func (c Control) Clamp(v int) int {
	if v < c.Min {
		return c.Min
	}
	if c.Max > c.Min && v > c.Max {
		return c.Max
	}
	return v
}

// Lines flattens a snapshot into the text rows drawn by the HUD: a header per
// group followed by indented label/value pairs.
func Lines(s core.ParameterSnapshot) []string {
	var out []string
	for _, g := range s.Groups {
		if len(g.Params) == 0 {
			continue
		}
		out = append(out, g.Name)
		for _, p := range g.Params {
			out = append(out, fmt.Sprintf("  %-12s %s", p.Label, p.Value))
		}
	}
	return out
}
