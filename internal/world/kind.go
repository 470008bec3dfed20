package world

import (
	"fmt"
	"image/color"
	"strings"

	prng "chunk-ca/pkg/core"
)

// Kind enumerates the tile kinds. The zero value is Empty.
type Kind uint8

const (
	Empty Kind = iota
	GameOfLife
	Sand
	Stone
	BrainOn
	BrainDying

	kindCount
)

// Rule evaluates one tile and returns the Action it wants, or None. Rules only
// read c and nb; they must not mutate either.
type Rule func(x, y int, c *Chunk, nb Neighbors, rng *prng.RNG) Action

var kindNames = [kindCount]string{
	Empty:      "empty",
	GameOfLife: "life",
	Sand:       "sand",
	Stone:      "stone",
	BrainOn:    "brain",
	BrainDying: "brain-dying",
}

var kindColors = [kindCount]color.RGBA{
	Empty:      {R: 0, G: 0, B: 0, A: 255},
	GameOfLife: {R: 0, G: 255, B: 0, A: 255},
	Sand:       {R: 194, G: 178, B: 128, A: 255},
	Stone:      {R: 128, G: 128, B: 128, A: 255},
	BrainOn:    {R: 255, G: 255, B: 255, A: 255},
	BrainDying: {R: 0, G: 0, B: 255, A: 255},
}

// Rules are tried in order; the first non-None Action wins.
var ruleTable = [kindCount][]Rule{
	Empty:      {lifeBirth, brainBirth},
	GameOfLife: {lifeDeath},
	Sand:       {fallDown, fallDiagonal},
	Stone:      nil,
	BrainOn:    {brainFire},
	BrainDying: {brainDecay},
}

// RulesFor returns the ordered rule list for k. The slice is shared and must
// not be modified.
func RulesFor(k Kind) []Rule {
	if k >= kindCount {
		return nil
	}
	return ruleTable[k]
}

// ColorFor returns the display color for k.
func ColorFor(k Kind) color.RGBA {
	if k >= kindCount {
		return kindColors[Empty]
	}
	return kindColors[k]
}

// Kinds lists every tile kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "gameoflife", "game-of-life", "gol":
		return GameOfLife, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return Empty, fmt.Errorf("unknown tile kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
