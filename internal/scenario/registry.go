package scenario

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Builder produces a fresh copy of a registered scenario.
type Builder func() (*Scenario, error)

var builders = map[string]Builder{}

//go:embed builtin/*.yaml
var builtinFS embed.FS

func init() {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		file := path.Join("builtin", e.Name())
		Register(strings.TrimSuffix(e.Name(), ".yaml"), func() (*Scenario, error) {
			data, err := builtinFS.ReadFile(file)
			if err != nil {
				return nil, err
			}
			return Parse(data)
		})
	}
}

// Register adds a scenario builder under the provided name.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	builders[name] = b
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, bool) {
	b, ok := builders[name]
	return b, ok
}

// Names lists the registered scenarios in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the registered scenario called ref, or loads ref as a file
// path when no scenario has that name.
func Resolve(ref string) (*Scenario, error) {
	if b, ok := Lookup(ref); ok {
		s, err := b()
		if err != nil {
			return nil, fmt.Errorf("built-in scenario %s: %w", ref, err)
		}
		return s, nil
	}
	if !strings.HasSuffix(ref, ".yaml") && !strings.HasSuffix(ref, ".yml") {
		return nil, fmt.Errorf("unknown scenario %q (built-ins: %s)", ref, strings.Join(Names(), ", "))
	}
	return Load(ref)
}
