// Package scenario loads scripted sessions from TOML files and replays
// them against a scene. A scenario fixes the heuristic options and lists
// the commands to run in order:
//
//	name = "chain"
//	steps = ["make A", "make B", "union 0 1", "find 1"]
//
//	[options]
//	path_compression = true
//	union_by_rank = false
package scenario

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/unionviz/internal/command"
)

// ErrNoSteps is returned for a scenario without any steps.
var ErrNoSteps = errors.New("scenario has no steps")

// Options are the heuristics a scenario starts with. Unset fields keep the
// caller's configuration.
type Options struct {
	PathCompression *bool `toml:"path_compression"`
	UnionByRank     *bool `toml:"union_by_rank"`
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name     string            `toml:"name"`
	Options  Options           `toml:"options"`
	Steps    []string          `toml:"steps"`
	Path     string            `toml:"-"`
	Commands []command.Command `toml:"-"`
}

// Load reads and parses the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.Path = path
	return sc, nil
}

// Parse decodes a scenario and pre-parses every step so a bad line is
// reported before anything runs.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario TOML: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, ErrNoSteps
	}
	sc.Commands = make([]command.Command, 0, len(sc.Steps))
	for i, line := range sc.Steps {
		cmd, err := command.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("step %d (%q): %w", i+1, line, err)
		}
		sc.Commands = append(sc.Commands, cmd)
	}
	return &sc, nil
}

// StepFunc observes each step as it is played. step is 1-based.
type StepFunc func(step int, res command.Result, err error)

// Play applies the scenario's options and then every step in order. A
// failing step (for example a find on a missing id) is reported to fn and
// play continues, as it would at the interactive prompt.
func Play(t command.Target, sc *Scenario, fn StepFunc) (failed int) {
	if sc.Options.PathCompression != nil {
		t.SetPathCompression(*sc.Options.PathCompression)
	}
	if sc.Options.UnionByRank != nil {
		t.SetUnionByRank(*sc.Options.UnionByRank)
	}
	for i, cmd := range sc.Commands {
		res, err := command.Apply(t, cmd)
		if err != nil {
			failed++
		}
		if fn != nil {
			fn(i+1, res, err)
		}
	}
	return failed
}
