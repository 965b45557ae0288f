// Package command parses the one-line commands typed into the shell, the
// REPL and scenario files, and applies them to a scene.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/unionviz/internal/unionfind"
)

var (
	// ErrEmpty is returned for a blank line.
	ErrEmpty = errors.New("empty command")
	// ErrUnknownVerb is returned when the first word is not a known command.
	ErrUnknownVerb = errors.New("unknown command")
	// ErrUsage is returned when a known command has bad arguments.
	ErrUsage = errors.New("usage")
)

// Verb identifies a command.
type Verb int

// Verbs understood by Parse.
const (
	VerbMake Verb = iota
	VerbUnion
	VerbFind
	VerbCompress
	VerbRank
	VerbReset
	VerbHelp
)

var verbNames = map[Verb]string{
	VerbMake:     "make",
	VerbUnion:    "union",
	VerbFind:     "find",
	VerbCompress: "compress",
	VerbRank:     "rank",
	VerbReset:    "reset",
	VerbHelp:     "help",
}

// String returns the keyword the verb is typed as.
func (v Verb) String() string {
	if s, ok := verbNames[v]; ok {
		return s
	}
	return fmt.Sprintf("verb(%d)", int(v))
}

// Switch is the argument of the option toggles.
type Switch int

// Switch values. A bare toggle verb flips the option.
const (
	SwitchToggle Switch = iota
	SwitchOn
	SwitchOff
)

// Command is one parsed line.
type Command struct {
	Verb   Verb
	Value  string // make
	A, B   int    // find uses A; union uses A and B
	Switch Switch // compress, rank
}

// Usage lists the accepted commands, one per line.
func Usage() []string {
	return []string{
		"make <value>            add a new singleton set",
		"union <id> <id>         merge the sets of two elements",
		"find <id>               find the root of an element",
		"compress on|off|toggle  path compression",
		"rank on|off|toggle      union by rank",
		"reset                   discard the whole forest",
		"help                    show this list",
	}
}

// Parse reads one command line. Verbs are case-insensitive; the value given
// to make keeps its case and inner spacing.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmpty
	}
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "make", "add", "makeset":
		value := strings.TrimSpace(line[len(fields[0]):])
		if value == "" {
			return Command{}, fmt.Errorf("%w: make <value>", ErrUsage)
		}
		return Command{Verb: VerbMake, Value: value}, nil

	case "union", "u":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%w: union <id> <id>", ErrUsage)
		}
		a, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		b, err := parseID(args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbUnion, A: a, B: b}, nil

	case "find", "f":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: find <id>", ErrUsage)
		}
		a, err := parseID(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbFind, A: a}, nil

	case "compress", "pc":
		sw, err := parseSwitch(verb, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbCompress, Switch: sw}, nil

	case "rank", "ubr":
		sw, err := parseSwitch(verb, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Verb: VerbRank, Switch: sw}, nil

	case "reset", "clear":
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: reset", ErrUsage)
		}
		return Command{Verb: VerbReset}, nil

	case "help", "?":
		return Command{Verb: VerbHelp}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownVerb, fields[0])
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q is not an element id", ErrUsage, s)
	}
	return id, nil
}

func parseSwitch(verb string, args []string) (Switch, error) {
	if len(args) == 0 {
		return SwitchToggle, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("%w: %s on|off|toggle", ErrUsage, verb)
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1", "yes":
		return SwitchOn, nil
	case "off", "false", "0", "no":
		return SwitchOff, nil
	case "toggle":
		return SwitchToggle, nil
	}
	return 0, fmt.Errorf("%w: %s on|off|toggle", ErrUsage, verb)
}

// Target is what commands operate on. *scene.Scene satisfies it.
type Target interface {
	MakeSet(value string) int
	Find(id int) (int, error)
	Union(x, y int) (bool, error)
	Options() unionfind.Options
	SetPathCompression(on bool)
	SetUnionByRank(on bool)
	Reset()
}

// Result describes what a command did.
type Result struct {
	Command Command
	ID      int  // make: the new id; find: the root
	Merged  bool // union
	Message string
}

// Apply runs cmd against t. Help is answered without touching t.
func Apply(t Target, cmd Command) (Result, error) {
	res := Result{Command: cmd}
	switch cmd.Verb {
	case VerbMake:
		res.ID = t.MakeSet(cmd.Value)
		res.Message = fmt.Sprintf("made set %d (%s)", res.ID, cmd.Value)

	case VerbFind:
		root, err := t.Find(cmd.A)
		if err != nil {
			return res, fmt.Errorf("find %d: %w", cmd.A, err)
		}
		res.ID = root
		res.Message = fmt.Sprintf("find(%d) = %d", cmd.A, root)

	case VerbUnion:
		merged, err := t.Union(cmd.A, cmd.B)
		if err != nil {
			return res, fmt.Errorf("union %d %d: %w", cmd.A, cmd.B, err)
		}
		res.Merged = merged
		if merged {
			res.Message = fmt.Sprintf("union(%d, %d) merged", cmd.A, cmd.B)
		} else {
			res.Message = fmt.Sprintf("union(%d, %d): already in the same set", cmd.A, cmd.B)
		}

	case VerbCompress:
		on := resolve(cmd.Switch, t.Options().PathCompression)
		t.SetPathCompression(on)
		res.Message = "path compression " + onOff(on)

	case VerbRank:
		on := resolve(cmd.Switch, t.Options().UnionByRank)
		t.SetUnionByRank(on)
		res.Message = "union by rank " + onOff(on)

	case VerbReset:
		t.Reset()
		res.Message = "forest cleared"

	case VerbHelp:
		res.Message = strings.Join(Usage(), "\n")

	default:
		return res, fmt.Errorf("%w: %s", ErrUnknownVerb, cmd.Verb)
	}
	return res, nil
}

// Run parses and applies a single line.
func Run(t Target, line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	return Apply(t, cmd)
}

func resolve(sw Switch, current bool) bool {
	switch sw {
	case SwitchOn:
		return true
	case SwitchOff:
		return false
	}
	return !current
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
