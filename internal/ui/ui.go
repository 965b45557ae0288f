// Package ui prints the plain-terminal output of the run command and the
// REPL: banners, command results, option status, the node table and an
// ASCII rendering of the forest. Everything is written to stderr so stdout
// stays free for --json output.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/papapumpkin/unionviz/internal/ansi"
	"github.com/papapumpkin/unionviz/internal/command"
	"github.com/papapumpkin/unionviz/internal/scene"
	"github.com/papapumpkin/unionviz/internal/unionfind"
)

// Printer writes formatted output to stderr.
type Printer struct{}

// New creates a Printer.
func New() *Printer {
	return &Printer{}
}

// Banner prints the startup banner.
func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╔═══════════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset+ansi.Bold+"  UNIONVIZ  "+ansi.Dim+"disjoint-set visualizer"+ansi.Reset+ansi.Bold+ansi.Cyan+" ║"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╚═══════════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(os.Stderr)
}

// Prompt prints the REPL prompt without a trailing newline.
func (p *Printer) Prompt() {
	fmt.Fprint(os.Stderr, ansi.Bold+ansi.Cyan+"unionviz> "+ansi.Reset)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Result prints what a command did. Merges and compressing finds are
// highlighted; a union of already-joined elements is dimmed.
func (p *Printer) Result(res command.Result) {
	switch res.Command.Verb {
	case command.VerbHelp:
		p.ShowHelp()
	case command.VerbUnion:
		if res.Merged {
			fmt.Fprintln(os.Stderr, ansi.Green+"✓ "+ansi.Reset+res.Message)
		} else {
			fmt.Fprintln(os.Stderr, ansi.Dim+"· "+res.Message+ansi.Reset)
		}
	case command.VerbFind:
		fmt.Fprintln(os.Stderr, ansi.Cyan+"◆ "+ansi.Reset+res.Message)
	case command.VerbCompress, command.VerbRank, command.VerbReset:
		fmt.Fprintln(os.Stderr, ansi.Yellow+"⚙ "+ansi.Reset+res.Message)
	default:
		fmt.Fprintln(os.Stderr, ansi.Blue+"+ "+ansi.Reset+res.Message)
	}
}

// ScenarioStep prints one replayed scenario line with its outcome.
func (p *Printer) ScenarioStep(step int, line string, res command.Result, err error) {
	prefix := fmt.Sprintf(ansi.Dim+"[%3d]"+ansi.Reset+" %-22s ", step, line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s"+ansi.Red+"✗ %v"+ansi.Reset+"\n", prefix, err)
		return
	}
	if res.Command.Verb == command.VerbHelp {
		fmt.Fprintln(os.Stderr, prefix)
		return
	}
	fmt.Fprintf(os.Stderr, "%s%s\n", prefix, res.Message)
}

// ShowHelp lists the commands and the REPL-only keywords.
func (p *Printer) ShowHelp() {
	lines := []string{ansi.Bold + "Commands:" + ansi.Reset}
	for _, u := range command.Usage() {
		lines = append(lines, "  "+u)
	}
	lines = append(lines,
		"  "+ansi.Bold+"show"+ansi.Reset+"                    draw the forest",
		"  "+ansi.Bold+"nodes"+ansi.Reset+"                   list every element",
		"  "+ansi.Bold+"tick [n]"+ansi.Reset+"                run n layout ticks (default 100)",
		"  "+ansi.Bold+"status"+ansi.Reset+"                  show options and set count",
		"  "+ansi.Bold+"quit"+ansi.Reset+"                    exit unionviz",
	)
	fmt.Fprintln(os.Stderr, strings.Join(lines, "\n"))
}

// ShowStatus prints the heuristic flags, the element count and the
// number of disjoint sets.
func (p *Printer) ShowStatus(opts unionfind.Options, elements, sets int) {
	fmt.Fprintln(os.Stderr, ansi.Dim+"status:"+ansi.Reset)
	fmt.Fprintf(os.Stderr, "  path compression:  %s\n", flag(opts.PathCompression))
	fmt.Fprintf(os.Stderr, "  union by rank:     %s\n", flag(opts.UnionByRank))
	fmt.Fprintf(os.Stderr, "  elements:          %d\n", elements)
	fmt.Fprintf(os.Stderr, "  sets:              %d\n", sets)
}

// NodeTable prints one row per element: id, value, parent, rank and
// whether it is a root.
func (p *Printer) NodeTable(nodes []scene.Node) {
	if len(nodes) == 0 {
		fmt.Fprintln(os.Stderr, ansi.Dim+"  (empty forest)"+ansi.Reset)
		return
	}
	fmt.Fprintf(os.Stderr, ansi.Bold+"  %4s  %-12s %6s %4s"+ansi.Reset+"\n", "id", "value", "parent", "rank")
	for _, n := range nodes {
		marker := ""
		if n.Parent == n.ID {
			marker = ansi.Cyan + " root" + ansi.Reset
		}
		fmt.Fprintf(os.Stderr, "  %4d  %-12s %6d %4d%s\n", n.ID, truncate(n.Value, 12), n.Parent, n.Rank, marker)
	}
}

// Forest draws snap as ASCII art cols wide and rows tall.
func (p *Printer) Forest(snap scene.Snapshot, cols, rows int, color bool) {
	c := NewCanvas(cols, rows)
	c.Draw(snap)
	fmt.Fprintln(os.Stderr, c.Render(color))
}

func flag(on bool) string {
	if on {
		return ansi.Green + "on" + ansi.Reset
	}
	return ansi.Dim + "off" + ansi.Reset
}
