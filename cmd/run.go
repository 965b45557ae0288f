package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/unionviz/internal/command"
	"github.com/papapumpkin/unionviz/internal/scenario"
	"github.com/papapumpkin/unionviz/internal/scene"
	"github.com/papapumpkin/unionviz/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario.toml]",
	Short: "Play a scenario headlessly, or start the interactive REPL",
	Long: `With a scenario file, plays every step, runs the requested number of layout
ticks and prints the node table (and optionally an ASCII drawing or a JSON
snapshot). Without one, starts a line-oriented REPL on stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("ticks", 0, "layout ticks to run after the scenario")
	runCmd.Flags().Bool("draw", false, "draw the forest as ASCII art")
	runCmd.Flags().Bool("json", false, "write a JSON snapshot to stdout")
	runCmd.Flags().Int("cols", 80, "drawing width in characters")
	runCmd.Flags().Int("rows", 24, "drawing height in characters")
	addSceneFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

// errStepsFailed is returned when a scenario finishes with failing steps.
var errStepsFailed = errors.New("scenario steps failed")

// defaultREPLTicks is how many layout ticks a bare "tick" runs.
const defaultREPLTicks = 100

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Verbose)
	defer func() { _ = log.Sync() }()
	log.Debug("config loaded", configFields(cfg)...)

	em, err := openEmitter(cfg)
	if err != nil {
		return err
	}
	defer closeEmitter(em)

	printer := ui.New()
	s := sceneFactory(cfg, em)()

	if len(args) == 0 {
		cols, rows := drawSize(cmd)
		return runREPL(s, printer, os.Stdin, cols, rows)
	}

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug("scenario loaded", zap.String("path", sc.Path), zap.Int("steps", len(sc.Commands)))
	ticks, _ := cmd.Flags().GetInt("ticks")
	failed := playScenario(s, sc, printer, ticks)
	log.Debug("scenario played",
		zap.Int("failed", failed),
		zap.Int("ticks", ticks),
		zap.Int("elements", s.Engine().Len()),
		zap.Uint64("version", s.Version()))

	snap := s.Snapshot()
	fmt.Fprintln(os.Stderr)
	printer.NodeTable(snap.Nodes)
	if draw, _ := cmd.Flags().GetBool("draw"); draw {
		cols, rows := drawSize(cmd)
		fmt.Fprintln(os.Stderr)
		printer.Forest(snap, cols, rows, isStderrTTY())
	}
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := writeSnapshotJSON(cmd.OutOrStdout(), s); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errStepsFailed, failed, len(sc.Commands))
	}
	return nil
}

// playScenario replays sc, then runs the layout for ticks frames and ends
// any compression animation so the final state is what gets printed.
func playScenario(s *scene.Scene, sc *scenario.Scenario, printer *ui.Printer, ticks int) int {
	if sc.Name != "" {
		printer.Info(fmt.Sprintf("scenario %q: %d step(s)", sc.Name, len(sc.Commands)))
	}
	failed := scenario.Play(s, sc, func(step int, res command.Result, err error) {
		printer.ScenarioStep(step, sc.Steps[step-1], res, err)
	})
	for i := 0; i < ticks; i++ {
		s.Tick()
	}
	s.FlushAnimation()
	return failed
}

func drawSize(cmd *cobra.Command) (cols, rows int) {
	cols, _ = cmd.Flags().GetInt("cols")
	rows, _ = cmd.Flags().GetInt("rows")
	return max(cols, 1), max(rows, 1)
}

// runREPL starts the interactive read-eval-print loop.
func runREPL(s *scene.Scene, printer *ui.Printer, in io.Reader, cols, rows int) error {
	printer.Banner()
	printer.Info("type a command, 'help', 'status', or 'quit'")
	printStatus(s, printer)
	fmt.Fprintln(os.Stderr)

	scanner := bufio.NewScanner(in)
	for {
		printer.Prompt()
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		fields := strings.Fields(strings.ToLower(input))
		switch fields[0] {
		case "quit", "exit", "q":
			printer.Info("goodbye")
			return nil
		case "status":
			printStatus(s, printer)
			continue
		case "nodes":
			printer.NodeTable(s.Snapshot().Nodes)
			continue
		case "show":
			s.FlushAnimation()
			printer.Forest(s.Snapshot(), cols, rows, isStderrTTY())
			continue
		case "tick":
			n, err := parseTicks(fields[1:])
			if err != nil {
				printer.Error(err.Error())
				continue
			}
			for i := 0; i < n; i++ {
				s.Tick()
			}
			printer.Info(fmt.Sprintf("ran %d layout tick(s)", n))
			continue
		}

		res, err := command.Run(s, input)
		if err != nil {
			// Non-fatal errors: continue the REPL.
			printer.Error(err.Error())
			continue
		}
		printer.Result(res)
	}
	return scanner.Err()
}

func parseTicks(args []string) (int, error) {
	if len(args) == 0 {
		return defaultREPLTicks, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || len(args) > 1 {
		return 0, fmt.Errorf("%w: tick [n]", command.ErrUsage)
	}
	return n, nil
}

func printStatus(s *scene.Scene, printer *ui.Printer) {
	eng := s.Engine()
	printer.ShowStatus(eng.Options(), eng.Len(), len(eng.Components()))
}

// snapshotJSON is the --json output: the forest with layout positions.
type snapshotJSON struct {
	PathCompression bool       `json:"path_compression"`
	UnionByRank     bool       `json:"union_by_rank"`
	Nodes           []nodeJSON `json:"nodes"`
	Edges           [][2]int   `json:"edges"`
	Sets            [][]int    `json:"sets"`
}

type nodeJSON struct {
	ID     int     `json:"id"`
	Value  string  `json:"value"`
	Parent int     `json:"parent"`
	Rank   int     `json:"rank"`
	Depth  int     `json:"depth"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func buildSnapshotJSON(s *scene.Scene) snapshotJSON {
	snap := s.Snapshot()
	eng := s.Engine()
	out := snapshotJSON{
		PathCompression: snap.Options.PathCompression,
		UnionByRank:     snap.Options.UnionByRank,
		Nodes:           make([]nodeJSON, 0, len(snap.Nodes)),
		Edges:           make([][2]int, 0, len(snap.Edges)),
	}
	for _, n := range snap.Nodes {
		depth, _ := eng.Depth(n.ID)
		out.Nodes = append(out.Nodes, nodeJSON{
			ID:     n.ID,
			Value:  n.Value,
			Parent: n.Parent,
			Rank:   n.Rank,
			Depth:  depth,
			X:      n.Position.X,
			Y:      n.Position.Y,
		})
	}
	for _, e := range snap.Edges {
		out.Edges = append(out.Edges, [2]int{e.Child, e.Parent})
	}

	comps := eng.Components()
	roots := make([]int, 0, len(comps))
	for r := range comps {
		roots = append(roots, r)
	}
	sort.Ints(roots)
	out.Sets = make([][]int, 0, len(roots))
	for _, r := range roots {
		out.Sets = append(out.Sets, comps[r])
	}
	return out
}

func writeSnapshotJSON(w io.Writer, s *scene.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildSnapshotJSON(s)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
