package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/unionviz/internal/scenario"
	"github.com/papapumpkin/unionviz/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive forest canvas",
	Long: `Launch the interactive canvas. Type commands after ':' (make, union, find,
compress, rank, reset, help) and watch the forest rearrange itself.

With --scenario the file is played first; with --watch it is replayed on a
fresh forest every time it is saved.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("scenario", "", "scenario TOML file to play on start")
	tuiCmd.Flags().Bool("watch", false, "replay the scenario whenever the file changes")
	addSceneFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

// errWatchNeedsScenario is returned when --watch is given without a file.
var errWatchNeedsScenario = errors.New("--watch requires --scenario")

func runTUI(cmd *cobra.Command, _ []string) error {
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	watch, _ := cmd.Flags().GetBool("watch")
	if watch && scenarioPath == "" {
		return errWatchNeedsScenario
	}

	var sc *scenario.Scenario
	if scenarioPath != "" {
		var err error
		sc, err = scenario.Load(scenarioPath)
		if err != nil {
			return err
		}
	}

	if !isStderrTTY() {
		return fmt.Errorf("unionviz tui requires a TTY (terminal)")
	}

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

	model := tui.NewAppModel(sceneFactory(cfg, em), cfg.FPS)
	if sc != nil {
		log.Debug("scenario loaded", zap.String("path", sc.Path), zap.Int("steps", len(sc.Commands)))
		model.LoadScenario(sc)
	}

	if watch {
		w, err := scenario.NewWatcher(scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create watcher: %v\n", err)
		} else if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to start watcher: %v\n", err)
		} else {
			defer w.Stop()
			model.Watcher = w
			log.Debug("watching scenario", zap.String("path", scenarioPath))
		}
	}

	return tui.Run(model)
}
