package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/unionviz/internal/config"
	"github.com/papapumpkin/unionviz/internal/scene"
	"github.com/papapumpkin/unionviz/internal/telemetry"
)

// addSceneFlags registers the heuristic and seed overrides shared by the
// tui and run commands.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("compress", false, "start with path compression on")
	cmd.Flags().Bool("rank", false, "start with union by rank on")
	cmd.Flags().Uint64("seed", 0, "layout seed (0 = time-seeded)")
}

// loadConfig loads the viper-backed configuration and applies CLI flag
// overrides. Flags only win when they were set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, &cfg)
	return cfg, nil
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("compress") {
		cfg.PathCompression, _ = flags.GetBool("compress")
	}
	if flags.Changed("rank") {
		cfg.UnionByRank, _ = flags.GetBool("rank")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.Verbose = true
	}
	if p, _ := flags.GetString("telemetry"); p != "" {
		cfg.TelemetryPath = p
	}
}

// openEmitter opens the telemetry log named in cfg. It returns a nil
// emitter, which records nothing, when no path is configured.
func openEmitter(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	// Short ids keep the telemetry viewer's session column readable.
	session := uuid.NewString()[:8]
	em, err := telemetry.NewEmitter(cfg.TelemetryPath, session)
	if err != nil {
		return nil, err
	}
	_ = em.Record(telemetry.KindSessionStart, map[string]any{
		"path_compression": cfg.PathCompression,
		"union_by_rank":    cfg.UnionByRank,
		"seed":             cfg.Seed,
	})
	return em, nil
}

// closeEmitter records the end of the session and closes the log.
func closeEmitter(em *telemetry.Emitter) {
	if em == nil {
		return
	}
	_ = em.Record(telemetry.KindSessionDone, nil)
	if err := em.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing telemetry log: %v\n", err)
	}
}

// sceneFactory returns a constructor for scenes sharing cfg and the emitter.
func sceneFactory(cfg config.Config, em *telemetry.Emitter) func() *scene.Scene {
	sc := scene.FromConfig(cfg)
	return func() *scene.Scene {
		return scene.New(sc, scene.WithEmitter(em))
	}
}

// isStderrTTY reports whether stderr is attached to a terminal.
func isStderrTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
