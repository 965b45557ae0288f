package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/papapumpkin/unionviz/internal/config"
)

// newLogger returns a debug-level console logger on stderr when verbose
// output is on, and a no-op logger otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// configFields describes cfg for a debug log line.
func configFields(cfg config.Config) []zap.Field {
	return []zap.Field{
		zap.Bool("path_compression", cfg.PathCompression),
		zap.Bool("union_by_rank", cfg.UnionByRank),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("fps", cfg.FPS),
		zap.Bool("stagger", cfg.Animation.Stagger),
		zap.String("telemetry", cfg.TelemetryPath),
	}
}
