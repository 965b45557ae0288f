package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/papapumpkin/unionviz/internal/config"
)

func TestSubcommandsRegistered(t *testing.T) {
	t.Parallel()

	want := []string{"tui", "run", "telemetry"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			found := false
			for _, c := range rootCmd.Commands() {
				if c.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected %q subcommand to be registered on rootCmd", name)
			}
		})
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  *cobra.Command
		flag string
	}{
		{tuiCmd, "scenario"},
		{tuiCmd, "watch"},
		{tuiCmd, "compress"},
		{tuiCmd, "rank"},
		{tuiCmd, "seed"},
		{runCmd, "ticks"},
		{runCmd, "draw"},
		{runCmd, "json"},
		{runCmd, "compress"},
		{telemetryCmd, "follow"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name()+"/"+tt.flag, func(t *testing.T) {
			t.Parallel()
			if f := tt.cmd.Flags().Lookup(tt.flag); f == nil {
				t.Errorf("expected flag %q to be registered on %s", tt.flag, tt.cmd.Name())
			}
		})
	}
}

func TestPersistentFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config", "verbose", "telemetry"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q", name)
		}
	}
}

// newFlagCmd builds a throwaway command with the same flags as tui/run so
// flag parsing does not touch the shared commands.
func newFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	addSceneFlags(c)
	c.Flags().BoolP("verbose", "v", false, "")
	c.Flags().String("telemetry", "", "")
	return c
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Parallel()

	t.Run("explicit flags win", func(t *testing.T) {
		t.Parallel()
		c := newFlagCmd()
		if err := c.ParseFlags([]string{"--compress", "--rank", "--seed", "42", "-v", "--telemetry", "/tmp/x.jsonl"}); err != nil {
			t.Fatal(err)
		}
		var cfg config.Config
		applyFlagOverrides(c, &cfg)
		if !cfg.PathCompression || !cfg.UnionByRank {
			t.Errorf("expected both heuristics on, got %+v", cfg)
		}
		if cfg.Seed != 42 {
			t.Errorf("Seed = %d, want 42", cfg.Seed)
		}
		if !cfg.Verbose {
			t.Error("expected Verbose")
		}
		if cfg.TelemetryPath != "/tmp/x.jsonl" {
			t.Errorf("TelemetryPath = %q", cfg.TelemetryPath)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()
		c := newFlagCmd()
		if err := c.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}
		cfg := config.Config{PathCompression: true, Seed: 9}
		applyFlagOverrides(c, &cfg)
		if !cfg.PathCompression {
			t.Error("unset --compress must not turn compression off")
		}
		if cfg.Seed != 9 {
			t.Errorf("Seed = %d, want 9", cfg.Seed)
		}
	})

	t.Run("explicit false", func(t *testing.T) {
		t.Parallel()
		c := newFlagCmd()
		if err := c.ParseFlags([]string{"--compress=false"}); err != nil {
			t.Fatal(err)
		}
		cfg := config.Config{PathCompression: true}
		applyFlagOverrides(c, &cfg)
		if cfg.PathCompression {
			t.Error("--compress=false should turn compression off")
		}
	})
}

func TestOpenEmitter_NoPath(t *testing.T) {
	t.Parallel()

	em, err := openEmitter(config.Config{})
	if err != nil {
		t.Fatalf("openEmitter: %v", err)
	}
	if em != nil {
		t.Error("expected nil emitter when no telemetry path is set")
	}
	closeEmitter(em)
}

func TestOpenEmitter_WritesSessionBounds(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := openEmitter(config.Config{TelemetryPath: path, UnionByRank: true})
	if err != nil {
		t.Fatalf("openEmitter: %v", err)
	}
	closeEmitter(em)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), data)
	}

	var first, last struct {
		Kind    string         `json:"kind"`
		Session string         `json:"session"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &last); err != nil {
		t.Fatal(err)
	}
	if first.Kind != "session_start" || last.Kind != "session_done" {
		t.Errorf("kinds = %q, %q", first.Kind, last.Kind)
	}
	if len(first.Session) != 8 || first.Session != last.Session {
		t.Errorf("sessions = %q, %q; want one 8-char id", first.Session, last.Session)
	}
	if first.Data["union_by_rank"] != true {
		t.Errorf("session_start data = %v", first.Data)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	if newLogger(false).Core().Enabled(zapcore.DebugLevel) {
		t.Error("quiet logger should not log debug")
	}
	if !newLogger(true).Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger should log debug")
	}
}

func TestConfigFields(t *testing.T) {
	t.Parallel()

	fields := configFields(config.Config{Seed: 7, FPS: 30})
	byKey := make(map[string]int64, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f.Integer
	}
	if byKey["seed"] != 7 || byKey["fps"] != 30 {
		t.Errorf("fields = %+v", fields)
	}
}
