package tui

import (
	"time"

	"github.com/papapumpkin/unionviz/internal/scenario"
)

// MsgFrame drives one animation frame: the compression clock and a layout tick.
type MsgFrame struct {
	Time time.Time
}

// MsgScenarioChanged is sent when the watched scenario file is saved.
type MsgScenarioChanged struct {
	Change scenario.Change
}

// MsgWatchClosed is sent once the scenario watcher has shut down.
type MsgWatchClosed struct{}
