package tui

import "testing"

func TestCanvasSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		panel         bool
		wantCols      int
		wantRows      int
	}{
		{"no panel", 100, 40, false, 100, 40 - chromeRows},
		{"panel", 100, 40, true, 100 - PanelWidth, 40 - chromeRows},
		{"panel too narrow", 70, 40, true, 70, 40 - chromeRows},
		{"tiny", 1, 1, false, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cols, rows := canvasSize(tt.width, tt.height, tt.panel)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("canvasSize(%d, %d, %v) = %d, %d; want %d, %d",
					tt.width, tt.height, tt.panel, cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
