package tui

import "unicode/utf8"

// Minimum terminal dimensions for usable rendering.
const (
	MinWidth  = 40
	MinHeight = 10
)

// Layout breakpoints for adaptive rendering.
const (
	// CompactWidth triggers compact mode for the status bar and footer.
	CompactWidth = 60
	// PanelMinWidth is the narrowest terminal that still shows the node panel
	// beside the canvas. Below it the panel is hidden even when toggled on.
	PanelMinWidth = 80
	// PanelWidth is the outer width of the node panel, border included.
	PanelWidth = 36
)

// Rows taken by everything except the canvas: status bar, message log,
// command line and the bordered footer.
const (
	statusRows  = 1
	messageRows = 3
	inputRows   = 1
	footerRows  = 2
	chromeRows  = statusRows + messageRows + inputRows + footerRows
)

// canvasSize returns the character grid available to the canvas for a
// terminal of width x height, with or without the node panel.
func canvasSize(width, height int, panel bool) (cols, rows int) {
	cols = width
	if panel && width >= PanelMinWidth {
		cols -= PanelWidth
	}
	rows = height - chromeRows
	return max(cols, 1), max(rows, 1)
}

// TruncateWithEllipsis truncates s to maxLen runes, appending "..." if truncated.
// If maxLen is less than 4, returns s truncated to maxLen runes without ellipsis.
func TruncateWithEllipsis(s string, maxLen int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen < 4 {
		if maxLen <= 0 {
			return ""
		}
		return truncateToNRunes(s, maxLen)
	}
	return truncateToNRunes(s, maxLen-3) + "..."
}

// truncateToNRunes returns the first n runes of s as a string.
func truncateToNRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
