package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the persistent top bar: logo, scenario name, the two
// heuristic toggles, element and set counts, the animation spinner and the
// elapsed session time.
type StatusBar struct {
	Name            string // scenario name, empty for a free session
	PathCompression bool
	UnionByRank     bool
	Elements        int
	Sets            int
	Animating       bool
	Spinner         string // current spinner frame, shown while Animating
	Paused          bool
	StartTime       time.Time
	Width           int
}

// View renders the status bar as a single line. Low-priority segments are
// dropped on narrow terminals so the bar never wraps.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth

	// styleStatusBar pads one column on each side.
	const barPadding = 2
	innerWidth := max(s.Width-barPadding, 0)

	barBg := lipgloss.NewStyle().Background(colorSurface)
	left := Logo()
	if s.Name != "" && !compact {
		left += barBg.Render("  ") + styleStatusValue.Render(s.Name)
	}
	if s.Paused {
		left += barBg.Render("  ") + styleStatusPaused.Render("PAUSED")
	}
	leftWidth := lipgloss.Width(left)

	const minGap = 1
	segments := s.buildRightSegments(compact)
	if leftWidth+totalWidth(segments)+minGap > innerWidth {
		segments = dropSegments(segments, innerWidth-leftWidth-minGap)
	}
	right := joinSegments(segments)

	gap := max(innerWidth-leftWidth-lipgloss.Width(right), 1)
	line := left + barBg.Render(strings.Repeat(" ", gap)) + right
	if lipgloss.Width(line) > innerWidth {
		line = truncateToWidth(line, innerWidth)
	}
	return styleStatusBar.Width(s.Width).Render(line)
}

// statusSegment is a styled piece of the right side with a drop priority.
// Lower priority values are dropped first when the terminal is too narrow.
type statusSegment struct {
	text     string
	priority int
}

func (s StatusBar) buildRightSegments(compact bool) []statusSegment {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var segments []statusSegment

	if s.Animating && s.Spinner != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusPaused.Render(s.Spinner) + barBg.Render("  "),
			priority: 1,
		})
	}

	pcLabel, ubrLabel := "compression ", "by rank "
	if compact {
		pcLabel, ubrLabel = "pc ", "ubr "
	}
	segments = append(segments,
		statusSegment{text: styleStatusLabel.Render(pcLabel) + toggleText(s.PathCompression), priority: 3},
		statusSegment{text: barBg.Render("  ") + styleStatusLabel.Render(ubrLabel) + toggleText(s.UnionByRank), priority: 3},
		statusSegment{
			text:     barBg.Render("  ") + styleStatusValue.Render(fmt.Sprintf("%d sets / %d", s.Sets, s.Elements)),
			priority: 2,
		},
	)

	if !s.StartTime.IsZero() {
		elapsed := time.Since(s.StartTime).Truncate(time.Second)
		segments = append(segments, statusSegment{
			text:     barBg.Render("  ") + styleStatusOff.Render(formatElapsedCompact(elapsed)),
			priority: 0,
		})
	}
	return segments
}

func toggleText(on bool) string {
	if on {
		return styleStatusOn.Render("on")
	}
	return styleStatusOff.Render("off")
}

// joinSegments concatenates segment text with a trailing styled space.
func joinSegments(segments []statusSegment) string {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.text)
	}
	b.WriteString(barBg.Render(" "))
	return b.String()
}

// dropSegments removes lowest-priority segments until the combined width fits within maxWidth.
func dropSegments(segments []statusSegment, maxWidth int) []statusSegment {
	result := make([]statusSegment, len(segments))
	copy(result, segments)

	for totalWidth(result) > maxWidth && len(result) > 0 {
		minIdx := 0
		minPri := result[0].priority
		for i, seg := range result {
			if seg.priority < minPri {
				minPri = seg.priority
				minIdx = i
			}
		}
		result = append(result[:minIdx], result[minIdx+1:]...)
	}
	return result
}

// totalWidth computes the rendered width of all segments plus trailing space.
func totalWidth(segments []statusSegment) int {
	w := 1
	for _, seg := range segments {
		w += lipgloss.Width(seg.text)
	}
	return w
}

func formatElapsedCompact(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// truncateToWidth hard-truncates a string that may contain ANSI escape
// sequences so its rendered width does not exceed maxWidth.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			b.WriteRune(r)
			continue
		}
		if inEscape {
			b.WriteRune(r)
			// ESC sequences end at a letter (A-Z, a-z).
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if width+1 > maxWidth {
			break
		}
		b.WriteRune(r)
		width++
	}
	return b.String()
}
