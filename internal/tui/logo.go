package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleLogoLink = lipgloss.NewStyle().Background(colorSurface).Foreground(colorMutedLight)
	styleLogoName = lipgloss.NewStyle().Background(colorSurface).Foreground(colorPrimary).Bold(true)
)

// Logo returns the single-line status bar logo: two roots joined by a link.
func Logo() string {
	return styleLogoLink.Render("◉─◉") + styleLogoLink.Render(" ") + styleLogoName.Render("UNIONVIZ")
}

// LogoPlain returns the unstyled logo text.
func LogoPlain() string {
	return "◉─◉ UNIONVIZ"
}
