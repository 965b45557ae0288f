package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		var part string
		if compact {
			part = styleFooterKey.Render(help.Key)
		} else {
			part = styleFooterKey.Render(help.Key) + styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	return styleFooter.Width(f.Width).Render(line)
}

// CanvasFooterBindings returns footer bindings while the canvas has focus.
func CanvasFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Input, km.Compress, km.Rank, km.Panel, km.Pause, km.Skip, km.Reset, km.Quit}
}

// PanelFooterBindings adds row navigation when the node panel is open.
func PanelFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Input, km.Up, km.Down, km.Compress, km.Rank, km.Panel, km.Pause, km.Reset, km.Quit}
}

// InputFooterBindings returns footer bindings while typing a command.
func InputFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Submit, km.Cancel, km.Quit}
}
