package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary       = lipgloss.Color("#00BFFF") // Cyan: roots, accents
	colorAccent        = lipgloss.Color("#FFD700") // Gold: toggles, paused
	colorSuccess       = lipgloss.Color("#00E676") // Green: option on
	colorDanger        = lipgloss.Color("#FF5252") // Red: active node, errors
	colorMuted         = lipgloss.Color("#636363") // Gray: edges, de-emphasized
	colorMutedLight    = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite         = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorBrightWhite   = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
	colorSurface       = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceBright = lipgloss.Color("#2A2A3C") // Lighter surface: input bg
	colorSurfaceDim    = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorBlue          = lipgloss.Color("#5B8DEF") // Blue: normal node
)

// Selection indicator prepended to the selected node row.
const selectionIndicator = "▎"

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusOn = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorSuccess).
			Bold(true)

	styleStatusOff = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorMuted)

	styleStatusPaused = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorAccent).
				Bold(true)
)

// Canvas cell styles, one per ui.CellKind.
var (
	styleCellEdge = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCellNode = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	styleCellRoot = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleCellActive = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)

// Node panel styles.
var (
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	stylePanelTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	stylePanelHeader = lipgloss.NewStyle().
				Foreground(colorMutedLight).
				Bold(true)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleRowActive = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailDim = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Command line and message log styles.
var (
	styleInput = lipgloss.NewStyle().
			Background(colorSurfaceBright).
			Foreground(colorWhite).
			Padding(0, 1)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleMessage = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleMessageError = lipgloss.NewStyle().
				Foreground(colorDanger)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
