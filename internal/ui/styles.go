package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Key names, chain text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Save confirmations
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Chain rendering
	StabilizedColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Stabilized chain marker
	SeparatorColor  = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#6C7086"} // $$ between commands

	// Diff colors for import previews
	DiffInsertColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffDeleteColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator style (the ">" prefix in the binding list)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"})

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	KeyStyle        = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	ChainStyle      = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	SeparatorStyle  = lipgloss.NewStyle().Foreground(SeparatorColor)
	StabilizedStyle = lipgloss.NewStyle().Foreground(StabilizedColor)
	MutedStyle      = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle      = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle    = lipgloss.NewStyle().Foreground(StatusSuccessColor)

	DiffInsertStyle = lipgloss.NewStyle().Foreground(DiffInsertColor)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(DiffDeleteColor).Strikethrough(true)
)
