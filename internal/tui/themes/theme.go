package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the wizard.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Value         lipgloss.Style
	Placeholder   lipgloss.Style
	FieldError    lipgloss.Style
	Price         lipgloss.Style
	RoundedBox    lipgloss.Style
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
	Info          lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#2ECC71"),
	Muted:   lipgloss.Color("#737373"),
	Border:  lipgloss.Color("#404040"),
	Error:   lipgloss.Color("#E74C3C"),
	Success: lipgloss.Color("#27AE60"),
	Info:    lipgloss.Color("#3498DB"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2ECC71")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d4d4d4")),
	FocusedLabel: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2ECC71")),
	Value: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Placeholder: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	FieldError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E74C3C")).
		PaddingLeft(2),
	Price: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F1C40F")),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),
	ProgressFull: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2ECC71")),
	ProgressEmpty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#404040")),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#27AE60")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E74C3C")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3498DB")).
		Bold(true),
}
