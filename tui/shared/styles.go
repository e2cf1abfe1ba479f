package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/timewar/config"
	"github.com/dylan/timewar/style"
)

var (
	// Tabs
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	TabGapStyle      lipgloss.Style

	// Pane header/footer
	HeaderStyle lipgloss.Style
	FooterStyle lipgloss.Style

	// Status bar
	StatusBarStyle lipgloss.Style

	// Help styles
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpTitleStyle   lipgloss.Style
	HelpGroupStyle   lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	// Error
	ErrorStyle lipgloss.Style

	// Legend swatches, keyed by lowercase tag
	TagSwatchStyles   map[string]lipgloss.Style
	TagSwatchFallback lipgloss.Style

	// Feedback
	FeedbackSuccessStyle lipgloss.Style
	FeedbackWarningStyle lipgloss.Style
	FeedbackErrorStyle   lipgloss.Style
)

// InitStyles configures all styles from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	TabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG)).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	TabGapStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(theme.Muted))

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG)).
		Background(lipgloss.Color(theme.StatusBarBG)).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG))

	HelpTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	HelpGroupStyle = lipgloss.NewStyle().
		Bold(true)

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	TagSwatchStyles = make(map[string]lipgloss.Style)
	for tag, c := range theme.TagColors {
		TagSwatchStyles[strings.ToLower(tag)] = lipgloss.NewStyle().
			Foreground(style.TerminalColor(style.Color(c)))
	}
	TagSwatchFallback = lipgloss.NewStyle().
		Foreground(style.TerminalColor(style.Color(theme.DefaultTag)))

	FeedbackSuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Success))

	FeedbackWarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	FeedbackErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))
}

// RenderLegend renders a "■ tag" swatch for each tag, in order.
func RenderLegend(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		s, ok := TagSwatchStyles[strings.ToLower(tag)]
		if !ok {
			s = TagSwatchFallback
		}
		parts = append(parts, s.Render("■")+" "+tag)
	}
	return strings.Join(parts, "  ")
}

// FeedbackStyle returns the status bar style for a feedback level.
func FeedbackStyle(level FeedbackLevel) lipgloss.Style {
	switch level {
	case FeedbackSuccess:
		return FeedbackSuccessStyle
	case FeedbackWarning:
		return FeedbackWarningStyle
	case FeedbackError:
		return FeedbackErrorStyle
	}
	return lipgloss.NewStyle()
}

func init() {
	// Initialize with defaults so styles work even without explicit InitStyles call
	InitStyles(config.Config{}.ResolvedTheme())
}
