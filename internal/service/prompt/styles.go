package prompt

import "github.com/charmbracelet/lipgloss"

//nolint:gochecknoglobals // Shared styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Summary renders label/value rows in a bordered box under title.
func Summary(title string, rows [][2]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))

	for _, row := range rows {
		label := labelStyle.Width(width + 1).Render(row[0] + ":")
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", row[1]))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
