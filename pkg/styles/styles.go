package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F45E6E"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4C16E"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6ef4a1ff"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EC4F4"))
)

func render(style, text string) string {
	switch style {
	case "error":
		return errorStyle.Render(text)
	case "warn":
		return warnStyle.Render(text)
	case "success":
		return successStyle.Render(text)
	case "info":
		return infoStyle.Render(text)
	default:
		return defaultStyle.Render(text)
	}
}

// PrintFS imprime una línea con estilo en stdout.
func PrintFS(style string, format string, a ...interface{}) {
	fmt.Println(render(style, fmt.Sprintf(format, a...)))
}

// SprintfS devuelve el texto formateado con estilo, listo para log.Print.
func SprintfS(style string, format string, a ...interface{}) string {
	return render(style, fmt.Sprintf(format, a...))
}
