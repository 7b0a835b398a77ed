package render

import "github.com/charmbracelet/lipgloss"

// Styles groups every lipgloss style the console output uses.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Empty   lipgloss.Style
	Code    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Pieces  map[rune]lipgloss.Style
}

// NewStyles returns coloured styles, or unstyled ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Title:   plain,
			Label:   plain,
			Empty:   plain,
			Code:    plain,
			Success: plain,
			Failure: plain,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		Label: lipgloss.NewStyle().
			Bold(true),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),
		Code: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Failure: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true),
		Pieces: map[rune]lipgloss.Style{
			'I': lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF")),
			'O': lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
			'T': lipgloss.NewStyle().Foreground(lipgloss.Color("#BA55D3")),
			'L': lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")),
			'S': lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")),
			'Z': lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500")),
			'J': lipgloss.NewStyle().Foreground(lipgloss.Color("#1E90FF")),
		},
	}
}

func (s Styles) piece(sym rune) lipgloss.Style {
	if st, ok := s.Pieces[sym]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
