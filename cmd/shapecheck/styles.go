package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	typ   lipgloss.Style
	ok    lipgloss.Style
	fail  lipgloss.Style
	help  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain.Bold(true),
			key:   plain,
			typ:   plain,
			ok:    plain,
			fail:  plain,
			help:  plain,
		}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		key: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98")),
		typ: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")),
		ok: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90")),
		fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}
