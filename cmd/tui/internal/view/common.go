package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// minTableHeight keeps a few rows visible on very small terminals.
const minTableHeight = 5

type CommonModel struct {
	Width  int
	Height int
}

// Resize records the terminal size and returns the rows left for a table
// once chrome lines of header, panels and help are taken.
func (c *CommonModel) Resize(msg tea.WindowSizeMsg, chrome int) int {
	c.Width = msg.Width
	c.Height = msg.Height

	return max(minTableHeight, msg.Height-chrome)
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
