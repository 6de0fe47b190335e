package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tradedesk/internal/render"
)

// Inputs swallow printable keys, so every command lives on a control or
// function key.
type keyMap struct {
	Quit       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ToggleView key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Validate   key.Binding
	Evaluate   key.Binding
	Sync       key.Binding
	AddSide    key.Binding
	Up         key.Binding
	Down       key.Binding
	ChipLeft   key.Binding
	ChipRight  key.Binding
	Remove     key.Binding
	Accept     key.Binding
	Dismiss    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		ToggleView: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "builder/json")),
		NextPreset: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next preset")),
		PrevPreset: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev preset")),
		Validate:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "validate")),
		Evaluate:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "evaluate")),
		Sync:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "builder→json")),
		AddSide:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "add team")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "suggestion")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "suggestion")),
		ChipLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "select chip")),
		ChipRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "select chip")),
		Remove:     key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "remove chip")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k keyMap) builderHelp() []key.Binding {
	return []key.Binding{k.Validate, k.Evaluate, k.ToggleView, k.NextPreset, k.NextField, k.Accept, k.Remove, k.AddSide, k.Quit}
}

func (k keyMap) jsonHelp() []key.Binding {
	return []key.Binding{k.Validate, k.Evaluate, k.ToggleView, k.Sync, k.NextPreset, k.Quit}
}

var (
	hintKeyStyle   = lipgloss.NewStyle().Foreground(render.ColorBlue)
	hintLabelStyle = lipgloss.NewStyle().Foreground(render.ColorMuted)
)

func renderHints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, hintKeyStyle.Render("["+h.Key+"]")+" "+hintLabelStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
