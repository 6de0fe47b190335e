package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/tradedesk/internal/editor"
	"github.com/jask/tradedesk/internal/render"
	"github.com/jask/tradedesk/internal/trade"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(render.ColorMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(render.ColorBase).Background(render.ColorAccent)
	labelStyle     = lipgloss.NewStyle().Foreground(render.ColorSubtext0)
	focusStyle     = lipgloss.NewStyle().Foreground(render.ColorFocus).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(render.ColorMuted)
	chipStyle      = lipgloss.NewStyle().Foreground(render.ColorText).Background(render.ColorSurface1).Padding(0, 1)
	chipSelStyle   = lipgloss.NewStyle().Foreground(render.ColorBase).Background(render.ColorPeach).Padding(0, 1)
	inlineErrStyle = lipgloss.NewStyle().Foreground(render.ColorError)
	hintStyle      = lipgloss.NewStyle().Foreground(render.ColorWarning)
	statusStyle    = lipgloss.NewStyle().Foreground(render.ColorSubtext0).Italic(true)
)

func (a *App) View() string {
	w := max(40, a.width)
	var body string
	hints := a.keys.builderHelp()
	if a.view.Active() == editor.Textual {
		body = a.renderJSON()
		hints = a.keys.jsonHelp()
	} else {
		body = a.renderBuilder(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		"",
		body,
		"",
		a.renderResult(w),
		"",
		statusStyle.Render(a.status),
		renderHints(hints),
	)
}

func (a *App) renderHeader() string {
	tabs := []string{}
	for _, k := range []editor.ViewKind{editor.Structured, editor.Textual} {
		label := "Builder"
		if k == editor.Textual {
			label = "JSON"
		}
		if a.view.Active() == k {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	preset := "Preset: " + a.presets[a.presetIdx].Name
	if a.locked {
		preset += " (locked)"
	}
	return titleStyle.Render("NBA Trade Desk") + "  " + strings.Join(tabs, "") + "  " + labelStyle.Render(preset)
}

func (a *App) renderBuilder(width int) string {
	p := a.view.Proposal()
	if len(p.Sides) == 0 {
		return mutedStyle.Render("No teams in this trade.")
	}
	colW := max(28, width/len(p.Sides)-2)
	cols := make([]string, 0, len(p.Sides))
	for i := range p.Sides {
		cols = append(cols, lipgloss.NewStyle().Width(colW).MarginRight(2).Render(a.renderSide(p, i, colW)))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if a.locked {
		out += "\n" + mutedStyle.Render(lockedNotice)
	}
	return out
}

func (a *App) renderSide(p trade.Proposal, side, width int) string {
	var lines []string
	for idx, f := range a.fields {
		if f.side != side {
			continue
		}
		focused := idx == a.focus && a.view.Active() == editor.Structured
		switch f.kind {
		case teamField:
			lines = append(lines, a.renderTeam(p, f, focused))
		case tokenField:
			lines = append(lines, "", a.renderTokens(p, f, focused, width))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTeam(p trade.Proposal, f *field, focused bool) string {
	label := labelStyle.Render("Team " + strconv.Itoa(f.side+1) + ": ")
	if focused {
		label = focusStyle.Render("Team " + strconv.Itoa(f.side+1) + ": ")
	}
	team := p.Sides[f.side].Team
	var value string
	switch {
	case focused && !a.locked:
		value = f.input.View()
	case team == "":
		value = mutedStyle.Render("---")
	default:
		value = team
	}
	lines := []string{label + value}
	if !focused || a.locked {
		return strings.Join(lines, "\n")
	}
	for i, code := range trade.SuggestTeams(team) {
		if i == f.pick {
			lines = append(lines, focusStyle.Render("  > "+code))
		} else {
			lines = append(lines, "    "+code)
		}
	}
	if near, ok := trade.NearestTeam(team); ok {
		lines = append(lines, hintStyle.Render("  did you mean "+near+"?"))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderTokens(p trade.Proposal, f *field, focused bool, width int) string {
	label := labelStyle.Render(f.tokens.List.Label())
	if focused {
		label = focusStyle.Render(f.tokens.List.Label())
	}
	lines := []string{label, renderChips(f.tokens.Tokens(p), f.tokens.Cursor(), a.locked, width)}
	if !focused || a.locked {
		return strings.Join(lines, "\n")
	}
	lines = append(lines, f.input.View())
	if f.sugg != nil {
		for i, it := range f.sugg.Items() {
			text := ansi.Truncate(it.Label(), width-4, "…")
			if i == f.sugg.Cursor() {
				lines = append(lines, focusStyle.Render("  > "+text))
			} else {
				lines = append(lines, "    "+text)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func renderChips(tokens []string, cursor int, locked bool, width int) string {
	if len(tokens) == 0 {
		return mutedStyle.Render("—")
	}
	chips := make([]string, 0, len(tokens))
	for i, t := range tokens {
		text := ansi.Truncate(t, width-4, "…")
		if !locked {
			text += " ×"
		}
		if i == cursor {
			chips = append(chips, chipSelStyle.Render(text))
		} else {
			chips = append(chips, chipStyle.Render(text))
		}
	}
	// Greedy wrap so chips are never split across lines.
	var rows []string
	row, rowW := "", 0
	for _, c := range chips {
		cw := lipgloss.Width(c)
		if rowW > 0 && rowW+1+cw > width {
			rows = append(rows, row)
			row, rowW = "", 0
		}
		if rowW > 0 {
			row += " "
			rowW++
		}
		row += c
		rowW += cw
	}
	return strings.Join(append(rows, row), "\n")
}

func (a *App) renderJSON() string {
	lines := []string{labelStyle.Render("Trade JSON"), a.json.View()}
	if a.inlineErr != "" {
		lines = append(lines, inlineErrStyle.Render(a.inlineErr))
	} else if doc, err := trade.Decode(a.view.Text()); err == nil && !doc.Equal(a.view.Proposal()) {
		lines = append(lines, mutedStyle.Render("Builder has changes not shown here; "+a.keys.Sync.Help().Key+" regenerates."))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderResult(width int) string {
	title := titleStyle.Render("Grades")
	if a.req.Busy {
		title += " " + a.spin.View() + " " + mutedStyle.Render(a.req.Mode.String())
	}
	return title + "\n" + render.View(render.Classify(a.req), width)
}
