package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jask/tradedesk/internal/editor"
	"github.com/jask/tradedesk/internal/suggest"
	"github.com/jask/tradedesk/internal/trade"
)

type fieldKind int

const (
	teamField fieldKind = iota
	tokenField
)

// field is one focusable row of the builder: a side's team code or one of its
// four asset lists.
type field struct {
	kind  fieldKind
	side  int
	input textinput.Model

	tokens *editor.TokenList
	sugg   *suggest.Provider

	// highlighted team suggestion
	pick int
}

func (f *field) isPicks() bool {
	return f.tokens != nil && (f.tokens.List == trade.PicksOut || f.tokens.List == trade.PicksIn)
}

func (f *field) focus() {
	f.input.Focus()
}

func (f *field) blur() {
	f.input.Blur()
	f.pick = 0
	if f.sugg != nil {
		f.sugg.Reset()
	}
	if f.tokens != nil {
		f.tokens.ClearCursor()
	}
}

func newTeamField(side int, team string) *field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "TEAM"
	in.CharLimit = 3
	in.Width = 4
	in.SetValue(team)
	return &field{kind: teamField, side: side, input: in}
}

func newTokenField(ctx context.Context, side int, list trade.List, locked bool, lookup suggest.Lookup, opts suggest.Options) *field {
	in := textinput.New()
	in.Prompt = "+ "
	in.Width = 24
	if list == trade.PicksOut || list == trade.PicksIn {
		in.Placeholder = "BOS 2027 1st"
	} else {
		in.Placeholder = "player name"
	}
	tl := editor.NewTokenList(side, list)
	tl.Locked = locked
	f := &field{kind: tokenField, side: side, input: in, tokens: tl}
	if lookup != nil && (list == trade.PlayersOut || list == trade.PlayersIn) {
		f.sugg = suggest.NewProvider(ctx, lookup, opts)
	}
	return f
}

// buildFields lays out the focus order: each side's team code followed by its
// lists in trade.Lists order.
func buildFields(ctx context.Context, p trade.Proposal, locked bool, lookup suggest.Lookup, opts suggest.Options) []*field {
	fields := make([]*field, 0, len(p.Sides)*(1+len(trade.Lists)))
	for i, s := range p.Sides {
		fields = append(fields, newTeamField(i, s.Team))
		for _, l := range trade.Lists {
			fields = append(fields, newTokenField(ctx, i, l, locked, lookup, opts))
		}
	}
	return fields
}
