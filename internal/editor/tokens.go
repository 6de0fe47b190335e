// Package editor holds the builder's editing state: chip-style token lists
// bound to a proposal slot, and the structured/text view pair that decides
// what gets submitted.
package editor

import "github.com/jask/tradedesk/internal/trade"

// TokenList edits one asset list of one side. It holds no tokens itself; every
// operation takes the current proposal and returns the next one, so outgoing
// lists mirror through trade.Proposal.
type TokenList struct {
	Side   int
	List   trade.List
	Locked bool

	cursor int
}

func NewTokenList(side int, list trade.List) *TokenList {
	return &TokenList{Side: side, List: list, cursor: -1}
}

// Tokens returns the list being edited.
func (t *TokenList) Tokens(p trade.Proposal) []string {
	if t.Side < 0 || t.Side >= len(p.Sides) {
		return nil
	}
	return p.Sides[t.Side].Get(t.List)
}

// Add appends value. Locked editors and empty values leave p unchanged.
func (t *TokenList) Add(p trade.Proposal, value string) trade.Proposal {
	if t.Locked {
		return p
	}
	return p.Add(t.Side, t.List, value)
}

// Remove deletes the token at index; out-of-range indexes are ignored.
func (t *TokenList) Remove(p trade.Proposal, index int) trade.Proposal {
	if t.Locked {
		return p
	}
	next := p.Remove(t.Side, t.List, index)
	t.clampCursor(len(t.Tokens(next)))
	return next
}

// Cursor is the selected chip, or -1 when none is selected.
func (t *TokenList) Cursor() int { return t.cursor }

// MoveCursor shifts the chip selection by delta, stopping at either end.
func (t *TokenList) MoveCursor(p trade.Proposal, delta int) {
	n := len(t.Tokens(p))
	if n == 0 {
		t.cursor = -1
		return
	}
	if t.cursor < 0 {
		if delta < 0 {
			t.cursor = n - 1
		} else {
			t.cursor = 0
		}
		return
	}
	t.cursor = max(0, min(n-1, t.cursor+delta))
}

// RemoveSelected removes the chip under the cursor, or the last chip when none
// is selected.
func (t *TokenList) RemoveSelected(p trade.Proposal) trade.Proposal {
	idx := t.cursor
	if idx < 0 {
		idx = len(t.Tokens(p)) - 1
	}
	return t.Remove(p, idx)
}

// ClearCursor drops the chip selection.
func (t *TokenList) ClearCursor() { t.cursor = -1 }

func (t *TokenList) clampCursor(n int) {
	switch {
	case n == 0:
		t.cursor = -1
	case t.cursor >= n:
		t.cursor = n - 1
	}
}
