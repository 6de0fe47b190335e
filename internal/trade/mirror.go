package trade

import "slices"

// counterpart returns the other side of a two-sided trade. Trades with any
// other number of sides have no counterpart and are never mirrored.
func counterpart(p *Proposal, side int) (int, bool) {
	if len(p.Sides) != 2 {
		return 0, false
	}
	return 1 - side, true
}

// mirrorAdd records value as received by the counterpart, once.
func mirrorAdd(p *Proposal, side int, l List, value string) {
	other, ok := counterpart(p, side)
	if !ok {
		return
	}
	target, ok := l.Mirror()
	if !ok {
		return
	}
	s := &p.Sides[other]
	if slices.Contains(s.Get(target), value) {
		return
	}
	s.set(target, append(s.Get(target), value))
}

// mirrorRemove drops the first matching token from the counterpart's receiving list.
func mirrorRemove(p *Proposal, side int, l List, value string) {
	other, ok := counterpart(p, side)
	if !ok {
		return
	}
	target, ok := l.Mirror()
	if !ok {
		return
	}
	s := &p.Sides[other]
	tokens := s.Get(target)
	if i := slices.Index(tokens, value); i >= 0 {
		s.set(target, slices.Delete(tokens, i, i+1))
	}
}
