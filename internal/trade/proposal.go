package trade

import (
	"slices"
	"strings"
)

// List names one of the four asset lists on a side.
type List string

const (
	PlayersOut List = "players_out"
	PlayersIn  List = "players_in"
	PicksOut   List = "picks_out"
	PicksIn    List = "picks_in"
)

// Lists is the display order of a side's asset lists.
var Lists = []List{PlayersOut, PicksOut, PlayersIn, PicksIn}

// Outgoing reports whether assets in l leave the side.
func (l List) Outgoing() bool { return l == PlayersOut || l == PicksOut }

// Mirror returns the list on the counterpart side that receives what l gives up.
// Incoming lists have no mirror.
func (l List) Mirror() (List, bool) {
	switch l {
	case PlayersOut:
		return PlayersIn, true
	case PicksOut:
		return PicksIn, true
	default:
		return "", false
	}
}

func (l List) Label() string {
	switch l {
	case PlayersOut:
		return "Gives up players"
	case PlayersIn:
		return "Receives players"
	case PicksOut:
		return "Gives up picks"
	case PicksIn:
		return "Receives picks"
	default:
		return string(l)
	}
}

// Side is one party to a trade.
type Side struct {
	Team       string   `json:"team"`
	PlayersOut []string `json:"players_out"`
	PlayersIn  []string `json:"players_in"`
	PicksOut   []string `json:"picks_out"`
	PicksIn    []string `json:"picks_in"`
}

// Proposal is the ordered set of sides submitted for validation or grading.
type Proposal struct {
	Sides []Side `json:"sides"`
}

// NewProposal returns a proposal with n empty sides.
func NewProposal(n int) Proposal {
	p := Proposal{Sides: make([]Side, n)}
	for i := range p.Sides {
		p.Sides[i] = emptySide()
	}
	return p
}

func emptySide() Side {
	return Side{PlayersOut: []string{}, PlayersIn: []string{}, PicksOut: []string{}, PicksIn: []string{}}
}

// Get returns the tokens of list l.
func (s Side) Get(l List) []string {
	switch l {
	case PlayersOut:
		return s.PlayersOut
	case PlayersIn:
		return s.PlayersIn
	case PicksOut:
		return s.PicksOut
	case PicksIn:
		return s.PicksIn
	default:
		return nil
	}
}

func (s *Side) set(l List, tokens []string) {
	switch l {
	case PlayersOut:
		s.PlayersOut = tokens
	case PlayersIn:
		s.PlayersIn = tokens
	case PicksOut:
		s.PicksOut = tokens
	case PicksIn:
		s.PicksIn = tokens
	}
}

func (s Side) clone() Side {
	return Side{
		Team:       s.Team,
		PlayersOut: cloneTokens(s.PlayersOut),
		PlayersIn:  cloneTokens(s.PlayersIn),
		PicksOut:   cloneTokens(s.PicksOut),
		PicksIn:    cloneTokens(s.PicksIn),
	}
}

func cloneTokens(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Clone returns a deep copy; nil lists come back empty.
func (p Proposal) Clone() Proposal {
	out := Proposal{Sides: make([]Side, len(p.Sides))}
	for i, s := range p.Sides {
		out.Sides[i] = s.clone()
	}
	return out
}

// Equal compares every field. Nil and empty lists are equal.
func (p Proposal) Equal(o Proposal) bool {
	if len(p.Sides) != len(o.Sides) {
		return false
	}
	for i := range p.Sides {
		a, b := p.Sides[i], o.Sides[i]
		if a.Team != b.Team {
			return false
		}
		for _, l := range Lists {
			if !slices.Equal(a.Get(l), b.Get(l)) {
				return false
			}
		}
	}
	return true
}

// Add appends value to the given list and mirrors it onto the counterpart side
// when the list is outgoing. Empty values and unknown sides are ignored.
func (p Proposal) Add(side int, l List, value string) Proposal {
	if value == "" || side < 0 || side >= len(p.Sides) {
		return p
	}
	next := p.Clone()
	s := &next.Sides[side]
	s.set(l, append(s.Get(l), value))
	if l.Outgoing() {
		mirrorAdd(&next, side, l, value)
	}
	return next
}

// Remove deletes the token at index from the given list, undoing the mirror on
// the counterpart side. Out-of-range positions are ignored.
func (p Proposal) Remove(side int, l List, index int) Proposal {
	if side < 0 || side >= len(p.Sides) {
		return p
	}
	tokens := p.Sides[side].Get(l)
	if index < 0 || index >= len(tokens) {
		return p
	}
	next := p.Clone()
	s := &next.Sides[side]
	removed := tokens[index]
	s.set(l, slices.Delete(s.Get(l), index, index+1))
	if l.Outgoing() {
		mirrorRemove(&next, side, l, removed)
	}
	return next
}

// SetTeam stores the team code upper-cased. Unknown sides are ignored.
func (p Proposal) SetTeam(side int, code string) Proposal {
	if side < 0 || side >= len(p.Sides) {
		return p
	}
	next := p.Clone()
	next.Sides[side].Team = strings.ToUpper(strings.TrimSpace(code))
	return next
}

// AddSide appends an empty side.
func (p Proposal) AddSide() Proposal {
	next := p.Clone()
	next.Sides = append(next.Sides, emptySide())
	return next
}
