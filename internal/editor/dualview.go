package editor

import (
	"fmt"

	"github.com/jask/tradedesk/internal/trade"
)

// ViewKind selects which representation is authoritative.
type ViewKind int

const (
	Structured ViewKind = iota
	Textual
)

func (k ViewKind) String() string {
	if k == Textual {
		return "json"
	}
	return "builder"
}

// ParseViewKind accepts "builder"/"structured" and "json"/"text".
func ParseViewKind(s string) (ViewKind, error) {
	switch s {
	case "", "builder", "structured":
		return Structured, nil
	case "json", "text", "textual":
		return Textual, nil
	default:
		return Structured, fmt.Errorf("unknown view %q", s)
	}
}

// View is the active representation: either a proposal (Structured) or the
// raw text the user is editing (Textual).
type View interface {
	Kind() ViewKind
	payload() (trade.Proposal, error)
}

type StructuredView struct{ Proposal trade.Proposal }

func (StructuredView) Kind() ViewKind                     { return Structured }
func (v StructuredView) payload() (trade.Proposal, error) { return v.Proposal.Clone(), nil }

type TextualView struct{ Text string }

func (TextualView) Kind() ViewKind                     { return Textual }
func (v TextualView) payload() (trade.Proposal, error) { return trade.Decode(v.Text) }

// DualView keeps the builder proposal and the JSON text side by side. Only the
// active one is read when submitting; switching views never converts, so edits
// made in one view are not visible in the other until Sync is called.
type DualView struct {
	proposal trade.Proposal
	text     string
	active   ViewKind
}

// NewDualView starts in the structured view with text generated from p.
func NewDualView(p trade.Proposal) *DualView {
	return &DualView{proposal: p.Clone(), text: trade.Encode(p), active: Structured}
}

func (d *DualView) Active() ViewKind         { return d.active }
func (d *DualView) Proposal() trade.Proposal { return d.proposal }
func (d *DualView) Text() string             { return d.text }

// Current returns the authoritative representation.
func (d *DualView) Current() View {
	if d.active == Textual {
		return TextualView{Text: d.text}
	}
	return StructuredView{Proposal: d.proposal}
}

// Switch changes the authoritative view without touching either representation.
func (d *DualView) Switch(k ViewKind) { d.active = k }

// SetProposal replaces the structured representation.
func (d *DualView) SetProposal(p trade.Proposal) { d.proposal = p }

// SetText replaces the textual representation.
func (d *DualView) SetText(text string) { d.text = text }

// Sync regenerates the text from the proposal.
func (d *DualView) Sync() { d.text = trade.Encode(d.proposal) }

// ApplyPreset replaces both representations at once. resetView returns the
// user to the builder.
func (d *DualView) ApplyPreset(p trade.Proposal, resetView bool) {
	d.proposal = p.Clone()
	d.text = trade.Encode(p)
	if resetView {
		d.active = Structured
	}
}

// Payload derives what to submit from the active view only. A text view that
// does not parse yields an error matching trade.ErrMalformedPayload.
func (d *DualView) Payload() (trade.Proposal, error) {
	return d.Current().payload()
}
