// Package dispatch submits proposals to the validate and evaluate endpoints and
// tracks the request lifecycle.
package dispatch

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jask/tradedesk/internal/api"
	"github.com/jask/tradedesk/internal/trade"
)

// Mode is the kind of request that produced the current state.
type Mode int

const (
	None Mode = iota
	Validate
	Evaluate
)

func (m Mode) String() string {
	switch m {
	case Validate:
		return "validate"
	case Evaluate:
		return "evaluate"
	default:
		return "none"
	}
}

func (m Mode) endpoint() (api.Endpoint, error) {
	switch m {
	case Validate:
		return api.ValidatePath, nil
	case Evaluate:
		return api.EvaluatePath, nil
	default:
		return "", fmt.Errorf("dispatch: no endpoint for mode %s", m)
	}
}

// State is the request panel's state. After a request settles exactly one of
// Err and Result is set; both are empty while idle or busy.
type State struct {
	Busy   bool
	Mode   Mode
	Err    string
	Result Result
	Status int

	latest uint64
}

// Ticket identifies one dispatch.
type Ticket struct {
	Seq       uint64
	Mode      Mode
	RequestID string
}

// Outcome is what came back for a ticket.
type Outcome struct {
	Status int
	Result Result
	Err    error
}

// Begin starts a request, clearing any previous outcome.
func (s State) Begin(mode Mode) (State, Ticket) {
	t := Ticket{Seq: s.latest + 1, Mode: mode, RequestID: uuid.NewString()}
	return State{Busy: true, Mode: mode, latest: t.Seq}, t
}

// Settle applies an outcome. Replies to anything but the most recent ticket are
// dropped, so an older, slower request can never overwrite a newer one.
func (s State) Settle(t Ticket, o Outcome) State {
	if t.Seq != s.latest {
		return s
	}
	next := State{Mode: t.Mode, Status: o.Status, latest: s.latest}
	switch {
	case o.Err != nil:
		next.Err = o.Err.Error()
	case o.Result != nil:
		next.Result = o.Result
	default:
		next.Result = RawText("")
	}
	return next
}

// Stale reports whether t has been superseded.
func (s State) Stale(t Ticket) bool { return t.Seq != s.latest }

// Submitter is the part of api.Client the dispatcher needs.
type Submitter interface {
	Submit(ctx context.Context, endpoint api.Endpoint, p trade.Proposal, requestID string) (api.Response, error)
}

// SettledMsg is delivered to the program when a dispatch completes.
type SettledMsg struct {
	Ticket  Ticket
	Outcome Outcome
}

type Dispatcher struct {
	ctx    context.Context
	client Submitter
}

func New(ctx context.Context, client Submitter) *Dispatcher {
	return &Dispatcher{ctx: ctx, client: client}
}

// Do performs the request synchronously.
func (d *Dispatcher) Do(t Ticket, p trade.Proposal) Outcome {
	endpoint, err := t.Mode.endpoint()
	if err != nil {
		return Outcome{Err: err}
	}
	resp, err := d.client.Submit(d.ctx, endpoint, p, t.RequestID)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Status: resp.Status, Result: Classify(t.Mode, resp.Body)}
}

// Send wraps Do as a command for the bubbletea runtime.
func (d *Dispatcher) Send(t Ticket, p trade.Proposal) tea.Cmd {
	return func() tea.Msg {
		return SettledMsg{Ticket: t, Outcome: d.Do(t, p)}
	}
}
