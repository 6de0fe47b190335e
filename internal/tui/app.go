package tui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tradedesk/internal/config"
	"github.com/jask/tradedesk/internal/dispatch"
	"github.com/jask/tradedesk/internal/editor"
	"github.com/jask/tradedesk/internal/suggest"
	"github.com/jask/tradedesk/internal/trade"
)

const lockedNotice = `Preset trade locked. Choose "Custom" to build your own.`

// Backend is the evaluation service as the UI uses it.
type Backend interface {
	dispatch.Submitter
	suggest.Lookup
	Health(ctx context.Context) error
	BaseURL() string
}

// App owns every piece of UI state: the proposal views, the builder fields and
// the request panel.
type App struct {
	ctx     context.Context
	cfg     config.Config
	keys    keyMap
	backend Backend
	disp    *dispatch.Dispatcher
	sopts   suggest.Options

	presets   []trade.Preset
	presetIdx int
	locked    bool

	view   *editor.DualView
	fields []*field
	focus  int
	json   textarea.Model

	req       dispatch.State
	spin      spinner.Model
	status    string
	inlineErr string
	width     int
}

type healthMsg struct{ err error }

type statusMsg string

// New builds the app around backend. cache may be nil.
func New(ctx context.Context, cfg config.Config, backend Backend, presets []trade.Preset, cache suggest.Cache) *App {
	if len(presets) == 0 {
		presets = trade.DefaultPresets()
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		keys:    newKeyMap(),
		backend: backend,
		disp:    dispatch.New(ctx, backend),
		sopts: suggest.Options{
			Debounce: cfg.Suggest.Debounce,
			MinQuery: cfg.Suggest.MinQuery,
			Limit:    cfg.Suggest.Limit,
			Cache:    cache,
		},
		presets: presets,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   100,
	}

	a.json = textarea.New()
	a.json.ShowLineNumbers = false
	a.json.MaxHeight = 0
	a.json.SetWidth(80)
	a.json.SetHeight(16)

	a.view = editor.NewDualView(presets[0].Proposal)
	a.applyPreset(0)

	kind, err := editor.ParseViewKind(cfg.UI.StartView)
	if err != nil {
		log.Printf("tui: %v, starting in builder", err)
	}
	a.setView(kind)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.healthCmd(), textinput.Blink)
}

func (a *App) healthCmd() tea.Cmd {
	return func() tea.Msg {
		return healthMsg{err: a.backend.Health(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.json.SetWidth(max(20, m.Width-4))
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)
	case healthMsg:
		if m.err != nil {
			log.Printf("tui: health: %v", m.err)
			a.status = "service unreachable: " + m.err.Error()
		} else {
			a.status = "connected to " + a.backend.BaseURL()
		}
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case spinner.TickMsg:
		if !a.req.Busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd
	case dispatch.SettledMsg:
		if a.req.Stale(m.Ticket) {
			log.Printf("tui: dropping stale %s response %s", m.Ticket.Mode, m.Ticket.RequestID)
			return a, nil
		}
		a.req = a.req.Settle(m.Ticket, m.Outcome)
		a.status = settledStatus(a.req)
		return a, nil
	}
	return a, a.route(msg)
}

// route hands everything else to the focused input (cursor blinks) and to the
// lookup providers; each ignores messages that are not its own.
func (a *App) route(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if a.view.Active() == editor.Textual {
		a.json, cmd = a.json.Update(msg)
	} else if len(a.fields) > 0 {
		f := a.fields[a.focus]
		f.input, cmd = f.input.Update(msg)
	}
	cmds = append(cmds, cmd)
	for _, f := range a.fields {
		if f.sugg != nil {
			if cmd := f.sugg.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.ToggleView):
		if a.view.Active() == editor.Structured {
			a.setView(editor.Textual)
		} else {
			a.setView(editor.Structured)
		}
		return nil
	case key.Matches(m, a.keys.NextPreset):
		a.applyPreset(a.presetIdx + 1)
		a.status = a.presetStatus()
		return nil
	case key.Matches(m, a.keys.PrevPreset):
		a.applyPreset(a.presetIdx - 1)
		a.status = a.presetStatus()
		return nil
	case key.Matches(m, a.keys.Validate):
		return a.submit(dispatch.Validate)
	case key.Matches(m, a.keys.Evaluate):
		return a.submit(dispatch.Evaluate)
	case key.Matches(m, a.keys.Sync):
		a.view.Sync()
		a.json.SetValue(a.view.Text())
		a.inlineErr = ""
		a.status = "JSON regenerated from builder"
		return nil
	}
	if a.view.Active() == editor.Textual {
		return a.handleJSONKey(m)
	}
	return a.handleBuilderKey(m)
}

func (a *App) handleJSONKey(m tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	a.json, cmd = a.json.Update(m)
	if v := a.json.Value(); v != a.view.Text() {
		a.view.SetText(v)
		a.inlineErr = ""
	}
	return cmd
}

func (a *App) handleBuilderKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.NextField):
		a.moveFocus(1)
		return nil
	case key.Matches(m, a.keys.PrevField):
		a.moveFocus(-1)
		return nil
	case key.Matches(m, a.keys.AddSide):
		if a.locked {
			a.status = lockedNotice
			return nil
		}
		a.view.SetProposal(a.view.Proposal().AddSide())
		a.rebuildFields()
		a.status = fmt.Sprintf("added team %d; outgoing assets mirror only in two-team trades", len(a.view.Proposal().Sides))
		return nil
	}
	if len(a.fields) == 0 {
		return nil
	}
	if a.locked {
		a.status = lockedNotice
		return nil
	}
	f := a.fields[a.focus]
	if f.kind == teamField {
		return a.handleTeamKey(f, m)
	}
	return a.handleTokenKey(f, m)
}

func (a *App) handleTeamKey(f *field, m tea.KeyMsg) tea.Cmd {
	matches := trade.SuggestTeams(f.input.Value())
	switch {
	case key.Matches(m, a.keys.Up):
		f.pick = max(0, f.pick-1)
		return nil
	case key.Matches(m, a.keys.Down):
		if len(matches) > 0 {
			f.pick = min(len(matches)-1, f.pick+1)
		}
		return nil
	case key.Matches(m, a.keys.Accept):
		if len(matches) == 0 {
			a.moveFocus(1)
			return nil
		}
		code := matches[min(f.pick, len(matches)-1)]
		f.input.SetValue(code)
		f.pick = 0
		a.view.SetProposal(a.view.Proposal().SetTeam(f.side, code))
		return nil
	case key.Matches(m, a.keys.Dismiss):
		f.pick = 0
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(m)
	if up := strings.ToUpper(f.input.Value()); up != f.input.Value() {
		f.input.SetValue(up)
	}
	f.pick = 0
	a.view.SetProposal(a.view.Proposal().SetTeam(f.side, f.input.Value()))
	return cmd
}

func (a *App) handleTokenKey(f *field, m tea.KeyMsg) tea.Cmd {
	p := a.view.Proposal()
	empty := f.input.Value() == ""
	open := f.sugg != nil && len(f.sugg.Items()) > 0

	switch {
	case key.Matches(m, a.keys.Up) && open:
		f.sugg.Move(-1)
		return nil
	case key.Matches(m, a.keys.Down) && open:
		f.sugg.Move(1)
		return nil
	case key.Matches(m, a.keys.Accept):
		if open {
			if name, ok := f.sugg.PickSelected(); ok {
				a.view.SetProposal(f.tokens.Add(p, name))
			}
			f.input.Reset()
			return nil
		}
		value := strings.TrimSpace(f.input.Value())
		if f.isPicks() {
			value = trade.NormalizePickRef(value)
		}
		a.view.SetProposal(f.tokens.Add(p, value))
		f.input.Reset()
		if f.sugg != nil {
			f.sugg.Reset()
		}
		return nil
	case key.Matches(m, a.keys.ChipLeft) && empty:
		f.tokens.MoveCursor(p, -1)
		return nil
	case key.Matches(m, a.keys.ChipRight) && empty:
		f.tokens.MoveCursor(p, 1)
		return nil
	case key.Matches(m, a.keys.Remove) && empty:
		a.view.SetProposal(f.tokens.RemoveSelected(p))
		return nil
	case key.Matches(m, a.keys.Dismiss):
		if f.sugg != nil {
			f.sugg.Reset()
		}
		f.tokens.ClearCursor()
		return nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(m)
	f.tokens.ClearCursor()
	if f.sugg != nil {
		return tea.Batch(cmd, f.sugg.SetQuery(f.input.Value()))
	}
	return cmd
}

// submit sends the active view's payload. A JSON view that does not parse is
// reported inline and nothing is sent.
func (a *App) submit(mode dispatch.Mode) tea.Cmd {
	if a.req.Busy {
		a.status = "request in flight"
		return nil
	}
	p, err := a.view.Payload()
	if err != nil {
		a.inlineErr = err.Error()
		a.status = mode.String() + " not sent"
		return nil
	}
	a.inlineErr = ""
	var t dispatch.Ticket
	a.req, t = a.req.Begin(mode)
	a.status = mode.String() + "…"
	return tea.Batch(a.disp.Send(t, p), a.spin.Tick)
}

func settledStatus(s dispatch.State) string {
	if s.Err != "" {
		return fmt.Sprintf("%s failed: %s", s.Mode, s.Err)
	}
	return fmt.Sprintf("%s: HTTP %d", s.Mode, s.Status)
}

func (a *App) applyPreset(i int) {
	n := len(a.presets)
	a.presetIdx = (i%n + n) % n
	pr := a.presets[a.presetIdx]
	a.locked = pr.Locked
	a.view.ApplyPreset(pr.Proposal, false)
	a.json.SetValue(a.view.Text())
	a.inlineErr = ""
	a.rebuildFields()
}

func (a *App) presetStatus() string {
	name := a.presets[a.presetIdx].Name
	if a.locked {
		return "Preset: " + name + " (locked)"
	}
	return "Preset: " + name
}

func (a *App) rebuildFields() {
	if a.focus < len(a.fields) {
		a.fields[a.focus].blur()
	}
	a.fields = buildFields(a.ctx, a.view.Proposal(), a.locked, a.backend, a.sopts)
	a.focus = max(0, min(a.focus, len(a.fields)-1))
	if a.view.Active() == editor.Structured && len(a.fields) > 0 {
		a.fields[a.focus].focus()
	}
}

func (a *App) moveFocus(delta int) {
	n := len(a.fields)
	if n == 0 {
		return
	}
	a.fields[a.focus].blur()
	a.focus = (a.focus + delta + n) % n
	a.fields[a.focus].focus()
}

func (a *App) setView(k editor.ViewKind) {
	a.view.Switch(k)
	if k == editor.Textual {
		if a.focus < len(a.fields) {
			a.fields[a.focus].blur()
		}
		a.json.Focus()
		return
	}
	a.json.Blur()
	if a.focus < len(a.fields) {
		a.fields[a.focus].focus()
	}
}
