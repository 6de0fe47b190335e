package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/tradedesk/internal/api"
	"github.com/jask/tradedesk/internal/config"
	"github.com/jask/tradedesk/internal/dispatch"
	"github.com/jask/tradedesk/internal/editor"
	"github.com/jask/tradedesk/internal/trade"
)

type fakeBackend struct {
	mu        sync.Mutex
	submitted []api.Endpoint
	searched  []string
	response  api.Response
	players   []api.Player
	healthErr error
}

func (f *fakeBackend) Submit(_ context.Context, endpoint api.Endpoint, _ trade.Proposal, _ string) (api.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, endpoint)
	return f.response, nil
}

func (f *fakeBackend) SearchPlayers(_ context.Context, q string, _ int) ([]api.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, q)
	return f.players, nil
}

func (f *fakeBackend) Health(context.Context) error { return f.healthErr }
func (f *fakeBackend) BaseURL() string              { return "http://trades.test" }

func (f *fakeBackend) submissions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

func testConfig() config.Config {
	return config.Config{
		Suggest: config.SuggestConfig{Debounce: time.Millisecond, MinQuery: 2, Limit: 8},
		UI:      config.UIConfig{StartView: "builder"},
	}
}

func newTestApp(t *testing.T, b *fakeBackend) *App {
	t.Helper()
	return New(context.Background(), testConfig(), b, trade.DefaultPresets(), nil)
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

// typeText sends s one rune at a time and returns the last command.
func typeText(a *App, s string) tea.Cmd {
	var last tea.Cmd
	for _, r := range s {
		_, last = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return last
}

// drain runs cmd and everything it leads to, feeding each message back into
// the app. Blink and spinner ticks are dropped so the loop terminates.
func drain(a *App, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil:
		default:
			if isTick(msg) {
				continue
			}
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func isTick(msg tea.Msg) bool {
	switch msg.(type) {
	case spinner.TickMsg, cursor.BlinkMsg:
		return true
	}
	return false
}

// focusList moves focus to a list field of side 0.
func focusList(t *testing.T, a *App, l trade.List) *field {
	t.Helper()
	for i := 0; i < len(a.fields); i++ {
		f := a.fields[a.focus]
		if f.side == 0 && f.tokens != nil && f.tokens.List == l {
			return f
		}
		press(a, tea.KeyTab)
	}
	t.Fatalf("no field for %s", l)
	return nil
}

func TestAddMirrorsToCounterpart(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	f := focusList(t, a, trade.PlayersOut)
	require.Nil(t, f.sugg.Items())

	typeText(a, "LeBron James")
	press(a, tea.KeyEnter)

	p := a.view.Proposal()
	require.Equal(t, []string{"LeBron James"}, p.Sides[0].PlayersOut)
	require.Equal(t, []string{"LeBron James"}, p.Sides[1].PlayersIn)
	require.Empty(t, f.input.Value())

	// Empty input: backspace removes the last chip and the mirror with it.
	press(a, tea.KeyBackspace)
	p = a.view.Proposal()
	require.Empty(t, p.Sides[0].PlayersOut)
	require.Empty(t, p.Sides[1].PlayersIn)
}

func TestPickShorthandIsNormalized(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	focusList(t, a, trade.PicksOut)
	typeText(a, "BKN 2027 1st")
	press(a, tea.KeyEnter)

	p := a.view.Proposal()
	require.Equal(t, []string{"brk_2027_1st"}, p.Sides[0].PicksOut)
	require.Equal(t, []string{"brk_2027_1st"}, p.Sides[1].PicksIn)
}

func TestTeamSuggestions(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	typeText(a, "la")
	require.Equal(t, "LA", a.view.Proposal().Sides[0].Team)
	require.Contains(t, ansi.Strip(a.View()), "LAC")

	press(a, tea.KeyDown)
	press(a, tea.KeyEnter)
	require.Equal(t, "LAL", a.view.Proposal().Sides[0].Team)

	press(a, tea.KeyBackspace)
	typeText(a, "X")
	require.Equal(t, "LAX", a.view.Proposal().Sides[0].Team)
	require.Contains(t, ansi.Strip(a.View()), "did you mean LAC?")
}

func TestPlayerSuggestionsDebounceAndPick(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{players: []api.Player{{Name: "LeBron James", Team: "LAL"}, {Name: "Bronny James", Team: "LAL"}}}
	a := newTestApp(t, b)
	f := focusList(t, a, trade.PlayersOut)

	var cmds []tea.Cmd
	for _, r := range "LeB" {
		_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	for _, cmd := range cmds {
		drain(a, cmd)
	}
	require.Equal(t, []string{"LeB"}, b.searched)
	require.Len(t, f.sugg.Items(), 2)
	require.Contains(t, ansi.Strip(a.View()), "LeBron James · LAL")

	press(a, tea.KeyDown)
	press(a, tea.KeyEnter)
	p := a.view.Proposal()
	require.Equal(t, []string{"Bronny James"}, p.Sides[0].PlayersOut)
	require.Equal(t, []string{"Bronny James"}, p.Sides[1].PlayersIn)
	require.Empty(t, f.sugg.Items())
	require.Empty(t, f.input.Value())
}

func TestLockedPresetRejectsEdits(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	press(a, tea.KeyCtrlN)
	require.True(t, a.locked)
	before := a.view.Proposal()

	press(a, tea.KeyTab)
	typeText(a, "Kevin Durant")
	press(a, tea.KeyEnter)
	require.True(t, before.Equal(a.view.Proposal()))
	require.Equal(t, lockedNotice, a.status)
	require.Contains(t, ansi.Strip(a.View()), "Preset trade locked")

	press(a, tea.KeyCtrlP)
	require.False(t, a.locked)
	require.Equal(t, trade.CustomPreset, a.presets[a.presetIdx].Name)
}

func TestMalformedJSONIsNotSent(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{}
	a := newTestApp(t, b)
	press(a, tea.KeyF2)
	require.Equal(t, editor.Textual, a.view.Active())

	typeText(a, "}")
	cmd := press(a, tea.KeyCtrlE)
	require.Nil(t, cmd)
	require.Zero(t, b.submissions())
	require.Contains(t, a.inlineErr, "invalid JSON")
	require.False(t, a.req.Busy)
	require.Contains(t, ansi.Strip(a.View()), "invalid JSON")
}

func TestValidateRoundTrip(t *testing.T) {
	t.Parallel()

	b := &fakeBackend{response: api.Response{Status: 200, Body: `{"legal":true,"issues":[]}`}}
	a := newTestApp(t, b)
	require.Contains(t, ansi.Strip(a.View()), "Grades will appear here")

	cmd := press(a, tea.KeyCtrlR)
	require.NotNil(t, cmd)
	require.True(t, a.req.Busy)
	require.Nil(t, press(a, tea.KeyCtrlE), "a second request waits for the first")

	drain(a, cmd)
	require.False(t, a.req.Busy)
	require.Equal(t, []api.Endpoint{api.ValidatePath}, b.submitted)
	require.Equal(t, "validate: HTTP 200", a.status)
	require.Contains(t, ansi.Strip(a.View()), "LEGAL")
}

func TestEvaluateUsesTextWhenJSONViewActive(t *testing.T) {
	t.Parallel()

	body := `{"legality":{"legal":true,"issues":[]},"grades":[{"team":"LAL","score_raw":3.21,"letter":"B","breakdown":{"impact_now":1.1,"future_value":0.9,"pick_value":1.21}}]}`
	b := &fakeBackend{response: api.Response{Status: 200, Body: body}}
	a := newTestApp(t, b)

	focusList(t, a, trade.PlayersOut)
	typeText(a, "Anthony Davis")
	press(a, tea.KeyEnter)

	press(a, tea.KeyF2)
	require.Contains(t, ansi.Strip(a.View()), "Builder has changes not shown here")
	press(a, tea.KeyCtrlS)
	require.NotContains(t, ansi.Strip(a.View()), "Builder has changes not shown here")

	drain(a, press(a, tea.KeyCtrlE))
	out := ansi.Strip(a.View())
	require.Contains(t, out, "1.10")
	require.Contains(t, out, "0.90")
	require.Equal(t, []api.Endpoint{api.EvaluatePath}, b.submitted)
}

func TestStaleSettleIsIgnored(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	var first dispatch.Ticket
	a.req, first = a.req.Begin(dispatch.Validate)
	a.req, _ = a.req.Begin(dispatch.Evaluate)

	a.Update(dispatch.SettledMsg{Ticket: first, Outcome: dispatch.Outcome{Result: dispatch.RawText("old")}})
	require.True(t, a.req.Busy)
	require.Nil(t, a.req.Result)
}

func TestHealthStatus(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	a.Update(healthMsg{})
	require.Equal(t, "connected to http://trades.test", a.status)

	a.Update(healthMsg{err: errors.New("health: status 503")})
	require.Equal(t, "service unreachable: health: status 503", a.status)
}

func TestStartViewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.UI.StartView = "json"
	a := New(context.Background(), cfg, &fakeBackend{}, nil, nil)
	require.Equal(t, editor.Textual, a.view.Active())
	require.Equal(t, trade.CustomPreset, a.presets[0].Name)
}

func TestAddSideStopsMirroring(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, &fakeBackend{})
	press(a, tea.KeyCtrlT)
	require.Len(t, a.view.Proposal().Sides, 3)
	require.Len(t, a.fields, 3*(1+len(trade.Lists)))

	focusList(t, a, trade.PlayersOut)
	typeText(a, "Jrue Holiday")
	press(a, tea.KeyEnter)
	p := a.view.Proposal()
	require.Equal(t, []string{"Jrue Holiday"}, p.Sides[0].PlayersOut)
	require.Empty(t, p.Sides[1].PlayersIn)
}
