// Package suggest resolves free-text player names against the catalog while
// the user types, debouncing keystrokes so the search endpoint sees one
// request per pause rather than one per key.
package suggest

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tradedesk/internal/api"
)

const (
	DefaultDebounce = 180 * time.Millisecond
	DefaultMinQuery = 2
	DefaultLimit    = 8
)

// Lookup is the catalog search the provider calls.
type Lookup interface {
	SearchPlayers(ctx context.Context, q string, limit int) ([]api.Player, error)
}

// Options tunes a Provider. Zero values fall back to the defaults above.
type Options struct {
	Debounce time.Duration
	MinQuery int
	Limit    int
	Cache    Cache
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.MinQuery <= 0 {
		o.MinQuery = DefaultMinQuery
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// Provider feeds suggestions to one token editor.
type Provider struct {
	id     int
	ctx    context.Context
	lookup Lookup
	opts   Options

	seq    int
	query  string
	items  []api.Player
	cursor int
}

func NewProvider(ctx context.Context, lookup Lookup, opts Options) *Provider {
	return &Provider{id: nextID(), ctx: ctx, lookup: lookup, opts: opts.withDefaults()}
}

type debounceMsg struct {
	id    int
	seq   int
	query string
}

// ResultsMsg carries a resolved lookup back to the provider that asked.
type ResultsMsg struct {
	ID    int
	Query string
	Items []api.Player
}

func (p *Provider) ID() int                 { return p.id }
func (p *Provider) Query() string           { return p.query }
func (p *Provider) Items() []api.Player     { return p.items }
func (p *Provider) Cursor() int             { return p.cursor }
func (p *Provider) Debounce() time.Duration { return p.opts.Debounce }

// SetQuery records new input and schedules a lookup once the debounce window
// passes without further input. Any earlier scheduled lookup is superseded.
func (p *Provider) SetQuery(q string) tea.Cmd {
	if q == p.query {
		return nil
	}
	p.seq++
	p.query = q
	id, seq := p.id, p.seq
	return tea.Tick(p.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq, query: q}
	})
}

// Update handles the provider's own messages and ignores everything else.
func (p *Provider) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case debounceMsg:
		if m.id != p.id || m.seq != p.seq {
			return nil
		}
		return p.lookupCmd(m.query)
	case ResultsMsg:
		if m.ID != p.id {
			return nil
		}
		// Applied even if the query moved on while the lookup was in flight.
		p.items = m.Items
		p.cursor = 0
	}
	return nil
}

func (p *Provider) lookupCmd(q string) tea.Cmd {
	id := p.id
	return func() tea.Msg {
		return ResultsMsg{ID: id, Query: q, Items: p.Resolve(q)}
	}
}

// Resolve runs one lookup. Short queries and failures resolve to nothing.
func (p *Provider) Resolve(q string) []api.Player {
	if utf8.RuneCountInString(q) < p.opts.MinQuery {
		return nil
	}
	key := cacheKey(q, p.opts.Limit)
	if p.opts.Cache != nil {
		if items, ok := p.opts.Cache.Get(p.ctx, key); ok {
			return items
		}
	}
	items, err := p.lookup.SearchPlayers(p.ctx, q, p.opts.Limit)
	if err != nil {
		log.Printf("suggest: lookup %q: %v", q, err)
		return nil
	}
	if p.opts.Cache != nil {
		p.opts.Cache.Put(p.ctx, key, items)
	}
	return items
}

// Move shifts the highlighted suggestion.
func (p *Provider) Move(delta int) {
	if len(p.items) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = max(0, min(len(p.items)-1, p.cursor+delta))
}

// Pick returns the name to add for suggestion i and resets the provider:
// suggestions and query are cleared and any pending lookup is cancelled.
func (p *Provider) Pick(i int) (string, bool) {
	if i < 0 || i >= len(p.items) {
		return "", false
	}
	name := p.items[i].Name
	p.Reset()
	return name, name != ""
}

// PickSelected picks the highlighted suggestion.
func (p *Provider) PickSelected() (string, bool) { return p.Pick(p.cursor) }

// Reset clears suggestions and input and cancels any scheduled lookup.
func (p *Provider) Reset() {
	p.seq++
	p.query = ""
	p.items = nil
	p.cursor = 0
}

func cacheKey(q string, limit int) string {
	return strings.ToLower(strings.TrimSpace(q)) + "|" + strconv.Itoa(limit)
}
