// Package render turns the request panel state into something to show.
//
// Classify is pure and decides what kind of panel applies; View draws it.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/jask/tradedesk/internal/api"
	"github.com/jask/tradedesk/internal/dispatch"
)

const (
	AwaitingText = "Grades will appear here…"
	NoGradesText = "No grades returned."
)

type Kind int

const (
	KindAwaiting Kind = iota
	KindError
	KindRaw
	KindValidate
	KindEvaluate
	KindDump
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindRaw:
		return "raw"
	case KindValidate:
		return "validate"
	case KindEvaluate:
		return "evaluate"
	case KindDump:
		return "dump"
	default:
		return "awaiting"
	}
}

// Badge summarizes a legality verdict.
type Badge struct {
	Legal  bool
	Issues int
}

func (b Badge) Label() string {
	if b.Legal {
		return "LEGAL"
	}
	return "POTENTIAL ISSUES"
}

// GradeRow is one formatted line of the grades table.
type GradeRow struct {
	Team        string
	Score       string
	Letter      string
	ImpactNow   string
	FutureValue string
	PickValue   string
}

// Display is the classified panel content. Text holds the message for the
// Error, Awaiting, Raw and Dump kinds, and the empty-grades note for Evaluate.
type Display struct {
	Kind   Kind
	Text   string
	Badge  *Badge
	Issues []api.Issue
	Grades []GradeRow
}

// Classify picks the panel for a request state.
func Classify(s dispatch.State) Display {
	if s.Err != "" {
		return Display{Kind: KindError, Text: s.Err}
	}
	switch r := s.Result.(type) {
	case nil:
		return Display{Kind: KindAwaiting, Text: AwaitingText}
	case dispatch.RawText:
		return Display{Kind: KindRaw, Text: string(r)}
	case dispatch.Validated:
		if s.Mode == dispatch.Validate {
			return Display{Kind: KindValidate, Badge: badge(&r.Legality), Issues: r.Legality.Issues}
		}
		return dump(r.Doc)
	case dispatch.Evaluated:
		if s.Mode != dispatch.Evaluate {
			return dump(r.Doc)
		}
		d := Display{Kind: KindEvaluate, Badge: badge(r.Evaluation.Legality)}
		for _, g := range r.Evaluation.Grades {
			d.Grades = append(d.Grades, gradeRow(g))
		}
		if len(d.Grades) == 0 {
			d.Text = NoGradesText
		}
		return d
	case dispatch.Unknown:
		return dump(r.Doc)
	default:
		return Display{Kind: KindAwaiting, Text: AwaitingText}
	}
}

func badge(l *api.Legality) *Badge {
	if l == nil {
		return nil
	}
	return &Badge{Legal: l.Legal, Issues: len(l.Issues)}
}

func dump(doc any) Display {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Display{Kind: KindDump, Text: err.Error()}
	}
	return Display{Kind: KindDump, Text: string(data)}
}

func gradeRow(g api.Grade) GradeRow {
	return GradeRow{
		Team:        g.Team,
		Score:       Fixed2(g.ScoreRaw),
		Letter:      g.Letter,
		ImpactNow:   Fixed2(g.Breakdown.ImpactNow),
		FutureValue: Fixed2(g.Breakdown.FutureValue),
		PickValue:   Fixed2(g.Breakdown.PickValue),
	}
}

// Fixed2 formats f with exactly two decimals.
func Fixed2(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	preStyle   = lipgloss.NewStyle().
			Foreground(ColorText).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorSurface1).
			Padding(0, 1)
	issueCodeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBase).Background(ColorWarning).Padding(0, 1)
	issueMsgStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
)

func badgeStyle(legal bool) lipgloss.Style {
	bg := ColorError
	if legal {
		bg = ColorSuccess
	}
	return lipgloss.NewStyle().Bold(true).Foreground(ColorBase).Background(bg).Padding(0, 1)
}

// View renders d to at most width columns.
func View(d Display, width int) string {
	width = max(width, 20)
	switch d.Kind {
	case KindError:
		return errorStyle.Width(width - 2).Render(d.Text)
	case KindAwaiting:
		return mutedStyle.Render(d.Text)
	case KindRaw, KindDump:
		return preStyle.Width(width - 2).Render(d.Text)
	case KindValidate:
		return lipgloss.JoinVertical(lipgloss.Left, viewBadge(d.Badge), viewIssues(d.Issues, width))
	case KindEvaluate:
		parts := []string{}
		if d.Badge != nil {
			parts = append(parts, viewBadge(d.Badge))
		}
		if len(d.Grades) == 0 {
			parts = append(parts, mutedStyle.Render(d.Text))
		} else {
			parts = append(parts, viewGrades(d.Grades, width))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return ""
}

func viewBadge(b *Badge) string {
	if b == nil {
		return ""
	}
	out := badgeStyle(b.Legal).Render(b.Label())
	if b.Issues > 0 {
		out += " " + mutedStyle.Render(strconv.Itoa(b.Issues)+" issue(s)")
	}
	return out
}

func viewIssues(issues []api.Issue, width int) string {
	if len(issues) == 0 {
		return ""
	}
	lines := make([]string, 0, len(issues))
	for _, it := range issues {
		code := issueCodeStyle.Render(it.Code)
		msg := issueMsgStyle.Width(max(10, width-lipgloss.Width(code)-1)).Render(it.Message)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, code, " ", msg))
	}
	return "\n" + strings.Join(lines, "\n")
}

func viewGrades(grades []GradeRow, width int) string {
	cols := []table.Column{
		{Title: "Team", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Letter", Width: 6},
		{Title: "Impact Now", Width: 10},
		{Title: "Future", Width: 7},
		{Title: "Picks", Width: 7},
	}
	rows := make([]table.Row, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, table.Row{g.Team, g.Score, g.Letter, g.ImpactNow, g.FutureValue, g.PickValue})
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithFocused(false), table.WithHeight(len(rows)+1))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorSubtext0)
	// No row is ever highlighted; the table is read-only.
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	t.SetWidth(width)
	return t.View()
}
