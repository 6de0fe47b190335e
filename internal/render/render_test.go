package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/tradedesk/internal/api"
	"github.com/jask/tradedesk/internal/dispatch"
)

func settled(mode dispatch.Mode, body string) dispatch.State {
	s, t := dispatch.State{}.Begin(mode)
	return s.Settle(t, dispatch.Outcome{Status: 200, Result: dispatch.Classify(mode, body)})
}

func TestClassifyValidateLegal(t *testing.T) {
	t.Parallel()

	d := Classify(settled(dispatch.Validate, `{"legal":true,"issues":[]}`))
	require.Equal(t, KindValidate, d.Kind)
	require.NotNil(t, d.Badge)
	require.Equal(t, "LEGAL", d.Badge.Label())
	require.Empty(t, d.Issues)

	out := ansi.Strip(View(d, 60))
	require.Contains(t, out, "LEGAL")
	require.NotContains(t, out, "issue(s)")
}

func TestClassifyValidateIssues(t *testing.T) {
	t.Parallel()

	d := Classify(settled(dispatch.Validate, `{"legal":false,"issues":[{"code":"SALARY_MATCH","message":"Outgoing salary too low"}]}`))
	require.Equal(t, "POTENTIAL ISSUES", d.Badge.Label())
	require.Equal(t, []api.Issue{{Code: "SALARY_MATCH", Message: "Outgoing salary too low"}}, d.Issues)

	out := ansi.Strip(View(d, 80))
	require.Contains(t, out, "1 issue(s)")
	require.Contains(t, out, "SALARY_MATCH")
	require.Contains(t, out, "Outgoing salary too low")
}

func TestClassifyEvaluateGrades(t *testing.T) {
	t.Parallel()

	body := `{"legality":{"legal":true,"issues":[]},"grades":[{"team":"LAL","score_raw":3.21,"letter":"B","breakdown":{"impact_now":1.1,"future_value":0.9,"pick_value":1.21}}]}`
	d := Classify(settled(dispatch.Evaluate, body))
	require.Equal(t, KindEvaluate, d.Kind)
	require.True(t, d.Badge.Legal)
	require.Equal(t, []GradeRow{{Team: "LAL", Score: "3.21", Letter: "B", ImpactNow: "1.10", FutureValue: "0.90", PickValue: "1.21"}}, d.Grades)

	out := ansi.Strip(View(d, 80))
	for _, want := range []string{"LEGAL", "Team", "Impact Now", "LAL", "3.21", "B", "1.10", "0.90", "1.21"} {
		require.Contains(t, out, want)
	}
}

func TestClassifyEvaluateWithoutGrades(t *testing.T) {
	t.Parallel()

	d := Classify(settled(dispatch.Evaluate, `{"grades":[]}`))
	require.Equal(t, KindEvaluate, d.Kind)
	require.Nil(t, d.Badge)
	require.Equal(t, NoGradesText, d.Text)
	require.Contains(t, ansi.Strip(View(d, 40)), NoGradesText)
}

func TestClassifyStates(t *testing.T) {
	t.Parallel()

	require.Equal(t, Display{Kind: KindAwaiting, Text: AwaitingText}, Classify(dispatch.State{}))

	busy, _ := dispatch.State{}.Begin(dispatch.Evaluate)
	require.Equal(t, KindAwaiting, Classify(busy).Kind)

	s, ticket := dispatch.State{}.Begin(dispatch.Validate)
	s = s.Settle(ticket, dispatch.Outcome{Err: errString("dial tcp: connection refused")})
	d := Classify(s)
	require.Equal(t, Display{Kind: KindError, Text: "dial tcp: connection refused"}, d)
	require.Contains(t, ansi.Strip(View(d, 50)), "connection refused")

	raw := Classify(settled(dispatch.Evaluate, "Internal Server Error"))
	require.Equal(t, Display{Kind: KindRaw, Text: "Internal Server Error"}, raw)

	dump := Classify(settled(dispatch.Validate, `[{"a":1}]`))
	require.Equal(t, KindDump, dump.Kind)
	require.JSONEq(t, `[{"a":1}]`, dump.Text)
	require.Contains(t, dump.Text, "\n  ")
}

func TestFixed2(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.00", Fixed2(0))
	require.Equal(t, "1.10", Fixed2(1.1))
	require.Equal(t, "-2.50", Fixed2(-2.5))
	require.Equal(t, "3.14", Fixed2(3.14159))
}

type errString string

func (e errString) Error() string { return string(e) }
