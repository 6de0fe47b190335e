package trade

import (
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TeamCodes lists the league's team abbreviations.
var TeamCodes = []string{
	"ATL", "BOS", "BKN", "CHA", "CHI", "CLE", "DAL", "DEN", "DET", "GSW",
	"HOU", "IND", "LAC", "LAL", "MEM", "MIA", "MIL", "MIN", "NOP", "NYK",
	"OKC", "ORL", "PHI", "PHX", "POR", "SAC", "SAS", "TOR", "UTA", "WAS",
}

const maxTeamSuggestions = 5

// SuggestTeams returns known codes that extend prefix. An exact match is left
// out since there is nothing left to complete.
func SuggestTeams(prefix string) []string {
	q := strings.ToUpper(strings.TrimSpace(prefix))
	if q == "" {
		return nil
	}
	var out []string
	for _, code := range TeamCodes {
		if code != q && strings.HasPrefix(code, q) {
			out = append(out, code)
			if len(out) == maxTeamSuggestions {
				break
			}
		}
	}
	return out
}

// KnownTeam reports whether code is one of TeamCodes.
func KnownTeam(code string) bool {
	return slices.Contains(TeamCodes, strings.ToUpper(strings.TrimSpace(code)))
}

// NearestTeam finds the closest known code within two edits, for "did you
// mean" hints on complete but unknown codes.
func NearestTeam(code string) (string, bool) {
	q := strings.ToUpper(strings.TrimSpace(code))
	if len(q) < 3 || KnownTeam(q) {
		return "", false
	}
	best, bestDist := "", 3
	for _, c := range TeamCodes {
		if d := levenshtein.ComputeDistance(q, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
