package trade

import (
	"fmt"
	"regexp"
	"strings"
)

// pickPrefix maps team abbreviations, including historical aliases, to the
// prefix used in pick ids.
var pickPrefix = map[string]string{
	"ATL": "atl", "BOS": "bos", "BRK": "brk", "BKN": "brk", "CHI": "chi", "CLE": "cle", "DAL": "dal", "DEN": "den",
	"DET": "det", "GSW": "gsw", "GOS": "gsw", "HOU": "hou", "IND": "ind", "LAC": "lac", "LAL": "lal", "MEM": "mem",
	"MIA": "mia", "MIL": "mil", "MIN": "min", "NOP": "nop", "NOH": "nop", "NYK": "nyk", "OKC": "okc", "ORL": "orl",
	"PHI": "phi", "PHX": "phx", "PHO": "phx", "POR": "por", "SAC": "sac", "SAS": "sas", "TOR": "tor", "UTA": "uta",
	"WAS": "was", "CHA": "cha", "CHO": "cha",
}

var roundAlias = map[string]string{
	"1": "1st", "1st": "1st", "first": "1st",
	"2": "2nd", "2nd": "2nd", "second": "2nd",
}

var (
	pickLongRe  = regexp.MustCompile(`(?i)^([a-z]{3})[ _-]?(\d{4})(?:[ _-]?([12](?:st|nd)?|first|second))?$`)
	pickShortRe = regexp.MustCompile(`(?i)^p?([a-z]{3})[ _-]?(\d{2})$`)
)

// NormalizePickRef rewrites pick shorthand ("BOS 2027 1st", "BOS 2027",
// "BOS27", "pBOS27") into the canonical "bos_2027_1st" id. Anything it does
// not recognise is returned trimmed but otherwise untouched; whether the pick
// exists is for the evaluation service to decide.
func NormalizePickRef(ref string) string {
	s := strings.TrimSpace(ref)
	if m := pickLongRe.FindStringSubmatch(s); m != nil {
		rnd := roundAlias[strings.ToLower(m[3])]
		if rnd == "" {
			rnd = "1st"
		}
		return fmt.Sprintf("%s_%s_%s", teamPrefix(m[1]), m[2], rnd)
	}
	if m := pickShortRe.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s_20%s_1st", teamPrefix(m[1]), m[2])
	}
	return s
}

func teamPrefix(team string) string {
	t := strings.ToUpper(team)
	if p, ok := pickPrefix[t]; ok {
		return p
	}
	return strings.ToLower(t)
}
