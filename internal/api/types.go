package api

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Issue is one legality problem reported by the service.
type Issue struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Legality is the body of POST /trade/validate.
type Legality struct {
	Legal  bool    `json:"legal"`
	Issues []Issue `json:"issues"`
}

// Breakdown holds the per-component scores behind a grade.
type Breakdown struct {
	ImpactNow   float64 `json:"impact_now"`
	FutureValue float64 `json:"future_value"`
	PickValue   float64 `json:"pick_value"`
}

// Grade scores one team's side of the trade.
type Grade struct {
	Team      string    `json:"team"`
	ScoreRaw  float64   `json:"score_raw"`
	Letter    string    `json:"letter"`
	Breakdown Breakdown `json:"breakdown"`
}

// Evaluation is the body of POST /trade/evaluate.
type Evaluation struct {
	Legality *Legality `json:"legality"`
	Grades   []Grade   `json:"grades"`
}

// Player is one /players/search hit. The endpoint may answer with bare
// strings instead of objects; those decode into Name with an empty Team.
type Player struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

func (p *Player) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Player{Name: name}
		return nil
	}
	type plain Player
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	*p = Player(v)
	return nil
}

// Label is how a hit is shown in a suggestion list.
func (p Player) Label() string {
	if p.Team == "" {
		return p.Name
	}
	return p.Name + " · " + p.Team
}
