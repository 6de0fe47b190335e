package trade

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// CustomPreset is the name of the editable blank preset.
const CustomPreset = "Custom"

// Preset is a named starting proposal. Locked presets are read-only in the builder.
type Preset struct {
	Name     string
	Locked   bool
	Proposal Proposal
}

type presetFile struct {
	Preset []presetEntry `toml:"preset"`
}

type presetEntry struct {
	Name   string      `toml:"name"`
	Locked bool        `toml:"locked"`
	Side   []sideEntry `toml:"side"`
}

type sideEntry struct {
	Team       string   `toml:"team"`
	PlayersOut []string `toml:"players_out"`
	PlayersIn  []string `toml:"players_in"`
	PicksOut   []string `toml:"picks_out"`
	PicksIn    []string `toml:"picks_in"`
}

const defaultPresetsTOML = `# tradedesk presets
# Each [[preset]] appears in the builder's preset selector. Locked presets
# cannot be edited; pick "Custom" to build your own.

[[preset]]
name = "Custom"
locked = false

  [[preset.side]]
  team = ""

  [[preset.side]]
  team = ""

[[preset]]
name = "LeBron ↔ Curry swap"
locked = true

  [[preset.side]]
  team = "LAL"
  players_out = ["LeBron James"]
  players_in = ["Stephen Curry"]

  [[preset.side]]
  team = "GSW"
  players_out = ["Stephen Curry"]
  players_in = ["LeBron James"]

[[preset]]
name = "BOS ↔ BKN pick swap"
locked = true

  [[preset.side]]
  team = "BOS"
  picks_out = ["bos_2027_1st"]
  picks_in = ["brk_2027_1st"]

  [[preset.side]]
  team = "BKN"
  picks_out = ["brk_2027_1st"]
  picks_in = ["bos_2027_1st"]
`

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	presets, err := ParsePresets([]byte(defaultPresetsTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in presets: %v", err))
	}
	return presets
}

// LoadPresets reads presets from path, writing the built-ins there first if the
// file does not exist. On any error the built-ins are returned with the error.
func LoadPresets(path string) ([]Preset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return DefaultPresets(), fmt.Errorf("create presets dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultPresetsTOML), 0o644); wErr != nil {
			return DefaultPresets(), fmt.Errorf("write default presets: %w", wErr)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPresets(), fmt.Errorf("read presets: %w", err)
	}
	presets, err := ParsePresets(data)
	if err != nil {
		return DefaultPresets(), err
	}
	return presets, nil
}

// ParsePresets decodes a presets TOML document. A Custom preset is always
// present first so there is somewhere to build from scratch.
func ParsePresets(data []byte) ([]Preset, error) {
	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets.toml: %w", err)
	}
	if len(f.Preset) == 0 {
		return nil, fmt.Errorf("no presets defined")
	}

	seen := map[string]bool{}
	out := make([]Preset, 0, len(f.Preset)+1)
	for i, e := range f.Preset {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("preset[%d]: name is required", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("preset[%d]: duplicate name %q", i, name)
		}
		seen[name] = true

		p := Proposal{Sides: make([]Side, 0, len(e.Side))}
		for _, s := range e.Side {
			p.Sides = append(p.Sides, Side{
				Team:       strings.ToUpper(strings.TrimSpace(s.Team)),
				PlayersOut: s.PlayersOut,
				PlayersIn:  s.PlayersIn,
				PicksOut:   s.PicksOut,
				PicksIn:    s.PicksIn,
			})
		}
		out = append(out, Preset{Name: name, Locked: e.Locked && name != CustomPreset, Proposal: p.Clone()})
	}

	if !seen[CustomPreset] {
		out = append([]Preset{{Name: CustomPreset, Proposal: NewProposal(2)}}, out...)
	}
	return out, nil
}

// FindPreset looks up a preset by name (case-insensitive).
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return Preset{Name: p.Name, Locked: p.Locked, Proposal: p.Proposal.Clone()}, true
		}
	}
	return Preset{}, false
}
