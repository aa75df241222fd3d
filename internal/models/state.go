package models

import (
	"fmt"
	"log/slog"
)

// PondCount is the fixed number of ponds in the greenhouse.
const PondCount = 3

// Pond holds production rafts, newest first.
type Pond struct {
	Name  string            `json:"name"`
	Rafts []*ProductionRaft `json:"rafts"`
}

// Plants returns the number of plants across every raft in the pond.
func (p *Pond) Plants() int {
	total := 0
	for _, r := range p.Rafts {
		total += r.Plants
	}
	return total
}

// NewestRaft returns the most recently launched raft, or nil if the pond is empty.
func (p *Pond) NewestRaft() *ProductionRaft {
	if len(p.Rafts) == 0 {
		return nil
	}
	return p.Rafts[0]
}

// GerminationState holds trays awaiting transplant in the order they were seeded.
type GerminationState struct {
	Trays []*GerminationTray `json:"trays"`
}

// Plants returns the number of seedlings across every tray.
func (g *GerminationState) Plants() int {
	total := 0
	for _, t := range g.Trays {
		total += t.Plants
	}
	return total
}

// SimulationState is the complete state of a greenhouse simulation.
type SimulationState struct {
	Day         int              `json:"day"`
	Germination GerminationState `json:"germination"`
	Production  []*Pond          `json:"production"`
}

// NewSimulationState returns the initial state: day 1, no trays and
// three ponds without rafts.
func NewSimulationState() *SimulationState {
	ponds := make([]*Pond, PondCount)
	for i := range ponds {
		ponds[i] = &Pond{
			Name:  fmt.Sprintf("Pond %d", i+1),
			Rafts: []*ProductionRaft{},
		}
	}

	return &SimulationState{
		Day:         1,
		Germination: GerminationState{Trays: []*GerminationTray{}},
		Production:  ponds,
	}
}

// Clone returns a deep copy of the state. Variety references are shared.
func (s *SimulationState) Clone() *SimulationState {
	trays := make([]*GerminationTray, len(s.Germination.Trays))
	for i, t := range s.Germination.Trays {
		tray := *t
		trays[i] = &tray
	}

	ponds := make([]*Pond, len(s.Production))
	for i, p := range s.Production {
		rafts := make([]*ProductionRaft, len(p.Rafts))
		for j, r := range p.Rafts {
			raft := *r
			rafts[j] = &raft
		}
		ponds[i] = &Pond{Name: p.Name, Rafts: rafts}
	}

	return &SimulationState{
		Day:         s.Day,
		Germination: GerminationState{Trays: trays},
		Production:  ponds,
	}
}

// LogValue implements slog.LogValuer so the state can be dumped in one log line.
func (s *SimulationState) LogValue() slog.Value {
	trays := make([]any, len(s.Germination.Trays))
	for i, t := range s.Germination.Trays {
		trays[i] = map[string]any{
			"id":      t.ID,
			"variety": t.Name(),
			"plants":  t.Plants,
			"seeded":  t.SeededDay,
		}
	}

	ponds := make([]any, len(s.Production))
	for i, p := range s.Production {
		rafts := make([]int, len(p.Rafts))
		for j, r := range p.Rafts {
			rafts[j] = r.Plants
		}
		ponds[i] = map[string]any{
			"name":  p.Name,
			"rafts": rafts,
		}
	}

	return slog.GroupValue(
		slog.Int("day", s.Day),
		slog.Any("trays", trays),
		slog.Any("ponds", ponds),
	)
}
