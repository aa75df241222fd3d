package models

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSimulationState(t *testing.T) {
	s := NewSimulationState()

	if s.Day != 1 {
		t.Errorf("Day = %d, want 1", s.Day)
	}
	if len(s.Germination.Trays) != 0 {
		t.Errorf("expected no trays, got %d", len(s.Germination.Trays))
	}
	if len(s.Production) != PondCount {
		t.Fatalf("expected %d ponds, got %d", PondCount, len(s.Production))
	}

	wantNames := []string{"Pond 1", "Pond 2", "Pond 3"}
	for i, p := range s.Production {
		if p.Name != wantNames[i] {
			t.Errorf("pond %d name = %q, want %q", i, p.Name, wantNames[i])
		}
		if len(p.Rafts) != 0 {
			t.Errorf("pond %d has %d rafts, want 0", i, len(p.Rafts))
		}
		if p.NewestRaft() != nil {
			t.Errorf("pond %d NewestRaft() should be nil", i)
		}
	}
}

func TestNewSimulationState_Independent(t *testing.T) {
	a := NewSimulationState()
	b := NewSimulationState()

	a.Production[0].Rafts = append(a.Production[0].Rafts, NewProductionRaft())
	if len(b.Production[0].Rafts) != 0 {
		t.Error("initial states must not share pond storage")
	}
}

func TestSimulationState_Clone(t *testing.T) {
	v := &DefaultVarieties()[0]
	s := NewSimulationState()
	tray := NewGerminationTray(v)
	tray.Fill()
	s.Germination.Trays = append(s.Germination.Trays, tray)
	s.Production[1].Rafts = []*ProductionRaft{{Capacity: RaftCapacity, Plants: 12}}
	s.Day = 4

	c := s.Clone()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Germination.Trays[0].Plants = 1
	c.Production[1].Rafts[0].Plants = 48
	c.Production[2].Rafts = append(c.Production[2].Rafts, NewProductionRaft())

	if s.Germination.Trays[0].Plants != TrayCapacity {
		t.Error("mutating clone tray changed original")
	}
	if s.Production[1].Rafts[0].Plants != 12 {
		t.Error("mutating clone raft changed original")
	}
	if len(s.Production[2].Rafts) != 0 {
		t.Error("appending to clone pond changed original")
	}
	if c.Germination.Trays[0].Variety != v {
		t.Error("clone should share variety reference")
	}
}

func TestPond_Plants(t *testing.T) {
	p := &Pond{Rafts: []*ProductionRaft{
		{Capacity: RaftCapacity, Plants: 48},
		{Capacity: RaftCapacity, Plants: 10},
		NewProductionRaft(),
	}}
	if got := p.Plants(); got != 58 {
		t.Errorf("Plants() = %d, want 58", got)
	}
	if p.NewestRaft().Plants != 48 {
		t.Error("NewestRaft should be the first raft")
	}
}

func TestGerminationState_Plants(t *testing.T) {
	g := GerminationState{Trays: []*GerminationTray{
		{Capacity: TrayCapacity, Plants: 276},
		{Capacity: TrayCapacity, Plants: 100},
	}}
	if got := g.Plants(); got != 376 {
		t.Errorf("Plants() = %d, want 376", got)
	}
}

func TestSimulationState_LogValue(t *testing.T) {
	s := NewSimulationState()
	tray := NewGerminationTray(&DefaultVarieties()[2])
	tray.Fill()
	s.Germination.Trays = append(s.Germination.Trays, tray)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("dump", "state", s)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decoding log line: %v", err)
	}

	state, ok := line["state"].(map[string]any)
	if !ok {
		t.Fatalf("expected state group, got %T", line["state"])
	}
	if state["day"] != float64(1) {
		t.Errorf("day = %v, want 1", state["day"])
	}
	trays, ok := state["trays"].([]any)
	if !ok || len(trays) != 1 {
		t.Fatalf("expected 1 tray, got %v", state["trays"])
	}
	ponds, ok := state["ponds"].([]any)
	if !ok || len(ponds) != PondCount {
		t.Fatalf("expected %d ponds, got %v", PondCount, state["ponds"])
	}
}
