// Package testutil provides fixtures for testing.
package testutil

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/greenhouse/greenhouse/internal/models"
)

// Romaine returns the first catalog variety.
func Romaine() *models.Variety {
	return &models.DefaultVarieties()[0]
}

// FixtureTray creates a fully seeded Romaine tray seeded on day 1.
func FixtureTray(overrides ...func(*models.GerminationTray)) *models.GerminationTray {
	tray := models.NewGerminationTray(Romaine())
	tray.ID = uuid.NewString()
	tray.SeededDay = 1
	tray.Fill()

	for _, override := range overrides {
		override(tray)
	}

	return tray
}

// FixtureTrayOf creates a tray of the catalog variety with the given ID.
func FixtureTrayOf(varietyID string, overrides ...func(*models.GerminationTray)) *models.GerminationTray {
	v, ok := models.FindVariety(varietyID)
	if !ok {
		panic(fmt.Sprintf("testutil: unknown variety %q", varietyID))
	}
	return FixtureTray(append([]func(*models.GerminationTray){
		func(t *models.GerminationTray) {
			t.Variety = v
		},
	}, overrides...)...)
}

// WithPlants sets a tray's plant count.
func WithPlants(n int) func(*models.GerminationTray) {
	return func(t *models.GerminationTray) {
		t.Plants = n
	}
}

// SeededOn sets a tray's seeding day.
func SeededOn(day int) func(*models.GerminationTray) {
	return func(t *models.GerminationTray) {
		t.SeededDay = day
	}
}

// FixtureRaft creates a raft holding the given number of plants.
func FixtureRaft(plants int) *models.ProductionRaft {
	raft := models.NewProductionRaft()
	raft.Plants = plants
	return raft
}

// FixturePond creates a pond with one raft per plant count, newest first.
func FixturePond(name string, plants ...int) *models.Pond {
	pond := &models.Pond{Name: name, Rafts: []*models.ProductionRaft{}}
	for _, n := range plants {
		pond.Rafts = append(pond.Rafts, FixtureRaft(n))
	}
	return pond
}

// FixtureState creates the initial state with overrides applied.
func FixtureState(overrides ...func(*models.SimulationState)) *models.SimulationState {
	state := models.NewSimulationState()

	for _, override := range overrides {
		override(state)
	}

	return state
}

// WithTrays appends trays to a state's germination sequence.
func WithTrays(trays ...*models.GerminationTray) func(*models.SimulationState) {
	return func(s *models.SimulationState) {
		s.Germination.Trays = append(s.Germination.Trays, trays...)
	}
}
