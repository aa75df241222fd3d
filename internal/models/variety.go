package models

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed varieties.yaml
var varietiesYAML []byte

// ActionType is a scheduled step in a variety's growing cycle.
type ActionType string

const (
	ActionTransplant ActionType = "transplant"
	ActionHarvest    ActionType = "harvest"
)

func (a ActionType) String() string {
	return string(a)
}

// VarietyAction schedules an action a number of days after seeding.
type VarietyAction struct {
	Type ActionType `yaml:"type" json:"type"`
	Day  int        `yaml:"day" json:"day"`
}

// Variety is immutable reference data describing a lettuce variety.
// The action schedule is informational only; the simulation never consults it.
type Variety struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	Actions []VarietyAction `yaml:"actions" json:"actions"`
}

// ActionDay returns the day offset of the first action of the given type.
func (v *Variety) ActionDay(t ActionType) (int, bool) {
	for _, a := range v.Actions {
		if a.Type == t {
			return a.Day, true
		}
	}
	return 0, false
}

type varietyCatalog struct {
	Varieties []Variety `yaml:"varieties"`
}

// LoadVarieties decodes and validates a YAML variety catalog.
func LoadVarieties(data []byte) ([]Variety, error) {
	var catalog varietyCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := validateVarieties(catalog.Varieties); err != nil {
		return nil, fmt.Errorf("validating varieties: %w", err)
	}

	return catalog.Varieties, nil
}

func validateVarieties(varieties []Variety) error {
	if len(varieties) == 0 {
		return errors.New("catalog has no varieties")
	}

	var errs []error
	seen := make(map[string]bool, len(varieties))

	for i, v := range varieties {
		if v.ID == "" {
			errs = append(errs, fmt.Errorf("variety %d: id is required", i))
		} else if seen[v.ID] {
			errs = append(errs, fmt.Errorf("variety %d: duplicate id %q", i, v.ID))
		}
		seen[v.ID] = true

		if v.Name == "" {
			errs = append(errs, fmt.Errorf("variety %d: name is required", i))
		}

		for _, a := range v.Actions {
			if a.Type != ActionTransplant && a.Type != ActionHarvest {
				errs = append(errs, fmt.Errorf("variety %q: invalid action type %q", v.ID, a.Type))
			}
			if a.Day < 0 {
				errs = append(errs, fmt.Errorf("variety %q: %s day must be non-negative", v.ID, a.Type))
			}
		}
	}

	return errors.Join(errs...)
}

var defaultVarieties = sync.OnceValue(func() []Variety {
	varieties, err := LoadVarieties(varietiesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded variety catalog: %v", err))
	}
	return varieties
})

// DefaultVarieties returns the compiled-in variety catalog.
// The returned slice is shared and must not be modified.
func DefaultVarieties() []Variety {
	return defaultVarieties()
}

// FindVariety looks up a variety in the compiled-in catalog by ID.
func FindVariety(id string) (*Variety, bool) {
	varieties := DefaultVarieties()
	for i := range varieties {
		if varieties[i].ID == id {
			return &varieties[i], true
		}
	}
	return nil, false
}
