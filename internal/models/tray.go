package models

// TrayCapacity is the number of cells in a germination tray.
const TrayCapacity = 276

// GerminationTray is a batch of germinating seedlings of a single variety.
type GerminationTray struct {
	ID        string   `json:"id"`
	Capacity  int      `json:"capacity"`
	Plants    int      `json:"plants"`
	Variety   *Variety `json:"variety"`
	SeededDay int      `json:"seeded_day"`
}

// NewGerminationTray creates an empty tray for the given variety.
func NewGerminationTray(variety *Variety) *GerminationTray {
	return &GerminationTray{
		Capacity: TrayCapacity,
		Variety:  variety,
	}
}

// Open returns the number of empty cells.
func (t *GerminationTray) Open() int {
	return t.Capacity - t.Plants
}

// Fill seeds every cell of the tray.
func (t *GerminationTray) Fill() {
	t.Plants = t.Capacity
}

// Name returns the display name of the tray's variety.
func (t *GerminationTray) Name() string {
	if t.Variety == nil {
		return ""
	}
	return t.Variety.Name
}

// IsEmpty reports whether every seedling has been transplanted.
func (t *GerminationTray) IsEmpty() bool {
	return t.Plants <= 0
}
