package simulation

// ChangeKind identifies what kind of mutation produced a Change.
type ChangeKind string

const (
	ChangeStarted      ChangeKind = "started"
	ChangeReset        ChangeKind = "reset"
	ChangeSeeded       ChangeKind = "seeded"
	ChangeTransplanted ChangeKind = "transplanted"
	ChangeDayAdvanced  ChangeKind = "day_advanced"
)

func (k ChangeKind) String() string {
	return string(k)
}

// Change describes a state mutation. Fields that do not apply to the kind are zero.
type Change struct {
	Kind    ChangeKind
	Day     int
	Pond    int // pond index for transplants
	Moved   int // plants moved for transplants
	TrayID  string
	Variety string
}

// Observer is notified synchronously after every state change.
// Observers must not call back into the Controller.
type Observer func(Change)
