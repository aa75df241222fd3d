package models

// RaftCapacity is the number of plant sites on a production raft.
const RaftCapacity = 48

// ProductionRaft is a floating raft in a pond.
type ProductionRaft struct {
	Capacity int `json:"capacity"`
	Plants   int `json:"plants"`
}

// NewProductionRaft creates an empty raft.
func NewProductionRaft() *ProductionRaft {
	return &ProductionRaft{Capacity: RaftCapacity}
}

// Open returns the number of free plant sites.
func (r *ProductionRaft) Open() int {
	return r.Capacity - r.Plants
}

// IsEmpty reports whether the raft holds no plants.
func (r *ProductionRaft) IsEmpty() bool {
	return r.Plants == 0
}

// IsFull reports whether every plant site is taken.
func (r *ProductionRaft) IsFull() bool {
	return r.Open() <= 0
}
