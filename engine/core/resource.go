package core

// Resource is a mineral patch or gas geyser
type Resource struct {
	X, Y     float64
	Amount   float64
	IsGeyser bool
	Occupied bool // a gas building stands on the geyser
	Workers  []EntityID
}

// Depleted reports whether nothing is left to gather.
func (r *Resource) Depleted() bool { return r.Amount <= 0 }

// Assign records a worker as gathering here.
func (r *Resource) Assign(id EntityID) {
	for _, w := range r.Workers {
		if w == id {
			return
		}
	}
	r.Workers = append(r.Workers, id)
}

// Unassign removes a worker.
func (r *Resource) Unassign(id EntityID) {
	for i, w := range r.Workers {
		if w == id {
			r.Workers = append(r.Workers[:i], r.Workers[i+1:]...)
			return
		}
	}
}

// Take removes up to n units and returns the amount taken.
func (r *Resource) Take(n float64) float64 {
	if n > r.Amount {
		n = r.Amount
	}
	if n < 0 {
		n = 0
	}
	r.Amount -= n
	return n
}
