package maplib

// Mulberry32 is the small seeded generator used for map layout. The same seed
// always yields the same sequence.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a generator. Only the low 32 bits of seed are used.
func NewMulberry32(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Float64 returns a value in [0, 1)
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}
