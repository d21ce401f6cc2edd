package rng

// Sequence replays a fixed list of values, cycling when exhausted.
// An empty Sequence always yields 0.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a scripted source.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values were consumed so far.
func (s *Sequence) Draws() int {
	return s.next
}

// Constant always yields the same value.
type Constant float64

// Float64 returns c.
func (c Constant) Float64() float64 {
	return float64(c)
}
