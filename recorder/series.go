package recorder

import (
	"sync"

	"github.com/notargets/gowindtunnel/aerodynamics"
	"github.com/notargets/gowindtunnel/types"
)

const MaxSeries = 100

// Series keeps the most recent samples of every force field for graphing
type Series struct {
	mu       sync.RWMutex
	capacity int
	data     map[types.ForceField][]float64
}

// NewSeries keeps capacity samples per field; non-positive means MaxSeries
func NewSeries(capacity int) (s *Series) {
	if capacity <= 0 {
		capacity = MaxSeries
	}
	s = &Series{capacity: capacity}
	s.Clear()
	return
}

func (s *Series) Add(fr aerodynamics.ForceReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ff := range types.ForceFields {
		vals := append(s.data[ff], fr.Value(ff))
		if len(vals) > s.capacity {
			vals = vals[len(vals)-s.capacity:]
		}
		s.data[ff] = vals
	}
}

// Values returns a copy of the samples of ff, oldest first
func (s *Series) Values(ff types.ForceField) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.data[ff]...)
}

func (s *Series) Latest(ff types.ForceField) (v float64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vals := s.data[ff]
	if len(vals) == 0 {
		return
	}
	return vals[len(vals)-1], true
}

func (s *Series) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[types.DragForce])
}

func (s *Series) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[types.ForceField][]float64, len(types.ForceFields))
}
