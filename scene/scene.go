package scene

import (
	"sort"
	"sync"
)

// Renderable is any geometry a component creates and attaches to a scene
type Renderable interface {
	Name() string
}

// Container is the attach point geometry is added to and removed from
type Container interface {
	Add(r Renderable)
	Remove(r Renderable)
}

// Scene is an in-memory Container keyed by renderable name
type Scene struct {
	mu    sync.RWMutex
	items map[string]Renderable
}

func NewScene() *Scene {
	return &Scene{
		items: make(map[string]Renderable),
	}
}

// Add attaches r, replacing any renderable with the same name
func (s *Scene) Add(r Renderable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.Name()] = r
}

// Remove detaches r if it is the renderable registered under its name
func (s *Scene) Remove(r Renderable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.items[r.Name()]; ok && cur == r {
		delete(s.items, r.Name())
	}
}

func (s *Scene) Get(name string) (Renderable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[name]
	return r, ok
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Names returns the attached renderable names in sorted order
func (s *Scene) Names() (names []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names = make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func (s *Scene) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]Renderable)
}
