package ecs

import (
	"fmt"
	"strings"
	"time"
)

type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order once per tick. With profiling
// on it also sums the wall time each system takes.
type Scheduler struct {
	systems []System
	spent   []time.Duration
	profile bool
}

// Timing is one system's accumulated wall time.
type Timing struct {
	Name  string
	Spent time.Duration
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.spent = append(s.spent, 0)
}

func (s *Scheduler) Profile(on bool) {
	if s != nil {
		s.profile = on
	}
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for i, system := range s.systems {
		if !s.profile {
			system.Update(w)
			continue
		}
		start := time.Now()
		system.Update(w)
		s.spent[i] += time.Since(start)
	}
}

func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	return append([]System(nil), s.systems...)
}

// Timings reports profiled time per system in run order.
func (s *Scheduler) Timings() []Timing {
	if s == nil {
		return nil
	}
	out := make([]Timing, len(s.systems))
	for i, system := range s.systems {
		out[i] = Timing{Name: systemName(system), Spent: s.spent[i]}
	}
	return out
}

func systemName(system System) string {
	name := fmt.Sprintf("%T", system)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
