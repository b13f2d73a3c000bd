package worker

import (
	"context"
	"sort"
	"sync"
)

// Schedule is the set of named refresh jobs run every scheduling round.
// Registering an existing name replaces its function.
type Schedule struct {
	mu    sync.RWMutex
	jobs  map[string]func(ctx context.Context) error
	limit int
}

// NewSchedule creates a schedule holding at most limit jobs. A limit <= 0
// means unbounded.
func NewSchedule(limit int) *Schedule {
	return &Schedule{jobs: make(map[string]func(ctx context.Context) error), limit: limit}
}

// Register adds or replaces a job. It returns false when the schedule is full.
func (s *Schedule) Register(name string, run func(ctx context.Context) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; !exists && s.limit > 0 && len(s.jobs) >= s.limit {
		return false
	}
	s.jobs[name] = run
	return true
}

// Remove drops a job.
func (s *Schedule) Remove(name string) {
	s.mu.Lock()
	delete(s.jobs, name)
	s.mu.Unlock()
}

// Len returns the number of registered jobs.
func (s *Schedule) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Jobs returns a snapshot of the schedule sorted by name.
func (s *Schedule) Jobs() []Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]Job, 0, len(s.jobs))
	for name, run := range s.jobs {
		jobs = append(jobs, Job{Name: name, Run: run})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs
}
