package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	MemoryUsage          uint64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	LivingCells          int
	SpeciesPopulation    []int // species i at index i-1

	proc *process.Process
}

func NewStats() *Stats {
	s := &Stats{StartTime: time.Now()}
	// Memory sampling is best effort; a nil proc leaves MemoryUsage at zero.
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

func (s *Stats) Update(generation int, population []int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	s.SpeciesPopulation = append(s.SpeciesPopulation[:0], population...)
	living := 0
	for _, n := range population {
		living += n
	}
	s.LivingCells = living

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(living)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(living) * 0.1)
	}
}

// SampleMemory refreshes MemoryUsage with the resident set size of this process
func (s *Stats) SampleMemory() error {
	if s.proc == nil {
		return nil
	}
	info, err := s.proc.MemoryInfo()
	if err != nil {
		return errors.Wrap(err, "[SampleMemory] failed to read process memory")
	}
	s.MemoryUsage = info.RSS
	return nil
}
