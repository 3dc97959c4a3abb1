package feistel

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler records a CPU profile to a file and, on Close, a heap profile
// next to it. The zero filename disables profiling.
type Profiler struct {
	f        *os.File
	filename string
}

func NewProfiler(filename string) (*Profiler, error) {
	prof := &Profiler{filename: filename}
	if filename == "" {
		return prof, nil
	}

	var err error
	prof.f, err = os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(prof.f); err != nil {
		prof.f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return prof, nil
}

func (p *Profiler) Close() error {
	if p.f == nil {
		return nil
	}
	pprof.StopCPUProfile()
	if err := p.f.Close(); err != nil {
		return err
	}
	p.f = nil

	runtime.GC()
	memProf, err := os.Create(p.filename + "-mem.prof")
	if err != nil {
		return fmt.Errorf("could not create heap profile: %w", err)
	}
	defer memProf.Close()
	return pprof.WriteHeapProfile(memProf)
}
