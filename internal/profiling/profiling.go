// SPDX-License-Identifier: Apache-2.0

package profiling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

const (
	cpuProfileFile    = "cpu.prof"
	memoryProfileFile = "mem.prof"
)

// Profile records a CPU profile from Start until Stop, and an allocations
// profile when stopped. Both files are written to the profile directory.
type Profile struct {
	dir     string
	cpuFile *os.File
}

// Start creates the profile directory if needed and starts the CPU profile.
func Start(dir string) (*Profile, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}

	cpuFile, err := os.Create(filepath.Join(dir, cpuProfileFile))
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return &Profile{dir: dir, cpuFile: cpuFile}, nil
}

// Stop ends the CPU profile and writes the allocations profile.
func (p *Profile) Stop() error {
	pprof.StopCPUProfile()
	cpuErr := p.cpuFile.Close()
	return errors.Join(cpuErr, p.writeMemoryProfile())
}

func (p *Profile) writeMemoryProfile() error {
	memFile, err := os.Create(filepath.Join(p.dir, memoryProfileFile))
	if err != nil {
		return fmt.Errorf("could not create memory profile file: %w", err)
	}
	defer memFile.Close()

	runtime.GC() // get up-to-date statistics
	if err := pprof.Lookup("allocs").WriteTo(memFile, 0); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
