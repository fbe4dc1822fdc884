package benchmarks

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

// startProfiling starts the cpu profile if the flag is set. The returned
// function stops it and writes the memory profile.
func startProfiling() (func(), error) {
	stopCPU := func() {}
	if cpuprofile != "" {
		cpuProfPath := path.Join(saveFile, cpuprofile)
		f, err := os.Create(cpuProfPath)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
		stopCPU = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}

	return func() {
		stopCPU()
		if memprofile == "" {
			return
		}
		f, err := os.Create(path.Join(saveFile, memprofile))
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not create memory profile: ", err)
			return
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, "could not write memory profile: ", err)
		}
	}, nil
}
