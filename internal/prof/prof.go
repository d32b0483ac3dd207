// Package prof captures pprof CPU and heap profiles around a workload.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session is an active profiling run. The zero value profiles nothing.
type Session struct {
	cpuFile *os.File
	memPath string
}

// Start begins CPU profiling into cpuPath and remembers memPath for the
// heap profile written by Stop. Empty paths disable that profile.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath == "" {
		return s, nil
	}
	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	s.cpuFile = f
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.memPath != "" {
		errs = append(errs, writeMem(s.memPath))
		s.memPath = ""
	}
	return errors.Join(errs...)
}

// writeMem captures a heap profile to the supplied file path.
func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
