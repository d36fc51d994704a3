// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"os/exec"
	"sync"
)

// PackageLoader resolves an external package a scoring method depends on.
// Loading is best-effort: validation records nothing on failure and lets
// the scoring call itself surface the problem.
type PackageLoader interface {
	// Ensure makes the named package available, returning an error when
	// it cannot be resolved.
	Ensure(name string) error
}

// ExecLoader resolves packages as helper binaries on PATH. Results are
// cached so repeated validation of the same method set does not repeat
// lookups.
type ExecLoader struct {
	lookPath func(string) (string, error)

	mu   sync.Mutex
	seen map[string]error
}

// NewExecLoader returns a loader backed by exec.LookPath.
func NewExecLoader() *ExecLoader {
	return &ExecLoader{lookPath: exec.LookPath, seen: make(map[string]error)}
}

// Ensure resolves name on PATH, caching the outcome.
func (l *ExecLoader) Ensure(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err, ok := l.seen[name]; ok {
		return err
	}
	_, err := l.lookPath(name)
	if err != nil {
		err = fmt.Errorf("package %s not found on PATH: %w", name, err)
	}
	l.seen[name] = err
	return err
}

// ensurePackages attempts to load every required package of every listed
// method. Failures are collected but never fatal.
func ensurePackages(loader PackageLoader, methods []Method) []error {
	if loader == nil {
		return nil
	}
	var errs []error
	for _, m := range methods {
		for _, pkg := range m.RequiredPackages {
			if err := loader.Ensure(pkg); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}
