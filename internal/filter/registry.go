// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import "fmt"

// Registry maps method names to method descriptors. It is populated once
// at startup and read-only at scoring time; no locking is needed for
// concurrent reads after registration has finished.
type Registry struct {
	methods  map[string]Method
	order    []string
	packages PackageLoader
}

// NewRegistry returns an empty registry with no package loader.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Method)}
}

// UsePackageLoader sets the loader consulted for methods' required
// packages during validation. A nil loader disables the check.
func (r *Registry) UsePackageLoader(l PackageLoader) {
	r.packages = l
}

// Register adds a method. Names must be unique and non-empty, the scorer
// must be set, and both kind sets must be non-empty.
func (r *Registry) Register(m Method) error {
	if m.Name == "" {
		return fmt.Errorf("method name must not be empty")
	}
	if _, exists := r.methods[m.Name]; exists {
		return fmt.Errorf("method %s already registered", m.Name)
	}
	if m.Scorer == nil {
		return fmt.Errorf("method %s has no scorer", m.Name)
	}
	if len(m.TaskKinds) == 0 {
		return fmt.Errorf("method %s supports no task kinds", m.Name)
	}
	if len(m.FeatureKinds) == 0 {
		return fmt.Errorf("method %s supports no feature kinds", m.Name)
	}
	r.methods[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// Lookup returns the named method descriptor.
func (r *Registry) Lookup(name string) (Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Names returns the registered method names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
