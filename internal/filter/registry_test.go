// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"reflect"
	"testing"

	"github.com/pdiddy/filter-engine/pkg/types"
)

func validMethod(name string) Method {
	return Method{
		Name:         name,
		TaskKinds:    []types.TaskKind{types.TaskClassification},
		FeatureKinds: []types.FeatureKind{types.FeatureNumeric},
		Scorer:       constScorer(nil),
	}
}

func TestRegistryRegister(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Method)
		ok     bool
	}{
		{"valid method", func(*Method) {}, true},
		{"empty name", func(m *Method) { m.Name = "" }, false},
		{"nil scorer", func(m *Method) { m.Scorer = nil }, false},
		{"no task kinds", func(m *Method) { m.TaskKinds = nil }, false},
		{"no feature kinds", func(m *Method) { m.FeatureKinds = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			m := validMethod("m")
			tt.mutate(&m)
			err := reg.Register(m)
			if (err == nil) != tt.ok {
				t.Errorf("Register() err = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(validMethod("m")); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(validMethod("m")); err == nil {
		t.Error("duplicate registration must fail")
	}
}

func TestRegistryNamesKeepRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(validMethod(name)); err != nil {
			t.Fatal(err)
		}
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Names() = %v, want registration order", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(validMethod("m")); err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Lookup("m"); !ok {
		t.Error("Lookup(m) = not found")
	}
	if _, ok := reg.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) found an unregistered method")
	}
}
