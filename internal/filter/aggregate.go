// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"sync"

	"github.com/pdiddy/filter-engine/internal/task"
	"github.com/pdiddy/filter-engine/pkg/types"
)

// Request describes one filter computation.
type Request struct {
	// Methods are the distinct method names to apply, in column order.
	Methods []string

	// NSelect is the number of features methods are asked for. Zero
	// means all task features.
	NSelect int

	// Args is a shared argument bag, valid only when exactly one method
	// is requested. Mutually exclusive with MethodArgs.
	Args Args

	// MethodArgs routes argument bags to individual methods. At most one
	// entry per method; every target must be a requested method.
	MethodArgs []MethodArgs
}

// MethodArgs binds an argument bag to one named method.
type MethodArgs struct {
	Method string
	Args   Args
}

// Compute validates the request against the registry and the task, invokes
// every requested method, aligns each method's (possibly partial) output to
// the task's feature order, and merges the score vectors into a wide
// FilterResult keyed by feature name.
//
// Methods run concurrently; the merge waits for all of them. A failing
// method fails the whole request with its error propagated unmodified —
// there is no per-method fallback, and no partial result is ever returned.
// When several methods fail, the error reported is the one from the
// earliest method in request order.
func Compute(reg *Registry, t *task.Task, req Request) (*types.FilterResult, error) {
	if len(req.Methods) == 0 {
		return nil, &InvalidParameterError{Param: "methods", Value: req.Methods, Reason: "at least one method is required"}
	}
	seen := make(map[string]bool, len(req.Methods))
	for _, name := range req.Methods {
		if seen[name] {
			return nil, &InvalidParameterError{Param: "methods", Value: name, Reason: "method requested twice"}
		}
		seen[name] = true
	}

	nSelect := req.NSelect
	if nSelect == 0 {
		nSelect = t.FeatureCount()
	}
	if nSelect < 0 || nSelect > t.FeatureCount() {
		return nil, &InvalidParameterError{
			Param: "n_select", Value: req.NSelect,
			Reason: "must be positive and at most the task feature count",
		}
	}

	if err := Validate(reg, t, req.Methods); err != nil {
		return nil, err
	}

	argsByMethod, err := routeArgs(req)
	if err != nil {
		return nil, err
	}

	// Snapshot the task metadata before scoring so a caller mutating the
	// task afterwards cannot touch the result.
	desc := t.Description()
	featureNames := t.FeatureNames()

	type output struct {
		idx    int
		scores map[string]float64
		err    error
	}

	ch := make(chan output, len(req.Methods))
	var wg sync.WaitGroup
	for i, name := range req.Methods {
		m, _ := reg.Lookup(name)
		wg.Add(1)
		go func(idx int, m Method) {
			defer wg.Done()
			scores, err := m.Scorer.ScoreFeatures(t, nSelect, argsByMethod[m.Name])
			ch <- output{idx: idx, scores: scores, err: err}
		}(i, m)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	columns := make([]map[string]float64, len(req.Methods))
	errs := make([]error, len(req.Methods))
	for out := range ch {
		columns[out.idx] = out.scores
		errs[out.idx] = out.err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	rows := make([]types.FilterRow, len(featureNames))
	for i, name := range featureNames {
		kind, _ := t.FeatureKind(name)
		scores := make([]float64, len(columns))
		for j, col := range columns {
			scores[j] = normalizeScore(col, name)
		}
		rows[i] = types.FilterRow{Name: name, Kind: kind, Scores: scores}
	}

	return &types.FilterResult{
		Task:    desc,
		Methods: append([]string(nil), req.Methods...),
		Rows:    rows,
	}, nil
}

// normalizeScore looks up a feature in one method's output, backfilling
// absent features with the missing sentinel. Score entries for feature
// names the task does not recognize are dropped implicitly: only task
// features are ever looked up.
func normalizeScore(col map[string]float64, feature string) float64 {
	if v, ok := col[feature]; ok {
		return v
	}
	return types.MissingScore()
}

// routeArgs converts the request's argument forms into a per-method map.
// The shared bag is only valid for a single-method request; supplying both
// forms at once is always an error, even when they would not collide.
func routeArgs(req Request) (map[string]Args, error) {
	if req.Args != nil && len(req.MethodArgs) > 0 {
		return nil, &AmbiguousArgumentsError{Reason: "both a shared bag and per-method arguments supplied"}
	}

	byMethod := make(map[string]Args, len(req.Methods))

	if req.Args != nil {
		if len(req.Methods) != 1 {
			return nil, &AmbiguousArgumentsError{Reason: "a shared bag requires exactly one requested method"}
		}
		byMethod[req.Methods[0]] = req.Args
		return byMethod, nil
	}

	requested := make(map[string]bool, len(req.Methods))
	for _, name := range req.Methods {
		requested[name] = true
	}

	var unknown []string
	for _, ma := range req.MethodArgs {
		if !requested[ma.Method] {
			unknown = append(unknown, ma.Method)
			continue
		}
		if _, dup := byMethod[ma.Method]; dup {
			return nil, &DuplicateArgumentTargetError{Target: ma.Method}
		}
		byMethod[ma.Method] = ma.Args
	}
	if len(unknown) > 0 {
		return nil, &UnknownArgumentTargetError{Targets: unknown}
	}
	return byMethod, nil
}

// ComputeSingle is the legacy single-method entry point. It renames the
// sole score column to a generic "value" and marks the result so report
// generation rejects it.
//
// Deprecated: use Compute, which keeps the method name as the column name
// and supports multiple methods.
func ComputeSingle(reg *Registry, t *task.Task, method string, nSelect int, args Args) (*types.FilterResult, error) {
	res, err := Compute(reg, t, Request{Methods: []string{method}, NSelect: nSelect, Args: args})
	if err != nil {
		return nil, err
	}
	res.Methods = []string{"value"}
	res.Legacy = true
	return res, nil
}
