// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"strings"

	"github.com/pdiddy/filter-engine/pkg/types"
)

// UnknownMethodError reports requested method names absent from the
// registry. All unknown names are collected into one error.
type UnknownMethodError struct {
	Methods []string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown filter method(s): %s", strings.Join(e.Methods, ", "))
}

// TaskKindMismatchError reports every requested method that does not
// support the task's kind.
type TaskKindMismatchError struct {
	Kind    types.TaskKind
	Methods []string
}

func (e *TaskKindMismatchError) Error() string {
	return fmt.Sprintf("method(s) %s do not support %s tasks",
		strings.Join(e.Methods, ", "), e.Kind)
}

// FeatureKindMismatchError reports one method that cannot score feature
// kinds present in the task. Only kinds actually present (nonzero count)
// are listed.
type FeatureKindMismatchError struct {
	Method string
	Kinds  []types.FeatureKind
}

func (e *FeatureKindMismatchError) Error() string {
	kinds := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		kinds[i] = string(k)
	}
	return fmt.Sprintf("method %s does not support feature kind(s) present in the task: %s",
		e.Method, strings.Join(kinds, ", "))
}

// AmbiguousArgumentsError reports a shared argument bag supplied where it
// cannot be routed: together with a per-method argument list, or with more
// than one requested method.
type AmbiguousArgumentsError struct {
	Reason string
}

func (e *AmbiguousArgumentsError) Error() string {
	return "ambiguous method arguments: " + e.Reason
}

// UnknownArgumentTargetError reports per-method argument entries naming
// methods that were not requested.
type UnknownArgumentTargetError struct {
	Targets []string
}

func (e *UnknownArgumentTargetError) Error() string {
	return fmt.Sprintf("arguments target unrequested method(s): %s",
		strings.Join(e.Targets, ", "))
}

// DuplicateArgumentTargetError reports a method with more than one
// per-method argument entry.
type DuplicateArgumentTargetError struct {
	Target string
}

func (e *DuplicateArgumentTargetError) Error() string {
	return fmt.Sprintf("duplicate argument entry for method %s", e.Target)
}

// InvalidParameterError reports an out-of-range or malformed request
// parameter.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Param, e.Value, e.Reason)
}
