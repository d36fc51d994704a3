// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/filter-engine/pkg/types"
)

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("", types.TaskClassification)
	assert.Error(t, err, "empty id")

	_, err = New("t", types.TaskKind("clustering"))
	assert.Error(t, err, "unknown kind")
}

func TestFeatureOrderIsInsertionOrder(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)

	require.NoError(t, tk.AddNumericFeature("zeta", []float64{1, 2}))
	require.NoError(t, tk.AddFactorFeature("alpha", []string{"x", "y"}, false))
	require.NoError(t, tk.AddNumericFeature("mid", []float64{3, 4}))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tk.FeatureNames())
	assert.Equal(t, 3, tk.FeatureCount())
}

func TestDuplicateFeatureRejected(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)

	require.NoError(t, tk.AddNumericFeature("x", []float64{1}))
	assert.Error(t, tk.AddNumericFeature("x", []float64{2}))
	assert.Error(t, tk.AddFactorFeature("x", []string{"a"}, false))
}

func TestColumnLengthsMustAgree(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)

	require.NoError(t, tk.AddNumericFeature("x", []float64{1, 2, 3}))
	assert.Error(t, tk.AddNumericFeature("y", []float64{1, 2}))
	assert.Error(t, tk.SetClassTarget([]string{"p"}))
}

func TestTargetMatchesTaskKind(t *testing.T) {
	clf, err := New("c", types.TaskClassification)
	require.NoError(t, err)
	assert.Error(t, clf.SetNumericTarget([]float64{1, 2}))
	assert.NoError(t, clf.SetClassTarget([]string{"p", "q"}))

	reg, err := New("r", types.TaskRegression)
	require.NoError(t, err)
	assert.Error(t, reg.SetClassTarget([]string{"p", "q"}))
	assert.NoError(t, reg.SetNumericTarget([]float64{1, 2}))
}

func TestCountByKindOmitsAbsentKinds(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)

	require.NoError(t, tk.AddNumericFeature("a", []float64{1}))
	require.NoError(t, tk.AddNumericFeature("b", []float64{2}))
	require.NoError(t, tk.AddFactorFeature("c", []string{"x"}, true))

	counts := tk.CountByKind()
	assert.Equal(t, map[types.FeatureKind]int{
		types.FeatureNumeric: 2,
		types.FeatureOrdered: 1,
	}, counts)
	_, present := counts[types.FeatureFactor]
	assert.False(t, present, "kinds with zero features must be omitted")
}

func TestValidateRequiresFeaturesAndTarget(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)
	assert.Error(t, tk.Validate(), "no features")

	require.NoError(t, tk.AddNumericFeature("a", []float64{1, 2}))
	assert.Error(t, tk.Validate(), "no target")

	require.NoError(t, tk.SetClassTarget([]string{"p", "q"}))
	assert.NoError(t, tk.Validate())
}

func TestDescriptionIsSnapshot(t *testing.T) {
	tk, err := New("t", types.TaskRegression)
	require.NoError(t, err)
	require.NoError(t, tk.AddNumericFeature("a", []float64{1, 2}))
	require.NoError(t, tk.SetNumericTarget([]float64{3, 4}))

	desc := tk.Description()
	require.NoError(t, tk.AddNumericFeature("later", []float64{5, 6}))

	assert.Equal(t, 1, desc.FeatureCount, "description taken before the mutation")
	assert.Equal(t, 1, desc.CountByKind[types.FeatureNumeric])
}

func TestColumnAccessors(t *testing.T) {
	tk, err := New("t", types.TaskClassification)
	require.NoError(t, err)
	require.NoError(t, tk.AddNumericFeature("num", []float64{1, 2}))
	require.NoError(t, tk.AddFactorFeature("cat", []string{"x", "y"}, false))
	require.NoError(t, tk.SetClassTarget([]string{"p", "q"}))

	num, ok := tk.NumColumn("num")
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2}, num)
	_, ok = tk.NumColumn("cat")
	assert.False(t, ok)

	cat, ok := tk.FactorColumn("cat")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, cat)

	kind, ok := tk.FeatureKind("cat")
	assert.True(t, ok)
	assert.Equal(t, types.FeatureFactor, kind)
}
