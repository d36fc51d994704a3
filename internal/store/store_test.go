// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/filter-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() *types.FilterResult {
	return &types.FilterResult{
		Task: types.TaskDescription{
			ID:           "iris",
			Kind:         types.TaskClassification,
			FeatureCount: 3,
			CountByKind: map[types.FeatureKind]int{
				types.FeatureNumeric: 2,
				types.FeatureFactor:  1,
			},
		},
		Methods: []string{"variance", "anova"},
		Rows: []types.FilterRow{
			{Name: "a", Kind: types.FeatureNumeric, Scores: []float64{0.9, 1.5}},
			{Name: "b", Kind: types.FeatureNumeric, Scores: []float64{0.1, types.MissingScore()}},
			{Name: "c", Kind: types.FeatureFactor, Scores: []float64{types.MissingScore(), types.MissingScore()}},
		},
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleResult())
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	want := sampleResult()
	assert.Equal(t, want.Task, got.Task)
	assert.Equal(t, want.Methods, got.Methods)
	assert.False(t, got.Legacy)
	require.Len(t, got.Rows, 3)

	assert.Equal(t, "a", got.Rows[0].Name)
	assert.Equal(t, types.FeatureNumeric, got.Rows[0].Kind)
	assert.Equal(t, []float64{0.9, 1.5}, got.Rows[0].Scores)

	assert.Equal(t, 0.1, got.Rows[1].Scores[0])
	assert.True(t, types.IsMissing(got.Rows[1].Scores[1]), "NULL must round-trip to the missing sentinel")
	assert.True(t, types.IsMissing(got.Rows[2].Scores[0]))
	assert.True(t, types.IsMissing(got.Rows[2].Scores[1]))
}

func TestSavePreservesLegacyFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := sampleResult()
	res.Methods = []string{"value"}
	for i := range res.Rows {
		res.Rows[i].Scores = res.Rows[i].Scores[:1]
	}
	res.Legacy = true

	id, err := s.Save(ctx, res)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Legacy)
	assert.Equal(t, []string{"value"}, got.Methods)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleResult()
	second := sampleResult()
	second.Task.ID = "wine"

	id1, err := s.Save(ctx, first)
	require.NoError(t, err)
	id2, err := s.Save(ctx, second)
	require.NoError(t, err)

	sums, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, id2, sums[0].ID)
	assert.Equal(t, "wine", sums[0].TaskID)
	assert.Equal(t, id1, sums[1].ID)
	assert.Equal(t, "iris", sums[1].TaskID)
	assert.Equal(t, []string{"variance", "anova"}, sums[0].Methods)
	assert.Equal(t, 3, sums[0].FeatureCount)
	assert.False(t, sums[0].CreatedAt.IsZero())
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	sums, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), 42)
	assert.ErrorContains(t, err, "not found")
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.Error(t, err, "deleted result must be gone")

	err = s.Delete(ctx, id)
	assert.ErrorContains(t, err, "not found")
}

func TestReopenSeesExistingResults(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewStore(dir)
	require.NoError(t, err)
	id, err := s.Save(ctx, sampleResult())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := NewStore(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "iris", got.Task.ID)
}
