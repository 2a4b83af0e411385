package eval

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebriar/insbench/internal/model"
	"github.com/stonebriar/insbench/internal/store"
)

func newTestWarehouse(t *testing.T) *store.Warehouse {
	t.Helper()
	w, err := store.Create(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := &Runner{
		Warehouse: newTestWarehouse(t),
		Agent: AgentFunc(func(ctx context.Context, question string) (model.AgentAnswer, error) {
			return model.AgentAnswer{Response: "the count is 1", NumericResult: 1.0}, nil
		}),
		ResultsDir: t.TempDir(),
	}

	questions := []model.Question{
		{ID: "scalar", ExpectedValue: fp(1), Tolerance: "exact",
			GoldQuery: "SELECT 1 AS value"},
		{ID: "broken_gold", ExpectedValue: fp(5),
			GoldQuery: "SELECT * FROM no_such_table"},
		{ID: "no_gold", ExpectedValue: fp(5)},
		{ID: "opinion", Tolerance: "qualitative"},
	}

	scores, err := r.Run(ctx, questions)
	require.NoError(t, err)
	require.Len(t, scores, 4)

	require.NotNil(t, scores[0].Passed)
	assert.True(t, *scores[0].Passed)
	assert.Equal(t, StatusScored, scores[0].Status)

	assert.Equal(t, StatusNoGold, scores[1].Status)
	assert.Nil(t, scores[1].Passed)
	assert.Contains(t, scores[1].Reason, "gold query failed")

	assert.Equal(t, StatusNoGold, scores[2].Status)

	assert.Equal(t, StatusQualitativeManual, scores[3].Status)
	assert.Nil(t, scores[3].Passed)
}

func TestGoldAnswerRowShapes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := &Runner{Warehouse: newTestWarehouse(t)}

	t.Run("no gold query", func(t *testing.T) {
		rows, err := r.GoldAnswer(ctx, model.Question{ID: "q"})
		require.NoError(t, err)
		assert.Nil(t, rows)
	})

	t.Run("empty result is nil", func(t *testing.T) {
		rows, err := r.GoldAnswer(ctx, model.Question{
			ID: "q", GoldQuery: "SELECT policy_id FROM core_policies",
		})
		require.NoError(t, err)
		assert.Nil(t, rows)
	})

	t.Run("columns become map keys", func(t *testing.T) {
		rows, err := r.GoldAnswer(ctx, model.Question{
			ID: "q", GoldQuery: "SELECT 0.65 AS loss_ratio, 'HO' AS lob",
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 0.65, rows[0]["loss_ratio"])
		assert.Equal(t, "HO", rows[0]["lob"])
	})
}

func TestSaveResults(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "results")
	r := &Runner{ResultsDir: dir}

	path, err := r.SaveResults([]Score{{ID: "a", Status: StatusScored, Passed: boolp(true)}})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved []Score
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, "a", saved[0].ID)
}
