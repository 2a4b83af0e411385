package eval

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebriar/insbench/internal/generator"
	"github.com/stonebriar/insbench/internal/gold"
	"github.com/stonebriar/insbench/internal/model"
	"github.com/stonebriar/insbench/internal/staging"
	"github.com/stonebriar/insbench/internal/store"
)

// TestAnswerKeyMatchesSnapshot rebuilds the default seed-42 snapshot and
// checks every pinned expected value in the shipped answer key against its
// own gold query, under that question's own tolerance. An agent that answers
// straight from the warehouse must pass every scoreable question, so a stale
// pin is caught here rather than as phantom agent failures.
func TestAnswerKeyMatchesSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full snapshot build in short mode")
	}
	t.Parallel()

	questions, err := LoadQuestions(
		filepath.Join("..", "..", "evals", "questions.yaml"),
		filepath.Join("..", "..", "evals", "gold_answers.yaml"),
	)
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	ctx := context.Background()

	// Same sequence and row targets as the generate command. Ordering
	// matters: the staging projections and the gold compute share the
	// threaded rng, so reordering them changes the gold values.
	g := generator.New(generator.Config{
		Seed:                42,
		Agents:              50,
		Insureds:            2000,
		Policies:            5000,
		Coverages:           12000,
		Claims:              3000,
		ClaimTransactions:   15000,
		PremiumTransactions: 20000,
		Quotes:              8000,
	})
	ds := g.Run()

	proj := staging.New(g.Rand(), g.Faker(), time.Now().UTC())
	stagingRows := store.StagingRows{
		Legacy:    proj.LegacyPolicies(ds.Policies),
		Events:    proj.ClaimEvents(ds.Claims),
		Broker:    proj.BrokerFeed(ds.Quotes),
		Formatted: proj.FormattedPremiums(ds.PremiumTxns),
		Activity:  proj.ActivityLog(ds.Policies, ds.Claims),
	}
	metrics := gold.Compute(g.Rand(), ds.Policies, ds.Claims, ds.PremiumTxns, ds.Quotes)

	w, err := store.Create(ctx, filepath.Join(t.TempDir(), "insurance_pc.db"))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.LoadDataset(ctx, ds))
	require.NoError(t, w.LoadStaging(ctx, stagingRows))
	require.NoError(t, w.LoadGold(ctx, metrics))
	require.NoError(t, w.LoadKnownIssues(ctx))
	require.NoError(t, w.BuildMarts(ctx))

	r := &Runner{Warehouse: w}

	for _, q := range questions {
		if q.IsQualitative() {
			continue
		}
		q := q
		t.Run(q.ID, func(t *testing.T) {
			rows, err := r.GoldAnswer(ctx, q)
			require.NoError(t, err)
			require.NotEmpty(t, rows, "gold query returned no rows")

			// Answer with the gold query's own result.
			answer := model.AgentAnswer{SQLUsed: q.GoldQuery}
			if len(q.ExpectedValues) > 0 {
				keyed := make(map[string]any, len(q.ExpectedValues))
				for key := range q.ExpectedValues {
					v, ok := rows[0][key]
					require.True(t, ok, "gold query has no column %q", key)
					keyed[key] = v
				}
				answer.NumericResult = keyed
			} else {
				require.Len(t, rows[0], 1, "scalar question must have a one-column gold query")
				for _, v := range rows[0] {
					answer.NumericResult = v
				}
			}

			s := ScoreQuestion(q, answer, rows)
			require.NotNil(t, s.Passed, "question did not score: %s", s.Reason)
			assert.True(t, *s.Passed,
				"pinned expectation disagrees with the snapshot (expected %v, comparisons %v)",
				q.ExpectedValues, s.Comparisons)
		})
	}
}
