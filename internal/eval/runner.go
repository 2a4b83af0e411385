package eval

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/model"
	"github.com/stonebriar/insbench/internal/store"
)

// Runner drives an evaluation: ask the agent, run the gold query, score.
type Runner struct {
	Warehouse  *store.Warehouse
	Agent      Agent
	ResultsDir string
}

// GoldAnswer executes the question's gold query against the read-only
// warehouse. Returns nil when no gold query is defined or it yields no rows.
func (r *Runner) GoldAnswer(ctx context.Context, q model.Question) ([]map[string]any, error) {
	if q.GoldQuery == "" {
		return nil, nil
	}
	res, err := r.Warehouse.Query(ctx, q.GoldQuery)
	if err != nil {
		return nil, eris.Wrapf(err, "eval: gold query for %s", q.ID)
	}
	return rowsToMaps(res), nil
}

func rowsToMaps(res *store.Result) []map[string]any {
	if res == nil || len(res.Rows) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(res.Rows))
	for _, row := range res.Rows {
		m := make(map[string]any, len(res.Columns))
		for i, col := range res.Columns {
			v := row[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			m[col] = v
		}
		out = append(out, m)
	}
	return out
}

// Run scores every question in order. An agent error fails the run; a gold
// query error only fails that question, degrading it to NO_GOLD so the rest
// of the batch still scores.
func (r *Runner) Run(ctx context.Context, questions []model.Question) ([]Score, error) {
	log := zap.L()
	scores := make([]Score, 0, len(questions))
	for i, q := range questions {
		log.Info("evaluating question",
			zap.Int("n", i+1),
			zap.Int("total", len(questions)),
			zap.String("id", q.ID),
			zap.String("difficulty", q.Difficulty),
		)

		answer, err := r.Agent.Answer(ctx, q.Question)
		if err != nil {
			return nil, eris.Wrapf(err, "eval: agent answer for %s", q.ID)
		}

		var goldRows []map[string]any
		if !q.IsQualitative() {
			goldRows, err = r.GoldAnswer(ctx, q)
			if err != nil {
				log.Warn("gold query failed", zap.String("id", q.ID), zap.Error(err))
				scores = append(scores, Score{
					ID:     q.ID,
					Status: StatusNoGold,
					Reason: "gold query failed: " + eris.Cause(err).Error(),
				})
				continue
			}
		}

		score := ScoreQuestion(q, answer, goldRows)
		scores = append(scores, score)

		switch {
		case score.Passed != nil && *score.Passed:
			log.Info("passed", zap.String("id", q.ID))
		case score.Passed != nil:
			log.Info("failed", zap.String("id", q.ID),
				zap.Float64p("expected", score.Expected),
				zap.Float64p("actual", score.Actual),
				zap.Float64p("rel_error", score.RelError),
			)
		default:
			log.Info("manual review", zap.String("id", q.ID), zap.String("reason", score.Reason))
		}
	}
	return scores, nil
}

// Tally is a passed/total pair where total counts only scoreable questions.
type Tally struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// Scorecard summarizes a run.
type Scorecard struct {
	Total        int              `json:"total"`
	Passed       int              `json:"passed"`
	Failed       int              `json:"failed"`
	Manual       int              `json:"manual"`
	ByCategory   map[string]Tally `json:"by_category"`
	ByDifficulty map[string]Tally `json:"by_difficulty"`
}

// BuildScorecard aggregates scores. Manual-review questions count toward
// Total but are excluded from every pass-rate denominator.
func BuildScorecard(scores []Score) Scorecard {
	card := Scorecard{
		Total:        len(scores),
		ByCategory:   make(map[string]Tally),
		ByDifficulty: make(map[string]Tally),
	}
	for _, s := range scores {
		switch {
		case s.Passed == nil:
			card.Manual++
			continue
		case *s.Passed:
			card.Passed++
		default:
			card.Failed++
		}
		cat := card.ByCategory[s.Category]
		cat.Total++
		if *s.Passed {
			cat.Passed++
		}
		card.ByCategory[s.Category] = cat

		diff := card.ByDifficulty[s.Difficulty]
		diff.Total++
		if *s.Passed {
			diff.Passed++
		}
		card.ByDifficulty[s.Difficulty] = diff
	}
	return card
}

// ScoreRate returns passed over scoreable questions, zero when nothing was
// scoreable.
func (c Scorecard) ScoreRate() float64 {
	scoreable := c.Total - c.Manual
	if scoreable == 0 {
		return 0
	}
	return float64(c.Passed) / float64(scoreable)
}

// SaveResults writes the scores to a timestamped JSON file under ResultsDir
// and returns the path.
func (r *Runner) SaveResults(scores []Score) (string, error) {
	if err := os.MkdirAll(r.ResultsDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "eval: mkdir %s", r.ResultsDir)
	}
	path := filepath.Join(r.ResultsDir, "eval_"+time.Now().Format("20060102_150405")+".json")
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "eval: marshal results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "eval: write %s", path)
	}
	return path, nil
}
