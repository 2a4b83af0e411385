package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebriar/insbench/internal/model"
)

func fp(f float64) *float64 { return &f }

var goldRow = []map[string]any{{"value": 0.65}}

func TestCompareNumeric(t *testing.T) {
	t.Parallel()

	t.Run("within relative tolerance", func(t *testing.T) {
		t.Parallel()
		cmp := CompareNumeric(0.64, 0.65, 0.05)
		require.NotNil(t, cmp.Passed)
		assert.True(t, *cmp.Passed)
		assert.InDelta(t, 0.015385, *cmp.RelError, 1e-6)
	})

	t.Run("outside relative tolerance", func(t *testing.T) {
		t.Parallel()
		cmp := CompareNumeric(0.80, 0.65, 0.05)
		require.NotNil(t, cmp.Passed)
		assert.False(t, *cmp.Passed)
	})

	t.Run("zero expected uses absolute check", func(t *testing.T) {
		t.Parallel()
		cmp := CompareNumeric(0.005, 0, 0.05)
		require.NotNil(t, cmp.Passed)
		assert.True(t, *cmp.Passed)
		assert.Nil(t, cmp.RelError)

		cmp = CompareNumeric(0.5, 0, 0.05)
		assert.False(t, *cmp.Passed)
	})

	t.Run("exact tolerance", func(t *testing.T) {
		t.Parallel()
		cmp := CompareNumeric(100, 100, 0)
		assert.True(t, *cmp.Passed)
		cmp = CompareNumeric(100.01, 100, 0)
		assert.False(t, *cmp.Passed)
	})

	t.Run("negative values", func(t *testing.T) {
		t.Parallel()
		cmp := CompareNumeric(-98, -100, 0.05)
		assert.True(t, *cmp.Passed)
	})
}

func TestExtractNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"The loss ratio is 0.65", 0.65, true},
		{"Total written premium was $1,892,441.18 in 2023", 1892441.18, true},
		{"about 64.8%", 64.8, true},
		{"net of voids: -12,500.00", -12500, true},
		{"no idea", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := ExtractNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}

func TestScoreQuestionQualitative(t *testing.T) {
	t.Parallel()

	q := model.Question{ID: "q", Category: "qualitative", Difficulty: "hard", Tolerance: "qualitative"}
	s := ScoreQuestion(q, model.AgentAnswer{Response: "it depends"}, nil)

	assert.Equal(t, StatusQualitativeManual, s.Status)
	assert.Nil(t, s.Passed)
	assert.Equal(t, "it depends", s.AgentResponse)
}

func TestScoreQuestionNoGold(t *testing.T) {
	t.Parallel()

	q := model.Question{ID: "q", ExpectedValue: fp(1)}
	s := ScoreQuestion(q, model.AgentAnswer{NumericResult: 1.0}, nil)

	assert.Equal(t, StatusNoGold, s.Status)
	assert.Nil(t, s.Passed)
}

func TestScoreQuestionSingleValue(t *testing.T) {
	t.Parallel()

	q := model.Question{ID: "q", ExpectedValue: fp(0.65), Tolerance: 0.05}

	t.Run("structured result within tolerance", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{NumericResult: 0.64}, goldRow)
		require.NotNil(t, s.Passed)
		assert.True(t, *s.Passed)
		assert.Equal(t, StatusScored, s.Status)
	})

	t.Run("structured result outside tolerance", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{NumericResult: 0.80}, goldRow)
		require.NotNil(t, s.Passed)
		assert.False(t, *s.Passed)
	})

	t.Run("falls back to response text", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{Response: "The ratio is 0.64"}, goldRow)
		require.NotNil(t, s.Passed)
		assert.True(t, *s.Passed)
		assert.Equal(t, "regex_from_response", s.ExtractionMethod)
	})

	t.Run("nothing to compare yields nil passed", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{Response: "no numbers here"}, goldRow)
		assert.Nil(t, s.Passed)
		assert.NotEmpty(t, s.Reason)
	})
}

func TestScoreQuestionKeyedValues(t *testing.T) {
	t.Parallel()

	q := model.Question{
		ID: "q", Tolerance: 0.05,
		ExpectedValues: map[string]any{"lob": "WC", "loss_ratio": 0.82},
	}

	t.Run("all keys pass with string fallback", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{
			NumericResult: map[string]any{"lob": "wc", "loss_ratio": 0.81},
		}, goldRow)
		require.NotNil(t, s.Passed)
		assert.True(t, *s.Passed)
		assert.Len(t, s.Comparisons, 2)
	})

	t.Run("one failed key fails the question", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{
			NumericResult: map[string]any{"lob": "WC", "loss_ratio": 0.50},
		}, goldRow)
		require.NotNil(t, s.Passed)
		assert.False(t, *s.Passed)
	})

	t.Run("missing key fails the question", func(t *testing.T) {
		t.Parallel()
		s := ScoreQuestion(q, model.AgentAnswer{
			NumericResult: map[string]any{"lob": "WC"},
		}, goldRow)
		require.NotNil(t, s.Passed)
		assert.False(t, *s.Passed)
		assert.Equal(t, "key not in agent answer", s.Comparisons["loss_ratio"].Reason)
	})
}

func TestBuildScorecard(t *testing.T) {
	t.Parallel()

	scores := []Score{
		{ID: "a", Category: "loss_ratio", Difficulty: "easy", Passed: boolp(true)},
		{ID: "b", Category: "loss_ratio", Difficulty: "hard", Passed: boolp(false)},
		{ID: "c", Category: "claims", Difficulty: "easy", Passed: boolp(true)},
		{ID: "d", Category: "qualitative", Difficulty: "hard", Passed: nil},
	}

	card := BuildScorecard(scores)

	assert.Equal(t, 4, card.Total)
	assert.Equal(t, 2, card.Passed)
	assert.Equal(t, 1, card.Failed)
	assert.Equal(t, 1, card.Manual)
	assert.InDelta(t, 2.0/3.0, card.ScoreRate(), 1e-9)

	assert.Equal(t, Tally{Passed: 1, Total: 2}, card.ByCategory["loss_ratio"])
	assert.Equal(t, Tally{Passed: 1, Total: 1}, card.ByCategory["claims"])
	assert.Equal(t, Tally{Passed: 2, Total: 2}, card.ByDifficulty["easy"])
	// manual-review questions stay out of every denominator
	_, ok := card.ByCategory["qualitative"]
	assert.False(t, ok)
}

func TestScorecardEmptyScoreRate(t *testing.T) {
	t.Parallel()

	card := BuildScorecard([]Score{{ID: "a", Passed: nil}})
	assert.Zero(t, card.ScoreRate())
}
