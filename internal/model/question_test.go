package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsQualitative(t *testing.T) {
	t.Parallel()

	assert.True(t, Question{Tolerance: "qualitative"}.IsQualitative())
	assert.False(t, Question{Tolerance: "exact"}.IsQualitative())
	assert.False(t, Question{Tolerance: 0.05}.IsQualitative())
	assert.False(t, Question{}.IsQualitative())
}

func TestToleranceFraction(t *testing.T) {
	t.Parallel()

	t.Run("numeric tolerance", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.1, Question{Tolerance: 0.1}.ToleranceFraction(0.05), 1e-9)
		assert.InDelta(t, 2.0, Question{Tolerance: 2}.ToleranceFraction(0.05), 1e-9)
	})

	t.Run("exact means zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, Question{Tolerance: "exact"}.ToleranceFraction(0.05))
	})

	t.Run("numeric string parses", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.15, Question{Tolerance: "0.15"}.ToleranceFraction(0.05), 1e-9)
	})

	t.Run("missing falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.05, Question{}.ToleranceFraction(0.05), 1e-9)
	})
}

func TestMergeGoldAnswers(t *testing.T) {
	t.Parallel()

	ev := 0.65
	questions := []Question{
		{ID: "q1", Category: "loss_ratio"},
		{ID: "q2", Category: "claims", Notes: "original note"},
	}
	gold := []GoldAnswer{
		{ID: "q1", GoldQuery: "SELECT 1", ExpectedValue: &ev, Tolerance: 0.05, Notes: "merged"},
	}

	merged := MergeGoldAnswers(questions, gold)

	assert.Equal(t, "SELECT 1", merged[0].GoldQuery)
	assert.Equal(t, &ev, merged[0].ExpectedValue)
	assert.Equal(t, 0.05, merged[0].Tolerance)
	assert.Equal(t, "merged", merged[0].Notes)

	// q2 has no gold record and stays untouched
	assert.Empty(t, merged[1].GoldQuery)
	assert.Nil(t, merged[1].ExpectedValue)
	assert.Equal(t, "original note", merged[1].Notes)
}

func TestFilterQuestions(t *testing.T) {
	t.Parallel()

	qs := []Question{
		{ID: "a", Category: "loss_ratio", Difficulty: "easy"},
		{ID: "b", Category: "loss_ratio", Difficulty: "hard"},
		{ID: "c", Category: "claims", Difficulty: "easy"},
	}

	t.Run("no filters matches all", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, FilterQuestions(qs, nil, "", ""), 3)
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		got := FilterQuestions(qs, []string{"a", "c"}, "", "")
		assert.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
	})

	t.Run("by category and difficulty", func(t *testing.T) {
		t.Parallel()
		got := FilterQuestions(qs, nil, "loss_ratio", "hard")
		assert.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FilterQuestions(qs, nil, "claims", "hard"))
	})
}
