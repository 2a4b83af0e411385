package model

import (
	"strconv"
)

// Question is one benchmark question, with the gold-answer fields merged in by
// MergeGoldAnswers. Tolerance is either a numeric fraction or one of the
// literal strings "exact" / "qualitative".
type Question struct {
	ID         string `yaml:"id" json:"id"`
	Category   string `yaml:"category" json:"category"`
	Difficulty string `yaml:"difficulty" json:"difficulty"` // easy, medium, hard
	Question   string `yaml:"question" json:"question"`

	GoldQuery      string         `yaml:"gold_query,omitempty" json:"gold_query,omitempty"`
	ExpectedValue  *float64       `yaml:"expected_value,omitempty" json:"expected_value,omitempty"`
	ExpectedValues map[string]any `yaml:"expected_values,omitempty" json:"expected_values,omitempty"`
	Tolerance      any            `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Notes          string         `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// GoldAnswer is the answer-key record matched to a Question by ID.
type GoldAnswer struct {
	ID             string         `yaml:"id"`
	GoldQuery      string         `yaml:"gold_query,omitempty"`
	ExpectedValue  *float64       `yaml:"expected_value,omitempty"`
	ExpectedValues map[string]any `yaml:"expected_values,omitempty"`
	Tolerance      any            `yaml:"tolerance,omitempty"`
	Notes          string         `yaml:"notes,omitempty"`
}

// IsQualitative reports whether the question is marked for manual review.
func (q Question) IsQualitative() bool {
	s, ok := q.Tolerance.(string)
	return ok && s == "qualitative"
}

// ToleranceFraction resolves the tolerance marker to a numeric fraction.
// "exact" means zero; an absent marker falls back to the given default.
func (q Question) ToleranceFraction(def float64) float64 {
	switch t := q.Tolerance.(type) {
	case nil:
		return def
	case string:
		if t == "exact" {
			return 0
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
		return def
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return def
	}
}

// MergeGoldAnswers copies gold-answer fields onto questions by matching ID.
// Questions without a gold record are returned unchanged.
func MergeGoldAnswers(questions []Question, gold []GoldAnswer) []Question {
	byID := make(map[string]GoldAnswer, len(gold))
	for _, g := range gold {
		byID[g.ID] = g
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		if g, ok := byID[q.ID]; ok {
			q.GoldQuery = g.GoldQuery
			q.ExpectedValue = g.ExpectedValue
			q.ExpectedValues = g.ExpectedValues
			q.Tolerance = g.Tolerance
			if g.Notes != "" {
				q.Notes = g.Notes
			}
		}
		out[i] = q
	}
	return out
}

// FilterQuestions applies id/category/difficulty filters. Empty filters match
// everything.
func FilterQuestions(questions []Question, ids []string, category, difficulty string) []Question {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var out []Question
	for _, q := range questions {
		if len(idSet) > 0 && !idSet[q.ID] {
			continue
		}
		if category != "" && q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// AgentAnswer is the contract with the external reasoning agent: free text,
// the SQL it ran (if any), and a parsed numeric result that is either a
// scalar, a keyed map, or absent.
type AgentAnswer struct {
	Response      string `json:"response"`
	SQLUsed       string `json:"sql_used,omitempty"`
	NumericResult any    `json:"numeric_result,omitempty"`
}
