// Package eval scores an NL-to-SQL agent's answers against the gold answer
// key. A question is never silently failed: answers that cannot be compared
// come back with a nil Passed and a reason.
package eval

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/stonebriar/insbench/internal/model"
)

// Score statuses.
const (
	StatusScored            = "SCORED"
	StatusQualitativeManual = "QUALITATIVE_MANUAL"
	StatusNoGold            = "NO_GOLD"
)

// Comparison is the outcome of one numeric or string comparison.
type Comparison struct {
	Passed   *bool    `json:"passed"`
	Actual   any      `json:"actual,omitempty"`
	Expected any      `json:"expected,omitempty"`
	AbsError *float64 `json:"abs_error,omitempty"`
	RelError *float64 `json:"rel_error,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// Score is a question's full scoring record.
type Score struct {
	ID               string                `json:"id"`
	Category         string                `json:"category,omitempty"`
	Difficulty       string                `json:"difficulty,omitempty"`
	Status           string                `json:"status"`
	Passed           *bool                 `json:"passed"`
	Reason           string                `json:"reason,omitempty"`
	AgentResponse    string                `json:"agent_response,omitempty"`
	SQLUsed          string                `json:"sql_used,omitempty"`
	Expected         *float64              `json:"expected,omitempty"`
	Actual           *float64              `json:"actual,omitempty"`
	AbsError         *float64              `json:"abs_error,omitempty"`
	RelError         *float64              `json:"rel_error,omitempty"`
	ExtractionMethod string                `json:"extraction_method,omitempty"`
	Comparisons      map[string]Comparison `json:"comparisons,omitempty"`
	GoldRows         []map[string]any      `json:"gold_answer,omitempty"`
}

func boolp(b bool) *bool       { return &b }
func f64p(f float64) *float64  { return &f }
func round6(f float64) float64 { return math.Round(f*1e6) / 1e6 }

// CompareNumeric checks actual against expected within a relative tolerance.
// A zero expected value has no meaningful relative error, so it falls back to
// an absolute check of |actual| < 0.01.
func CompareNumeric(actual, expected, tolerance float64) Comparison {
	if expected == 0 {
		absErr := math.Abs(actual)
		return Comparison{
			Passed:   boolp(absErr < 0.01),
			Actual:   actual,
			Expected: expected,
			AbsError: f64p(absErr),
		}
	}
	relErr := math.Abs(actual-expected) / math.Abs(expected)
	return Comparison{
		Passed:   boolp(relErr <= tolerance),
		Actual:   actual,
		Expected: expected,
		AbsError: f64p(round6(math.Abs(actual - expected))),
		RelError: f64p(round6(relErr)),
	}
}

var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// ExtractNumber pulls the first numeric value out of free text, tolerating
// thousands separators, currency signs, and percent signs.
func ExtractNumber(text string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", "$", "", "%", "").Replace(text)
	m := numberPattern.FindString(cleaned)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toFloat coerces an agent-provided value to a float64. JSON decoding hands
// back float64, but agents wired in-process may return ints or strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ScoreQuestion scores one answer. goldRows is the executed gold query result,
// nil when the question has no gold query or it returned nothing.
//
// Priority order: qualitative questions go to manual review before anything
// else, then missing gold short-circuits, then a structured numeric result is
// compared directly, and only as a last resort is a number extracted from the
// response text.
func ScoreQuestion(q model.Question, answer model.AgentAnswer, goldRows []map[string]any) Score {
	if q.IsQualitative() {
		return Score{
			ID:            q.ID,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
			Status:        StatusQualitativeManual,
			Reason:        "qualitative, manual review required",
			AgentResponse: answer.Response,
		}
	}

	if goldRows == nil {
		return Score{
			ID:     q.ID,
			Status: StatusNoGold,
			Reason: "no gold query defined",
		}
	}

	s := Score{
		ID:            q.ID,
		Category:      q.Category,
		Difficulty:    q.Difficulty,
		Status:        StatusScored,
		AgentResponse: truncateResponse(answer.Response),
		SQLUsed:       answer.SQLUsed,
		GoldRows:      goldRows,
	}
	tol := q.ToleranceFraction(0.05)

	// Single expected value against a structured numeric result.
	if q.ExpectedValue != nil && answer.NumericResult != nil {
		if actual, ok := toFloat(answer.NumericResult); ok {
			cmp := CompareNumeric(actual, *q.ExpectedValue, tol)
			s.applyComparison(cmp)
			return s
		}
	}

	// Keyed expected values: every key must pass. Values that do not parse
	// as numbers fall back to case-insensitive string equality, so keys like
	// a LOB code still compare.
	if len(q.ExpectedValues) > 0 {
		if keyed, ok := answer.NumericResult.(map[string]any); ok {
			s.Comparisons = make(map[string]Comparison, len(q.ExpectedValues))
			allPassed := true
			for key, expectedVal := range q.ExpectedValues {
				actualVal, present := keyed[key]
				if !present {
					s.Comparisons[key] = Comparison{Passed: boolp(false), Reason: "key not in agent answer"}
					allPassed = false
					continue
				}
				actualNum, aOK := toFloat(actualVal)
				expectedNum, eOK := toFloat(expectedVal)
				if aOK && eOK {
					cmp := CompareNumeric(actualNum, expectedNum, tol)
					s.Comparisons[key] = cmp
					if !*cmp.Passed {
						allPassed = false
					}
					continue
				}
				passed := strings.EqualFold(
					strings.TrimSpace(toString(actualVal)),
					strings.TrimSpace(toString(expectedVal)),
				)
				s.Comparisons[key] = Comparison{Passed: boolp(passed), Actual: actualVal, Expected: expectedVal}
				if !passed {
					allPassed = false
				}
			}
			s.Passed = boolp(allPassed)
			return s
		}
	}

	// Fallback: pull a number out of the response text.
	if q.ExpectedValue != nil {
		if extracted, ok := ExtractNumber(answer.Response); ok {
			cmp := CompareNumeric(extracted, *q.ExpectedValue, tol)
			s.applyComparison(cmp)
			s.ExtractionMethod = "regex_from_response"
			return s
		}
	}

	s.Reason = "could not compare, no numeric result from agent"
	return s
}

func (s *Score) applyComparison(cmp Comparison) {
	s.Passed = cmp.Passed
	if a, ok := cmp.Actual.(float64); ok {
		s.Actual = f64p(a)
	}
	if e, ok := cmp.Expected.(float64); ok {
		s.Expected = f64p(e)
	}
	s.AbsError = cmp.AbsError
	s.RelError = cmp.RelError
}

func toString(v any) string {
	if sv, ok := v.(string); ok {
		return sv
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

const maxResponseLen = 500

func truncateResponse(s string) string {
	if len(s) > maxResponseLen {
		return s[:maxResponseLen]
	}
	return s
}
