package eval

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/stonebriar/insbench/internal/model"
)

// LoadQuestions reads the question set and the answer key and merges them by
// question ID. Questions without an answer-key record stay unscored; the
// harness reports them as NO_GOLD rather than dropping them.
func LoadQuestions(questionsPath, goldPath string) ([]model.Question, error) {
	qb, err := os.ReadFile(questionsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "eval: read %s", questionsPath)
	}
	var questions []model.Question
	if err := yaml.Unmarshal(qb, &questions); err != nil {
		return nil, eris.Wrapf(err, "eval: parse %s", questionsPath)
	}

	gb, err := os.ReadFile(goldPath)
	if err != nil {
		return nil, eris.Wrapf(err, "eval: read %s", goldPath)
	}
	var gold []model.GoldAnswer
	if err := yaml.Unmarshal(gb, &gold); err != nil {
		return nil, eris.Wrapf(err, "eval: parse %s", goldPath)
	}

	return model.MergeGoldAnswers(questions, gold), nil
}
