package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/eval"
	"github.com/stonebriar/insbench/internal/model"
	"github.com/stonebriar/insbench/internal/store"
)

var (
	evalIDs        []string
	evalCategory   string
	evalDifficulty string
	evalList       bool
	evalDryRun     bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score the agent against the question set",
	Long:  "Loads the benchmark questions and answer key, asks the agent each question, runs the gold query against the read-only snapshot, and prints a scorecard. Results are saved as timestamped JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		questions, err := eval.LoadQuestions(cfg.Eval.QuestionsPath, cfg.Eval.GoldAnswersPath)
		if err != nil {
			return err
		}
		questions = model.FilterQuestions(questions, evalIDs, evalCategory, evalDifficulty)
		if len(questions) == 0 {
			return eris.New("no questions matched filters")
		}

		if evalList {
			for _, q := range questions {
				fmt.Printf("  [%-6s] %-35s %s\n", q.Difficulty, q.ID, q.Category)
			}
			fmt.Printf("\n%d questions\n", len(questions))
			return nil
		}

		w, err := store.OpenReadOnly(cfg.Warehouse.Path)
		if err != nil {
			return err
		}
		defer w.Close()

		runner := &eval.Runner{
			Warehouse:  w,
			Agent:      eval.StubAgent{},
			ResultsDir: cfg.Eval.ResultsDir,
		}

		if evalDryRun {
			for _, q := range questions {
				fmt.Printf("\nID: %s  (%s)\n", q.ID, q.Difficulty)
				fmt.Printf("Q:  %s\n", q.Question)
				rows, err := runner.GoldAnswer(ctx, q)
				if err != nil {
					return err
				}
				fmt.Println(goldPreview(q, rows))
			}
			return nil
		}

		zap.L().Info("running evaluation", zap.Int("questions", len(questions)))
		scores, err := runner.Run(ctx, questions)
		if err != nil {
			return err
		}

		printScorecard(eval.BuildScorecard(scores))

		path, err := runner.SaveResults(scores)
		if err != nil {
			return err
		}
		fmt.Printf("\nResults saved to: %s\n", path)
		return nil
	},
}

// goldPreview renders one question's gold answer for --dry-run. A
// qualitative question has none by design; an empty result on a scoreable
// question is called out as such.
func goldPreview(q model.Question, rows []map[string]any) string {
	if q.IsQualitative() {
		return "Gold: (qualitative, no numeric answer)"
	}
	if rows == nil {
		return "Gold: (no gold rows)"
	}
	data, _ := json.Marshal(rows)
	return "Gold: " + string(data)
}

func printScorecard(card eval.Scorecard) {
	fmt.Println("\nEVALUATION SCORECARD")
	fmt.Printf("  Total questions: %d\n", card.Total)
	fmt.Printf("  Passed:          %d\n", card.Passed)
	fmt.Printf("  Failed:          %d\n", card.Failed)
	fmt.Printf("  Manual review:   %d\n", card.Manual)
	if scoreable := card.Total - card.Manual; scoreable > 0 {
		fmt.Printf("  Score:           %d/%d (%.1f%%)\n", card.Passed, scoreable, 100*card.ScoreRate())
	}

	if len(card.ByCategory) > 1 {
		fmt.Println("\nBy category:")
		cats := make([]string, 0, len(card.ByCategory))
		for c := range card.ByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			t := card.ByCategory[c]
			fmt.Printf("  %-25s %d/%d\n", c, t.Passed, t.Total)
		}
	}

	fmt.Println("\nBy difficulty:")
	for _, d := range []string{"easy", "medium", "hard"} {
		if t, ok := card.ByDifficulty[d]; ok {
			fmt.Printf("  %-25s %d/%d\n", d, t.Passed, t.Total)
		}
	}
}

func init() {
	evalCmd.Flags().StringSliceVar(&evalIDs, "ids", nil, "run specific question IDs")
	evalCmd.Flags().StringVar(&evalCategory, "category", "", "filter by category")
	evalCmd.Flags().StringVar(&evalDifficulty, "difficulty", "", "filter by difficulty (easy, medium, hard)")
	evalCmd.Flags().BoolVar(&evalList, "list", false, "list questions without running")
	evalCmd.Flags().BoolVar(&evalDryRun, "dry-run", false, "show gold answers only")
	rootCmd.AddCommand(evalCmd)
}
