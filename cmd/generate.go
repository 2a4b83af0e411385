package main

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/generator"
	"github.com/stonebriar/insbench/internal/gold"
	"github.com/stonebriar/insbench/internal/staging"
	"github.com/stonebriar/insbench/internal/store"
)

var (
	generateOut  string
	generateSeed int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the warehouse snapshot",
	Long:  "Builds the full dataset in dependency order, renders the staging projections, computes the gold metrics, and writes everything to a fresh sqlite snapshot including the mart tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L()

		out := cfg.Warehouse.Path
		if generateOut != "" {
			out = generateOut
		}
		seed := cfg.Generate.Seed
		if cmd.Flags().Changed("seed") {
			seed = generateSeed
		}

		g := generator.New(generator.Config{
			Seed:                seed,
			Agents:              cfg.Generate.Agents,
			Insureds:            cfg.Generate.Insureds,
			Policies:            cfg.Generate.Policies,
			Coverages:           cfg.Generate.Coverages,
			Claims:              cfg.Generate.Claims,
			ClaimTransactions:   cfg.Generate.ClaimTransactions,
			PremiumTransactions: cfg.Generate.PremiumTransactions,
			Quotes:              cfg.Generate.Quotes,
		})

		log.Info("generating dataset", zap.Int64("seed", seed))
		ds := g.Run()

		proj := staging.New(g.Rand(), g.Faker(), time.Now().UTC())
		stagingRows := store.StagingRows{
			Legacy:    proj.LegacyPolicies(ds.Policies),
			Events:    proj.ClaimEvents(ds.Claims),
			Broker:    proj.BrokerFeed(ds.Quotes),
			Formatted: proj.FormattedPremiums(ds.PremiumTxns),
			Activity:  proj.ActivityLog(ds.Policies, ds.Claims),
		}
		log.Info("staging projections rendered",
			zap.Int("legacy", len(stagingRows.Legacy)),
			zap.Int("claim_events", len(stagingRows.Events)),
			zap.Int("broker_feed", len(stagingRows.Broker)),
			zap.Int("formatted_premiums", len(stagingRows.Formatted)),
			zap.Int("activity_log", len(stagingRows.Activity)),
		)

		metrics := gold.Compute(g.Rand(), ds.Policies, ds.Claims, ds.PremiumTxns, ds.Quotes)

		w, err := store.Create(ctx, out)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.LoadDataset(ctx, ds); err != nil {
			return err
		}
		if err := w.LoadStaging(ctx, stagingRows); err != nil {
			return err
		}
		if err := w.LoadGold(ctx, metrics); err != nil {
			return err
		}
		if err := w.LoadKnownIssues(ctx); err != nil {
			return err
		}
		if err := w.BuildMarts(ctx); err != nil {
			return err
		}

		counts, err := w.TableCounts(ctx, []string{
			"core_policies", "core_claims", "core_claim_transactions",
			"core_premium_transactions", "core_quotes",
			"staging_legacy_policies_as400", "staging_guidewire_claim_events",
			"staging_broker_submissions_feed", "staging_duckcreek_premium_transactions",
			"staging_activity_cdc_event_log",
			"gold_lob_year_summary",
			"mart_executive_obt_policy_claims_premium",
		})
		if err != nil {
			return eris.Wrap(err, "verify snapshot")
		}
		tables := make([]string, 0, len(counts))
		for t := range counts {
			tables = append(tables, t)
		}
		sort.Strings(tables)
		fields := make([]zap.Field, 0, len(tables)+1)
		fields = append(fields, zap.String("path", out))
		for _, t := range tables {
			fields = append(fields, zap.Int(t, counts[t]))
		}
		log.Info("snapshot written", fields...)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output sqlite path (default from config)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 42, "random seed")
	rootCmd.AddCommand(generateCmd)
}
