// Package generator synthesizes the canonical insurance entity sets from a
// fixed seed: reference entities, a CDC stream of policy versions, and the
// derived transactional entities that hang off the current policy set.
package generator

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/model"
)

// Config sets the per-entity row targets and the run seed.
type Config struct {
	Seed                int64
	Agents              int
	Insureds            int
	Policies            int
	Coverages           int
	Claims              int
	ClaimTransactions   int
	PremiumTransactions int
	Quotes              int
}

// Dataset is one complete generation pass, produced in dependency order.
type Dataset struct {
	Agents       []model.Agent
	Insureds     []model.Insured
	Policies     []model.PolicyVersion
	Coverages    []model.Coverage
	Claims       []model.Claim
	ClaimTxns    []model.ClaimTransaction
	PremiumTxns  []model.PremiumTransaction
	Quotes       []model.Quote
	Notes        []model.Note
}

// Generator owns the deterministic random source and the seeded faker. Both
// derive from Config.Seed; neither is shared process-wide.
type Generator struct {
	cfg  Config
	rng  *rand.Rand
	fake *gofakeit.Faker
}

func New(cfg Config) *Generator {
	return &Generator{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		fake: gofakeit.New(uint64(cfg.Seed)),
	}
}

// Rand exposes the threaded random source so downstream computations that
// deliberately consume run randomness (the staging projectors and the gold
// expense-ratio draw) share it.
func (g *Generator) Rand() *rand.Rand { return g.rng }

// Faker exposes the seeded faker for the staging projectors.
func (g *Generator) Faker() *gofakeit.Faker { return g.fake }

// Run executes the full single-threaded generation pass.
func (g *Generator) Run() *Dataset {
	ds := &Dataset{}
	ds.Agents = g.Agents(g.cfg.Agents)
	ds.Insureds = g.Insureds(g.cfg.Insureds)
	ds.Policies = g.Policies(ds.Insureds, ds.Agents, g.cfg.Policies)
	ds.Coverages = g.Coverages(ds.Policies, g.cfg.Coverages)
	ds.Claims = g.Claims(ds.Policies, g.cfg.Claims)
	ds.ClaimTxns = g.ClaimTransactions(ds.Claims, g.cfg.ClaimTransactions)
	ds.PremiumTxns = g.PremiumTransactions(ds.Policies, g.cfg.PremiumTransactions)
	ds.Quotes = g.Quotes(ds.Insureds, ds.Agents, g.cfg.Quotes)
	ds.Notes = g.Notes(ds.Claims, ds.Policies)

	zap.L().Info("generation complete",
		zap.Int("agents", len(ds.Agents)),
		zap.Int("insureds", len(ds.Insureds)),
		zap.Int("policy_versions", len(ds.Policies)),
		zap.Int("current_policies", len(model.CurrentPolicies(ds.Policies))),
		zap.Int("coverages", len(ds.Coverages)),
		zap.Int("claims", len(ds.Claims)),
		zap.Int("claim_transactions", len(ds.ClaimTxns)),
		zap.Int("premium_transactions", len(ds.PremiumTxns)),
		zap.Int("quotes", len(ds.Quotes)),
		zap.Int("notes", len(ds.Notes)),
	)
	return ds
}
