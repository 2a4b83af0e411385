package generator

import (
	"fmt"

	"github.com/stonebriar/insbench/internal/model"
)

// Coverages attaches 1-5 coverages to each current, non-deleted policy.
// Issuance stops once the target is reached, but never mid-policy.
func (g *Generator) Coverages(policies []model.PolicyVersion, target int) []model.Coverage {
	current := model.CurrentPolicies(policies)
	coverages := make([]model.Coverage, 0, target)
	covID := 0
	for _, pol := range current {
		if len(coverages) >= target {
			break
		}
		numCovs := between(g.rng, 1, 5)
		for j := 0; j < numCovs; j++ {
			covID++
			covType := pick(g.rng, model.CoverageTypes)
			coverages = append(coverages, model.Coverage{
				CoverageID:     covID,
				PolicyID:       pol.PolicyID,
				CoverageCode:   covType,
				CoverageDesc:   fmt.Sprintf("%s Coverage", covType),
				CoverageLimit:  pick(g.rng, []int{25000, 50000, 100000, 250000, 500000, 1000000}),
				Deductible:     pick(g.rng, []int{0, 250, 500, 1000, 2500}),
				PremiumAmount:  money(g.rng, 50, 5000),
				ExposureUnits:  money(g.rng, 0.5, 50),
				EffectiveDate:  pol.EffectiveDate,
				ExpirationDate: pol.ExpirationDate,
				RatingClass:    g.fake.Numerify("RC-###"),
			})
		}
	}
	return coverages
}

// Quotes generates n quotes. A quote references a policy only through the weak
// BoundPolicyID backref, set for most BOUND quotes.
func (g *Generator) Quotes(insureds []model.Insured, agents []model.Agent, n int) []model.Quote {
	quotes := make([]model.Quote, 0, n)
	for i := 1; i <= n; i++ {
		insured := pick(g.rng, insureds)
		agent := pick(g.rng, agents)
		q := model.Quote{
			QuoteID:        i,
			QuoteNumber:    fmt.Sprintf("QUO-%06d", i),
			InsuredID:      insured.InsuredID,
			AgentID:        agent.AgentID,
			LineOfBusiness: pick(g.rng, model.LOBCodes),
			State:          insured.State,
			QuoteDate:      dateBetween(g.rng, 2020, 2025),
			QuotedPremium:  money(g.rng, 200, 25000),
			Status:         pick(g.rng, model.QuoteStatuses),
			SourceSystem:   pick(g.rng, model.SourceSystems),
		}
		q.CreatedAt = q.QuoteDate
		if q.Status == "DECLINED" || chance(g.rng, 0.2) {
			q.DeclineReason = pick(g.rng, model.DeclineReasons)
		}
		if chance(g.rng, 0.3) {
			q.CompetitorName = g.fake.Company()
		}
		if q.Status == "BOUND" && chance(g.rng, 0.9) {
			boundID := between(g.rng, 1, g.cfg.Policies)
			q.BoundPolicyID = &boundID
		}
		quotes = append(quotes, q)
	}
	return quotes
}

// Notes generates free-text notes on a sample of active claims (1-5 each, up
// to 1500 claims) and current policies (1 each, up to 1000 policies). The
// (entity_type, entity_id) attachment is a weak reference by design.
func (g *Generator) Notes(claims []model.Claim, policies []model.PolicyVersion) []model.Note {
	var notes []model.Note
	noteID := 0

	active := model.ActiveClaims(claims)
	for _, idx := range sampleIndexes(g, len(active), 1500) {
		claim := active[idx]
		for j := 0; j < between(g.rng, 1, 5); j++ {
			noteID++
			notes = append(notes, model.Note{
				NoteID:       noteID,
				EntityType:   "CLAIM",
				EntityID:     claim.ClaimID,
				EntityNumber: claim.ClaimNumber,
				NoteType:     pick(g.rng, model.ClaimNoteTypes),
				Author:       g.fake.Name(),
				NoteText:     g.fake.Paragraph(1, between(g.rng, 2, 8), 10, " "),
				CreatedAt:    dateBetween(g.rng, 2020, 2025),
				SourceSystem: pick(g.rng, model.SourceSystems),
			})
		}
	}

	current := model.CurrentPolicies(policies)
	for _, idx := range sampleIndexes(g, len(current), 1000) {
		pol := current[idx]
		noteID++
		notes = append(notes, model.Note{
			NoteID:       noteID,
			EntityType:   "POLICY",
			EntityID:     pol.PolicyID,
			EntityNumber: pol.PolicyNumber,
			NoteType:     pick(g.rng, model.PolicyNoteTypes),
			Author:       g.fake.Name(),
			NoteText:     g.fake.Paragraph(1, between(g.rng, 1, 5), 10, " "),
			CreatedAt:    dateBetween(g.rng, 2020, 2025),
			SourceSystem: pick(g.rng, model.SourceSystems),
		})
	}
	return notes
}

// sampleIndexes draws k distinct indexes from [0, n) in shuffled order.
func sampleIndexes(g *Generator, n, k int) []int {
	if k > n {
		k = n
	}
	return g.rng.Perm(n)[:k]
}
