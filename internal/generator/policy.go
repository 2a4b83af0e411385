package generator

import (
	"fmt"
	"time"

	"github.com/stonebriar/insbench/internal/model"
)

// Policies generates a CDC stream of policy versions. ~30% of policies get
// 2-3 versions (endorsements and status changes); only the highest version of
// each policy carries is_current_record. RowID is the surrogate key across the
// whole stream, PolicyID the business key.
//
// Business-date ordering per version: binding <= issue <= system_entry <=
// booking. Binding precedes effective by a small offset; effective itself may
// be backdated relative to system entry. ValidFrom is system time, derived
// from system_entry plus a strictly growing per-version offset.
func (g *Generator) Policies(insureds []model.Insured, agents []model.Agent, n int) []model.PolicyVersion {
	policies := make([]model.PolicyVersion, 0, n)
	rowID := 0
	for i := 1; i <= n; i++ {
		insured := pick(g.rng, insureds)
		agent := pick(g.rng, agents)
		lob := pick(g.rng, model.LOBCodes)

		eff := dateBetween(g.rng, 2020, 2025)
		exp := addDays(eff, pick(g.rng, []int{180, 365, 730}))
		binding := addDays(eff, -between(g.rng, 1, 30))
		issue := addDays(binding, between(g.rng, 0, 14))
		systemEntry := addDays(issue, between(g.rng, 0, 5))
		booking := addDays(systemEntry, between(g.rng, 0, 10))

		basePremium := money(g.rng, 200, 25000)
		baseExposure := money(g.rng, 1, 100)
		baseStatus := pick(g.rng, model.PolicyStatuses)

		var renewalOf *int
		if i > 1 && chance(g.rng, 0.3) {
			prior := between(g.rng, 1, i-1)
			renewalOf = &prior
		}

		numVersions := 1
		if chance(g.rng, 0.30) {
			numVersions = pick(g.rng, []int{2, 2, 3})
		}

		validFrom := systemEntry
		for v := 0; v < numVersions; v++ {
			rowID++
			versionNumber := v + 1
			isCurrent := versionNumber == numVersions
			validFrom = addDays(validFrom, v*between(g.rng, 10, 90))
			var validTo *time.Time
			if !isCurrent {
				vt := addDays(validFrom, between(g.rng, 10, 90))
				validTo = &vt
			}

			premium := basePremium
			exposure := baseExposure
			status := baseStatus
			var cancelDate *time.Time
			cancelReason := ""
			if v > 0 {
				// Endorsement: premium and exposure drift, maybe cancellation.
				premium = scale(g.rng, basePremium, 0.85, 1.25)
				exposure = scale(g.rng, baseExposure, 0.9, 1.1)
				if chance(g.rng, 0.3) {
					status = "CANCELLED"
					cd := addDays(eff, between(g.rng, 30, 300))
					cancelDate = &cd
					cancelReason = pick(g.rng, model.CancelReasons)
				}
			}

			// Soft deletes only ever land on non-current versions.
			isDeleted := !isCurrent && chance(g.rng, 0.02)

			policies = append(policies, model.PolicyVersion{
				RowID:           rowID,
				PolicyID:        i,
				PolicyNumber:    fmt.Sprintf("POL-%s-%06d", lob, i),
				VersionNumber:   versionNumber,
				InsuredID:       insured.InsuredID,
				AgentID:         agent.AgentID,
				LineOfBusiness:  lob,
				LOBDescription:  model.LOBNames[lob],
				ProductCode:     fmt.Sprintf("%s-%s", lob, pick(g.rng, []string{"STD", "PREM", "BASIC"})),
				EffectiveDate:   eff,
				ExpirationDate:  exp,
				BindingDate:     binding,
				IssueDate:       issue,
				SystemEntryDate: systemEntry,
				BookingDate:     booking,
				PolicyStatus:    status,
				TermMonths:      pick(g.rng, []int{6, 12, 24}),
				State:           insured.State,
				TerritoryCode:   fmt.Sprintf("T%02d", between(g.rng, 1, 50)),
				TotalPremium:    premium,
				ExposureUnits:   exposure,
				Deductible:      pick(g.rng, []int{250, 500, 1000, 2500, 5000}),
				PolicyLimit:     pick(g.rng, []int{100000, 250000, 500000, 1000000, 2000000}),
				UnderwriterID:   between(g.rng, 1, 20),
				CancelDate:      cancelDate,
				CancelReason:    cancelReason,
				RenewalOfID:     renewalOf,
				SourceSystem:    pick(g.rng, model.SourceSystems),
				IsCurrentRecord: isCurrent,
				IsDeleted:       isDeleted,
				ValidFrom:       validFrom,
				ValidTo:         validTo,
				CreatedAt:       systemEntry,
				UpdatedAt:       validFrom,
			})
		}
	}
	return policies
}
