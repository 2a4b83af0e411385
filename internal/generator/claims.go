package generator

import (
	"fmt"
	"time"

	"github.com/stonebriar/insbench/internal/model"
)

// Claims generates n claims against the current, non-deleted policy set.
//
// Date semantics: loss_date is when the loss occurred, report_date when the
// insured reported it (0-60 day lag), entry_date when the adjuster keyed it
// (0-30 day backlog), processing_date when batch last touched it (0-7 days).
func (g *Generator) Claims(policies []model.PolicyVersion, n int) []model.Claim {
	current := model.CurrentPolicies(policies)
	claims := make([]model.Claim, 0, n)
	for i := 1; i <= n; i++ {
		pol := pick(g.rng, current)
		lossDate := dateBetween(g.rng, 2020, 2025)
		reportDate := addDays(lossDate, between(g.rng, 0, 60))
		entryDate := addDays(reportDate, between(g.rng, 0, 30))
		processingDate := addDays(entryDate, between(g.rng, 0, 7))

		isClosed := chance(g.rng, 0.6)
		var closeDate, reopenDate *time.Time
		isReopened := false
		if isClosed {
			cd := addDays(reportDate, between(g.rng, 30, 730))
			closeDate = &cd
			// Reopening implies a closure happened first; reopen is strictly
			// after close.
			if chance(g.rng, 0.08) {
				isReopened = true
				rd := addDays(cd, between(g.rng, 30, 365))
				reopenDate = &rd
			}
		}

		// Status derivation: the reopen override must run before the
		// closed-override, since a reopened claim was necessarily closed.
		status := pick(g.rng, model.ClaimStatuses)
		if isReopened {
			status = "REOPENED"
		} else if isClosed && status != "CLOSED" {
			status = "CLOSED"
		}

		c := model.Claim{
			ClaimID:        i,
			ClaimNumber:    fmt.Sprintf("CLM-%08d", i),
			PolicyID:       pol.PolicyID,
			PolicyNumber:   pol.PolicyNumber,
			InsuredID:      pol.InsuredID,
			LineOfBusiness: pol.LineOfBusiness,
			LossDate:       lossDate,
			ReportDate:     reportDate,
			EntryDate:      entryDate,
			ProcessingDate: processingDate,
			ClaimStatus:    status,
			CauseOfLoss:    pick(g.rng, model.ClaimCauses),
			LossDesc:       g.fake.Sentence(12),
			LossState:      pol.State,
			LossZip:        g.fake.Zip(),
			ClaimantName:   g.fake.Name(),
			ClaimantType:   pick(g.rng, []string{"FIRST_PARTY", "THIRD_PARTY"}),
			AdjusterID:     between(g.rng, 1, 30),
			AdjusterName:   g.fake.Name(),
			Reserve:        money(g.rng, 500, 200000),
			PaidLoss:       money(g.rng, 0, 150000),
			PaidALAE:       money(g.rng, 0, 30000),
			PaidULAE:       money(g.rng, 0, 10000),
			Salvage:        money(g.rng, 0, 5000),
			Subrogation:    money(g.rng, 0, 10000),
			Litigation:     chance(g.rng, 0.1),
			FraudIndicator: chance(g.rng, 0.03),
			CloseDate:      closeDate,
			ReopenDate:     reopenDate,
			SourceSystem:   pick(g.rng, model.SourceSystems),
			IsDeleted:      chance(g.rng, 0.01),
			CreatedAt:      entryDate,
			UpdatedAt:      processingDate,
		}
		if chance(g.rng, 0.15) {
			c.CatCode = fmt.Sprintf("CAT-%03d", between(g.rng, 1, 20))
		}
		c.TotalIncurred = c.Reserve.Add(c.PaidLoss).Add(c.PaidALAE).
			Sub(c.Salvage).Sub(c.Subrogation).Round(2)
		claims = append(claims, c)
	}
	return claims
}

// ClaimTransactions generates 1-10 financial transactions per active claim.
// Each PAYMENT has a 5% chance of a paired VOID 1-30 days later whose amount
// is the exact negation and whose posting date is derived the same way as any
// other transaction's, not copied. A claim's sequence is never cut mid-stream:
// once the target is reached, no further claims are started.
func (g *Generator) ClaimTransactions(claims []model.Claim, target int) []model.ClaimTransaction {
	active := model.ActiveClaims(claims)
	txns := make([]model.ClaimTransaction, 0, target)
	txnID := 0
	for _, claim := range active {
		if len(txns) >= target {
			break
		}
		numTxns := between(g.rng, 1, 10)
		for j := 0; j < numTxns; j++ {
			txnID++
			txnType := pick(g.rng, model.ClaimTxnTypes)
			txnDate := dateBetween(g.rng, 2020, 2025)
			postingDate := addDays(txnDate, between(g.rng, 0, 5))
			amount := money(g.rng, -5000, 50000)
			category := pick(g.rng, model.ClaimTxnCategories)

			t := model.ClaimTransaction{
				TransactionID:   txnID,
				ClaimID:         claim.ClaimID,
				ClaimNumber:     claim.ClaimNumber,
				TransactionType: txnType,
				TransactionDate: txnDate,
				PostingDate:     postingDate,
				Amount:          amount,
				Category:        category,
				Description:     g.fake.Sentence(8),
				CreatedBy:       g.fake.Username(),
				LoadTS:          randTS(g.rng, addDays(postingDate, between(g.rng, 0, 3))),
				CreatedAt:       txnDate,
			}
			if txnType == model.ClaimTxnPayment {
				cd := addDays(postingDate, between(g.rng, 0, 10))
				t.CheckDate = &cd
				if chance(g.rng, 0.6) {
					t.CheckNumber = g.fake.Numerify("CHK-########")
				}
				if chance(g.rng, 0.7) {
					t.PayeeName = g.fake.Name()
				}
			}
			txns = append(txns, t)

			if txnType == model.ClaimTxnPayment && chance(g.rng, 0.05) {
				voidedID := txnID
				txnID++
				voidDate := addDays(txnDate, between(g.rng, 1, 30))
				voidPosting := addDays(voidDate, between(g.rng, 0, 5))
				txns = append(txns, model.ClaimTransaction{
					TransactionID:   txnID,
					ClaimID:         claim.ClaimID,
					ClaimNumber:     claim.ClaimNumber,
					TransactionType: model.ClaimTxnVoid,
					TransactionDate: voidDate,
					PostingDate:     voidPosting,
					Amount:          amount.Neg(),
					Category:        category,
					Description:     fmt.Sprintf("VOID OF TXN %d", voidedID),
					IsVoid:          true,
					VoidOfTxnID:     &voidedID,
					CreatedBy:       g.fake.Username(),
					LoadTS:          randTS(g.rng, voidPosting),
					CreatedAt:       voidDate,
				})
			}
		}
	}
	return txns
}
