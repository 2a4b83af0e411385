package generator

import (
	"github.com/stonebriar/insbench/internal/model"
)

// PremiumTransactions generates 1-8 premium movements per current policy.
// transaction_date <= accounting_date <= booking_date always holds;
// effective_date equals transaction_date except ENDORSEMENT, which may apply
// retroactively by up to 90 days. Any transaction has a 3% chance of a paired
// REVERSAL 1-45 days later with its own independently derived accounting and
// booking dates. A policy's sequence is never cut mid-stream.
func (g *Generator) PremiumTransactions(policies []model.PolicyVersion, target int) []model.PremiumTransaction {
	current := model.CurrentPolicies(policies)
	txns := make([]model.PremiumTransaction, 0, target)
	txnID := 0
	for _, pol := range current {
		if len(txns) >= target {
			break
		}
		numTxns := between(g.rng, 1, 8)
		for j := 0; j < numTxns; j++ {
			txnID++
			txnType := pick(g.rng, model.PremiumTxnTypes)
			txnDate := dateBetween(g.rng, 2020, 2025)
			accountingDate := addDays(txnDate, between(g.rng, 0, 30))
			bookingDate := addDays(accountingDate, between(g.rng, 0, 7))
			effDate := txnDate
			if txnType == model.PremTxnEndorsement {
				effDate = addDays(txnDate, -between(g.rng, 0, 90))
			}
			amount := money(g.rng, -2000, 15000)

			txns = append(txns, model.PremiumTransaction{
				TransactionID:    txnID,
				PolicyID:         pol.PolicyID,
				PolicyNumber:     pol.PolicyNumber,
				LineOfBusiness:   pol.LineOfBusiness,
				TransactionType:  txnType,
				TransactionDate:  txnDate,
				AccountingDate:   accountingDate,
				BookingDate:      bookingDate,
				EffectiveDate:    effDate,
				Amount:           amount,
				AccountingPeriod: accountingDate.Format("2006-01"),
				State:            pol.State,
				AgentID:          pol.AgentID,
				SourceSystem:     pick(g.rng, model.SourceSystems),
				LoadTS:           randTS(g.rng, addDays(bookingDate, between(g.rng, 0, 2))),
				CreatedAt:        txnDate,
			})

			if chance(g.rng, 0.03) {
				reversedID := txnID
				txnID++
				revDate := addDays(txnDate, between(g.rng, 1, 45))
				revAcct := addDays(revDate, between(g.rng, 0, 30))
				revBooking := addDays(revAcct, between(g.rng, 0, 7))
				txns = append(txns, model.PremiumTransaction{
					TransactionID:    txnID,
					PolicyID:         pol.PolicyID,
					PolicyNumber:     pol.PolicyNumber,
					LineOfBusiness:   pol.LineOfBusiness,
					TransactionType:  model.PremTxnReversal,
					TransactionDate:  revDate,
					AccountingDate:   revAcct,
					BookingDate:      revBooking,
					EffectiveDate:    effDate,
					Amount:           amount.Neg(),
					AccountingPeriod: revAcct.Format("2006-01"),
					State:            pol.State,
					AgentID:          pol.AgentID,
					IsReversal:       true,
					ReversalOfTxnID:  &reversedID,
					SourceSystem:     pick(g.rng, model.SourceSystems),
					LoadTS:           randTS(g.rng, addDays(revAcct, between(g.rng, 0, 2))),
					CreatedAt:        revDate,
				})
			}
		}
	}
	return txns
}
