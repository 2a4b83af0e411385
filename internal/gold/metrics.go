// Package gold computes the ground-truth aggregates used for scoring. All
// metrics are pure functions of the current, non-deleted, non-reversed subset
// of the canonical entities and are recomputed from scratch every run.
package gold

import (
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stonebriar/insbench/internal/model"
)

// LOBYearSummary rolls up policies, premium and claim financials by line of
// business and policy year.
type LOBYearSummary struct {
	LineOfBusiness string          `json:"line_of_business"`
	LOBDescription string          `json:"lob_description"`
	PolicyYear     int             `json:"policy_year"`
	PolicyCount    int             `json:"policy_count"`
	ExposureUnits  decimal.Decimal `json:"total_exposure_units"`
	WrittenPremium decimal.Decimal `json:"written_premium"`
	EarnedPremium  decimal.Decimal `json:"earned_premium"`
	ClaimCount     int             `json:"claim_count"`
	OpenClaims     int             `json:"open_claim_count"`
	ClosedClaims   int             `json:"closed_claim_count"`
	PaidLoss       decimal.Decimal `json:"paid_loss"`
	PaidALAE       decimal.Decimal `json:"paid_alae"`
	PaidULAE       decimal.Decimal `json:"paid_ulae"`
	TotalLAE       decimal.Decimal `json:"total_lae"`
	Salvage        decimal.Decimal `json:"salvage"`
	Subrogation    decimal.Decimal `json:"subrogation"`
	NetIncurred    decimal.Decimal `json:"net_incurred_loss"`
	TotalIncurred  decimal.Decimal `json:"total_incurred"`
	Frequency      decimal.Decimal `json:"frequency"`
	Severity       decimal.Decimal `json:"severity"`
	PurePremium    decimal.Decimal `json:"pure_premium"`
	AveragePremium decimal.Decimal `json:"average_premium"`
	LossRatio      decimal.Decimal `json:"loss_ratio"`
	LAERatio       decimal.Decimal `json:"lae_ratio"`
	LossLAERatio   decimal.Decimal `json:"combined_loss_lae_ratio"`
}

// UnderwritingMetric extends the LOB/year rollup with expense and profit
// figures. The expense ratio is drawn per group from the threaded random
// source; it is not derivable from the core facts, so underwriting metrics
// are only reproducible alongside the full run.
type UnderwritingMetric struct {
	LineOfBusiness   string          `json:"line_of_business"`
	LOBDescription   string          `json:"lob_description"`
	PolicyYear       int             `json:"policy_year"`
	WrittenPremium   decimal.Decimal `json:"written_premium"`
	EarnedPremium    decimal.Decimal `json:"earned_premium"`
	NetIncurred      decimal.Decimal `json:"net_incurred_loss"`
	TotalLAE         decimal.Decimal `json:"total_lae"`
	UWExpense        decimal.Decimal `json:"underwriting_expense"`
	UWExpenseRatio   decimal.Decimal `json:"underwriting_expense_ratio"`
	OperatingExpense decimal.Decimal `json:"operating_expense"`
	OpExpenseRatio   decimal.Decimal `json:"operating_expense_ratio"`
	LossRatio        decimal.Decimal `json:"loss_ratio"`
	LAERatio         decimal.Decimal `json:"lae_ratio"`
	CombinedRatio    decimal.Decimal `json:"combined_ratio"`
	UWProfit         decimal.Decimal `json:"underwriting_profit"`
	UWProfitRatio    decimal.Decimal `json:"underwriting_profit_ratio"`
}

// QuoteBindMetric rolls up quote outcomes by line of business and quote year.
type QuoteBindMetric struct {
	LineOfBusiness string          `json:"line_of_business"`
	LOBDescription string          `json:"lob_description"`
	QuoteYear      int             `json:"quote_year"`
	TotalQuotes    int             `json:"total_quotes"`
	BoundQuotes    int             `json:"bound_quotes"`
	DeclinedQuotes int             `json:"declined_quotes"`
	ExpiredQuotes  int             `json:"expired_quotes"`
	LostQuotes     int             `json:"lost_quotes"`
	TotalPremium   decimal.Decimal `json:"total_quoted_premium"`
	BoundPremium   decimal.Decimal `json:"bound_quoted_premium"`
	CloseRatio     decimal.Decimal `json:"close_ratio"`
	AveragePremium decimal.Decimal `json:"average_quoted_premium"`
}

// RetentionMetric counts renewal versus new business by line of business. A
// policy counts as a renewal iff it carries a non-null backward reference to
// a prior policy.
type RetentionMetric struct {
	LineOfBusiness   string          `json:"line_of_business"`
	LOBDescription   string          `json:"lob_description"`
	TotalPolicies    int             `json:"total_policies"`
	RenewalPolicies  int             `json:"renewal_policies"`
	NewPolicies      int             `json:"new_policies"`
	RetentionRatio   decimal.Decimal `json:"retention_ratio"`
	NewBusinessRatio decimal.Decimal `json:"new_business_ratio"`
}

// Metrics is the full gold-truth output of one computation pass.
type Metrics struct {
	LOBYear      []LOBYearSummary
	Underwriting []UnderwritingMetric
	QuoteBind    []QuoteBindMetric
	Retention    []RetentionMetric
}

var one = decimal.NewFromInt(1)

// ratio divides with the denominator floored at 1 and rounds to 6 places.
// The floor is a deliberate simplification carried over for gold-answer
// reproducibility, not a statistically rigorous choice.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	return num.DivRound(decimal.Max(den, one), 6)
}

type lobYearKey struct {
	lob  string
	year int
}

// Compute derives all gold aggregates from the current, non-deleted policy
// set, the non-deleted claim set, the non-reversal premium transactions, and
// the quotes. The rng is the run's threaded random source, consumed only for
// the earned-premium fallback and the underwriting expense-ratio draw.
func Compute(rng *rand.Rand, policies []model.PolicyVersion, claims []model.Claim,
	premiumTxns []model.PremiumTransaction, quotes []model.Quote) *Metrics {

	current := model.CurrentPolicies(policies)
	active := model.ActiveClaims(claims)

	claimsByPolicy := make(map[int][]model.Claim)
	for _, c := range active {
		claimsByPolicy[c.PolicyID] = append(claimsByPolicy[c.PolicyID], c)
	}

	writtenByPolicy := make(map[int]decimal.Decimal)
	earnedByPolicy := make(map[int]decimal.Decimal)
	for _, t := range premiumTxns {
		if t.IsReversal {
			continue
		}
		switch t.TransactionType {
		case model.PremTxnWritten:
			writtenByPolicy[t.PolicyID] = writtenByPolicy[t.PolicyID].Add(t.Amount)
		case model.PremTxnEarned:
			earnedByPolicy[t.PolicyID] = earnedByPolicy[t.PolicyID].Add(t.Amount)
		}
	}

	byKey := make(map[lobYearKey]*LOBYearSummary)
	var keys []lobYearKey
	for _, pol := range current {
		key := lobYearKey{pol.LineOfBusiness, pol.EffectiveDate.Year()}
		m, ok := byKey[key]
		if !ok {
			m = &LOBYearSummary{
				LineOfBusiness: key.lob,
				LOBDescription: model.LOBNames[key.lob],
				PolicyYear:     key.year,
			}
			byKey[key] = m
			keys = append(keys, key)
		}
		m.PolicyCount++
		m.ExposureUnits = m.ExposureUnits.Add(pol.ExposureUnits)

		wp := writtenByPolicy[pol.PolicyID]
		if wp.IsZero() {
			wp = pol.TotalPremium
		}
		m.WrittenPremium = m.WrittenPremium.Add(wp)

		ep := earnedByPolicy[pol.PolicyID]
		if ep.IsZero() {
			// No earned transactions: approximate as a drawn fraction of
			// written. Consumes run randomness; see package doc.
			ep = wp.Mul(decimal.NewFromFloat(0.7 + rng.Float64()*0.3)).Round(2)
		}
		m.EarnedPremium = m.EarnedPremium.Add(ep)

		for _, c := range claimsByPolicy[pol.PolicyID] {
			m.ClaimCount++
			if model.OpenClaimStatuses[c.ClaimStatus] {
				m.OpenClaims++
			} else {
				m.ClosedClaims++
			}
			m.PaidLoss = m.PaidLoss.Add(c.PaidLoss)
			m.PaidALAE = m.PaidALAE.Add(c.PaidALAE)
			m.PaidULAE = m.PaidULAE.Add(c.PaidULAE)
			m.Salvage = m.Salvage.Add(c.Salvage)
			m.Subrogation = m.Subrogation.Add(c.Subrogation)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lob != keys[j].lob {
			return keys[i].lob < keys[j].lob
		}
		return keys[i].year < keys[j].year
	})

	out := &Metrics{}
	for _, key := range keys {
		m := byKey[key]
		m.TotalLAE = m.PaidALAE.Add(m.PaidULAE).Round(2)
		m.NetIncurred = m.PaidLoss.Sub(m.Salvage).Sub(m.Subrogation).Round(2)
		m.TotalIncurred = m.PaidLoss.Add(m.PaidALAE).Add(m.PaidULAE).
			Sub(m.Salvage).Sub(m.Subrogation).Round(2)

		cnt := decimal.NewFromInt(int64(m.ClaimCount))
		polCnt := decimal.NewFromInt(int64(m.PolicyCount))
		m.Frequency = ratio(cnt, m.ExposureUnits)
		m.Severity = m.NetIncurred.DivRound(decimal.Max(cnt, one), 2)
		m.PurePremium = m.NetIncurred.DivRound(decimal.Max(m.ExposureUnits, one), 2)
		m.AveragePremium = m.WrittenPremium.DivRound(decimal.Max(polCnt, one), 2)
		m.LossRatio = ratio(m.NetIncurred, m.EarnedPremium)
		m.LAERatio = ratio(m.TotalLAE, m.EarnedPremium)
		m.LossLAERatio = ratio(m.NetIncurred.Add(m.TotalLAE), m.EarnedPremium)

		m.ExposureUnits = m.ExposureUnits.Round(2)
		m.WrittenPremium = m.WrittenPremium.Round(2)
		m.EarnedPremium = m.EarnedPremium.Round(2)
		m.PaidLoss = m.PaidLoss.Round(2)
		m.PaidALAE = m.PaidALAE.Round(2)
		m.PaidULAE = m.PaidULAE.Round(2)
		m.Salvage = m.Salvage.Round(2)
		m.Subrogation = m.Subrogation.Round(2)

		out.LOBYear = append(out.LOBYear, *m)
		out.Underwriting = append(out.Underwriting, underwriting(rng, *m))
	}

	out.QuoteBind = quoteBind(quotes)
	out.Retention = retention(current)
	return out
}

func underwriting(rng *rand.Rand, m LOBYearSummary) UnderwritingMetric {
	expenseRatio := decimal.NewFromFloat(0.25 + rng.Float64()*0.15).Round(6)
	uwExpense := m.WrittenPremium.Mul(expenseRatio).Round(2)
	operating := uwExpense.Add(m.TotalLAE).Round(2)
	profit := m.EarnedPremium.Sub(m.NetIncurred).Sub(m.TotalLAE).Sub(uwExpense).Round(2)

	return UnderwritingMetric{
		LineOfBusiness:   m.LineOfBusiness,
		LOBDescription:   m.LOBDescription,
		PolicyYear:       m.PolicyYear,
		WrittenPremium:   m.WrittenPremium,
		EarnedPremium:    m.EarnedPremium,
		NetIncurred:      m.NetIncurred,
		TotalLAE:         m.TotalLAE,
		UWExpense:        uwExpense,
		UWExpenseRatio:   expenseRatio,
		OperatingExpense: operating,
		OpExpenseRatio:   ratio(operating, m.EarnedPremium),
		LossRatio:        m.LossRatio,
		LAERatio:         m.LAERatio,
		CombinedRatio:    m.LossRatio.Add(m.LAERatio).Add(expenseRatio).Round(6),
		UWProfit:         profit,
		UWProfitRatio:    ratio(profit, m.EarnedPremium),
	}
}

func quoteBind(quotes []model.Quote) []QuoteBindMetric {
	byKey := make(map[lobYearKey]*QuoteBindMetric)
	var keys []lobYearKey
	for _, q := range quotes {
		key := lobYearKey{q.LineOfBusiness, q.QuoteDate.Year()}
		m, ok := byKey[key]
		if !ok {
			m = &QuoteBindMetric{
				LineOfBusiness: key.lob,
				LOBDescription: model.LOBNames[key.lob],
				QuoteYear:      key.year,
			}
			byKey[key] = m
			keys = append(keys, key)
		}
		m.TotalQuotes++
		m.TotalPremium = m.TotalPremium.Add(q.QuotedPremium)
		switch q.Status {
		case "BOUND":
			m.BoundQuotes++
			m.BoundPremium = m.BoundPremium.Add(q.QuotedPremium)
		case "DECLINED":
			m.DeclinedQuotes++
		case "EXPIRED":
			m.ExpiredQuotes++
		case "LOST":
			m.LostQuotes++
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lob != keys[j].lob {
			return keys[i].lob < keys[j].lob
		}
		return keys[i].year < keys[j].year
	})

	var out []QuoteBindMetric
	for _, key := range keys {
		m := byKey[key]
		total := decimal.NewFromInt(int64(m.TotalQuotes))
		m.CloseRatio = ratio(decimal.NewFromInt(int64(m.BoundQuotes)), total)
		m.AveragePremium = m.TotalPremium.DivRound(decimal.Max(total, one), 2)
		m.TotalPremium = m.TotalPremium.Round(2)
		m.BoundPremium = m.BoundPremium.Round(2)
		out = append(out, *m)
	}
	return out
}

func retention(current []model.PolicyVersion) []RetentionMetric {
	byLOB := make(map[string]*RetentionMetric)
	var lobs []string
	for _, pol := range current {
		m, ok := byLOB[pol.LineOfBusiness]
		if !ok {
			m = &RetentionMetric{
				LineOfBusiness: pol.LineOfBusiness,
				LOBDescription: model.LOBNames[pol.LineOfBusiness],
			}
			byLOB[pol.LineOfBusiness] = m
			lobs = append(lobs, pol.LineOfBusiness)
		}
		m.TotalPolicies++
		if pol.RenewalOfID != nil {
			m.RenewalPolicies++
		} else {
			m.NewPolicies++
		}
	}

	sort.Strings(lobs)
	var out []RetentionMetric
	for _, lob := range lobs {
		m := byLOB[lob]
		total := decimal.NewFromInt(int64(m.TotalPolicies))
		m.RetentionRatio = ratio(decimal.NewFromInt(int64(m.RenewalPolicies)), total)
		m.NewBusinessRatio = ratio(decimal.NewFromInt(int64(m.NewPolicies)), total)
		out = append(out, *m)
	}
	return out
}
