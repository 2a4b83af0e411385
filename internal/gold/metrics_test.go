package gold

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebriar/insbench/internal/model"
)

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// fixture: one HO 2023 policy with claims and explicit premium transactions,
// so no fields are left to the rng fallback.
func fixture() ([]model.PolicyVersion, []model.Claim, []model.PremiumTransaction) {
	policies := []model.PolicyVersion{
		{
			PolicyID: 1, LineOfBusiness: "HO", LOBDescription: "Homeowners",
			EffectiveDate: day(2023, 3, 1), TotalPremium: d(10000),
			ExposureUnits: d(10), IsCurrentRecord: true,
		},
		// superseded version of the same policy, must not be counted
		{
			PolicyID: 1, LineOfBusiness: "HO",
			EffectiveDate: day(2023, 3, 1), TotalPremium: d(9000),
			ExposureUnits: d(10), IsCurrentRecord: false,
		},
		// soft-deleted current row, must not be counted
		{
			PolicyID: 2, LineOfBusiness: "HO",
			EffectiveDate: day(2023, 6, 1), TotalPremium: d(5000),
			ExposureUnits: d(5), IsCurrentRecord: true, IsDeleted: true,
		},
	}
	claims := []model.Claim{
		{
			ClaimID: 1, PolicyID: 1, ClaimStatus: "OPEN",
			PaidLoss: d(4000), PaidALAE: d(500), PaidULAE: d(100),
			Salvage: d(200), Subrogation: d(300),
		},
		{
			ClaimID: 2, PolicyID: 1, ClaimStatus: "CLOSED",
			PaidLoss: d(2000), PaidALAE: d(400),
		},
		// deleted claim, must not be counted
		{ClaimID: 3, PolicyID: 1, ClaimStatus: "OPEN", PaidLoss: d(99999), IsDeleted: true},
	}
	txns := []model.PremiumTransaction{
		{TransactionID: 1, PolicyID: 1, TransactionType: model.PremTxnWritten, Amount: d(10000)},
		{TransactionID: 2, PolicyID: 1, TransactionType: model.PremTxnEarned, Amount: d(8000)},
		// reversal must be excluded from the rollup
		{TransactionID: 3, PolicyID: 1, TransactionType: model.PremTxnReversal, Amount: d(-10000), IsReversal: true},
	}
	return policies, claims, txns
}

func TestComputeLOBYearSummary(t *testing.T) {
	t.Parallel()

	policies, claims, txns := fixture()
	m := Compute(rand.New(rand.NewSource(1)), policies, claims, txns, nil)

	require.Len(t, m.LOBYear, 1)
	s := m.LOBYear[0]

	assert.Equal(t, "HO", s.LineOfBusiness)
	assert.Equal(t, 2023, s.PolicyYear)
	assert.Equal(t, 1, s.PolicyCount)
	assert.Equal(t, 2, s.ClaimCount)
	assert.Equal(t, 1, s.OpenClaims)
	assert.Equal(t, 1, s.ClosedClaims)

	assert.True(t, s.WrittenPremium.Equal(d(10000)), "written %s", s.WrittenPremium)
	assert.True(t, s.EarnedPremium.Equal(d(8000)), "earned %s", s.EarnedPremium)

	// net incurred: (4000+2000) - 200 - 300 = 5500
	assert.True(t, s.NetIncurred.Equal(d(5500)), "net incurred %s", s.NetIncurred)
	// total LAE: (500+400) + 100 = 1000
	assert.True(t, s.TotalLAE.Equal(d(1000)), "total LAE %s", s.TotalLAE)
	// total incurred: 5500 + 1000 = 6500
	assert.True(t, s.TotalIncurred.Equal(d(6500)), "total incurred %s", s.TotalIncurred)

	// ratios round to 6 places
	assert.True(t, s.LossRatio.Equal(d(0.6875)), "loss ratio %s", s.LossRatio)
	assert.True(t, s.LAERatio.Equal(d(0.125)), "lae ratio %s", s.LAERatio)
	assert.True(t, s.LossLAERatio.Equal(d(0.8125)), "loss+lae ratio %s", s.LossLAERatio)

	// frequency: 2 claims / 10 exposure units
	assert.True(t, s.Frequency.Equal(d(0.2)), "frequency %s", s.Frequency)
	// severity: 5500 / 2
	assert.True(t, s.Severity.Equal(d(2750)), "severity %s", s.Severity)
	// pure premium: 5500 / 10
	assert.True(t, s.PurePremium.Equal(d(550)), "pure premium %s", s.PurePremium)
}

func TestComputeUnderwriting(t *testing.T) {
	t.Parallel()

	policies, claims, txns := fixture()
	m := Compute(rand.New(rand.NewSource(1)), policies, claims, txns, nil)

	require.Len(t, m.Underwriting, 1)
	u := m.Underwriting[0]

	// expense ratio is drawn from U(0.25, 0.40)
	assert.True(t, u.UWExpenseRatio.GreaterThanOrEqual(d(0.25)), "expense ratio %s", u.UWExpenseRatio)
	assert.True(t, u.UWExpenseRatio.LessThan(d(0.40)), "expense ratio %s", u.UWExpenseRatio)

	wantExpense := u.WrittenPremium.Mul(u.UWExpenseRatio).Round(2)
	assert.True(t, u.UWExpense.Equal(wantExpense))

	wantCombined := u.LossRatio.Add(u.LAERatio).Add(u.UWExpenseRatio).Round(6)
	assert.True(t, u.CombinedRatio.Equal(wantCombined), "combined %s want %s", u.CombinedRatio, wantCombined)

	wantProfit := u.EarnedPremium.Sub(u.NetIncurred).Sub(u.TotalLAE).Sub(u.UWExpense).Round(2)
	assert.True(t, u.UWProfit.Equal(wantProfit))
}

func TestRatioDenominatorFloor(t *testing.T) {
	t.Parallel()

	// a lob-year with zero earned premium must not divide by zero
	policies := []model.PolicyVersion{
		{PolicyID: 1, LineOfBusiness: "WC", EffectiveDate: day(2022, 1, 1),
			TotalPremium: decimal.Zero, ExposureUnits: decimal.Zero, IsCurrentRecord: true},
	}
	claims := []model.Claim{
		{ClaimID: 1, PolicyID: 1, ClaimStatus: "CLOSED", PaidLoss: d(100)},
	}
	txns := []model.PremiumTransaction{
		{TransactionID: 1, PolicyID: 1, TransactionType: model.PremTxnEarned, Amount: d(0.0)},
		{TransactionID: 2, PolicyID: 1, TransactionType: model.PremTxnWritten, Amount: d(0.0)},
	}

	m := Compute(rand.New(rand.NewSource(1)), policies, claims, txns, nil)
	require.Len(t, m.LOBYear, 1)
	// denominator floored at 1: loss ratio equals the raw net incurred
	assert.True(t, m.LOBYear[0].LossRatio.Equal(d(100)), "loss ratio %s", m.LOBYear[0].LossRatio)
	assert.True(t, m.LOBYear[0].Frequency.Equal(d(1)), "frequency %s", m.LOBYear[0].Frequency)
}

func TestQuoteBindMetrics(t *testing.T) {
	t.Parallel()

	quotes := []model.Quote{
		{QuoteID: 1, LineOfBusiness: "AUTO", QuoteDate: day(2023, 2, 1), Status: "BOUND", QuotedPremium: d(1000)},
		{QuoteID: 2, LineOfBusiness: "AUTO", QuoteDate: day(2023, 5, 1), Status: "DECLINED", QuotedPremium: d(2000)},
		{QuoteID: 3, LineOfBusiness: "AUTO", QuoteDate: day(2023, 8, 1), Status: "EXPIRED", QuotedPremium: d(3000)},
		{QuoteID: 4, LineOfBusiness: "AUTO", QuoteDate: day(2023, 9, 1), Status: "LOST", QuotedPremium: d(4000)},
		{QuoteID: 5, LineOfBusiness: "AUTO", QuoteDate: day(2022, 1, 1), Status: "QUOTED", QuotedPremium: d(500)},
	}

	m := Compute(rand.New(rand.NewSource(1)), nil, nil, nil, quotes)
	require.Len(t, m.QuoteBind, 2)

	// sorted by lob then year: 2022 first
	assert.Equal(t, 2022, m.QuoteBind[0].QuoteYear)

	q := m.QuoteBind[1]
	assert.Equal(t, 2023, q.QuoteYear)
	assert.Equal(t, 4, q.TotalQuotes)
	assert.Equal(t, 1, q.BoundQuotes)
	assert.Equal(t, 1, q.DeclinedQuotes)
	assert.Equal(t, 1, q.ExpiredQuotes)
	assert.Equal(t, 1, q.LostQuotes)
	assert.True(t, q.CloseRatio.Equal(d(0.25)), "close ratio %s", q.CloseRatio)
	assert.True(t, q.BoundPremium.Equal(d(1000)))
	assert.True(t, q.AveragePremium.Equal(d(2500)))
}

func TestRetentionMetrics(t *testing.T) {
	t.Parallel()

	renewed := 7
	policies := []model.PolicyVersion{
		{PolicyID: 1, LineOfBusiness: "HO", EffectiveDate: day(2023, 1, 1), IsCurrentRecord: true, RenewalOfID: &renewed},
		{PolicyID: 2, LineOfBusiness: "HO", EffectiveDate: day(2023, 1, 1), IsCurrentRecord: true},
		{PolicyID: 3, LineOfBusiness: "HO", EffectiveDate: day(2023, 1, 1), IsCurrentRecord: true},
		{PolicyID: 4, LineOfBusiness: "HO", EffectiveDate: day(2023, 1, 1), IsCurrentRecord: true, RenewalOfID: &renewed},
	}

	m := Compute(rand.New(rand.NewSource(1)), policies, nil, nil, nil)
	require.Len(t, m.Retention, 1)
	r := m.Retention[0]

	assert.Equal(t, 4, r.TotalPolicies)
	assert.Equal(t, 2, r.RenewalPolicies)
	assert.Equal(t, 2, r.NewPolicies)
	assert.True(t, r.RetentionRatio.Equal(d(0.5)), "retention %s", r.RetentionRatio)
	assert.True(t, r.NewBusinessRatio.Equal(d(0.5)))
}

func TestComputeDeterministicOrder(t *testing.T) {
	t.Parallel()

	policies := []model.PolicyVersion{
		{PolicyID: 1, LineOfBusiness: "WC", EffectiveDate: day(2023, 1, 1), TotalPremium: d(100), ExposureUnits: d(1), IsCurrentRecord: true},
		{PolicyID: 2, LineOfBusiness: "AUTO", EffectiveDate: day(2022, 1, 1), TotalPremium: d(100), ExposureUnits: d(1), IsCurrentRecord: true},
		{PolicyID: 3, LineOfBusiness: "AUTO", EffectiveDate: day(2024, 1, 1), TotalPremium: d(100), ExposureUnits: d(1), IsCurrentRecord: true},
	}
	txns := []model.PremiumTransaction{
		{TransactionID: 1, PolicyID: 1, TransactionType: model.PremTxnEarned, Amount: d(80)},
		{TransactionID: 2, PolicyID: 2, TransactionType: model.PremTxnEarned, Amount: d(80)},
		{TransactionID: 3, PolicyID: 3, TransactionType: model.PremTxnEarned, Amount: d(80)},
	}

	a := Compute(rand.New(rand.NewSource(9)), policies, nil, txns, nil)
	b := Compute(rand.New(rand.NewSource(9)), policies, nil, txns, nil)
	assert.Equal(t, a, b)

	require.Len(t, a.LOBYear, 3)
	assert.Equal(t, "AUTO", a.LOBYear[0].LineOfBusiness)
	assert.Equal(t, 2022, a.LOBYear[0].PolicyYear)
	assert.Equal(t, "AUTO", a.LOBYear[1].LineOfBusiness)
	assert.Equal(t, 2024, a.LOBYear[1].PolicyYear)
	assert.Equal(t, "WC", a.LOBYear[2].LineOfBusiness)
}
