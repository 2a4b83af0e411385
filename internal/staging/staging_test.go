package staging

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonebriar/insbench/internal/model"
)

var testLoadTime = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

func newProjector(seed int64) *Projector {
	return New(rand.New(rand.NewSource(seed)), gofakeit.New(uint64(seed)), testLoadTime)
}

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func somePolicies(n int) []model.PolicyVersion {
	out := make([]model.PolicyVersion, n)
	for i := range out {
		src := "MANUAL_ENTRY"
		if i%3 == 0 {
			src = "LEGACY_AS400"
		}
		out[i] = model.PolicyVersion{
			RowID: i + 1, PolicyID: i + 1, PolicyNumber: "POL-HO-000001",
			VersionNumber: 1, InsuredID: i + 1, AgentID: 1,
			LineOfBusiness: "HO", PolicyStatus: "ACTIVE",
			EffectiveDate: day(2023, 1, 1), ExpirationDate: day(2024, 1, 1),
			SystemEntryDate: day(2022, 12, 20), ValidFrom: day(2022, 12, 20),
			TotalPremium: d(1200), ExposureUnits: d(3),
			State: "TX", TerritoryCode: "T01",
			Deductible: 500, PolicyLimit: 100000,
			SourceSystem: src, IsCurrentRecord: true,
		}
	}
	return out
}

func TestLegacyPolicies(t *testing.T) {
	t.Parallel()

	policies := somePolicies(60)
	rows := newProjector(1).LegacyPolicies(policies)

	t.Run("orphan rows appended", func(t *testing.T) {
		t.Parallel()
		orphans := 0
		for _, r := range rows {
			if strings.HasPrefix(r.PolNbr, "POL-ORPHAN-") {
				orphans++
				assert.Equal(t, "UNKNOWN", r.InsrdID)
			}
		}
		assert.Equal(t, OrphanRowCount, orphans)
	})

	t.Run("source tagged rows always included", func(t *testing.T) {
		t.Parallel()
		tagged := 0
		for _, p := range policies {
			if p.SourceSystem == "LEGACY_AS400" {
				tagged++
			}
		}
		// every tagged policy projects; untagged ones only sometimes
		assert.GreaterOrEqual(t, len(rows)-OrphanRowCount, tagged)
	})

	t.Run("packed dates and stringified values", func(t *testing.T) {
		t.Parallel()
		r := rows[0]
		assert.Equal(t, "20230101", r.EffDt)
		assert.Equal(t, "20240101", r.ExpDt)
		assert.Equal(t, "ACT", r.Status)
		assert.Equal(t, "1200", r.WrtPrem)
		assert.Equal(t, "N/A", r.CnclDt)
		assert.Equal(t, "Y", r.CurrInd)
		assert.Equal(t, "2025-06-15T08:30:00", r.LoadTimestamp)
	})
}

func TestClaimLifecycleEvents(t *testing.T) {
	t.Parallel()

	base := model.Claim{ClaimStatus: "OPEN"}

	t.Run("minimal claim", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"FNOL", "ASSIGNMENT"}, claimLifecycleEvents(base))
	})

	t.Run("financials add events", func(t *testing.T) {
		t.Parallel()
		c := base
		c.Reserve = d(5000)
		c.PaidLoss = d(1000)
		assert.Equal(t, []string{"FNOL", "ASSIGNMENT", "RESERVE_SET", "PAYMENT"},
			claimLifecycleEvents(c))
	})

	t.Run("closed claim gets closure", func(t *testing.T) {
		t.Parallel()
		c := base
		c.ClaimStatus = "CLOSED"
		assert.Equal(t, []string{"FNOL", "ASSIGNMENT", "CLOSURE"}, claimLifecycleEvents(c))
	})

	t.Run("reopened claim closed then reopened", func(t *testing.T) {
		t.Parallel()
		c := base
		c.ClaimStatus = "REOPENED"
		c.Litigation = true
		assert.Equal(t, []string{"FNOL", "ASSIGNMENT", "CLOSURE", "REOPEN", "LITIGATION_REFERRAL"},
			claimLifecycleEvents(c))
	})

	t.Run("pure function of the claim", func(t *testing.T) {
		t.Parallel()
		c := base
		c.Reserve = d(100)
		assert.Equal(t, claimLifecycleEvents(c), claimLifecycleEvents(c))
	})
}

func TestClaimEvents(t *testing.T) {
	t.Parallel()

	claims := make([]model.Claim, 40)
	for i := range claims {
		claims[i] = model.Claim{
			ClaimID: i + 1, ClaimNumber: "CLM-00000001", PolicyNumber: "POL-HO-000001",
			LineOfBusiness: "HO", ClaimStatus: "CLOSED",
			LossDate: day(2023, 2, 1), ReportDate: day(2023, 2, 10),
			EntryDate: day(2023, 2, 12),
			Reserve:   d(1000), PaidLoss: d(500),
			SourceSystem: "GUIDEWIRE_PC",
		}
	}
	rows := newProjector(2).ClaimEvents(claims)
	require.NotEmpty(t, rows)

	// every claim is tagged GUIDEWIRE_PC, so all project; each yields at
	// least the 5-event lifecycle, plus ~8% duplicates
	assert.GreaterOrEqual(t, len(rows), 40*5)

	lowered, kept := 0, 0
	for _, r := range rows {
		assert.Equal(t, "2023-02-01", r.DateOfLoss)
		assert.Equal(t, "2023-02-10", r.DateReported)
		switch r.ClaimState {
		case "closed":
			lowered++
		case "CLOSED":
			kept++
		default:
			t.Fatalf("unexpected claim state %q", r.ClaimState)
		}
	}
	// case folding is per row, both variants should appear
	assert.Greater(t, lowered, 0)
	assert.Greater(t, kept, 0)
}

func TestBrokerFeed(t *testing.T) {
	t.Parallel()

	bound := 7
	quotes := make([]model.Quote, 300)
	for i := range quotes {
		quotes[i] = model.Quote{
			QuoteID: i + 1, LineOfBusiness: "AUTO", State: "TX",
			QuoteDate: day(2023, 4, 1), QuotedPremium: d(1500),
			Status: "BOUND", BoundPolicyID: &bound,
		}
	}
	rows := newProjector(3).BrokerFeed(quotes)

	// every quote projects at least once, ~10% twice
	assert.GreaterOrEqual(t, len(rows), 300)
	assert.Greater(t, len(rows), 300+10)

	resubmitted := 0
	for _, r := range rows {
		assert.Equal(t, "bound", r.Status)
		assert.Equal(t, "POL-AUTO-000007", r.BoundPolicyRef)
		if r.SubmissionDate != "2023-04-01" {
			resubmitted++
			// resubmissions land 1-7 days later with a repriced premium
			sub, err := time.Parse("2006-01-02", r.SubmissionDate)
			require.NoError(t, err)
			diff := int(sub.Sub(day(2023, 4, 1)).Hours() / 24)
			assert.GreaterOrEqual(t, diff, 1)
			assert.LessOrEqual(t, diff, 7)
			assert.True(t, r.QuotedPremium.GreaterThanOrEqual(d(1350)))
			assert.True(t, r.QuotedPremium.LessThanOrEqual(d(1650)))
		}
	}
	assert.Greater(t, resubmitted, 0)
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	p := newProjector(4)
	sawCurrency, sawParens, sawPlain := false, false, false
	for i := 0; i < 200; i++ {
		s := p.formatAmount(d(-1234.5))
		switch {
		case strings.HasPrefix(s, "-$"):
			sawCurrency = true
			assert.Equal(t, "-$1,234.50", s)
		case strings.HasPrefix(s, "("):
			sawParens = true
			assert.Equal(t, "(1,234.50)", s)
		default:
			sawPlain = true
			assert.Equal(t, "-1234.5", s)
		}
	}
	assert.True(t, sawCurrency)
	assert.True(t, sawParens)
	assert.True(t, sawPlain)
}

func TestFormattedPremiums(t *testing.T) {
	t.Parallel()

	txns := make([]model.PremiumTransaction, 100)
	for i := range txns {
		txns[i] = model.PremiumTransaction{
			TransactionID: i + 1, PolicyNumber: "POL-HO-000001",
			LineOfBusiness: "HO", TransactionType: model.PremTxnEndorsement,
			TransactionDate: day(2023, 7, 4), AccountingDate: day(2023, 7, 10),
			Amount: d(250), AccountingPeriod: "2023-07", State: "TX", AgentID: 3,
			SourceSystem: "DUCK_CREEK",
		}
	}
	rows := newProjector(5).FormattedPremiums(txns)
	require.Len(t, rows, 100)

	iso, us := 0, 0
	for _, r := range rows {
		assert.Equal(t, "ENDO", r.TxnTypeCd)
		assert.Equal(t, "AGT-0003", r.ProducerCd)
		assert.Equal(t, "N", r.ReversalFlag)
		switch r.TxnDt {
		case "2023-07-04":
			iso++
		case "07/04/2023":
			us++
		default:
			t.Fatalf("unexpected txn date format %q", r.TxnDt)
		}
	}
	// both date formats must appear
	assert.Greater(t, iso, 0)
	assert.Greater(t, us, 0)
}

func TestActivityLog(t *testing.T) {
	t.Parallel()

	policies := somePolicies(3)
	policies[1].VersionNumber = 2
	policies[2].IsDeleted = true
	claims := []model.Claim{
		{ClaimID: 1, ClaimNumber: "CLM-00000001", ClaimStatus: "OPEN",
			LossDate: day(2023, 1, 5), CreatedAt: day(2023, 1, 8), SourceSystem: "GUIDEWIRE_PC"},
	}

	rows := newProjector(6).ActivityLog(policies, claims)
	require.Len(t, rows, 4)

	assert.Equal(t, "INSERT", rows[0].Action)
	assert.Equal(t, "UPDATE", rows[1].Action)
	assert.Equal(t, "DELETE", rows[2].Action)

	claimRow := rows[3]
	assert.Equal(t, "CLAIM", claimRow.EntityType)
	assert.Equal(t, "INSERT", claimRow.Action)
	assert.Contains(t, claimRow.PayloadJSON, `"status":"OPEN"`)
	assert.Contains(t, claimRow.PayloadJSON, `"loss_date":"2023-01-05"`)
}
