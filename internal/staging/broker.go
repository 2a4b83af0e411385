package staging

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stonebriar/insbench/internal/model"
)

// BrokerFeedRow models a broker submission feed row. ~10% of submissions are
// resubmitted with a slightly later date and a perturbed premium.
type BrokerFeedRow struct {
	SubmissionID    string          `json:"submission_id"`
	BrokerName      string          `json:"broker_name"`
	BrokerCode      string          `json:"broker_code"`
	InsuredName     string          `json:"insured_name"`
	LineOfBusiness  string          `json:"line_of_business"`
	State           string          `json:"state"`
	SubmissionDate  string          `json:"submission_date"`
	RequestedEff    string          `json:"requested_effective"`
	QuotedPremium   decimal.Decimal `json:"quoted_premium"`
	Status          string          `json:"status"`
	CompetitorMkt   string          `json:"competitor_market"`
	DeclineNotes    string          `json:"decline_notes"`
	BoundPolicyRef  string          `json:"bound_policy_ref"`
	DataQualityFlag string          `json:"data_quality_flag"`
	IngestionTS     string          `json:"ingestion_ts"`
}

// BrokerFeed projects a sample of quotes (up to 3000) into the broker shape.
func (p *Projector) BrokerFeed(quotes []model.Quote) []BrokerFeedRow {
	k := 3000
	if k > len(quotes) {
		k = len(quotes)
	}
	var rows []BrokerFeedRow
	for _, idx := range p.rng.Perm(len(quotes))[:k] {
		quote := quotes[idx]
		copies := 1
		if p.chance(0.10) {
			copies = 2
		}
		for c := 0; c < copies; c++ {
			subDate := quote.QuoteDate
			premium := quote.QuotedPremium
			if c > 0 {
				// Resubmission drift: later date, repriced premium.
				subDate = subDate.AddDate(0, 0, p.between(1, 7))
				premium = premium.Mul(decimal.NewFromFloat(0.90 + p.rng.Float64()*0.20)).Round(2)
			}
			insuredName := p.fake.Company()
			if p.chance(0.7) {
				insuredName = p.fake.Name()
			}
			boundRef := ""
			if quote.BoundPolicyID != nil {
				boundRef = fmt.Sprintf("POL-%s-%06d", quote.LineOfBusiness, *quote.BoundPolicyID)
			}
			rows = append(rows, BrokerFeedRow{
				SubmissionID:    fmt.Sprintf("SUB-%06d", p.between(100000, 999999)),
				BrokerName:      p.fake.Company(),
				BrokerCode:      p.fake.Numerify("BRK-####"),
				InsuredName:     insuredName,
				LineOfBusiness:  quote.LineOfBusiness,
				State:           quote.State,
				SubmissionDate:  isoDate(subDate),
				RequestedEff:    isoDate(quote.QuoteDate.AddDate(0, 0, p.between(15, 90))),
				QuotedPremium:   premium,
				Status:          strings.ToLower(quote.Status),
				CompetitorMkt:   quote.CompetitorName,
				DeclineNotes:    quote.DeclineReason,
				BoundPolicyRef:  boundRef,
				DataQualityFlag: pickString(p, []string{"OK", "WARN_MISSING_FIELDS", "WARN_DUPLICATE", ""}),
				IngestionTS:     p.loadTime.Format("2006-01-02T15:04:05"),
			})
		}
	}
	return rows
}

func pickString(p *Projector, items []string) string {
	return items[p.rng.Intn(len(items))]
}
