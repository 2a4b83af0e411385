package staging

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/stonebriar/insbench/internal/model"
)

// FormattedPremiumRow is a Duck-Creek-style extract row. The amount field is
// rendered in one of three textual formats and the transaction date in one of
// two, chosen per row rather than per source record. This is the deliberate
// format-inconsistency surface of the benchmark.
type FormattedPremiumRow struct {
	DCTransactionID string `json:"dc_transaction_id"`
	PolicyRef       string `json:"policy_ref"`
	Lob             string `json:"lob"`
	TxnTypeCd       string `json:"txn_type_cd"`
	TxnDt           string `json:"txn_dt"`
	AcctgDt         string `json:"acctg_dt"`
	PremiumAmt      string `json:"premium_amt"`
	AcctPeriod      string `json:"acct_period"`
	RiskState       string `json:"risk_state"`
	ProducerCd      string `json:"producer_cd"`
	ReversalFlag    string `json:"reversal_flag"`
	ReversalOfID    string `json:"reversal_of_id"`
	LoadDt          string `json:"load_dt"`
	FileName        string `json:"file_name"`
}

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// grouped renders an amount with thousands separators and two fraction digits.
func grouped(d decimal.Decimal) string {
	f, _ := d.Abs().Float64()
	s := usPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// formatAmount picks one of the three alternating renderings: plain,
// currency-prefixed, or parenthesized-negative accounting notation.
func (p *Projector) formatAmount(d decimal.Decimal) string {
	r := p.rng.Float64()
	switch {
	case r < 0.3:
		if d.IsNegative() {
			return "-$" + grouped(d.Abs())
		}
		return "$" + grouped(d)
	case r < 0.5:
		if d.IsNegative() {
			return "(" + grouped(d.Abs()) + ")"
		}
		return grouped(d)
	default:
		return d.String()
	}
}

// FormattedPremiums projects premium transactions into the formatted shape.
func (p *Projector) FormattedPremiums(txns []model.PremiumTransaction) []FormattedPremiumRow {
	var rows []FormattedPremiumRow
	for _, txn := range txns {
		if txn.SourceSystem != "DUCK_CREEK" && !p.chance(0.35) {
			continue
		}
		txnDt := isoDate(txn.TransactionDate)
		if p.chance(0.4) {
			txnDt = usDate(txn.TransactionDate)
		}
		reversalOf := ""
		if txn.ReversalOfTxnID != nil {
			reversalOf = fmt.Sprintf("%d", *txn.ReversalOfTxnID)
		}
		rows = append(rows, FormattedPremiumRow{
			DCTransactionID: fmt.Sprintf("DC-%07d", p.between(1000000, 9999999)),
			PolicyRef:       txn.PolicyNumber,
			Lob:             txn.LineOfBusiness,
			TxnTypeCd:       truncate4(txn.TransactionType),
			TxnDt:           txnDt,
			AcctgDt:         isoDate(txn.AccountingDate),
			PremiumAmt:      p.formatAmount(txn.Amount),
			AcctPeriod:      txn.AccountingPeriod,
			RiskState:       txn.State,
			ProducerCd:      fmt.Sprintf("AGT-%04d", txn.AgentID),
			ReversalFlag:    yn(txn.IsReversal),
			ReversalOfID:    reversalOf,
			LoadDt:          usDate(p.loadTime),
			FileName:        fmt.Sprintf("dc_prem_extract_%03d.csv", p.between(1, 100)),
		})
	}
	return rows
}

func truncate4(s string) string {
	if len(s) > 4 {
		return s[:4]
	}
	return s
}
