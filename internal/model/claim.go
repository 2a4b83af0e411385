package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim references a policy's current state. The four date fields carry
// distinct semantics: LossDate is when the loss occurred, ReportDate when the
// insured reported it, EntryDate when the adjuster keyed it, ProcessingDate
// when batch processing last touched it. LossDate <= ReportDate <= EntryDate
// <= ProcessingDate always holds.
type Claim struct {
	ClaimID        int             `json:"claim_id"`
	ClaimNumber    string          `json:"claim_number"`
	PolicyID       int             `json:"policy_id"`
	PolicyNumber   string          `json:"policy_number"`
	InsuredID      int             `json:"insured_id"`
	LineOfBusiness string          `json:"line_of_business"`
	LossDate       time.Time       `json:"loss_date"`
	ReportDate     time.Time       `json:"report_date"`
	EntryDate      time.Time       `json:"entry_date"`
	ProcessingDate time.Time       `json:"processing_date"`
	ClaimStatus    string          `json:"claim_status"`
	CauseOfLoss    string          `json:"cause_of_loss"`
	LossDesc       string          `json:"loss_description"`
	LossState      string          `json:"loss_state"`
	LossZip        string          `json:"loss_zip"`
	ClaimantName   string          `json:"claimant_name"`
	ClaimantType   string          `json:"claimant_type"`
	AdjusterID     int             `json:"adjuster_id"`
	AdjusterName   string          `json:"adjuster_name"`
	Reserve        decimal.Decimal `json:"reserve_amount"`
	PaidLoss       decimal.Decimal `json:"paid_loss_amount"`
	PaidALAE       decimal.Decimal `json:"paid_alae_amount"`
	PaidULAE       decimal.Decimal `json:"paid_ulae_amount"`
	Salvage        decimal.Decimal `json:"salvage_amount"`
	Subrogation    decimal.Decimal `json:"subrogation_amount"`
	TotalIncurred  decimal.Decimal `json:"total_incurred"`
	CatCode        string          `json:"catastrophe_code,omitempty"`
	Litigation     bool            `json:"litigation_flag"`
	FraudIndicator bool            `json:"fraud_indicator"`
	CloseDate      *time.Time      `json:"close_date,omitempty"`
	ReopenDate     *time.Time      `json:"reopen_date,omitempty"`
	SourceSystem   string          `json:"source_system"`
	IsDeleted      bool            `json:"is_deleted"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ActiveClaims returns the non-deleted subset.
func ActiveClaims(rows []Claim) []Claim {
	var out []Claim
	for _, c := range rows {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out
}

// ClaimTransaction is a claim financial transaction. A VOID row records the
// voided PAYMENT's id in VoidOfTransactionID and carries the exact negation of
// its amount, so a transaction plus all its voids nets to zero.
type ClaimTransaction struct {
	TransactionID   int             `json:"transaction_id"`
	ClaimID         int             `json:"claim_id"`
	ClaimNumber     string          `json:"claim_number"`
	TransactionType string          `json:"transaction_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	PostingDate     time.Time       `json:"posting_date"`
	CheckDate       *time.Time      `json:"check_date,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	CheckNumber     string          `json:"check_number,omitempty"`
	PayeeName       string          `json:"payee_name,omitempty"`
	Description     string          `json:"description"`
	IsVoid          bool            `json:"is_void"`
	VoidOfTxnID     *int            `json:"void_of_transaction_id,omitempty"`
	CreatedBy       string          `json:"created_by"`
	LoadTS          time.Time       `json:"load_ts"`
	CreatedAt       time.Time       `json:"created_at"`
}
