package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PremiumTransaction belongs to a policy's current state. TransactionDate <=
// AccountingDate <= BookingDate always holds; EffectiveDate equals
// TransactionDate except for ENDORSEMENT rows, which may apply retroactively.
// A REVERSAL row negates the amount of the transaction it references.
type PremiumTransaction struct {
	TransactionID    int             `json:"transaction_id"`
	PolicyID         int             `json:"policy_id"`
	PolicyNumber     string          `json:"policy_number"`
	LineOfBusiness   string          `json:"line_of_business"`
	TransactionType  string          `json:"transaction_type"`
	TransactionDate  time.Time       `json:"transaction_date"`
	AccountingDate   time.Time       `json:"accounting_date"`
	BookingDate      time.Time       `json:"booking_date"`
	EffectiveDate    time.Time       `json:"effective_date"`
	Amount           decimal.Decimal `json:"amount"`
	AccountingPeriod string          `json:"accounting_period"` // YYYY-MM
	State            string          `json:"state"`
	AgentID          int             `json:"agent_id"`
	IsReversal       bool            `json:"is_reversal"`
	ReversalOfTxnID  *int            `json:"reversal_of_transaction_id,omitempty"`
	SourceSystem     string          `json:"source_system"`
	LoadTS           time.Time       `json:"load_ts"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Quote is independent of policies except for a weak BoundPolicyID
// back-reference when the quote was bound.
type Quote struct {
	QuoteID        int             `json:"quote_id"`
	QuoteNumber    string          `json:"quote_number"`
	InsuredID      int             `json:"insured_id"`
	AgentID        int             `json:"agent_id"`
	LineOfBusiness string          `json:"line_of_business"`
	State          string          `json:"state"`
	QuoteDate      time.Time       `json:"quote_date"`
	QuotedPremium  decimal.Decimal `json:"quoted_premium"`
	Status         string          `json:"status"`
	DeclineReason  string          `json:"decline_reason,omitempty"`
	CompetitorName string          `json:"competitor_name,omitempty"`
	BoundPolicyID  *int            `json:"bound_policy_id,omitempty"`
	SourceSystem   string          `json:"source_system"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Note is free text attached to a claim or policy by a weak
// (entity_type, entity_id) pair with no foreign-key enforcement.
type Note struct {
	NoteID       int       `json:"note_id"`
	EntityType   string    `json:"entity_type"` // CLAIM or POLICY
	EntityID     int       `json:"entity_id"`
	EntityNumber string    `json:"entity_number"`
	NoteType     string    `json:"note_type"`
	Author       string    `json:"author"`
	NoteText     string    `json:"note_text"`
	CreatedAt    time.Time `json:"created_at"`
	SourceSystem string    `json:"source_system"`
}
