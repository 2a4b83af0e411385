package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyVersion is one CDC row of a policy's mutation history. RowID is the
// surrogate key; PolicyID is the business key. For a given PolicyID, versions
// are totally ordered by VersionNumber, exactly one row has IsCurrentRecord
// set, and it is the row with the highest VersionNumber. ValidFrom is system
// time and is strictly increasing across a policy's versions; it is distinct
// from every business-date field.
type PolicyVersion struct {
	RowID           int             `json:"row_id"`
	PolicyID        int             `json:"policy_id"`
	PolicyNumber    string          `json:"policy_number"`
	VersionNumber   int             `json:"version_number"`
	InsuredID       int             `json:"insured_id"`
	AgentID         int             `json:"agent_id"`
	LineOfBusiness  string          `json:"line_of_business"`
	LOBDescription  string          `json:"lob_description"`
	ProductCode     string          `json:"product_code"`
	EffectiveDate   time.Time       `json:"effective_date"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	BindingDate     time.Time       `json:"binding_date"`
	IssueDate       time.Time       `json:"issue_date"`
	SystemEntryDate time.Time       `json:"system_entry_date"`
	BookingDate     time.Time       `json:"booking_date"`
	PolicyStatus    string          `json:"policy_status"`
	TermMonths      int             `json:"policy_term_months"`
	State           string          `json:"state"`
	TerritoryCode   string          `json:"territory_code"`
	TotalPremium    decimal.Decimal `json:"total_premium"`
	ExposureUnits   decimal.Decimal `json:"total_exposure_units"`
	Deductible      int             `json:"deductible_amount"`
	PolicyLimit     int             `json:"policy_limit"`
	UnderwriterID   int             `json:"underwriter_id"`
	CancelDate      *time.Time      `json:"cancellation_date,omitempty"`
	CancelReason    string          `json:"cancellation_reason,omitempty"`
	RenewalOfID     *int            `json:"renewal_of_policy_id,omitempty"`
	SourceSystem    string          `json:"source_system"`
	IsCurrentRecord bool            `json:"is_current_record"`
	IsDeleted       bool            `json:"is_deleted"`
	ValidFrom       time.Time       `json:"_valid_from"`
	ValidTo         *time.Time      `json:"_valid_to,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CurrentPolicies returns the current state of each policy: the unique row per
// PolicyID with IsCurrentRecord set and IsDeleted clear. A policy whose
// current version is absent from the result has no valid current state.
func CurrentPolicies(rows []PolicyVersion) []PolicyVersion {
	var out []PolicyVersion
	for _, p := range rows {
		if p.IsCurrentRecord && !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out
}
