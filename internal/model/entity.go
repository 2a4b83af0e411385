package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agent is a producing agent. Immutable once created.
type Agent struct {
	AgentID        int             `json:"agent_id"`
	AgentCode      string          `json:"agent_code"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	AgencyName     string          `json:"agency_name"`
	LicenseState   string          `json:"license_state"`
	LicenseNumber  string          `json:"license_number"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	AppointedDate  time.Time       `json:"appointed_date"`
	TerminatedDate *time.Time      `json:"terminated_date,omitempty"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
}

// Insured is a policyholder, either personal or commercial. The personal and
// commercial attribute sets are mutually exclusive. Immutable once created.
type Insured struct {
	InsuredID    int        `json:"insured_id"`
	InsuredType  string     `json:"insured_type"` // PERSONAL or COMMERCIAL
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	CompanyName  string     `json:"company_name,omitempty"`
	DBAName      string     `json:"dba_name,omitempty"`
	TaxID        string     `json:"tax_id"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	AddressLine1 string     `json:"address_line1"`
	AddressLine2 string     `json:"address_line2,omitempty"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ZipCode      string     `json:"zip_code"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreditScore  *int       `json:"credit_score,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	SourceSystem string     `json:"source_system"`
}

// Coverage belongs to exactly one policy, resolved against the policy's
// current state only.
type Coverage struct {
	CoverageID     int             `json:"coverage_id"`
	PolicyID       int             `json:"policy_id"`
	CoverageCode   string          `json:"coverage_code"`
	CoverageDesc   string          `json:"coverage_description"`
	CoverageLimit  int             `json:"coverage_limit"`
	Deductible     int             `json:"coverage_deductible"`
	PremiumAmount  decimal.Decimal `json:"premium_amount"`
	ExposureUnits  decimal.Decimal `json:"exposure_units"`
	EffectiveDate  time.Time       `json:"effective_date"`
	ExpirationDate time.Time       `json:"expiration_date"`
	RatingClass    string          `json:"rating_class_code"`
}
