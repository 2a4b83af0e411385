package model

// US state codes used for license, risk, and loss locations.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// LOBCodes are the lines of business written by the book.
var LOBCodes = []string{"HO", "AUTO", "CGL", "WC", "BOP", "CPP", "FARM", "IM"}

// LOBNames maps LOB codes to display names.
var LOBNames = map[string]string{
	"HO":   "Homeowners",
	"AUTO": "Personal Auto",
	"CGL":  "Commercial General Liability",
	"WC":   "Workers Compensation",
	"BOP":  "Business Owners Policy",
	"CPP":  "Commercial Package Policy",
	"FARM": "Farmowners",
	"IM":   "Inland Marine",
}

// LOBSegments classifies each LOB for the conformed dimension.
var LOBSegments = map[string][2]string{
	"HO":   {"Personal", "Property"},
	"AUTO": {"Personal", "Auto"},
	"CGL":  {"Commercial", "Liability"},
	"WC":   {"Commercial", "Liability"},
	"BOP":  {"Commercial", "Package"},
	"CPP":  {"Commercial", "Package"},
	"FARM": {"Personal", "Property"},
	"IM":   {"Commercial", "Property"},
}

var CoverageTypes = []string{
	"BI", "PD", "COLL", "COMP", "UM", "UIM", "MED", "LIAB", "DWELLING",
	"CONTENTS", "LOI", "ADDL_LIVING", "SCHED_PROP", "GL", "PROD_LIAB",
}

var ClaimStatuses = []string{"OPEN", "CLOSED", "REOPENED", "SUBROGATION", "LITIGATION"}

// OpenClaimStatuses are the statuses counted as open in the gold rollups.
var OpenClaimStatuses = map[string]bool{
	"OPEN": true, "REOPENED": true, "LITIGATION": true, "SUBROGATION": true,
}

var ClaimCauses = []string{
	"FIRE", "WATER", "THEFT", "COLLISION", "WEATHER", "SLIP_FALL",
	"VANDALISM", "MALPRACTICE", "PRODUCT_DEFECT", "OTHER",
}

var PolicyStatuses = []string{"ACTIVE", "CANCELLED", "EXPIRED", "NON_RENEWED", "PENDING"}

var CancelReasons = []string{"NON_PAY", "INSURED_REQ", "UW_ACTION", "REWRITE"}

var QuoteStatuses = []string{"QUOTED", "BOUND", "DECLINED", "EXPIRED", "LOST"}

var DeclineReasons = []string{"PRICE", "COVERAGE", "COMPETITOR", "NOT_ELIGIBLE"}

// SourceSystems tag every canonical record with the system of origin. The
// staging projectors sample with bias toward their own tag, so projections
// overlap rather than partition the canonical set.
var SourceSystems = []string{"LEGACY_AS400", "GUIDEWIRE_PC", "DUCK_CREEK", "MANUAL_ENTRY", "BROKER_FEED"}

// Claim transaction types. VOID rows negate a prior PAYMENT.
const (
	ClaimTxnReserveSet    = "RESERVE_SET"
	ClaimTxnReserveChange = "RESERVE_CHANGE"
	ClaimTxnPayment       = "PAYMENT"
	ClaimTxnRecovery      = "RECOVERY"
	ClaimTxnExpense       = "EXPENSE"
	ClaimTxnVoid          = "VOID"
)

var ClaimTxnTypes = []string{
	ClaimTxnReserveSet, ClaimTxnReserveChange, ClaimTxnPayment,
	ClaimTxnRecovery, ClaimTxnExpense,
}

var ClaimTxnCategories = []string{"LOSS", "ALAE", "ULAE", "SALVAGE", "SUBRO"}

// Premium transaction types. REVERSAL rows negate a prior transaction of any type.
const (
	PremTxnWritten     = "WRITTEN"
	PremTxnEarned      = "EARNED"
	PremTxnEndorsement = "ENDORSEMENT"
	PremTxnReversal    = "REVERSAL"
)

var PremiumTxnTypes = []string{
	PremTxnWritten, PremTxnEarned, "UNEARNED", "CEDED", "RETURN",
	"AUDIT", PremTxnEndorsement, "INSTALLMENT",
}

var ClaimNoteTypes = []string{
	"ADJUSTER_NOTE", "PHONE_LOG", "EMAIL", "INVESTIGATION", "SUPERVISOR_REVIEW",
}

var PolicyNoteTypes = []string{
	"UW_COMMENT", "INSPECTION_REPORT", "MVR_RESULT", "TIER_OVERRIDE",
}
