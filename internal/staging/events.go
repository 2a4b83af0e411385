package staging

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stonebriar/insbench/internal/model"
)

// ClaimEventRow is a camelCase event/activity extract row. A claim expands
// into an ordered lifecycle event sequence; overlapping extract batches
// duplicate ~8% of events under a second extraction timestamp.
type ClaimEventRow struct {
	EventID          int             `json:"eventId"`
	ClaimPublicID    string          `json:"claimPublicId"`
	ExternalClaimNbr string          `json:"externalClaimNumber"`
	PolicyNumberRef  string          `json:"policyNumberRef"`
	InsuredPartyID   int             `json:"insuredPartyId"`
	LobCode          string          `json:"lobCode"`
	EventType        string          `json:"eventType"`
	EventTimestamp   time.Time       `json:"eventTimestamp"`
	DateOfLoss       string          `json:"dateOfLoss"`
	DateReported     string          `json:"dateReported"`
	ClaimState       string          `json:"claimState"`
	LossCauseCode    string          `json:"lossCauseCode"`
	LossDescription  string          `json:"lossDescriptionText"`
	LossLocState     string          `json:"lossLocationState"`
	LossLocZip       string          `json:"lossLocationZip"`
	ClaimantName     string          `json:"claimantDisplayName"`
	ClaimantRole     string          `json:"claimantRole"`
	AdjusterID       int             `json:"assignedAdjusterId"`
	AdjusterName     string          `json:"assignedAdjusterName"`
	Reserve          decimal.Decimal `json:"financials_reserve"`
	PaidLoss         decimal.Decimal `json:"financials_paidLoss"`
	PaidExpense      decimal.Decimal `json:"financials_paidExpense"`
	SalvageSubro     decimal.Decimal `json:"financials_salvageSubro"`
	TotalIncurred    decimal.Decimal `json:"financials_totalIncurred"`
	CatCode          string          `json:"catCode"`
	IsLitigated      string          `json:"isLitigated"`
	SIUReferral      string          `json:"siuReferral"`
	ClosedDate       string          `json:"closedDate"`
	IsDeleted        bool            `json:"isDeleted"`
	ExtractTimestamp time.Time       `json:"extractTimestamp"`
	GWBatchNumber    int             `json:"gwBatchNumber"`
}

// claimLifecycleEvents derives the event sequence from the claim's financial
// and status attributes. Presence is a pure function of the claim, never an
// independent draw.
func claimLifecycleEvents(c model.Claim) []string {
	events := []string{"FNOL", "ASSIGNMENT"}
	if c.Reserve.IsPositive() {
		events = append(events, "RESERVE_SET")
	}
	if c.PaidLoss.IsPositive() {
		events = append(events, "PAYMENT")
	}
	switch c.ClaimStatus {
	case "CLOSED":
		events = append(events, "CLOSURE")
	case "REOPENED":
		events = append(events, "CLOSURE", "REOPEN")
	}
	if c.Litigation {
		events = append(events, "LITIGATION_REFERRAL")
	}
	return events
}

// ClaimEvents projects claims into the event-sourced extract shape.
func (p *Projector) ClaimEvents(claims []model.Claim) []ClaimEventRow {
	var rows []ClaimEventRow
	eventID := 0
	for _, claim := range claims {
		if claim.SourceSystem != "GUIDEWIRE_PC" && !p.chance(0.4) {
			continue
		}
		for _, evType := range claimLifecycleEvents(claim) {
			copies := 1
			if p.chance(0.08) {
				copies = 2
			}
			for c := 0; c < copies; c++ {
				eventID++
				base := claim.EntryDate.AddDate(0, 0, c*p.between(0, 3))
				extractTS := base.Add(
					time.Duration(p.between(0, 23))*time.Hour +
						time.Duration(p.between(0, 59))*time.Minute +
						time.Duration(p.between(0, 59))*time.Second)

				// Per-row case folding on the status field.
				state := strings.ToLower(claim.ClaimStatus)
				if p.chance(0.15) {
					state = claim.ClaimStatus
				}
				closedDate := ""
				if claim.CloseDate != nil {
					closedDate = isoDate(*claim.CloseDate)
				}
				rows = append(rows, ClaimEventRow{
					EventID:          eventID,
					ClaimPublicID:    fmt.Sprintf("GW-%010d", claim.ClaimID),
					ExternalClaimNbr: claim.ClaimNumber,
					PolicyNumberRef:  claim.PolicyNumber,
					InsuredPartyID:   claim.InsuredID,
					LobCode:          claim.LineOfBusiness,
					EventType:        evType,
					EventTimestamp:   extractTS,
					DateOfLoss:       isoDate(claim.LossDate),
					DateReported:     isoDate(claim.ReportDate),
					ClaimState:       state,
					LossCauseCode:    claim.CauseOfLoss,
					LossDescription:  claim.LossDesc,
					LossLocState:     claim.LossState,
					LossLocZip:       claim.LossZip,
					ClaimantName:     claim.ClaimantName,
					ClaimantRole:     claim.ClaimantType,
					AdjusterID:       claim.AdjusterID,
					AdjusterName:     claim.AdjusterName,
					Reserve:          claim.Reserve,
					PaidLoss:         claim.PaidLoss,
					PaidExpense:      claim.PaidALAE.Add(claim.PaidULAE),
					SalvageSubro:     claim.Salvage.Add(claim.Subrogation),
					TotalIncurred:    claim.TotalIncurred,
					CatCode:          claim.CatCode,
					IsLitigated:      yn(claim.Litigation),
					SIUReferral:      yn(claim.FraudIndicator),
					ClosedDate:       closedDate,
					IsDeleted:        claim.IsDeleted,
					ExtractTimestamp: extractTS,
					GWBatchNumber:    p.between(100000, 999999),
				})
			}
		}
	}
	return rows
}
