package staging

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stonebriar/insbench/internal/model"
)

// ActivityRow is one entry in the generic CDC event log that feeds the core
// tables: insert/update/delete events across source systems.
type ActivityRow struct {
	EventID        int       `json:"event_id"`
	EntityType     string    `json:"entity_type"`
	EntityKey      string    `json:"entity_key"`
	EntityRef      string    `json:"entity_ref"`
	Action         string    `json:"action"`
	Version        int       `json:"version"`
	SourceSystem   string    `json:"source_system"`
	EventTimestamp time.Time `json:"event_timestamp"`
	PayloadJSON    string    `json:"payload_json"`
	ProcessedFlag  string    `json:"processed_flag"`
	ErrorMessage   string    `json:"error_message"`
}

// ActivityLog renders one CDC event per policy version and per claim. Some
// events carry processed_flag=N and so may not be reflected downstream.
func (p *Projector) ActivityLog(policies []model.PolicyVersion, claims []model.Claim) []ActivityRow {
	var events []ActivityRow
	eventID := 0

	for _, pol := range policies {
		eventID++
		action := "INSERT"
		if pol.VersionNumber > 1 {
			action = "UPDATE"
		}
		if pol.IsDeleted {
			action = "DELETE"
		}
		events = append(events, ActivityRow{
			EventID:        eventID,
			EntityType:     "POLICY",
			EntityKey:      strconv.Itoa(pol.PolicyID),
			EntityRef:      pol.PolicyNumber,
			Action:         action,
			Version:        pol.VersionNumber,
			SourceSystem:   pol.SourceSystem,
			EventTimestamp: pol.ValidFrom,
			PayloadJSON: fmt.Sprintf(`{"status":%q,"premium":%s,"lob":%q}`,
				pol.PolicyStatus, pol.TotalPremium.String(), pol.LineOfBusiness),
			ProcessedFlag: pickString(p, []string{"Y", "N", "Y", "Y"}),
		})
	}

	for _, claim := range claims {
		eventID++
		action := "INSERT"
		if claim.IsDeleted {
			action = "DELETE"
		}
		errMsg := ""
		if p.chance(0.02) {
			errMsg = "PARSE_ERROR: invalid date format"
		}
		events = append(events, ActivityRow{
			EventID:        eventID,
			EntityType:     "CLAIM",
			EntityKey:      strconv.Itoa(claim.ClaimID),
			EntityRef:      claim.ClaimNumber,
			Action:         action,
			Version:        1,
			SourceSystem:   claim.SourceSystem,
			EventTimestamp: claim.CreatedAt,
			PayloadJSON: fmt.Sprintf(`{"status":%q,"loss_date":%q,"lob":%q}`,
				claim.ClaimStatus, isoDate(claim.LossDate), claim.LineOfBusiness),
			ProcessedFlag: pickString(p, []string{"Y", "N", "Y", "Y"}),
			ErrorMessage:  errMsg,
		})
	}
	return events
}
