package staging

import (
	"fmt"
	"strconv"

	"github.com/stonebriar/insbench/internal/model"
)

// OrphanRowCount synthetic legacy rows reference insureds that do not exist
// in core, keyed with the POL-ORPHAN- prefix.
const OrphanRowCount = 75

// LegacyPolicyRow is an AS400-style dump row: ALL_CAPS abbreviated columns,
// every value stringified, dates with separators stripped, "N/A" for null.
type LegacyPolicyRow struct {
	PolNbr        string `json:"POL_NBR"`
	InsrdID       string `json:"INSRD_ID"`
	AgtCd         string `json:"AGT_CD"`
	Lob           string `json:"LOB"`
	EffDt         string `json:"EFF_DT"`
	ExpDt         string `json:"EXP_DT"`
	Status        string `json:"STATUS"`
	WrtPrem       string `json:"WRT_PREM"`
	ExpoUnits     string `json:"EXPO_UNITS"`
	St            string `json:"ST"`
	Terr          string `json:"TERR"`
	Deduct        string `json:"DEDUCT"`
	Lmt           string `json:"LMT"`
	CnclDt        string `json:"CNCL_DT"`
	CnclRsn       string `json:"CNCL_RSN"`
	VerNbr        string `json:"VER_NBR"`
	CurrInd       string `json:"CURR_IND"`
	DelInd        string `json:"DEL_IND"`
	SysEntDt      string `json:"SYS_ENT_DT"`
	LoadTimestamp string `json:"LOAD_TIMESTAMP"`
	BatchID       string `json:"BATCH_ID"`
}

// LegacyPolicies projects ALL policy versions (not just current) into the
// AS400 shape, then appends the fixed set of orphan rows.
func (p *Projector) LegacyPolicies(policies []model.PolicyVersion) []LegacyPolicyRow {
	var rows []LegacyPolicyRow
	for _, pol := range policies {
		if pol.SourceSystem != "LEGACY_AS400" && !p.chance(0.3) {
			continue
		}
		cnclDt := "N/A"
		if pol.CancelDate != nil {
			cnclDt = packedDate(*pol.CancelDate)
		}
		cnclRsn := pol.CancelReason
		if cnclRsn == "" {
			cnclRsn = "N/A"
		}
		rows = append(rows, LegacyPolicyRow{
			PolNbr:        pol.PolicyNumber,
			InsrdID:       strconv.Itoa(pol.InsuredID),
			AgtCd:         fmt.Sprintf("AGT-%04d", pol.AgentID),
			Lob:           pol.LineOfBusiness,
			EffDt:         packedDate(pol.EffectiveDate),
			ExpDt:         packedDate(pol.ExpirationDate),
			Status:        truncate3(pol.PolicyStatus),
			WrtPrem:       pol.TotalPremium.String(),
			ExpoUnits:     pol.ExposureUnits.String(),
			St:            pol.State,
			Terr:          pol.TerritoryCode,
			Deduct:        strconv.Itoa(pol.Deductible),
			Lmt:           strconv.Itoa(pol.PolicyLimit),
			CnclDt:        cnclDt,
			CnclRsn:       cnclRsn,
			VerNbr:        strconv.Itoa(pol.VersionNumber),
			CurrInd:       yn(pol.IsCurrentRecord),
			DelInd:        yn(pol.IsDeleted),
			SysEntDt:      packedDate(pol.SystemEntryDate),
			LoadTimestamp: p.loadTime.Format("2006-01-02T15:04:05"),
			BatchID:       fmt.Sprintf("BATCH-%d", p.between(1000, 9999)),
		})
	}
	for i := 1; i <= OrphanRowCount; i++ {
		rows = append(rows, LegacyPolicyRow{
			PolNbr:        fmt.Sprintf("POL-ORPHAN-%d", i),
			InsrdID:       "UNKNOWN",
			AgtCd:         "AGT-9999",
			Lob:           "UNK",
			EffDt:         "20200101",
			ExpDt:         "20210101",
			Status:        "ACT",
			WrtPrem:       "0.00",
			ExpoUnits:     "0.00",
			St:            "XX",
			Terr:          "T00",
			Deduct:        "0",
			Lmt:           "0",
			CnclDt:        "N/A",
			CnclRsn:       "N/A",
			VerNbr:        "1",
			CurrInd:       "Y",
			DelInd:        "N",
			SysEntDt:      "20200101",
			LoadTimestamp: p.loadTime.Format("2006-01-02T15:04:05"),
			BatchID:       "BATCH-ORPHAN",
		})
	}
	return rows
}

func truncate3(s string) string {
	if len(s) > 3 {
		return s[:3]
	}
	return s
}

func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
