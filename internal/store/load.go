package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/generator"
	"github.com/stonebriar/insbench/internal/gold"
	"github.com/stonebriar/insbench/internal/staging"
)

// StagingRows bundles the source-system projections for a single load.
type StagingRows struct {
	Legacy    []staging.LegacyPolicyRow
	Events    []staging.ClaimEventRow
	Broker    []staging.BrokerFeedRow
	Formatted []staging.FormattedPremiumRow
	Activity  []staging.ActivityRow
}

func dec(d decimal.Decimal) float64 { return d.InexactFloat64() }

// batchTx runs fn inside a transaction and records a load_batches row for the
// named table with the row count fn reports.
func (w *Warehouse) batchTx(ctx context.Context, table string, fn func(tx *sql.Tx) (int, error)) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "store: begin tx")
	}
	n, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return eris.Wrapf(err, "store: load %s", table)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO load_batches (batch_id, table_name, row_count, loaded_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), table, n, time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	); err != nil {
		tx.Rollback()
		return eris.Wrap(err, "store: record batch")
	}
	if err := tx.Commit(); err != nil {
		return eris.Wrapf(err, "store: commit %s", table)
	}
	zap.L().Debug("loaded table", zap.String("table", table), zap.Int("rows", n))
	return nil
}

// LoadDataset writes all core and unstructured tables.
func (w *Warehouse) LoadDataset(ctx context.Context, ds *generator.Dataset) error {
	if err := w.batchTx(ctx, "core_agents", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_agents VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, a := range ds.Agents {
			if _, err := stmt.ExecContext(ctx,
				a.AgentID, a.AgentCode, a.FirstName, a.LastName, a.AgencyName,
				a.LicenseState, a.LicenseNumber, dec(a.CommissionRate),
				fdate(a.AppointedDate), fdatep(a.TerminatedDate), a.Email, a.Phone,
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Agents), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_insureds", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_insureds VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, ins := range ds.Insureds {
			var credit any
			if ins.CreditScore != nil {
				credit = *ins.CreditScore
			}
			if _, err := stmt.ExecContext(ctx,
				ins.InsuredID, ins.InsuredType,
				nullable(ins.FirstName), nullable(ins.LastName),
				nullable(ins.CompanyName), nullable(ins.DBAName),
				ins.TaxID, fdatep(ins.DateOfBirth),
				ins.AddressLine1, nullable(ins.AddressLine2),
				ins.City, ins.State, ins.ZipCode,
				nullable(ins.Email), nullable(ins.Phone), credit,
				fts(ins.CreatedAt), ins.SourceSystem,
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Insureds), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_policies", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_policies VALUES (`+
			placeholders(34)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, p := range ds.Policies {
			if _, err := stmt.ExecContext(ctx,
				p.RowID, p.PolicyID, p.PolicyNumber, p.VersionNumber,
				p.InsuredID, p.AgentID, p.LineOfBusiness, p.LOBDescription,
				p.ProductCode, fdate(p.EffectiveDate), fdate(p.ExpirationDate),
				fdate(p.BindingDate), fdate(p.IssueDate), fdate(p.SystemEntryDate),
				fdate(p.BookingDate), p.PolicyStatus, p.TermMonths,
				p.State, p.TerritoryCode, dec(p.TotalPremium), dec(p.ExposureUnits),
				p.Deductible, p.PolicyLimit, p.UnderwriterID,
				fdatep(p.CancelDate), nullable(p.CancelReason), intp(p.RenewalOfID),
				p.SourceSystem, b2i(p.IsCurrentRecord), b2i(p.IsDeleted),
				fts(p.ValidFrom), tsp(p.ValidTo), fts(p.CreatedAt), fts(p.UpdatedAt),
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Policies), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_coverages", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_coverages VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, c := range ds.Coverages {
			if _, err := stmt.ExecContext(ctx,
				c.CoverageID, c.PolicyID, c.CoverageCode, c.CoverageDesc,
				c.CoverageLimit, c.Deductible, dec(c.PremiumAmount), dec(c.ExposureUnits),
				fdate(c.EffectiveDate), fdate(c.ExpirationDate), c.RatingClass,
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Coverages), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_claims", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_claims VALUES (`+placeholders(35)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, c := range ds.Claims {
			if _, err := stmt.ExecContext(ctx,
				c.ClaimID, c.ClaimNumber, c.PolicyID, c.PolicyNumber, c.InsuredID,
				c.LineOfBusiness, fdate(c.LossDate), fdate(c.ReportDate),
				fdate(c.EntryDate), fdate(c.ProcessingDate), c.ClaimStatus,
				c.CauseOfLoss, c.LossDesc, c.LossState, c.LossZip,
				c.ClaimantName, c.ClaimantType, c.AdjusterID, c.AdjusterName,
				dec(c.Reserve), dec(c.PaidLoss), dec(c.PaidALAE), dec(c.PaidULAE),
				dec(c.Salvage), dec(c.Subrogation), dec(c.TotalIncurred),
				nullable(c.CatCode), b2i(c.Litigation), b2i(c.FraudIndicator),
				fdatep(c.CloseDate), fdatep(c.ReopenDate), c.SourceSystem,
				b2i(c.IsDeleted), fts(c.CreatedAt), fts(c.UpdatedAt),
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Claims), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_claim_transactions", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_claim_transactions VALUES (`+placeholders(17)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, t := range ds.ClaimTxns {
			if _, err := stmt.ExecContext(ctx,
				t.TransactionID, t.ClaimID, t.ClaimNumber, t.TransactionType,
				fdate(t.TransactionDate), fdate(t.PostingDate), fdatep(t.CheckDate),
				dec(t.Amount), t.Category, nullable(t.CheckNumber),
				nullable(t.PayeeName), t.Description, b2i(t.IsVoid),
				intp(t.VoidOfTxnID), t.CreatedBy, fts(t.LoadTS), fts(t.CreatedAt),
			); err != nil {
				return 0, err
			}
		}
		return len(ds.ClaimTxns), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_premium_transactions", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_premium_transactions VALUES (`+placeholders(18)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, t := range ds.PremiumTxns {
			if _, err := stmt.ExecContext(ctx,
				t.TransactionID, t.PolicyID, t.PolicyNumber, t.LineOfBusiness,
				t.TransactionType, fdate(t.TransactionDate), fdate(t.AccountingDate),
				fdate(t.BookingDate), fdate(t.EffectiveDate), dec(t.Amount),
				t.AccountingPeriod, t.State, t.AgentID, b2i(t.IsReversal),
				intp(t.ReversalOfTxnID), t.SourceSystem, fts(t.LoadTS), fts(t.CreatedAt),
			); err != nil {
				return 0, err
			}
		}
		return len(ds.PremiumTxns), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "core_quotes", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO core_quotes VALUES (`+placeholders(14)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, q := range ds.Quotes {
			if _, err := stmt.ExecContext(ctx,
				q.QuoteID, q.QuoteNumber, q.InsuredID, q.AgentID,
				q.LineOfBusiness, q.State, fdate(q.QuoteDate), dec(q.QuotedPremium),
				q.Status, nullable(q.DeclineReason), nullable(q.CompetitorName),
				intp(q.BoundPolicyID), q.SourceSystem, fts(q.CreatedAt),
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Quotes), nil
	}); err != nil {
		return err
	}

	return w.batchTx(ctx, "unstructured_notes", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO unstructured_notes VALUES (?,?,?,?,?,?,?,?,?)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, n := range ds.Notes {
			if _, err := stmt.ExecContext(ctx,
				n.NoteID, n.EntityType, n.EntityID, n.EntityNumber,
				n.NoteType, n.Author, n.NoteText, fts(n.CreatedAt), n.SourceSystem,
			); err != nil {
				return 0, err
			}
		}
		return len(ds.Notes), nil
	})
}

// LoadStaging writes the five source-system projection tables.
func (w *Warehouse) LoadStaging(ctx context.Context, rows StagingRows) error {
	if err := w.batchTx(ctx, "staging_legacy_policies_as400", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO staging_legacy_policies_as400 VALUES (`+placeholders(21)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range rows.Legacy {
			if _, err := stmt.ExecContext(ctx,
				r.PolNbr, r.InsrdID, r.AgtCd, r.Lob, r.EffDt, r.ExpDt, r.Status,
				r.WrtPrem, r.ExpoUnits, r.St, r.Terr, r.Deduct, r.Lmt,
				r.CnclDt, r.CnclRsn, r.VerNbr, r.CurrInd, r.DelInd, r.SysEntDt,
				r.LoadTimestamp, r.BatchID,
			); err != nil {
				return 0, err
			}
		}
		return len(rows.Legacy), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "staging_guidewire_claim_events", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO staging_guidewire_claim_events VALUES (`+placeholders(31)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range rows.Events {
			if _, err := stmt.ExecContext(ctx,
				r.EventID, r.ClaimPublicID, r.ExternalClaimNbr, r.PolicyNumberRef,
				r.InsuredPartyID, r.LobCode, r.EventType, fts(r.EventTimestamp),
				r.DateOfLoss, r.DateReported, r.ClaimState, r.LossCauseCode,
				r.LossDescription, r.LossLocState, r.LossLocZip,
				r.ClaimantName, r.ClaimantRole, r.AdjusterID, r.AdjusterName,
				dec(r.Reserve), dec(r.PaidLoss), dec(r.PaidExpense),
				dec(r.SalvageSubro), dec(r.TotalIncurred),
				nullable(r.CatCode), r.IsLitigated, r.SIUReferral,
				nullable(r.ClosedDate), b2i(r.IsDeleted), fts(r.ExtractTimestamp),
				r.GWBatchNumber,
			); err != nil {
				return 0, err
			}
		}
		return len(rows.Events), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "staging_broker_submissions_feed", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO staging_broker_submissions_feed VALUES (`+placeholders(15)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range rows.Broker {
			if _, err := stmt.ExecContext(ctx,
				r.SubmissionID, r.BrokerName, r.BrokerCode, r.InsuredName,
				r.LineOfBusiness, r.State, r.SubmissionDate, r.RequestedEff,
				dec(r.QuotedPremium), r.Status, nullable(r.CompetitorMkt),
				nullable(r.DeclineNotes), nullable(r.BoundPolicyRef),
				r.DataQualityFlag, r.IngestionTS,
			); err != nil {
				return 0, err
			}
		}
		return len(rows.Broker), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "staging_duckcreek_premium_transactions", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO staging_duckcreek_premium_transactions VALUES (`+placeholders(14)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range rows.Formatted {
			if _, err := stmt.ExecContext(ctx,
				r.DCTransactionID, r.PolicyRef, r.Lob, r.TxnTypeCd,
				r.TxnDt, r.AcctgDt, r.PremiumAmt, r.AcctPeriod,
				r.RiskState, r.ProducerCd, r.ReversalFlag,
				nullable(r.ReversalOfID), r.LoadDt, r.FileName,
			); err != nil {
				return 0, err
			}
		}
		return len(rows.Formatted), nil
	}); err != nil {
		return err
	}

	return w.batchTx(ctx, "staging_activity_cdc_event_log", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO staging_activity_cdc_event_log VALUES (`+placeholders(11)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range rows.Activity {
			if _, err := stmt.ExecContext(ctx,
				r.EventID, r.EntityType, r.EntityKey, r.EntityRef, r.Action,
				r.Version, r.SourceSystem, fts(r.EventTimestamp), r.PayloadJSON,
				r.ProcessedFlag, nullable(r.ErrorMessage),
			); err != nil {
				return 0, err
			}
		}
		return len(rows.Activity), nil
	})
}

// LoadGold writes the precomputed gold metric tables.
func (w *Warehouse) LoadGold(ctx context.Context, m *gold.Metrics) error {
	if err := w.batchTx(ctx, "gold_lob_year_summary", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO gold_lob_year_summary VALUES (`+placeholders(25)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, s := range m.LOBYear {
			if _, err := stmt.ExecContext(ctx,
				s.LineOfBusiness, s.LOBDescription, s.PolicyYear, s.PolicyCount,
				dec(s.ExposureUnits), dec(s.WrittenPremium), dec(s.EarnedPremium),
				s.ClaimCount, s.OpenClaims, s.ClosedClaims,
				dec(s.PaidLoss), dec(s.PaidALAE), dec(s.PaidULAE), dec(s.TotalLAE),
				dec(s.Salvage), dec(s.Subrogation), dec(s.NetIncurred), dec(s.TotalIncurred),
				dec(s.Frequency), dec(s.Severity), dec(s.PurePremium), dec(s.AveragePremium),
				dec(s.LossRatio), dec(s.LAERatio), dec(s.LossLAERatio),
			); err != nil {
				return 0, err
			}
		}
		return len(m.LOBYear), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "gold_underwriting_metrics", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO gold_underwriting_metrics VALUES (`+placeholders(16)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, u := range m.Underwriting {
			if _, err := stmt.ExecContext(ctx,
				u.LineOfBusiness, u.LOBDescription, u.PolicyYear,
				dec(u.WrittenPremium), dec(u.EarnedPremium), dec(u.NetIncurred),
				dec(u.TotalLAE), dec(u.UWExpense), dec(u.UWExpenseRatio),
				dec(u.OperatingExpense), dec(u.OpExpenseRatio),
				dec(u.LossRatio), dec(u.LAERatio), dec(u.CombinedRatio),
				dec(u.UWProfit), dec(u.UWProfitRatio),
			); err != nil {
				return 0, err
			}
		}
		return len(m.Underwriting), nil
	}); err != nil {
		return err
	}

	if err := w.batchTx(ctx, "gold_quote_bind_metrics", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO gold_quote_bind_metrics VALUES (`+placeholders(12)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, q := range m.QuoteBind {
			if _, err := stmt.ExecContext(ctx,
				q.LineOfBusiness, q.LOBDescription, q.QuoteYear,
				q.TotalQuotes, q.BoundQuotes, q.DeclinedQuotes, q.ExpiredQuotes,
				q.LostQuotes, dec(q.TotalPremium), dec(q.BoundPremium),
				dec(q.CloseRatio), dec(q.AveragePremium),
			); err != nil {
				return 0, err
			}
		}
		return len(m.QuoteBind), nil
	}); err != nil {
		return err
	}

	return w.batchTx(ctx, "gold_retention_metrics", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO gold_retention_metrics VALUES (`+placeholders(7)+`)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		for _, r := range m.Retention {
			if _, err := stmt.ExecContext(ctx,
				r.LineOfBusiness, r.LOBDescription, r.TotalPolicies,
				r.RenewalPolicies, r.NewPolicies,
				dec(r.RetentionRatio), dec(r.NewBusinessRatio),
			); err != nil {
				return 0, err
			}
		}
		return len(m.Retention), nil
	})
}

// knownIssue rows document the traps baked into the data so analysts find
// them in-band rather than in a wiki.
type knownIssue struct {
	table, issueType, description, status string
}

var knownIssues = []knownIssue{
	{"core_policies", "CDC_VERSIONING", "Table contains multiple versions per policy_id. Filter on is_current_record=1 and is_deleted=0 for current state.", "DOCUMENTED"},
	{"core_claims", "SOFT_DELETES", "Some claims have is_deleted=1. Must be excluded from metrics.", "DOCUMENTED"},
	{"core_claim_transactions", "VOID_TRANSACTIONS", "Contains VOID transaction_type rows that reverse prior payments. Must be netted out.", "DOCUMENTED"},
	{"core_premium_transactions", "REVERSAL_TRANSACTIONS", "Contains REVERSAL transaction_type with is_reversal=1. Must be excluded or netted.", "DOCUMENTED"},
	{"core_premium_transactions", "MULTIPLE_TIME_DIMS", "transaction_date, accounting_date, booking_date, effective_date have different semantics. Use accounting_date for financial reporting.", "DOCUMENTED"},
	{"staging_legacy_policies_as400", "ORPHAN_RECORDS", "Contains records with no matching insured in core.", "OPEN"},
	{"staging_guidewire_claim_events", "DUPLICATE_EVENTS", "Overlapping extract snapshots produce ~8% duplicate events.", "OPEN"},
	{"staging_guidewire_claim_events", "CASE_INCONSISTENCY", "claimState field mixes upper and lower case values.", "OPEN"},
	{"staging_duckcreek_premium_transactions", "FORMAT_INCONSISTENCY", "premium_amt has mixed formats: plain numbers, $-formatted, and accounting notation with parentheses for negatives.", "OPEN"},
	{"staging_duckcreek_premium_transactions", "DATE_FORMAT_MIX", "txn_dt mixes ISO (YYYY-MM-DD) and US (MM/DD/YYYY) date formats.", "OPEN"},
	{"staging_broker_submissions_feed", "DUPLICATE_SUBMISSIONS", "~10% of submissions appear twice with slightly different dates and premiums.", "OPEN"},
	{"staging_activity_cdc_event_log", "UNPROCESSED_EVENTS", "Some events have processed_flag=N and may not be reflected in core tables.", "OPEN"},
	{"mart_executive_obt_policy_claims_premium", "ALL_VERSIONS_INCLUDED", "OBT includes non-current CDC versions and soft-deleted records. Must filter for reporting.", "DOCUMENTED"},
}

// LoadKnownIssues writes the data quality catalog.
func (w *Warehouse) LoadKnownIssues(ctx context.Context) error {
	return w.batchTx(ctx, "data_quality_known_issues", func(tx *sql.Tx) (int, error) {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO data_quality_known_issues VALUES (?,?,?,?,?)`)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()
		today := time.Now().UTC().Format("2006-01-02")
		for _, k := range knownIssues {
			if _, err := stmt.ExecContext(ctx, k.table, k.issueType, k.description, k.status, today); err != nil {
				return 0, err
			}
		}
		return len(knownIssues), nil
	})
}
