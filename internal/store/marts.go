package store

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/stonebriar/insbench/internal/model"
)

// BuildMarts derives every mart table from the loaded core tables. Mart
// schemas flatten the same way the base tables do (mart_claims.dim_date
// becomes mart_claims_dim_date). Each mart deliberately models the data a
// different way: star schema, 3NF rollups, transaction journal, denormalized
// wide table, and a one-big-table that keeps every CDC version and soft
// delete.
func (w *Warehouse) BuildMarts(ctx context.Context) error {
	if err := w.buildDimLOB(ctx); err != nil {
		return err
	}
	for _, m := range martDDL {
		if _, err := w.db.ExecContext(ctx, m.ddl); err != nil {
			return eris.Wrapf(err, "store: build %s", m.name)
		}
		zap.L().Debug("built mart table", zap.String("table", m.name))
	}
	return nil
}

// buildDimLOB materializes the conformed LOB dimension from reference data.
func (w *Warehouse) buildDimLOB(ctx context.Context) error {
	ddl := `CREATE TABLE mart_claims_dim_line_of_business (
		lob_code TEXT PRIMARY KEY,
		lob_name TEXT NOT NULL,
		segment  TEXT NOT NULL,
		category TEXT NOT NULL
	)`
	if _, err := w.db.ExecContext(ctx, ddl); err != nil {
		return eris.Wrap(err, "store: create dim_line_of_business")
	}
	for _, code := range model.LOBCodes {
		seg := model.LOBSegments[code]
		if _, err := w.db.ExecContext(ctx,
			`INSERT INTO mart_claims_dim_line_of_business VALUES (?,?,?,?)`,
			code, model.LOBNames[code], seg[0], seg[1],
		); err != nil {
			return eris.Wrap(err, "store: insert dim_line_of_business")
		}
	}
	return nil
}

var martDDL = []struct {
	name string
	ddl  string
}{
	{"mart_claims_dim_date", `
CREATE TABLE mart_claims_dim_date AS
WITH RECURSIVE days(d) AS (
	SELECT DATE('2018-01-01')
	UNION ALL
	SELECT DATE(d, '+1 day') FROM days WHERE d < '2026-12-31'
)
SELECT
	d AS date_key,
	CAST(strftime('%Y', d) AS INTEGER) AS cal_year,
	(CAST(strftime('%m', d) AS INTEGER) + 2) / 3 AS cal_quarter,
	CAST(strftime('%m', d) AS INTEGER) AS cal_month,
	CASE strftime('%m', d)
		WHEN '01' THEN 'January' WHEN '02' THEN 'February' WHEN '03' THEN 'March'
		WHEN '04' THEN 'April' WHEN '05' THEN 'May' WHEN '06' THEN 'June'
		WHEN '07' THEN 'July' WHEN '08' THEN 'August' WHEN '09' THEN 'September'
		WHEN '10' THEN 'October' WHEN '11' THEN 'November' ELSE 'December'
	END AS month_name,
	CAST(strftime('%w', d) AS INTEGER) AS day_of_week,
	CASE strftime('%w', d)
		WHEN '0' THEN 'Sunday' WHEN '1' THEN 'Monday' WHEN '2' THEN 'Tuesday'
		WHEN '3' THEN 'Wednesday' WHEN '4' THEN 'Thursday' WHEN '5' THEN 'Friday'
		ELSE 'Saturday'
	END AS day_name,
	CASE WHEN CAST(strftime('%m', d) AS INTEGER) <= 6
		THEN CAST(strftime('%Y', d) AS INTEGER)
		ELSE CAST(strftime('%Y', d) AS INTEGER) + 1
	END AS fiscal_year
FROM days`},

	{"mart_claims_dim_geography", `
CREATE TABLE mart_claims_dim_geography AS
SELECT DISTINCT
	state AS state_code,
	territory_code,
	CASE
		WHEN state IN ('CT','ME','MA','NH','RI','VT') THEN 'New England'
		WHEN state IN ('NJ','NY','PA') THEN 'Middle Atlantic'
		WHEN state IN ('IL','IN','MI','OH','WI') THEN 'East North Central'
		WHEN state IN ('IA','KS','MN','MO','NE','ND','SD') THEN 'West North Central'
		WHEN state IN ('DE','FL','GA','MD','NC','SC','VA','WV') THEN 'South Atlantic'
		WHEN state IN ('AL','KY','MS','TN') THEN 'East South Central'
		WHEN state IN ('AR','LA','OK','TX') THEN 'West South Central'
		WHEN state IN ('AZ','CO','ID','MT','NV','NM','UT','WY') THEN 'Mountain'
		WHEN state IN ('AK','CA','HI','OR','WA') THEN 'Pacific'
		ELSE 'Unknown'
	END AS census_region
FROM core_policies
WHERE is_current_record = 1 AND is_deleted = 0`},

	{"mart_claims_fct_claim_detail", `
CREATE TABLE mart_claims_fct_claim_detail AS
SELECT
	c.claim_id,
	c.claim_number,
	c.policy_id,
	c.line_of_business AS lob_code,
	c.loss_state AS state_code,
	c.loss_date AS loss_date_key,
	c.report_date AS report_date_key,
	c.entry_date AS entry_date_key,
	c.claim_status,
	c.cause_of_loss,
	c.claimant_type,
	c.reserve_amount,
	c.paid_loss_amount,
	c.paid_alae_amount,
	c.paid_ulae_amount,
	c.salvage_amount,
	c.subrogation_amount,
	c.total_incurred,
	c.paid_loss_amount - c.salvage_amount - c.subrogation_amount AS net_paid_loss,
	c.paid_alae_amount + c.paid_ulae_amount AS total_lae,
	c.catastrophe_code,
	c.litigation_flag,
	c.fraud_indicator,
	c.close_date,
	c.reopen_date,
	CAST(julianday(c.report_date) - julianday(c.loss_date) AS INTEGER) AS report_lag_days,
	CAST(julianday(c.entry_date) - julianday(c.report_date) AS INTEGER) AS entry_lag_days,
	CASE WHEN c.close_date IS NOT NULL
		THEN CAST(julianday(c.close_date) - julianday(c.report_date) AS INTEGER)
		ELSE NULL END AS days_to_close
FROM core_claims c
WHERE c.is_deleted = 0`},

	{"mart_claims_fct_loss_triangle", `
CREATE TABLE mart_claims_fct_loss_triangle AS
SELECT
	line_of_business AS lob_code,
	CAST(strftime('%Y', loss_date) AS INTEGER) AS accident_year,
	CAST(strftime('%Y', report_date) AS INTEGER) AS report_year,
	CAST(strftime('%Y', report_date) AS INTEGER)
		- CAST(strftime('%Y', loss_date) AS INTEGER) AS development_lag,
	COUNT(*) AS claim_count,
	SUM(paid_loss_amount) AS paid_loss,
	SUM(paid_alae_amount + paid_ulae_amount) AS paid_lae,
	SUM(total_incurred) AS total_incurred
FROM core_claims
WHERE is_deleted = 0
GROUP BY 1, 2, 3`},

	{"mart_underwriting_policy_book", `
CREATE TABLE mart_underwriting_policy_book AS
SELECT
	p.policy_id,
	p.policy_number,
	p.line_of_business,
	p.lob_description,
	p.product_code,
	p.effective_date,
	p.expiration_date,
	p.policy_status,
	p.state,
	p.territory_code,
	p.total_premium,
	p.total_exposure_units,
	p.deductible_amount,
	p.policy_limit,
	p.policy_term_months,
	p.version_number,
	a.agent_code,
	a.agency_name,
	a.commission_rate,
	i.insured_type,
	i.credit_score,
	CASE WHEN p.renewal_of_policy_id IS NOT NULL THEN 'RENEWAL' ELSE 'NEW' END AS business_type,
	COUNT(DISTINCT cl.claim_id) AS claim_count,
	COALESCE(SUM(cl.total_incurred), 0) AS total_incurred
FROM core_policies p
JOIN core_agents a ON p.agent_id = a.agent_id
JOIN core_insureds i ON p.insured_id = i.insured_id
LEFT JOIN core_claims cl ON p.policy_id = cl.policy_id AND cl.is_deleted = 0
WHERE p.is_current_record = 1 AND p.is_deleted = 0
GROUP BY p.policy_id, p.policy_number, p.line_of_business, p.lob_description,
	p.product_code, p.effective_date, p.expiration_date, p.policy_status,
	p.state, p.territory_code, p.total_premium, p.total_exposure_units,
	p.deductible_amount, p.policy_limit, p.policy_term_months, p.version_number,
	a.agent_code, a.agency_name, a.commission_rate, i.insured_type,
	i.credit_score, business_type`},

	{"mart_underwriting_rate_adequacy", `
CREATE TABLE mart_underwriting_rate_adequacy AS
SELECT
	line_of_business,
	state,
	territory_code,
	CAST(strftime('%Y', effective_date) AS INTEGER) AS policy_year,
	COUNT(*) AS policy_count,
	SUM(total_exposure_units) AS total_exposure,
	SUM(total_premium) AS total_written_premium,
	AVG(total_premium) AS avg_premium,
	AVG(deductible_amount) AS avg_deductible,
	AVG(policy_limit) AS avg_limit
FROM core_policies
WHERE is_current_record = 1 AND is_deleted = 0
GROUP BY 1, 2, 3, 4`},

	{"mart_finance_premium_journal", `
CREATE TABLE mart_finance_premium_journal AS
SELECT
	pt.transaction_id,
	pt.policy_id,
	pt.policy_number,
	pt.line_of_business,
	pt.transaction_type,
	pt.transaction_date,
	pt.accounting_date,
	pt.booking_date,
	pt.effective_date,
	pt.amount,
	pt.accounting_period,
	pt.state,
	pt.is_reversal,
	pt.reversal_of_transaction_id,
	a.agent_code,
	a.agency_name,
	a.commission_rate,
	ROUND(pt.amount * a.commission_rate, 2) AS commission_amount
FROM core_premium_transactions pt
JOIN core_policies p ON pt.policy_id = p.policy_id
	AND p.is_current_record = 1 AND p.is_deleted = 0
JOIN core_agents a ON p.agent_id = a.agent_id`},

	{"mart_finance_monthly_financials", `
CREATE TABLE mart_finance_monthly_financials AS
SELECT
	pt.accounting_period,
	pt.line_of_business,
	pt.state,
	SUM(CASE WHEN pt.transaction_type = 'WRITTEN' AND pt.is_reversal = 0
		THEN pt.amount ELSE 0 END) AS written_premium,
	SUM(CASE WHEN pt.transaction_type = 'EARNED' AND pt.is_reversal = 0
		THEN pt.amount ELSE 0 END) AS earned_premium,
	SUM(CASE WHEN pt.transaction_type = 'CEDED' AND pt.is_reversal = 0
		THEN pt.amount ELSE 0 END) AS ceded_premium,
	SUM(CASE WHEN pt.transaction_type = 'RETURN' AND pt.is_reversal = 0
		THEN pt.amount ELSE 0 END) AS return_premium,
	SUM(CASE WHEN pt.transaction_type = 'ENDORSEMENT' AND pt.is_reversal = 0
		THEN pt.amount ELSE 0 END) AS endorsement_premium,
	SUM(CASE WHEN pt.transaction_type = 'REVERSAL'
		THEN pt.amount ELSE 0 END) AS reversals
FROM core_premium_transactions pt
GROUP BY 1, 2, 3`},

	{"mart_agency_agent_performance", `
CREATE TABLE mart_agency_agent_performance AS
SELECT
	a.agent_id,
	a.agent_code,
	a.agency_name,
	a.first_name || ' ' || a.last_name AS agent_name,
	a.license_state,
	a.commission_rate,
	COUNT(DISTINCT p.policy_id) AS policies_written,
	SUM(p.total_premium) AS total_premium_written,
	AVG(p.total_premium) AS avg_premium,
	COUNT(DISTINCT c.claim_id) AS claims_on_book,
	COALESCE(SUM(c.total_incurred), 0) AS total_incurred_on_book,
	COUNT(DISTINCT q.quote_id) AS total_quotes,
	COUNT(DISTINCT CASE WHEN q.status = 'BOUND' THEN q.quote_id END) AS bound_quotes,
	ROUND(CAST(COUNT(DISTINCT CASE WHEN q.status = 'BOUND' THEN q.quote_id END) AS REAL)
		/ NULLIF(COUNT(DISTINCT q.quote_id), 0), 4) AS close_ratio
FROM core_agents a
LEFT JOIN core_policies p ON a.agent_id = p.agent_id
	AND p.is_current_record = 1 AND p.is_deleted = 0
LEFT JOIN core_claims c ON p.policy_id = c.policy_id AND c.is_deleted = 0
LEFT JOIN core_quotes q ON a.agent_id = q.agent_id
GROUP BY a.agent_id, a.agent_code, a.agency_name, agent_name,
	a.license_state, a.commission_rate`},

	{"mart_actuarial_dim_policy", `
CREATE TABLE mart_actuarial_dim_policy AS
SELECT
	policy_id AS policy_key,
	policy_number,
	line_of_business,
	lob_description,
	product_code,
	state AS risk_state,
	territory_code,
	policy_term_months,
	deductible_amount,
	policy_limit,
	effective_date AS effective_dt,
	expiration_date AS expiration_dt,
	total_exposure_units AS exposure
FROM core_policies
WHERE is_current_record = 1 AND is_deleted = 0`},

	{"mart_actuarial_fct_earned_premium", `
CREATE TABLE mart_actuarial_fct_earned_premium AS
SELECT
	pt.policy_id AS policy_key,
	pt.line_of_business,
	pt.state AS risk_state,
	pt.accounting_period,
	pt.transaction_type,
	pt.amount,
	pt.is_reversal,
	p.effective_date AS policy_effective_dt,
	p.total_exposure_units AS exposure
FROM core_premium_transactions pt
JOIN core_policies p ON pt.policy_id = p.policy_id
	AND p.is_current_record = 1 AND p.is_deleted = 0`},

	{"mart_actuarial_fct_incurred_loss", `
CREATE TABLE mart_actuarial_fct_incurred_loss AS
SELECT
	c.claim_id,
	c.policy_id AS policy_key,
	c.line_of_business,
	c.loss_state AS risk_state,
	c.loss_date AS accident_dt,
	c.report_date AS report_dt,
	CAST(strftime('%Y', c.loss_date) AS INTEGER) AS accident_year,
	c.paid_loss_amount,
	c.paid_alae_amount,
	c.paid_ulae_amount,
	c.salvage_amount,
	c.subrogation_amount,
	c.paid_loss_amount - c.salvage_amount - c.subrogation_amount AS net_incurred,
	c.paid_alae_amount + c.paid_ulae_amount AS total_lae,
	c.reserve_amount
FROM core_claims c
WHERE c.is_deleted = 0`},

	{"mart_executive_obt_policy_claims_premium", `
CREATE TABLE mart_executive_obt_policy_claims_premium AS
SELECT
	p.policy_id,
	p.policy_number,
	p.version_number,
	p.is_current_record,
	p.is_deleted AS policy_is_deleted,
	p.line_of_business,
	p.lob_description,
	p.product_code,
	p.effective_date,
	p.expiration_date,
	p.binding_date,
	p.issue_date,
	p.system_entry_date,
	p.booking_date,
	p.policy_status,
	p.state,
	p.territory_code,
	p.total_premium,
	p.total_exposure_units,
	p.deductible_amount,
	p.policy_limit,
	p.cancellation_date,
	p.cancellation_reason,
	CASE WHEN p.renewal_of_policy_id IS NOT NULL
		THEN 'RENEWAL' ELSE 'NEW_BUSINESS' END AS business_origin,
	p.source_system AS policy_source,
	a.agent_id,
	a.agent_code,
	a.agency_name,
	a.commission_rate,
	i.insured_id,
	i.insured_type,
	CASE WHEN i.insured_type = 'COMMERCIAL'
		THEN i.company_name
		ELSE i.first_name || ' ' || i.last_name
	END AS insured_display_name,
	i.state AS insured_state,
	i.credit_score,
	c.claim_id,
	c.claim_number,
	c.loss_date,
	c.report_date,
	c.entry_date AS claim_entry_date,
	c.claim_status,
	c.cause_of_loss,
	c.paid_loss_amount,
	c.paid_alae_amount,
	c.paid_ulae_amount,
	c.salvage_amount,
	c.subrogation_amount,
	c.total_incurred,
	c.catastrophe_code,
	c.litigation_flag,
	c.is_deleted AS claim_is_deleted
FROM core_policies p
JOIN core_agents a ON p.agent_id = a.agent_id
JOIN core_insureds i ON p.insured_id = i.insured_id
LEFT JOIN core_claims c ON p.policy_id = c.policy_id`},
}
