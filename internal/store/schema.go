package store

// schemaDDL lays out every non-mart table. Mart tables are built with
// CREATE TABLE ... AS SELECT after the base load (see marts.go). Monetary
// columns are REAL so gold queries can aggregate them directly; flag columns
// are INTEGER 0/1.
const schemaDDL = `
CREATE TABLE load_batches (
	batch_id    TEXT PRIMARY KEY,
	table_name  TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	loaded_at   TEXT NOT NULL
);

CREATE TABLE core_agents (
	agent_id        INTEGER PRIMARY KEY,
	agent_code      TEXT NOT NULL,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	agency_name     TEXT NOT NULL,
	license_state   TEXT NOT NULL,
	license_number  TEXT NOT NULL,
	commission_rate REAL NOT NULL,
	appointed_date  TEXT NOT NULL,
	terminated_date TEXT,
	email           TEXT NOT NULL,
	phone           TEXT NOT NULL
);

CREATE TABLE core_insureds (
	insured_id    INTEGER PRIMARY KEY,
	insured_type  TEXT NOT NULL,
	first_name    TEXT,
	last_name     TEXT,
	company_name  TEXT,
	dba_name      TEXT,
	tax_id        TEXT NOT NULL,
	date_of_birth TEXT,
	address_line1 TEXT NOT NULL,
	address_line2 TEXT,
	city          TEXT NOT NULL,
	state         TEXT NOT NULL,
	zip_code      TEXT NOT NULL,
	email         TEXT,
	phone         TEXT,
	credit_score  INTEGER,
	created_at    TEXT NOT NULL,
	source_system TEXT NOT NULL
);

CREATE TABLE core_policies (
	row_id                INTEGER PRIMARY KEY,
	policy_id             INTEGER NOT NULL,
	policy_number         TEXT NOT NULL,
	version_number        INTEGER NOT NULL,
	insured_id            INTEGER NOT NULL,
	agent_id              INTEGER NOT NULL,
	line_of_business      TEXT NOT NULL,
	lob_description       TEXT NOT NULL,
	product_code          TEXT NOT NULL,
	effective_date        TEXT NOT NULL,
	expiration_date       TEXT NOT NULL,
	binding_date          TEXT NOT NULL,
	issue_date            TEXT NOT NULL,
	system_entry_date     TEXT NOT NULL,
	booking_date          TEXT NOT NULL,
	policy_status         TEXT NOT NULL,
	policy_term_months    INTEGER NOT NULL,
	state                 TEXT NOT NULL,
	territory_code        TEXT NOT NULL,
	total_premium         REAL NOT NULL,
	total_exposure_units  REAL NOT NULL,
	deductible_amount     INTEGER NOT NULL,
	policy_limit          INTEGER NOT NULL,
	underwriter_id        INTEGER NOT NULL,
	cancellation_date     TEXT,
	cancellation_reason   TEXT,
	renewal_of_policy_id  INTEGER,
	source_system         TEXT NOT NULL,
	is_current_record     INTEGER NOT NULL,
	is_deleted            INTEGER NOT NULL,
	_valid_from           TEXT NOT NULL,
	_valid_to             TEXT,
	created_at            TEXT NOT NULL,
	updated_at            TEXT NOT NULL
);
CREATE INDEX idx_core_policies_policy_id ON core_policies(policy_id);
CREATE INDEX idx_core_policies_current ON core_policies(is_current_record, is_deleted);

CREATE TABLE core_coverages (
	coverage_id          INTEGER PRIMARY KEY,
	policy_id            INTEGER NOT NULL,
	coverage_code        TEXT NOT NULL,
	coverage_description TEXT NOT NULL,
	coverage_limit       INTEGER NOT NULL,
	coverage_deductible  INTEGER NOT NULL,
	premium_amount       REAL NOT NULL,
	exposure_units       REAL NOT NULL,
	effective_date       TEXT NOT NULL,
	expiration_date      TEXT NOT NULL,
	rating_class_code    TEXT NOT NULL
);

CREATE TABLE core_claims (
	claim_id           INTEGER PRIMARY KEY,
	claim_number       TEXT NOT NULL,
	policy_id          INTEGER NOT NULL,
	policy_number      TEXT NOT NULL,
	insured_id         INTEGER NOT NULL,
	line_of_business   TEXT NOT NULL,
	loss_date          TEXT NOT NULL,
	report_date        TEXT NOT NULL,
	entry_date         TEXT NOT NULL,
	processing_date    TEXT NOT NULL,
	claim_status       TEXT NOT NULL,
	cause_of_loss      TEXT NOT NULL,
	loss_description   TEXT NOT NULL,
	loss_state         TEXT NOT NULL,
	loss_zip           TEXT NOT NULL,
	claimant_name      TEXT NOT NULL,
	claimant_type      TEXT NOT NULL,
	adjuster_id        INTEGER NOT NULL,
	adjuster_name      TEXT NOT NULL,
	reserve_amount     REAL NOT NULL,
	paid_loss_amount   REAL NOT NULL,
	paid_alae_amount   REAL NOT NULL,
	paid_ulae_amount   REAL NOT NULL,
	salvage_amount     REAL NOT NULL,
	subrogation_amount REAL NOT NULL,
	total_incurred     REAL NOT NULL,
	catastrophe_code   TEXT,
	litigation_flag    INTEGER NOT NULL,
	fraud_indicator    INTEGER NOT NULL,
	close_date         TEXT,
	reopen_date        TEXT,
	source_system      TEXT NOT NULL,
	is_deleted         INTEGER NOT NULL,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE INDEX idx_core_claims_policy_id ON core_claims(policy_id);

CREATE TABLE core_claim_transactions (
	transaction_id         INTEGER PRIMARY KEY,
	claim_id               INTEGER NOT NULL,
	claim_number           TEXT NOT NULL,
	transaction_type       TEXT NOT NULL,
	transaction_date       TEXT NOT NULL,
	posting_date           TEXT NOT NULL,
	check_date             TEXT,
	amount                 REAL NOT NULL,
	category               TEXT NOT NULL,
	check_number           TEXT,
	payee_name             TEXT,
	description            TEXT NOT NULL,
	is_void                INTEGER NOT NULL,
	void_of_transaction_id INTEGER,
	created_by             TEXT NOT NULL,
	load_ts                TEXT NOT NULL,
	created_at             TEXT NOT NULL
);
CREATE INDEX idx_core_claim_txns_claim_id ON core_claim_transactions(claim_id);

CREATE TABLE core_premium_transactions (
	transaction_id             INTEGER PRIMARY KEY,
	policy_id                  INTEGER NOT NULL,
	policy_number              TEXT NOT NULL,
	line_of_business           TEXT NOT NULL,
	transaction_type           TEXT NOT NULL,
	transaction_date           TEXT NOT NULL,
	accounting_date            TEXT NOT NULL,
	booking_date               TEXT NOT NULL,
	effective_date             TEXT NOT NULL,
	amount                     REAL NOT NULL,
	accounting_period          TEXT NOT NULL,
	state                      TEXT NOT NULL,
	agent_id                   INTEGER NOT NULL,
	is_reversal                INTEGER NOT NULL,
	reversal_of_transaction_id INTEGER,
	source_system              TEXT NOT NULL,
	load_ts                    TEXT NOT NULL,
	created_at                 TEXT NOT NULL
);
CREATE INDEX idx_core_prem_txns_policy_id ON core_premium_transactions(policy_id);

CREATE TABLE core_quotes (
	quote_id         INTEGER PRIMARY KEY,
	quote_number     TEXT NOT NULL,
	insured_id       INTEGER NOT NULL,
	agent_id         INTEGER NOT NULL,
	line_of_business TEXT NOT NULL,
	state            TEXT NOT NULL,
	quote_date       TEXT NOT NULL,
	quoted_premium   REAL NOT NULL,
	status           TEXT NOT NULL,
	decline_reason   TEXT,
	competitor_name  TEXT,
	bound_policy_id  INTEGER,
	source_system    TEXT NOT NULL,
	created_at       TEXT NOT NULL
);

CREATE TABLE unstructured_notes (
	note_id       INTEGER PRIMARY KEY,
	entity_type   TEXT NOT NULL,
	entity_id     INTEGER NOT NULL,
	entity_number TEXT NOT NULL,
	note_type     TEXT NOT NULL,
	author        TEXT NOT NULL,
	note_text     TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	source_system TEXT NOT NULL
);

CREATE TABLE staging_legacy_policies_as400 (
	POL_NBR        TEXT, INSRD_ID TEXT, AGT_CD TEXT, LOB TEXT,
	EFF_DT         TEXT, EXP_DT TEXT, STATUS TEXT, WRT_PREM TEXT,
	EXPO_UNITS     TEXT, ST TEXT, TERR TEXT, DEDUCT TEXT, LMT TEXT,
	CNCL_DT        TEXT, CNCL_RSN TEXT, VER_NBR TEXT, CURR_IND TEXT,
	DEL_IND        TEXT, SYS_ENT_DT TEXT, LOAD_TIMESTAMP TEXT, BATCH_ID TEXT
);

CREATE TABLE staging_guidewire_claim_events (
	eventId              INTEGER,
	claimPublicId        TEXT,
	externalClaimNumber  TEXT,
	policyNumberRef      TEXT,
	insuredPartyId       INTEGER,
	lobCode              TEXT,
	eventType            TEXT,
	eventTimestamp       TEXT,
	dateOfLoss           TEXT,
	dateReported         TEXT,
	claimState           TEXT,
	lossCauseCode        TEXT,
	lossDescriptionText  TEXT,
	lossLocationState    TEXT,
	lossLocationZip      TEXT,
	claimantDisplayName  TEXT,
	claimantRole         TEXT,
	assignedAdjusterId   INTEGER,
	assignedAdjusterName TEXT,
	financials_reserve       REAL,
	financials_paidLoss      REAL,
	financials_paidExpense   REAL,
	financials_salvageSubro  REAL,
	financials_totalIncurred REAL,
	catCode              TEXT,
	isLitigated          TEXT,
	siuReferral          TEXT,
	closedDate           TEXT,
	isDeleted            INTEGER,
	extractTimestamp     TEXT,
	gwBatchNumber        INTEGER
);

CREATE TABLE staging_broker_submissions_feed (
	submission_id       TEXT,
	broker_name         TEXT,
	broker_code         TEXT,
	insured_name        TEXT,
	line_of_business    TEXT,
	state               TEXT,
	submission_date     TEXT,
	requested_effective TEXT,
	quoted_premium      REAL,
	status              TEXT,
	competitor_market   TEXT,
	decline_notes       TEXT,
	bound_policy_ref    TEXT,
	data_quality_flag   TEXT,
	ingestion_ts        TEXT
);

CREATE TABLE staging_duckcreek_premium_transactions (
	dc_transaction_id TEXT,
	policy_ref        TEXT,
	lob               TEXT,
	txn_type_cd       TEXT,
	txn_dt            TEXT,
	acctg_dt          TEXT,
	premium_amt       TEXT,
	acct_period       TEXT,
	risk_state        TEXT,
	producer_cd       TEXT,
	reversal_flag     TEXT,
	reversal_of_id    TEXT,
	load_dt           TEXT,
	file_name         TEXT
);

CREATE TABLE staging_activity_cdc_event_log (
	event_id        INTEGER,
	entity_type     TEXT,
	entity_key      TEXT,
	entity_ref      TEXT,
	action          TEXT,
	version         INTEGER,
	source_system   TEXT,
	event_timestamp TEXT,
	payload_json    TEXT,
	processed_flag  TEXT,
	error_message   TEXT
);

CREATE TABLE gold_lob_year_summary (
	line_of_business        TEXT NOT NULL,
	lob_description         TEXT NOT NULL,
	policy_year             INTEGER NOT NULL,
	policy_count            INTEGER NOT NULL,
	total_exposure_units    REAL NOT NULL,
	written_premium         REAL NOT NULL,
	earned_premium          REAL NOT NULL,
	claim_count             INTEGER NOT NULL,
	open_claim_count        INTEGER NOT NULL,
	closed_claim_count      INTEGER NOT NULL,
	paid_loss               REAL NOT NULL,
	paid_alae               REAL NOT NULL,
	paid_ulae               REAL NOT NULL,
	total_lae               REAL NOT NULL,
	salvage                 REAL NOT NULL,
	subrogation             REAL NOT NULL,
	net_incurred_loss       REAL NOT NULL,
	total_incurred          REAL NOT NULL,
	frequency               REAL NOT NULL,
	severity                REAL NOT NULL,
	pure_premium            REAL NOT NULL,
	average_premium         REAL NOT NULL,
	loss_ratio              REAL NOT NULL,
	lae_ratio               REAL NOT NULL,
	combined_loss_lae_ratio REAL NOT NULL
);

CREATE TABLE gold_underwriting_metrics (
	line_of_business           TEXT NOT NULL,
	lob_description            TEXT NOT NULL,
	policy_year                INTEGER NOT NULL,
	written_premium            REAL NOT NULL,
	earned_premium             REAL NOT NULL,
	net_incurred_loss          REAL NOT NULL,
	total_lae                  REAL NOT NULL,
	underwriting_expense       REAL NOT NULL,
	underwriting_expense_ratio REAL NOT NULL,
	operating_expense          REAL NOT NULL,
	operating_expense_ratio    REAL NOT NULL,
	loss_ratio                 REAL NOT NULL,
	lae_ratio                  REAL NOT NULL,
	combined_ratio             REAL NOT NULL,
	underwriting_profit        REAL NOT NULL,
	underwriting_profit_ratio  REAL NOT NULL
);

CREATE TABLE gold_quote_bind_metrics (
	line_of_business        TEXT NOT NULL,
	lob_description         TEXT NOT NULL,
	quote_year              INTEGER NOT NULL,
	total_quotes            INTEGER NOT NULL,
	bound_quotes            INTEGER NOT NULL,
	declined_quotes         INTEGER NOT NULL,
	expired_quotes          INTEGER NOT NULL,
	lost_quotes             INTEGER NOT NULL,
	total_quoted_premium    REAL NOT NULL,
	bound_quoted_premium    REAL NOT NULL,
	close_ratio             REAL NOT NULL,
	average_quoted_premium  REAL NOT NULL
);

CREATE TABLE gold_retention_metrics (
	line_of_business   TEXT NOT NULL,
	lob_description    TEXT NOT NULL,
	total_policies     INTEGER NOT NULL,
	renewal_policies   INTEGER NOT NULL,
	new_policies       INTEGER NOT NULL,
	retention_ratio    REAL NOT NULL,
	new_business_ratio REAL NOT NULL
);

CREATE TABLE data_quality_known_issues (
	table_name      TEXT NOT NULL,
	issue_type      TEXT NOT NULL,
	description     TEXT NOT NULL,
	status          TEXT NOT NULL,
	identified_date TEXT NOT NULL
);
`
