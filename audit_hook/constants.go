package audithook

// Action constants for audit events.
const (
	// Account actions
	ActionAccountCreated    = "account.created"
	ActionAccountUpdated    = "account.updated"
	ActionAccountDeleted    = "account.deleted"
	ActionChartBootstrapped = "chart.bootstrapped"

	// Journal entry actions
	ActionEntryPosted  = "entry.posted"
	ActionEntryUpdated = "entry.updated"
	ActionEntryDeleted = "entry.deleted"

	// Reporting actions
	ActionBalancesComputed = "balances.computed"
	ActionReportGenerated  = "report.generated"
)

// Resource constants for audit events.
const (
	ResourceAccount = "account"
	ResourceEntry   = "entry"
	ResourceChart   = "chart"
	ResourceReport  = "report"
)

// Category constants for audit events.
const (
	CategoryLedger    = "ledger"
	CategoryReporting = "reporting"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
