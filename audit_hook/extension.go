// Package audithook bridges shopbook lifecycle events to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not import an
// audit backend directly. Callers inject a RecorderFunc adapter that
// bridges to their trail at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/shopbook/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnAccountCreated    = (*Extension)(nil)
	_ plugin.OnAccountUpdated    = (*Extension)(nil)
	_ plugin.OnAccountDeleted    = (*Extension)(nil)
	_ plugin.OnChartBootstrapped = (*Extension)(nil)
	_ plugin.OnEntryPosted       = (*Extension)(nil)
	_ plugin.OnEntryUpdated      = (*Extension)(nil)
	_ plugin.OnEntryDeleted      = (*Extension)(nil)
	_ plugin.OnBalancesComputed  = (*Extension)(nil)
	_ plugin.OnReportGenerated   = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audit_hook package does not depend on
// any particular trail implementation; callers inject the concrete
// backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges shopbook lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountCreated implements plugin.OnAccountCreated.
func (e *Extension) OnAccountCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionAccountCreated, SeverityInfo, OutcomeSuccess,
		ResourceAccount, "", CategoryLedger, nil,
		"event", "account_created",
	)
}

// OnAccountUpdated implements plugin.OnAccountUpdated.
func (e *Extension) OnAccountUpdated(ctx context.Context, _, _ interface{}) error {
	return e.record(ctx, ActionAccountUpdated, SeverityInfo, OutcomeSuccess,
		ResourceAccount, "", CategoryLedger, nil,
		"event", "account_updated",
	)
}

// OnAccountDeleted implements plugin.OnAccountDeleted.
func (e *Extension) OnAccountDeleted(ctx context.Context, accountID string) error {
	return e.record(ctx, ActionAccountDeleted, SeverityWarning, OutcomeSuccess,
		ResourceAccount, accountID, CategoryLedger, nil,
		"account_id", accountID,
	)
}

// OnChartBootstrapped implements plugin.OnChartBootstrapped.
func (e *Extension) OnChartBootstrapped(ctx context.Context, shopID string, accounts []interface{}) error {
	return e.record(ctx, ActionChartBootstrapped, SeverityInfo, OutcomeSuccess,
		ResourceChart, shopID, CategoryLedger, nil,
		"shop_id", shopID,
		"accounts", len(accounts),
	)
}

// ──────────────────────────────────────────────────
// Journal entry lifecycle hooks
// ──────────────────────────────────────────────────

// OnEntryPosted implements plugin.OnEntryPosted.
func (e *Extension) OnEntryPosted(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionEntryPosted, SeverityInfo, OutcomeSuccess,
		ResourceEntry, "", CategoryLedger, nil,
		"event", "entry_posted",
	)
}

// OnEntryUpdated implements plugin.OnEntryUpdated.
func (e *Extension) OnEntryUpdated(ctx context.Context, _, _ interface{}) error {
	return e.record(ctx, ActionEntryUpdated, SeverityWarning, OutcomeSuccess,
		ResourceEntry, "", CategoryLedger, nil,
		"event", "entry_updated",
	)
}

// OnEntryDeleted implements plugin.OnEntryDeleted.
func (e *Extension) OnEntryDeleted(ctx context.Context, entryID string) error {
	return e.record(ctx, ActionEntryDeleted, SeverityWarning, OutcomeSuccess,
		ResourceEntry, entryID, CategoryLedger, nil,
		"entry_id", entryID,
	)
}

// ──────────────────────────────────────────────────
// Reporting hooks
// ──────────────────────────────────────────────────

// OnBalancesComputed implements plugin.OnBalancesComputed.
func (e *Extension) OnBalancesComputed(ctx context.Context, shopID string, count int) error {
	return e.record(ctx, ActionBalancesComputed, SeverityInfo, OutcomeSuccess,
		ResourceReport, shopID, CategoryReporting, nil,
		"shop_id", shopID,
		"accounts", count,
	)
}

// OnReportGenerated implements plugin.OnReportGenerated.
func (e *Extension) OnReportGenerated(ctx context.Context, shopID string, _ interface{}) error {
	return e.record(ctx, ActionReportGenerated, SeverityInfo, OutcomeSuccess,
		ResourceReport, shopID, CategoryReporting, nil,
		"shop_id", shopID,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
