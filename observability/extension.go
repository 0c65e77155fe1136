// Package observability provides a metrics extension for shopbook that
// records lifecycle event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/shopbook/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnAccountCreated    = (*MetricsExtension)(nil)
	_ plugin.OnAccountUpdated    = (*MetricsExtension)(nil)
	_ plugin.OnAccountDeleted    = (*MetricsExtension)(nil)
	_ plugin.OnChartBootstrapped = (*MetricsExtension)(nil)
	_ plugin.OnEntryPosted       = (*MetricsExtension)(nil)
	_ plugin.OnEntryUpdated      = (*MetricsExtension)(nil)
	_ plugin.OnEntryDeleted      = (*MetricsExtension)(nil)
	_ plugin.OnBalancesComputed  = (*MetricsExtension)(nil)
	_ plugin.OnReportGenerated   = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a shopbook plugin to automatically track ledger metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Account metrics
	AccountCreated    Counter
	AccountUpdated    Counter
	AccountDeleted    Counter
	ChartBootstrapped Counter

	// Journal entry metrics
	EntryPosted  Counter
	EntryUpdated Counter
	EntryDeleted Counter

	// Balance and reporting metrics
	BalancesComputed Counter
	BalanceBatchSize Histogram
	ReportsGenerated Counter

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Account metrics
		AccountCreated:    factory.Counter("shopbook.account.created"),
		AccountUpdated:    factory.Counter("shopbook.account.updated"),
		AccountDeleted:    factory.Counter("shopbook.account.deleted"),
		ChartBootstrapped: factory.Counter("shopbook.chart.bootstrapped"),

		// Journal entry metrics
		EntryPosted:  factory.Counter("shopbook.entry.posted"),
		EntryUpdated: factory.Counter("shopbook.entry.updated"),
		EntryDeleted: factory.Counter("shopbook.entry.deleted"),

		// Balance and reporting metrics
		BalancesComputed: factory.Counter("shopbook.balances.computed"),
		BalanceBatchSize: factory.Histogram("shopbook.balances.batch.size"),
		ReportsGenerated: factory.Counter("shopbook.reports.generated"),

		// Error metrics
		StoreErrors:  factory.Counter("shopbook.store.errors"),
		PluginErrors: factory.Counter("shopbook.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountCreated implements plugin.OnAccountCreated.
func (m *MetricsExtension) OnAccountCreated(_ context.Context, _ interface{}) error {
	m.AccountCreated.Inc()
	return nil
}

// OnAccountUpdated implements plugin.OnAccountUpdated.
func (m *MetricsExtension) OnAccountUpdated(_ context.Context, _, _ interface{}) error {
	m.AccountUpdated.Inc()
	return nil
}

// OnAccountDeleted implements plugin.OnAccountDeleted.
func (m *MetricsExtension) OnAccountDeleted(_ context.Context, _ string) error {
	m.AccountDeleted.Inc()
	return nil
}

// OnChartBootstrapped implements plugin.OnChartBootstrapped.
func (m *MetricsExtension) OnChartBootstrapped(_ context.Context, _ string, _ []interface{}) error {
	m.ChartBootstrapped.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Journal entry lifecycle hooks
// ──────────────────────────────────────────────────

// OnEntryPosted implements plugin.OnEntryPosted.
func (m *MetricsExtension) OnEntryPosted(_ context.Context, _ interface{}) error {
	m.EntryPosted.Inc()
	return nil
}

// OnEntryUpdated implements plugin.OnEntryUpdated.
func (m *MetricsExtension) OnEntryUpdated(_ context.Context, _, _ interface{}) error {
	m.EntryUpdated.Inc()
	return nil
}

// OnEntryDeleted implements plugin.OnEntryDeleted.
func (m *MetricsExtension) OnEntryDeleted(_ context.Context, _ string) error {
	m.EntryDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Balance and reporting hooks
// ──────────────────────────────────────────────────

// OnBalancesComputed implements plugin.OnBalancesComputed.
func (m *MetricsExtension) OnBalancesComputed(_ context.Context, _ string, count int) error {
	m.BalancesComputed.Inc()
	m.BalanceBatchSize.Observe(float64(count))
	return nil
}

// OnReportGenerated implements plugin.OnReportGenerated.
func (m *MetricsExtension) OnReportGenerated(_ context.Context, _ string, _ interface{}) error {
	m.ReportsGenerated.Inc()
	return nil
}
