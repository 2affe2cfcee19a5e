// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"expvar"
	"sync"
	"time"
)

var (
	initOnce sync.Once

	analyzeTotal     *expvar.Int
	analyzeFailures  *expvar.Int
	analyzeLatencyMS *expvar.Int

	regenerateTotal    *expvar.Map
	regenerateFailures *expvar.Map

	chatStreamsTotal  *expvar.Int
	chatStreamsActive *expvar.Int

	ledgerWritesTotal        *expvar.Int
	ledgerWriteFailures      *expvar.Int
	catalogOperationsTotal   *expvar.Map
	catalogOperationErrTotal *expvar.Map
)

func initMetrics() {
	initOnce.Do(func() {
		analyzeTotal = expvar.NewInt("analyzer_calls_total")
		analyzeFailures = expvar.NewInt("analyzer_failures_total")
		analyzeLatencyMS = expvar.NewInt("analyzer_last_latency_ms")
		regenerateTotal = expvar.NewMap("analyzer_regenerate_total")
		regenerateFailures = expvar.NewMap("analyzer_regenerate_failures")
		chatStreamsTotal = expvar.NewInt("chat_streams_total")
		chatStreamsActive = expvar.NewInt("chat_streams_active")
		ledgerWritesTotal = expvar.NewInt("ledger_writes_total")
		ledgerWriteFailures = expvar.NewInt("ledger_write_failures_total")
		catalogOperationsTotal = expvar.NewMap("catalog_operations_total")
		catalogOperationErrTotal = expvar.NewMap("catalog_operation_failures")
	})
}

// RecordAnalyze notes one full-analysis call and its outcome.
func RecordAnalyze(start time.Time, err error) {
	initMetrics()
	analyzeTotal.Add(1)
	analyzeLatencyMS.Set(time.Since(start).Milliseconds())
	if err != nil {
		analyzeFailures.Add(1)
	}
}

// RecordRegenerate notes a per-section regeneration keyed by section name.
func RecordRegenerate(section string, err error) {
	initMetrics()
	regenerateTotal.Add(section, 1)
	if err != nil {
		regenerateFailures.Add(section, 1)
	}
}

// ChatStreamStarted marks a chat stream as open.
func ChatStreamStarted() {
	initMetrics()
	chatStreamsTotal.Add(1)
	chatStreamsActive.Add(1)
}

// ChatStreamFinished marks a chat stream as closed.
func ChatStreamFinished() {
	initMetrics()
	chatStreamsActive.Add(-1)
}

// RecordLedgerWrite notes one durable ledger persist attempt.
func RecordLedgerWrite(err error) {
	initMetrics()
	ledgerWritesTotal.Add(1)
	if err != nil {
		ledgerWriteFailures.Add(1)
	}
}

// RecordCatalogOp notes one saved-idea catalog operation keyed by verb.
func RecordCatalogOp(op string, err error) {
	initMetrics()
	catalogOperationsTotal.Add(op, 1)
	if err != nil {
		catalogOperationErrTotal.Add(op, 1)
	}
}
