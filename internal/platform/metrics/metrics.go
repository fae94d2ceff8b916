// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "billing",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	numberingRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Name:      "document_number_retries_total",
		Help:      "Document number candidates rejected by the uniqueness constraint.",
	}, []string{"kind"})

	numberingExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Name:      "document_number_exhausted_total",
		Help:      "Document creations that ran out of numbering attempts.",
	}, []string{"kind"})

	balanceAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Name:      "payment_method_balance_adjustments_total",
		Help:      "Payment method balance adjustments by outcome.",
	}, []string{"outcome"})

	receiptOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billing",
		Name:      "receipt_operations_total",
		Help:      "Receipt create, update and delete operations by outcome.",
	}, []string{"operation", "outcome"})
)

// ObserveHTTP records one served request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func NumberingRetry(kind string) {
	numberingRetries.WithLabelValues(kind).Inc()
}

func NumberingExhausted(kind string) {
	numberingExhausted.WithLabelValues(kind).Inc()
}

// BalanceAdjusted records an adjustment; outcome is "applied" or "rejected".
func BalanceAdjusted(outcome string) {
	balanceAdjustments.WithLabelValues(outcome).Inc()
}

// ReceiptOperation records a receipt mutation; outcome is "ok" or "failed".
func ReceiptOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	receiptOperations.WithLabelValues(operation, outcome).Inc()
}
