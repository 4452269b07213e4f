package metrics

// This file provides a no-op implementation of MetricsEngine.
// Hosts that don't want metrics anywhere can use this.

import (
	"time"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

func NewNilMetrics() MetricsEngine {
	return &nilMetrics{}
}

type nilMetrics struct{}

func (m *nilMetrics) RecordOperation(op Operation, status OperationStatus) {}

func (m *nilMetrics) RecordConsentChange(key consent.Key) {}

func (m *nilMetrics) RecordReadinessWait(length time.Duration) {}

func (m *nilMetrics) RecordReadinessFailure() {}
