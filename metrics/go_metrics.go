package metrics

import (
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

// Metrics records adapter metrics into a go-metrics registry. The host
// application owns the registry and whatever exporter drains it.
type Metrics struct {
	MetricsRegistry       gometrics.Registry
	OperationMeters       map[Operation]map[OperationStatus]gometrics.Meter
	ConsentChangeMeter    gometrics.Meter
	ReadinessTimer        gometrics.Timer
	ReadinessFailureMeter gometrics.Meter

	// Per-key meters are created lazily because partner keys are data-driven.
	keyMeters        map[consent.Key]gometrics.Meter
	keyMetersRWMutex sync.RWMutex
}

// NewMetrics initializes all static meters on the given registry.
func NewMetrics(registry gometrics.Registry) *Metrics {
	m := &Metrics{
		MetricsRegistry:       registry,
		OperationMeters:       make(map[Operation]map[OperationStatus]gometrics.Meter),
		ConsentChangeMeter:    gometrics.GetOrRegisterMeter("consent.changes", registry),
		ReadinessTimer:        gometrics.GetOrRegisterTimer("readiness.wait_time", registry),
		ReadinessFailureMeter: gometrics.GetOrRegisterMeter("readiness.failures", registry),
		keyMeters:             make(map[consent.Key]gometrics.Meter),
	}

	for _, op := range Operations() {
		m.OperationMeters[op] = make(map[OperationStatus]gometrics.Meter)
		for _, status := range OperationStatuses() {
			name := "operations." + string(op) + "." + string(status)
			m.OperationMeters[op][status] = gometrics.GetOrRegisterMeter(name, registry)
		}
	}

	return m
}

func (m *Metrics) RecordOperation(op Operation, status OperationStatus) {
	if statuses, ok := m.OperationMeters[op]; ok {
		if meter, ok := statuses[status]; ok {
			meter.Mark(1)
		}
	}
}

func (m *Metrics) RecordConsentChange(key consent.Key) {
	m.ConsentChangeMeter.Mark(1)
	m.getKeyMeter(key).Mark(1)
}

func (m *Metrics) RecordReadinessWait(length time.Duration) {
	m.ReadinessTimer.Update(length)
}

func (m *Metrics) RecordReadinessFailure() {
	m.ReadinessFailureMeter.Mark(1)
}

func (m *Metrics) getKeyMeter(key consent.Key) gometrics.Meter {
	m.keyMetersRWMutex.RLock()
	meter, ok := m.keyMeters[key]
	m.keyMetersRWMutex.RUnlock()
	if ok {
		return meter
	}

	m.keyMetersRWMutex.Lock()
	defer m.keyMetersRWMutex.Unlock()
	if meter, ok = m.keyMeters[key]; ok {
		return meter
	}
	meter = gometrics.GetOrRegisterMeter("consent.changes."+string(key), m.MetricsRegistry)
	m.keyMeters[key] = meter
	return meter
}
