package metrics

import (
	"time"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

// Operation : consent operation enumeration
type Operation string

const (
	OpInitialize     Operation = "initialize"
	OpGrant          Operation = "grant"
	OpDeny           Operation = "deny"
	OpReset          Operation = "reset"
	OpShowDialog     Operation = "show_dialog"
	OpExternalUpdate Operation = "external_update"
)

// OperationStatus : the operation outcome
type OperationStatus string

const (
	StatusOK  OperationStatus = "ok"
	StatusErr OperationStatus = "err"
)

// Operations returns the list of metric-tracked operations.
func Operations() []Operation {
	return []Operation{
		OpInitialize,
		OpGrant,
		OpDeny,
		OpReset,
		OpShowDialog,
		OpExternalUpdate,
	}
}

// OperationStatuses returns the list of metric-tracked operation outcomes.
func OperationStatuses() []OperationStatus {
	return []OperationStatus{
		StatusOK,
		StatusErr,
	}
}

// MetricsEngine is a generic interface to record adapter metrics into the
// desired backend.
type MetricsEngine interface {
	// RecordOperation marks the completion of a public consent operation.
	RecordOperation(op Operation, status OperationStatus)
	// RecordConsentChange marks one listener notification for a key.
	RecordConsentChange(key consent.Key)
	// RecordReadinessWait tracks how long the readiness gate waited for the
	// vendor SDK, including a failed wait.
	RecordReadinessWait(length time.Duration)
	// RecordReadinessFailure marks a gate failure after the single retry.
	RecordReadinessFailure()
}
