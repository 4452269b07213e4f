package usercentrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
)

type readyResult struct {
	status ReadyStatus
	err    error
}

// awaitReady wraps the vendor's success/failure callback pair as a
// single-resolution rendezvous. The sync.Once guard keeps a race between
// the two callbacks, or between a callback and cancellation, from resuming
// the caller twice; the buffered channel keeps a late callback from leaking
// its goroutine after cancellation.
func (a *Adapter) awaitReady(ctx context.Context) (ReadyStatus, error) {
	start := time.Now()
	done := make(chan readyResult, 1)
	var once sync.Once
	resolve := func(r readyResult) {
		once.Do(func() { done <- r })
	}

	a.client.IsReady(
		func(status ReadyStatus) { resolve(readyResult{status: status}) },
		func(err error) { resolve(readyResult{err: err}) },
	)

	select {
	case r := <-done:
		a.metricsEngine.RecordReadinessWait(time.Since(start))
		return r.status, r.err
	case <-ctx.Done():
		a.metricsEngine.RecordReadinessWait(time.Since(start))
		return ReadyStatus{}, ctx.Err()
	}
}

// executeWhenReady runs action once the vendor SDK reports ready, lazily
// initializing it with a single retry when it is not. A panic inside the
// action is converted into an ActionFailed error instead of crashing the
// caller. Each external call gets its own single-retry cycle; there is no
// persistent retry loop.
func (a *Adapter) executeWhenReady(ctx context.Context, action func(context.Context, ReadyStatus) error) (err error) {
	status, readyErr := a.awaitReady(ctx)
	if readyErr != nil {
		opts := a.getOptions()
		if opts == nil {
			a.metricsEngine.RecordReadinessFailure()
			return &errortypes.Initialization{Message: "usercentrics is not ready and no configuration was supplied: " + readyErr.Error()}
		}
		if ctx.Err() != nil {
			a.metricsEngine.RecordReadinessFailure()
			return &errortypes.Initialization{Message: "usercentrics readiness wait interrupted: " + readyErr.Error()}
		}

		glog.Warningf("Usercentrics is not ready (%v), re-initializing", readyErr)
		a.client.Initialize(ctx, opts.Usercentrics)
		status, readyErr = a.awaitReady(ctx)
		if readyErr != nil {
			a.metricsEngine.RecordReadinessFailure()
			a.failAllConsents()
			return &errortypes.Initialization{Message: "usercentrics did not become ready after re-initialization: " + readyErr.Error()}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("Consent action panicked: %v", r)
			err = &errortypes.ActionFailed{Message: fmt.Sprintf("consent action failed: %v", r)}
		}
	}()
	return action(ctx, status)
}

// failAllConsents clears all consent state after an unrecoverable readiness
// failure and reports every previously-present key as removed. Readiness is
// implicitly unknown until the next successful initialize or reset.
func (a *Adapter) failAllConsents() {
	a.mu.Lock()
	keys := make([]consent.Key, 0, len(a.snapshot))
	for key := range a.snapshot {
		keys = append(keys, key)
	}
	a.snapshot.Clear()
	for key := range a.partnerStatus {
		delete(a.partnerStatus, key)
	}
	a.mu.Unlock()

	for _, key := range keys {
		a.recordChange(key)
	}
}
