package usercentrics

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang/glog"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/adapters"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/config"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/metrics"
)

// AdapterID identifies this adapter to Chartboost Core.
const AdapterID = "usercentrics"

// Adapter translates between the Chartboost Core consent surface and the
// Usercentrics SDK.
//
// The snapshot and partner shadow map are mutated only by the reconciler.
// Accessors take a copy under the read lock, so concurrent reads are safe;
// concurrent public operations are not serialized by the adapter and fall
// back to last-writer-wins.
type Adapter struct {
	client        Client
	metricsEngine metrics.MetricsEngine

	mu                   sync.RWMutex
	options              *config.Options
	templates            *templateMap
	listener             consent.Listener
	snapshot             consent.Snapshot
	partnerStatus        map[consent.Key]consent.Status
	shouldCollectConsent bool
}

// Builder creates the adapter around a vendor SDK binding. Options may be
// nil when the settings payload is supplied later through Initialize. A nil
// metrics engine disables metrics.
func Builder(client Client, opts *config.Options, metricsEngine metrics.MetricsEngine) (adapters.ConsentAdapter, error) {
	if client == nil {
		return nil, &errortypes.Initialization{Message: "usercentrics client must not be nil"}
	}
	if metricsEngine == nil {
		metricsEngine = metrics.NewNilMetrics()
	}

	a := &Adapter{
		client:        client,
		metricsEngine: metricsEngine,
		templates:     newTemplateMap(nil),
		snapshot:      consent.Snapshot{},
		partnerStatus: map[consent.Key]consent.Status{},
		// Collect until the vendor says otherwise.
		shouldCollectConsent: true,
	}
	if opts != nil {
		a.setOptions(opts)
	}

	client.OnConsentUpdated(func() {
		go a.onExternalConsentUpdate()
	})

	return a, nil
}

// Initialize implements adapters.ConsentAdapter. The first population of
// state fires no change notifications.
func (a *Adapter) Initialize(ctx context.Context, settings json.RawMessage) (err error) {
	defer func() { a.recordOperation(metrics.OpInitialize, err) }()

	if len(settings) > 0 {
		opts, optsErr := config.NewFromJSON(settings)
		if optsErr != nil {
			return optsErr
		}
		a.setOptions(opts)
	}

	opts := a.getOptions()
	if opts == nil {
		return &errortypes.Initialization{Message: "no usercentrics configuration supplied"}
	}

	a.client.Initialize(ctx, opts.Usercentrics)
	return a.executeWhenReady(ctx, func(ctx context.Context, status ReadyStatus) error {
		return a.refresh(ctx, status, notifyNever, nil, nil)
	})
}

// GrantConsent implements adapters.ConsentAdapter.
func (a *Adapter) GrantConsent(ctx context.Context, source consent.Source) (err error) {
	defer func() { a.recordOperation(metrics.OpGrant, err) }()
	return a.setAllConsents(ctx, source, a.client.AcceptAll)
}

// DenyConsent implements adapters.ConsentAdapter.
func (a *Adapter) DenyConsent(ctx context.Context, source consent.Source) (err error) {
	defer func() { a.recordOperation(metrics.OpDeny, err) }()
	return a.setAllConsents(ctx, source, a.client.DenyAll)
}

func (a *Adapter) setAllConsents(ctx context.Context, source consent.Source, set func(OriginType)) error {
	return a.executeWhenReady(ctx, func(ctx context.Context, _ ReadyStatus) error {
		set(OriginOf(source))

		// The pre-action ready status predates the decision, so re-query
		// for a status that reflects it.
		status, err := a.awaitReady(ctx)
		if err != nil {
			return &errortypes.ActionFailed{Message: "usercentrics became unavailable after consent update: " + err.Error()}
		}
		return a.refresh(ctx, status, notifyCurrent, nil, nil)
	})
}

// ResetConsent implements adapters.ConsentAdapter. Change notifications
// compare the re-initialized state against the pre-reset baseline, not the
// transiently empty live snapshot.
func (a *Adapter) ResetConsent(ctx context.Context) (err error) {
	defer func() { a.recordOperation(metrics.OpReset, err) }()

	opts := a.getOptions()
	if opts == nil {
		return &errortypes.Initialization{Message: "no usercentrics configuration supplied"}
	}

	baseline, partnerBaseline := a.captureAndClear()
	a.client.Reset()
	a.client.Initialize(ctx, opts.Usercentrics)
	return a.executeWhenReady(ctx, func(ctx context.Context, status ReadyStatus) error {
		return a.refresh(ctx, status, notifyCached, baseline, partnerBaseline)
	})
}

// ShowConsentDialog implements adapters.ConsentAdapter.
func (a *Adapter) ShowConsentDialog(ctx context.Context, dialogType consent.DialogType) (err error) {
	defer func() { a.recordOperation(metrics.OpShowDialog, err) }()

	var show func(context.Context) error
	switch dialogType {
	case consent.DialogConcise:
		show = a.client.ShowFirstLayer
	case consent.DialogDetailed:
		show = a.client.ShowSecondLayer
	default:
		return &errortypes.DialogShow{Message: "unsupported consent dialog type"}
	}

	return a.executeWhenReady(ctx, func(ctx context.Context, _ ReadyStatus) error {
		if showErr := show(ctx); showErr != nil {
			return &errortypes.DialogShow{Message: "failed to show consent dialog: " + showErr.Error()}
		}
		return nil
	})
}

// Consents implements adapters.ConsentAdapter.
func (a *Adapter) Consents() map[consent.Key]consent.Value {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot.Clone()
}

// ShouldCollectConsent implements adapters.ConsentAdapter.
func (a *Adapter) ShouldCollectConsent() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.shouldCollectConsent
}

// SetListener implements adapters.ConsentAdapter.
func (a *Adapter) SetListener(listener consent.Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listener = listener
}

// onExternalConsentUpdate runs when the user changed consent through a
// vendor-owned UI the adapter did not present.
func (a *Adapter) onExternalConsentUpdate() {
	err := a.executeWhenReady(context.Background(), func(ctx context.Context, status ReadyStatus) error {
		return a.refresh(ctx, status, notifyCurrent, nil, nil)
	})
	a.recordOperation(metrics.OpExternalUpdate, err)
	if err != nil {
		glog.Errorf("Failed to process external usercentrics consent update: %v", err)
	}
}

func (a *Adapter) setOptions(opts *config.Options) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.options = opts
	a.templates = newTemplateMap(opts.PartnerIDMap)
}

func (a *Adapter) getOptions() *config.Options {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.options
}

func (a *Adapter) getListener() consent.Listener {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.listener
}

// captureAndClear returns the pre-reset state and empties the live maps
// without notifying. Notifications for a reset are deferred until the
// subsequent reconciliation diffs against the returned baseline.
func (a *Adapter) captureAndClear() (consent.Snapshot, map[consent.Key]consent.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()

	baseline := a.snapshot.Clone()
	partnerBaseline := make(map[consent.Key]consent.Status, len(a.partnerStatus))
	for key, status := range a.partnerStatus {
		partnerBaseline[key] = status
	}

	a.snapshot.Clear()
	for key := range a.partnerStatus {
		delete(a.partnerStatus, key)
	}
	return baseline, partnerBaseline
}

// recordChange updates metrics and notifies the registered listener. A
// panicking listener must not fail the reconciliation.
func (a *Adapter) recordChange(key consent.Key) {
	a.metricsEngine.RecordConsentChange(key)

	listener := a.getListener()
	if listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("Consent listener panicked on change of %q: %v", key, r)
		}
	}()
	listener.OnConsentChange(key)
}

func (a *Adapter) recordOperation(op metrics.Operation, err error) {
	if err != nil {
		a.metricsEngine.RecordOperation(op, metrics.StatusErr)
		return
	}
	a.metricsEngine.RecordOperation(op, metrics.StatusOK)
}
