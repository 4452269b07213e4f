package usercentrics

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"github.com/prebid/go-gdpr/vendorconsent"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/config"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/errortypes"
)

// notifyPolicy decides which prior state a freshly read consent value is
// diffed against before notifying the listener.
type notifyPolicy int

const (
	// notifyNever suppresses all notifications. Used for the very first
	// population of state during Initialize.
	notifyNever notifyPolicy = iota
	// notifyCurrent diffs against the live snapshot as it was immediately
	// before this refresh.
	notifyCurrent
	// notifyCached diffs against a caller-supplied baseline captured before
	// a reset cleared the live snapshot.
	notifyCached
)

// refresh reads every tracked consent representation from the vendor SDK
// and updates the snapshot, notifying per changed key. Every representation
// update, including the asynchronous TCF read, completes before refresh
// returns so callers observe a consistent snapshot. The per-key diffs are
// independent: one change neither suppresses nor duplicates another.
func (a *Adapter) refresh(ctx context.Context, status ReadyStatus, policy notifyPolicy, baseline consent.Snapshot, partnerBaseline map[consent.Key]consent.Status) error {
	a.mu.Lock()
	a.shouldCollectConsent = status.ShouldCollectConsent
	a.mu.Unlock()

	signal := a.client.SignalData()
	a.updateEntry(consent.KeyUSP, consent.Value(signal.SignalString), policy, baseline)
	a.updateEntry(consent.KeyCCPAOptIn, optInValue(signal.OptedOut), policy, baseline)

	tcf, err := a.awaitConsentString(ctx)
	if err != nil {
		return &errortypes.ActionFailed{Message: "usercentrics consent string read interrupted: " + err.Error()}
	}
	warnOnMalformedConsentString(tcf.ConsentString)
	a.updateEntry(consent.KeyTCF, consent.Value(tcf.ConsentString), policy, baseline)

	a.updatePartners(status.Consents, policy, partnerBaseline)
	return nil
}

// updateEntry applies one representation's new value, where an empty value
// means the representation is absent and removes the key.
func (a *Adapter) updateEntry(key consent.Key, newValue consent.Value, policy notifyPolicy, baseline consent.Snapshot) {
	a.mu.Lock()
	oldValue := a.snapshot[key]
	a.snapshot.Put(key, newValue)
	a.mu.Unlock()

	if policy == notifyCached {
		oldValue = baseline[key]
	}
	if policy != notifyNever && oldValue != newValue {
		a.recordChange(key)
	}
}

// updatePartners folds the vendor's per-service consent list into the
// snapshot and the internal partner shadow map. The shadow map keeps the
// prior tri-state status per partner so diffs don't round-trip through
// snapshot strings. Entries resolving to the Chartboost Core DPS name are
// the core's own dashboard entry, not an advertising partner, and are
// skipped.
func (a *Adapter) updatePartners(services []ServiceConsent, policy notifyPolicy, partnerBaseline map[consent.Key]consent.Status) {
	a.mu.RLock()
	templates := a.templates
	coreDPSName := config.DefaultCoreDPSName
	if a.options != nil {
		coreDPSName = a.options.CoreDPSName
	}
	a.mu.RUnlock()

	for _, service := range services {
		key := templates.Resolve(service.TemplateID)
		if string(key) == coreDPSName {
			continue
		}
		newStatus := consent.StatusOf(service.Status)

		a.mu.Lock()
		oldStatus := a.partnerStatus[key]
		a.partnerStatus[key] = newStatus
		if value, ok := newStatus.Value(); ok {
			a.snapshot.Put(key, value)
		}
		a.mu.Unlock()

		if policy == notifyCached {
			oldStatus = partnerBaseline[key]
		}
		if policy != notifyNever && oldStatus != newStatus {
			a.recordChange(key)
		}
	}
}

// awaitConsentString wraps the vendor's asynchronous TCF read as a
// single-resolution rendezvous, mirroring awaitReady.
func (a *Adapter) awaitConsentString(ctx context.Context) (ConsentStringData, error) {
	done := make(chan ConsentStringData, 1)
	var once sync.Once
	a.client.ConsentStringData(func(data ConsentStringData) {
		once.Do(func() { done <- data })
	})

	select {
	case data := <-done:
		return data, nil
	case <-ctx.Done():
		return ConsentStringData{}, ctx.Err()
	}
}

// optInValue derives the CCPA representation from the vendor's tri-state
// opt-out flag. No choice yet means the representation is absent.
func optInValue(optedOut *bool) consent.Value {
	if optedOut == nil {
		return ""
	}
	if *optedOut {
		return consent.ValueDenied
	}
	return consent.ValueGranted
}

// warnOnMalformedConsentString parses the TCF string for diagnostics only.
// The string is exposed opaquely either way; Chartboost Core does not own
// its encoding.
func warnOnMalformedConsentString(consentString string) {
	if consentString == "" {
		return
	}
	if _, err := vendorconsent.ParseString(consentString); err != nil {
		warn := &errortypes.MalformedConsentString{
			Message: "usercentrics returned a consent string that does not parse: " + err.Error(),
		}
		glog.Warning(warn.Error())
	}
}
