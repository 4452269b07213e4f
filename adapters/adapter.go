package adapters

import (
	"context"
	"encoding/json"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

// ConsentAdapter is the surface Chartboost Core uses to query and control
// user privacy consent through a CMP adapter.
//
// All operations return an error from the errortypes package instead of
// panicking; vendor failures never reach the caller raw. Concurrent
// operations (e.g. GrantConsent racing ResetConsent) are not coordinated by
// the adapter: callers serialize them or accept last-writer-wins.
type ConsentAdapter interface {
	// Initialize starts the underlying CMP SDK using the loosely-typed JSON
	// settings payload and performs the first consent read. No change
	// notifications fire for the initial population of state.
	Initialize(ctx context.Context, settings json.RawMessage) error

	// GrantConsent gives consent to all data processing services.
	GrantConsent(ctx context.Context, source consent.Source) error

	// DenyConsent denies consent to all data processing services.
	DenyConsent(ctx context.Context, source consent.Source) error

	// ResetConsent clears all consent state, resets the CMP SDK and
	// re-initializes it. Notifications compare against the pre-reset state.
	ResetConsent(ctx context.Context) error

	// ShowConsentDialog presents the CMP's consent dialog of the given type.
	ShowConsentDialog(ctx context.Context, dialogType consent.DialogType) error

	// Consents returns a copy of the current consent snapshot. Keys without
	// a resolvable value are absent, never empty.
	Consents() map[consent.Key]consent.Value

	// ShouldCollectConsent reports the CMP's current determination of
	// whether consent collection is required. Defaults to true before the
	// first successful read.
	ShouldCollectConsent() bool

	// SetListener registers the change listener. Passing nil unregisters.
	SetListener(listener consent.Listener)
}
