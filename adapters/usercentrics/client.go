package usercentrics

import (
	"context"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/config"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

// OriginType is the vendor SDK's classification of who triggered a consent
// decision.
type OriginType int

const (
	// OriginExplicit marks a decision made directly by the end user.
	OriginExplicit OriginType = iota
	// OriginImplicit marks a decision made on the user's behalf.
	OriginImplicit
)

// OriginOf maps a Chartboost Core consent source to the vendor origin type.
func OriginOf(source consent.Source) OriginType {
	if source == consent.SourceUser {
		return OriginExplicit
	}
	return OriginImplicit
}

// ServiceConsent is one data processing service entry from the vendor's
// ready status.
type ServiceConsent struct {
	// TemplateID is the vendor-assigned identifier of the service template.
	TemplateID string
	// Status is true when the user consented to the service.
	Status bool
}

// ReadyStatus is the vendor SDK's state once its consent data is loaded.
type ReadyStatus struct {
	ShouldCollectConsent bool
	Consents             []ServiceConsent
}

// SignalData carries the vendor's US privacy (CCPA/USP) information.
type SignalData struct {
	// OptedOut is nil when the user has made no CCPA choice yet.
	OptedOut *bool
	// SignalString is the raw US privacy signal, e.g. "1YN-". May be empty.
	SignalString string
}

// ConsentStringData carries the vendor's TCF information.
type ConsentStringData struct {
	// ConsentString is the raw IAB TCF string. Empty when TCF does not
	// apply or no choice has been made.
	ConsentString string
}

// Client binds the Usercentrics SDK. The adapter consumes these signatures
// only; hosts supply a bridge to the platform SDK, and tests supply a fake.
//
// IsReady invokes exactly one of the two callbacks, on an arbitrary
// goroutine. ConsentStringData likewise invokes its callback exactly once.
type Client interface {
	Initialize(ctx context.Context, options config.UsercentricsOptions)
	IsReady(onSuccess func(ReadyStatus), onFailure func(error))
	Reset()
	AcceptAll(origin OriginType)
	DenyAll(origin OriginType)
	SignalData() SignalData
	ConsentStringData(callback func(ConsentStringData))
	ShowFirstLayer(ctx context.Context) error
	ShowSecondLayer(ctx context.Context) error
	OnConsentUpdated(callback func())
}
