package usercentrics

import (
	"context"
	"errors"
	"sync"

	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/config"
	"github.com/chartboost/chartboost-core-go-adapter-usercentrics/consent"
)

// fakeClient is a scriptable stand-in for the vendor SDK. Its callbacks run
// on their own goroutines, like the real SDK's do.
type fakeClient struct {
	mu sync.Mutex

	ready          bool
	initMakesReady bool
	status         ReadyStatus
	signal         SignalData
	signalPanics   bool
	consentString  string

	// silentReadiness keeps IsReady from invoking either callback.
	// doubleResolve invokes both callbacks to exercise the rendezvous guard.
	silentReadiness bool
	doubleResolve   bool

	onAcceptAll func(c *fakeClient)
	onDenyAll   func(c *fakeClient)
	onReset     func(c *fakeClient)

	firstLayerErr  error
	secondLayerErr error

	initializeCalls  int
	resetCalls       int
	acceptCalls      []OriginType
	denyCalls        []OriginType
	firstLayerCalls  int
	secondLayerCalls int

	consentUpdated func()
}

func newReadyFakeClient() *fakeClient {
	return &fakeClient{
		ready: true,
		status: ReadyStatus{
			ShouldCollectConsent: true,
		},
	}
}

func (c *fakeClient) Initialize(ctx context.Context, options config.UsercentricsOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initializeCalls++
	if c.initMakesReady {
		c.ready = true
	}
}

func (c *fakeClient) IsReady(onSuccess func(ReadyStatus), onFailure func(error)) {
	c.mu.Lock()
	ready := c.ready
	status := c.statusLocked()
	silent := c.silentReadiness
	double := c.doubleResolve
	c.mu.Unlock()

	if silent {
		return
	}
	if double {
		go onSuccess(status)
		go onFailure(errors.New("usercentrics not ready"))
		return
	}
	if ready {
		go onSuccess(status)
	} else {
		go onFailure(errors.New("usercentrics not ready"))
	}
}

func (c *fakeClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetCalls++
	c.ready = false
	if c.onReset != nil {
		c.onReset(c)
	}
}

func (c *fakeClient) AcceptAll(origin OriginType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acceptCalls = append(c.acceptCalls, origin)
	if c.onAcceptAll != nil {
		c.onAcceptAll(c)
	}
}

func (c *fakeClient) DenyAll(origin OriginType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.denyCalls = append(c.denyCalls, origin)
	if c.onDenyAll != nil {
		c.onDenyAll(c)
	}
}

func (c *fakeClient) SignalData() SignalData {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signalPanics {
		panic("usercentrics signal data unavailable")
	}
	return c.signal
}

func (c *fakeClient) ConsentStringData(callback func(ConsentStringData)) {
	c.mu.Lock()
	data := ConsentStringData{ConsentString: c.consentString}
	c.mu.Unlock()
	go callback(data)
}

func (c *fakeClient) ShowFirstLayer(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.firstLayerCalls++
	return c.firstLayerErr
}

func (c *fakeClient) ShowSecondLayer(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secondLayerCalls++
	return c.secondLayerErr
}

func (c *fakeClient) OnConsentUpdated(callback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consentUpdated = callback
}

func (c *fakeClient) statusLocked() ReadyStatus {
	status := ReadyStatus{
		ShouldCollectConsent: c.status.ShouldCollectConsent,
		Consents:             make([]ServiceConsent, len(c.status.Consents)),
	}
	copy(status.Consents, c.status.Consents)
	return status
}

// recordingListener collects change notifications for assertions.
type recordingListener struct {
	mu   sync.Mutex
	keys []consent.Key
}

func (l *recordingListener) OnConsentChange(key consent.Key) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
}

func (l *recordingListener) changes() []consent.Key {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]consent.Key{}, l.keys...)
}

// panickingListener always panics to exercise listener fault isolation.
type panickingListener struct{}

func (l *panickingListener) OnConsentChange(key consent.Key) {
	panic("listener failure")
}
