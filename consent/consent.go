package consent

// Key identifies one consent representation tracked by the adapter.
//
// The regulatory-framework keys below form a closed set. Partner keys are
// open: they arrive at runtime from the vendor's service list, resolved
// through the template-ID map, so any other string is a valid Key.
type Key string

const (
	// KeyUSP holds the raw US privacy signal string (e.g. "1YN-").
	KeyUSP Key = "USP"
	// KeyCCPAOptIn holds the granted/denied value derived from the vendor's
	// CCPA opt-out flag.
	KeyCCPAOptIn Key = "CCPA_OPT_IN"
	// KeyTCF holds the raw IAB TCF consent string.
	KeyTCF Key = "TCF"
)

// Value is the externally visible form of a consent entry. For partner keys
// and KeyCCPAOptIn it is one of the Status strings; for KeyUSP and KeyTCF it
// is the raw protocol string. An absent representation is never stored as an
// empty Value; the key is removed instead.
type Value string

const (
	ValueGranted Value = "GRANTED"
	ValueDenied  Value = "DENIED"
)

// Status is the internal tri-state consent status. It exists so that
// granted/denied logic stays type-safe inside the adapter; the string form
// is produced only at the snapshot boundary.
type Status int

const (
	StatusUnknown Status = iota
	StatusGranted
	StatusDenied
)

// StatusOf converts a vendor boolean consent flag.
func StatusOf(granted bool) Status {
	if granted {
		return StatusGranted
	}
	return StatusDenied
}

// Value returns the serialized form of the status. The second return is
// false for StatusUnknown, which has no serialized form: an unknown status
// is represented by removing the key.
func (s Status) Value() (Value, bool) {
	switch s {
	case StatusGranted:
		return ValueGranted, true
	case StatusDenied:
		return ValueDenied, true
	}
	return "", false
}

// Source describes who initiated a grant or deny operation.
type Source int

const (
	SourceUser Source = iota
	SourceDeveloper
	SourceOther
)

// DialogType selects which vendor consent dialog to present.
type DialogType int

const (
	// DialogConcise is the vendor's banner-style first layer.
	DialogConcise DialogType = iota
	// DialogDetailed is the vendor's full preference second layer.
	DialogDetailed
)

// Listener receives per-key change notifications. The key's new value (or
// its absence) is read back through the adapter's Consents accessor.
//
// Listener callbacks are fault-isolated by the adapter: a panic inside
// OnConsentChange is recovered and logged and never fails the operation
// that triggered it.
type Listener interface {
	OnConsentChange(key Key)
}
