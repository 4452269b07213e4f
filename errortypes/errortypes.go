package errortypes

// Initialization should be used when the vendor CMP SDK never reached a
// ready state, or when an operation that needs vendor state was invoked
// before any configuration was supplied.
type Initialization struct {
	Message string
}

func (err *Initialization) Error() string {
	return err.Message
}

func (err *Initialization) Code() int {
	return InitializationErrorCode
}

func (err *Initialization) Severity() Severity {
	return SeverityFatal
}

// DialogShow should be used when a consent dialog could not be presented,
// including requests for an unsupported dialog type.
type DialogShow struct {
	Message string
}

func (err *DialogShow) Error() string {
	return err.Message
}

func (err *DialogShow) Code() int {
	return DialogShowErrorCode
}

func (err *DialogShow) Severity() Severity {
	return SeverityFatal
}

// ActionFailed wraps a failure that escaped the body of a ready-gated
// action. Callers never observe raw vendor panics or errors; they are
// converted to this type at the readiness gate boundary.
type ActionFailed struct {
	Message string
}

func (err *ActionFailed) Error() string {
	return err.Message
}

func (err *ActionFailed) Code() int {
	return ActionFailedErrorCode
}

func (err *ActionFailed) Severity() Severity {
	return SeverityFatal
}

// MalformedOptions should be used when the loosely-typed options payload
// cannot be mapped onto the adapter's typed options.
type MalformedOptions struct {
	Message string
}

func (err *MalformedOptions) Error() string {
	return err.Message
}

func (err *MalformedOptions) Code() int {
	return MalformedOptionsErrorCode
}

func (err *MalformedOptions) Severity() Severity {
	return SeverityFatal
}

// UnmappedTemplate flags a vendor service template with no partner mapping.
// The raw template ID is used as the consent key; this warning is logged,
// not returned to callers.
type UnmappedTemplate struct {
	Message string
}

func (err *UnmappedTemplate) Error() string {
	return err.Message
}

func (err *UnmappedTemplate) Code() int {
	return UnmappedTemplateWarningCode
}

func (err *UnmappedTemplate) Severity() Severity {
	return SeverityWarning
}

// MalformedConsentString flags a TCF consent string that the vendor reported
// but that does not parse. The string is still exposed opaquely; this
// warning is logged, not returned to callers.
type MalformedConsentString struct {
	Message string
}

func (err *MalformedConsentString) Error() string {
	return err.Message
}

func (err *MalformedConsentString) Code() int {
	return MalformedConsentStringWarningCode
}

func (err *MalformedConsentString) Severity() Severity {
	return SeverityWarning
}
