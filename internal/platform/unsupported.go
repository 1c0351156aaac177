package platform

// UnsupportedBackend is the Backend for targets without a native
// implementation. Every operation fails before touching the window.
type UnsupportedBackend struct{}

var _ Backend = UnsupportedBackend{}

func (UnsupportedBackend) Name() string {
	return "unsupported"
}

func (UnsupportedBackend) Capabilities() Capabilities {
	return Capabilities{}
}

func (UnsupportedBackend) SetCaptureProtection(Handle, bool) error {
	return unsupported(FeatureCaptureProtection)
}

func (UnsupportedBackend) SetTaskbarVisibility(Handle, bool) error {
	return unsupported(FeatureTaskbarVisibility)
}
