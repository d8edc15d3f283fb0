package models

// DeviceClass distinguishes mobile-class devices from desktops. It selects GPS
// acquisition tuning (cold GPS needs longer timeouts on mobile) and which
// remediation message variant the user sees on a geolocation failure.
type DeviceClass string

const (
	// DeviceDesktop represents a desktop-class device.
	DeviceDesktop DeviceClass = "desktop"
	// DeviceMobile represents a mobile-class device.
	DeviceMobile DeviceClass = "mobile"
)

// IsMobile reports whether the device is mobile-class. Unknown values are
// treated as desktop.
func (dc DeviceClass) IsMobile() bool {
	return dc == DeviceMobile
}
