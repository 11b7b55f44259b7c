package qrid

import "strings"

// CameraFault is a named reason the scanner could not open a camera.
type CameraFault string

const (
	FaultPermissionDenied   CameraFault = "permission_denied"
	FaultNoCamera           CameraFault = "no_camera"
	FaultUnsupportedBrowser CameraFault = "unsupported_browser"
)

const (
	PlatformIOS     = "ios"
	PlatformGeneric = "generic"
)

// Guidance is what the operator is shown for a camera fault.
type Guidance struct {
	Fault    CameraFault `json:"fault"`
	Platform string      `json:"platform"`
	Title    string      `json:"title"`
	Steps    []string    `json:"steps"`
	CanRetry bool        `json:"can_retry"`
}

// ParseFault maps a client-reported reason onto a known fault.
func ParseFault(reason string) (CameraFault, bool) {
	switch CameraFault(strings.ToLower(strings.TrimSpace(reason))) {
	case FaultPermissionDenied:
		return FaultPermissionDenied, true
	case FaultNoCamera:
		return FaultNoCamera, true
	case FaultUnsupportedBrowser:
		return FaultUnsupportedBrowser, true
	}
	return "", false
}

// DetectPlatform guesses the platform from a User-Agent header.
func DetectPlatform(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"iphone", "ipad", "ipod"} {
		if strings.Contains(ua, marker) {
			return PlatformIOS
		}
	}
	return PlatformGeneric
}

// Remediate returns operator guidance for a fault on a platform.
func Remediate(fault CameraFault, platform string) Guidance {
	g := Guidance{Fault: fault, Platform: platform}

	switch fault {
	case FaultPermissionDenied:
		g.Title = "Camera access was denied"
		g.CanRetry = true
		if platform == PlatformIOS {
			g.Steps = []string{
				"Open Settings > Safari > Camera and choose Allow",
				"Or tap aA in the address bar, open Website Settings and allow Camera",
				"Return to this page and tap Retry",
			}
		} else {
			g.Steps = []string{
				"Click the camera icon in the address bar and allow access",
				"Reload the page if the prompt does not appear",
				"Tap Retry",
			}
		}
	case FaultNoCamera:
		g.Title = "No camera was found"
		g.Steps = []string{
			"Check that the device has a working camera",
			"Close other apps that may be using the camera",
		}
	case FaultUnsupportedBrowser:
		g.Title = "This browser cannot use the camera"
		if platform == PlatformIOS {
			g.Steps = []string{"Open this page in Safari on iOS 11 or later"}
		} else {
			g.Steps = []string{"Use a current version of Chrome, Firefox, Edge or Safari over HTTPS"}
		}
	}
	return g
}
