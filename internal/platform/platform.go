package platform

import (
	"runtime"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Viewer backend names usable as the config browser override
const (
	ViewerNameDarwin = "darwin"
	ViewerNameLinux  = "linux"
	ViewerNameWeb    = "web"
)

// Viewer is the capability a platform backend provides: probe the screen
// and make the native viewer display content at a target rectangle.
type Viewer interface {
	// Name identifies the backend in logs and the config listing
	Name() string

	// ScreenSize probes the current display dimensions
	ScreenSize() (model.Size, error)

	// ShowFile displays a file in the platform file viewer at extent
	ShowFile(path string, extent model.Extent) error

	// ShowURL displays a URL in the platform URL viewer at extent
	ShowURL(url string, extent model.Extent) error

	// ShowURLs displays several URLs at once where the backend supports
	// batching, iterating otherwise.
	ShowURLs(urls []string, extent model.Extent) error
}

// New selects the viewer backend: the config override first, then by
// platform, falling back to the plain web viewer.
func New(settings *config.Settings) Viewer {
	switch settings.Browser {
	case ViewerNameDarwin:
		return newDarwinViewer(settings)
	case ViewerNameLinux:
		return newLinuxViewer(settings)
	case ViewerNameWeb:
		return newWebViewer(settings)
	}
	switch runtime.GOOS {
	case OSDarwin:
		return newDarwinViewer(settings)
	case OSLinux:
		return newLinuxViewer(settings)
	default:
		return newWebViewer(settings)
	}
}
