package platform

import (
	"net/url"
	"path/filepath"
	"runtime"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

// Assumed screen size when no platform probe exists
const (
	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
)

// webViewer is the fallback backend: it hands everything to the default
// web browser and cannot probe or position anything.
type webViewer struct {
	settings *config.Settings
}

func newWebViewer(settings *config.Settings) *webViewer {
	return &webViewer{settings: settings}
}

func (v *webViewer) Name() string {
	return ViewerNameWeb
}

// ScreenSize assumes a common desktop resolution; configure a display
// profile for it to control the extent.
func (v *webViewer) ScreenSize() (model.Size, error) {
	return model.Size{Width: DefaultScreenWidth, Height: DefaultScreenHeight}, nil
}

func (v *webViewer) openURL(target string) error {
	var err error
	switch runtime.GOOS {
	case OSDarwin:
		_, err = run(v.settings, "", "open", target)
	case OSWindows:
		_, err = run(v.settings, "", "cmd", "/c", "start", "", target)
	default:
		_, err = run(v.settings, "", XDGOpenCommand, target)
	}
	return err
}

func (v *webViewer) ShowFile(path string, extent model.Extent) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return v.openURL((&url.URL{Scheme: "file", Path: abs}).String())
}

func (v *webViewer) ShowURL(target string, extent model.Extent) error {
	return v.openURL(target)
}

func (v *webViewer) ShowURLs(urls []string, extent model.Extent) error {
	for _, target := range urls {
		if err := v.ShowURL(target, extent); err != nil {
			return err
		}
	}
	return nil
}
