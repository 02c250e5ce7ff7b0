package platform

import (
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

// Viewer commands
const (
	XDGOpenCommand = "xdg-open"
	XRandrCommand  = "xrandr"
	XDoToolCommand = "xdotool"
)

var xrandrCurrent = regexp.MustCompile(`current\s+(\d+)\s+x\s+(\d+)`)

// linuxViewer opens content with the desktop default applications and
// positions windows with xdotool where available.
type linuxViewer struct {
	settings *config.Settings
}

func newLinuxViewer(settings *config.Settings) *linuxViewer {
	return &linuxViewer{settings: settings}
}

func (v *linuxViewer) Name() string {
	return ViewerNameLinux
}

func (v *linuxViewer) ScreenSize() (model.Size, error) {
	out, err := run(v.settings, "", XRandrCommand, "--current")
	if err != nil {
		return model.Size{}, err
	}
	return parseXRandrSize(out)
}

func parseXRandrSize(out string) (model.Size, error) {
	match := xrandrCurrent.FindStringSubmatch(out)
	if match == nil {
		return model.Size{}, fmt.Errorf("no current screen size in xrandr output")
	}
	width, _ := strconv.Atoi(match[1])
	height, _ := strconv.Atoi(match[2])
	return model.Size{Width: width, Height: height}, nil
}

func (v *linuxViewer) open(target string, extent model.Extent) error {
	if _, err := run(v.settings, "", XDGOpenCommand, target); err != nil {
		return err
	}
	v.placeActiveWindow(extent)
	return nil
}

// placeActiveWindow moves the raised viewer window to the extent. Window
// managers without xdotool keep the viewer where it appeared; the content
// still displays, so a placement failure is only logged.
func (v *linuxViewer) placeActiveWindow(extent model.Extent) {
	if _, err := run(v.settings, "", XDoToolCommand,
		"getactivewindow",
		"windowmove", strconv.Itoa(extent.X), strconv.Itoa(extent.Y),
		"windowsize", strconv.Itoa(extent.Width), strconv.Itoa(extent.Height)); err != nil {
		log.Printf("rend: could not place window: %v", err)
	}
}

func (v *linuxViewer) ShowFile(path string, extent model.Extent) error {
	return v.open(path, extent)
}

func (v *linuxViewer) ShowURL(url string, extent model.Extent) error {
	return v.open(url, extent)
}

// ShowURLs iterates: xdg-open has no batched form
func (v *linuxViewer) ShowURLs(urls []string, extent model.Extent) error {
	for _, url := range urls {
		if err := v.ShowURL(url, extent); err != nil {
			return err
		}
	}
	return nil
}
