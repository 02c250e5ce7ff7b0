package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

// AppleScript used to drive Preview.app. The show function opens the file,
// sets the window bounds, and optionally restores the page Preview lost
// when it reloaded a changed PDF.
const previewScript = `on showPreview(loc, x, y, w, h, updatePage, pageNum)
	set prevPage to null
	tell application "Preview"
		if updatePage and pageNum is null and (count of windows) > 0 then
			tell application "System Events" to tell process "Preview"
				set prevPage to value of text field 1 of group 1 of toolbar 1 of front window
			end tell
		end if
		open (POSIX file loc)
		activate
		set the bounds of the front window to {x, y, x + w, y + h}
	end tell
	if updatePage then
		if pageNum is not null then set prevPage to pageNum
		if prevPage is not null then
			tell application "System Events" to tell process "Preview"
				set value of text field 1 of group 1 of toolbar 1 of front window to prevPage
				key code 36
			end tell
		end if
	end if
end showPreview`

// AppleScript used to drive Safari.app for a single URL
const safariScript = `on showSafari(theUrl, x, y, w, h, updatePage, pageNum)
	tell application "Safari"
		open location theUrl
		activate
		set the bounds of the front window to {x, y, x + w, y + h}
	end tell
end showSafari`

// AppleScript used to open several URLs as tabs of one Safari window
const safariMultiScript = `on showSafariMulti(theUrls, x, y, w, h, updatePage, pageNum)
	tell application "Safari"
		make new document with properties {URL:item 1 of theUrls}
		tell front window
			repeat with theUrl in rest of theUrls
				make new tab with properties {URL:theUrl}
			end repeat
		end tell
		activate
		set the bounds of the front window to {x, y, x + w, y + h}
	end tell
end showSafariMulti`

var boundsSplit = regexp.MustCompile(`\s*,\s*`)

// darwinViewer drives Preview.app and Safari.app through osascript
type darwinViewer struct {
	settings *config.Settings
}

func newDarwinViewer(settings *config.Settings) *darwinViewer {
	return &darwinViewer{settings: settings}
}

func (v *darwinViewer) Name() string {
	return ViewerNameDarwin
}

func (v *darwinViewer) ScreenSize() (model.Size, error) {
	out, err := run(v.settings, "",
		"osascript", "-e", `tell application "Finder" to get bounds of window of desktop`)
	if err != nil {
		return model.Size{}, err
	}
	return parseDesktopBounds(out)
}

func parseDesktopBounds(out string) (model.Size, error) {
	parts := boundsSplit.Split(strings.TrimSpace(out), -1)
	if len(parts) != 4 {
		return model.Size{}, fmt.Errorf("unexpected desktop bounds: %q", out)
	}
	width, werr := strconv.Atoi(parts[2])
	height, herr := strconv.Atoi(parts[3])
	if werr != nil || herr != nil {
		return model.Size{}, fmt.Errorf("unexpected desktop bounds: %q", out)
	}
	return model.Size{Width: width, Height: height}, nil
}

// invokeShowScript appends a call of the show function to its script and
// pipes the whole program to osascript.
func (v *darwinViewer) invokeShowScript(script, function, arg string, extent model.Extent) error {
	updatePage := "false"
	pageNum := "null"
	if v.settings.Darwin.Page > 0 {
		updatePage = "true"
		pageNum = strconv.Itoa(v.settings.Darwin.Page)
	} else if v.settings.Darwin.UpdatePage {
		updatePage = "true"
	}
	call := fmt.Sprintf("%s(%s, %d, %d, %d, %d, %s, %s)",
		function, arg, extent.X, extent.Y, extent.Width, extent.Height,
		updatePage, pageNum)

	if _, err := run(v.settings, script+"\n"+call, "osascript", "-"); err != nil {
		return err
	}
	return v.switchBack()
}

// switchBack re-activates the configured application after the viewer
// window was raised and resized.
func (v *darwinViewer) switchBack() error {
	app := v.settings.Darwin.SwitchBackApp
	if app == "" {
		return nil
	}
	_, err := run(v.settings, "",
		"osascript", "-e", fmt.Sprintf("tell application %s to activate", quoteScript(app)))
	return err
}

func (v *darwinViewer) ShowFile(path string, extent model.Extent) error {
	return v.invokeShowScript(previewScript, "showPreview", quoteScript(path), extent)
}

func (v *darwinViewer) ShowURL(url string, extent model.Extent) error {
	url = v.safariCompliantURL(url)
	return v.invokeShowScript(safariScript, "showSafari", quoteScript(url), extent)
}

func (v *darwinViewer) ShowURLs(urls []string, extent model.Extent) error {
	quoted := make([]string, len(urls))
	for i, url := range urls {
		quoted[i] = quoteScript(v.safariCompliantURL(url))
	}
	arg := "{" + strings.Join(quoted, ", ") + "}"
	return v.invokeShowScript(safariMultiScript, "showSafariMulti", arg, extent)
}

// safariCompliantURL adds the trailing slash Safari needs on macOS
func (v *darwinViewer) safariCompliantURL(url string) string {
	if v.settings.Darwin.MangleURL && !strings.HasSuffix(url, "/") {
		url = url + "/"
	}
	return url
}

func quoteScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
