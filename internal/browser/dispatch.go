package browser

import (
	"path/filepath"

	"github.com/plandes/rend/internal/model"
)

// dispatch routes a validated presentation to the viewer backend based on
// the set of locator types it holds.
func (m *Manager) dispatch(pres *model.Presentation) error {
	// file-backed locators with web-like extensions render in the URL
	// viewer instead of the file viewer
	for _, loc := range pres.Locators {
		if web, err := m.isWebFile(loc); err != nil {
			return err
		} else if web {
			loc.Coerce(model.LocatorTypeURL)
		}
	}

	extent := *pres.Extent
	locs := pres.Locators

	if len(locs) > 1 {
		typeSet := pres.TypeSet()
		if len(typeSet) != 1 || !typeSet[model.LocatorTypeFile] {
			// mixed kinds or several URLs: open them as one batch
			urls := make([]string, len(locs))
			for i, loc := range locs {
				urls[i] = loc.URL()
			}
			return m.viewer.ShowURLs(urls, extent)
		}
	}

	// files have no batched open; everything else is a single locator
	for _, loc := range locs {
		web, err := m.isWebFile(loc)
		if err != nil {
			return err
		}
		if loc.HasPath() && !web {
			path, perr := loc.Path()
			if perr != nil {
				return perr
			}
			err = m.viewer.ShowFile(path, extent)
		} else {
			err = m.viewer.ShowURL(loc.URL(), extent)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// isWebFile returns whether the locator is file backed with an extension
// the URL viewer should render.
func (m *Manager) isWebFile(loc *model.Locator) (bool, error) {
	if !loc.HasPath() {
		return false, nil
	}
	path, err := loc.Path()
	if err != nil {
		return false, err
	}
	return m.settings.IsWebExtension(filepath.Ext(path)), nil
}
