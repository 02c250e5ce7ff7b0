package browser

import (
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
	"github.com/plandes/rend/internal/platform"
	"github.com/plandes/rend/internal/table"
	"github.com/plandes/rend/internal/transmute"
)

// Manager owns the display pipeline: the selected viewer backend, the
// configured display profiles, and the transmuter chain with its shared
// port allocator.
type Manager struct {
	settings    *config.Settings
	viewer      platform.Viewer
	transmuters []model.Transmuter

	displays   map[model.Size]model.Display
	screen     model.Size
	screenOnce bool
}

// NewManager wires the default pipeline: the platform viewer and the
// spreadsheet transmuter drawing from one port allocator.
func NewManager(settings *config.Settings) *Manager {
	ports := transmute.NewPortAllocator(settings.Table.StartPort)
	return &Manager{
		settings: settings,
		viewer:   platform.New(settings),
		transmuters: []model.Transmuter{
			transmute.NewTableTransmuter(settings, ports),
		},
	}
}

// Viewer returns the selected backend
func (m *Manager) Viewer() platform.Viewer {
	return m.viewer
}

// Displays returns the configured display profiles sorted by name
func (m *Manager) Displays() []model.Display {
	displays := m.settings.DisplayProfiles()
	sort.Slice(displays, func(i, j int) bool {
		return displays[i].Name < displays[j].Name
	})
	return displays
}

func (m *Manager) displaysBySize() map[model.Size]model.Display {
	if m.displays == nil {
		m.displays = make(map[model.Size]model.Display)
		for _, d := range m.settings.DisplayProfiles() {
			m.displays[d.Size] = d
		}
	}
	return m.displays
}

// ScreenSize probes the current display once and caches it
func (m *Manager) ScreenSize() (model.Size, error) {
	if !m.screenOnce {
		screen, err := m.viewer.ScreenSize()
		if err != nil {
			return model.Size{}, err
		}
		m.screen = screen
		m.screenOnce = true
	}
	return m.screen, nil
}

// ResolveExtent maps a detected screen size to the configured target
// extent. An unlisted size gets a usable default: origin, half the width,
// full height.
func (m *Manager) ResolveExtent(detected model.Size) model.Extent {
	if display, ok := m.displaysBySize()[detected]; ok {
		log.Printf("rend: detected %s -> %s", detected, display)
		return display.Target
	}
	log.Printf("rend: no display entry for bounds %s, using default", detected)
	return model.Extent{
		X: 0,
		Y: 0,
		Size: model.Size{
			Width:  detected.Width / 2,
			Height: detected.Height,
		},
	}
}

func (m *Manager) resolveExtent() (model.Extent, error) {
	screen, err := m.ScreenSize()
	if err != nil {
		return model.Extent{}, err
	}
	return m.ResolveExtent(screen), nil
}

// toLocators flattens one assembly input to its locator sequence
func toLocators(input any) ([]*model.Locator, error) {
	switch v := input.(type) {
	case string:
		return []*model.Locator{model.NewLocator(v)}, nil
	case *model.Locator:
		return []*model.Locator{v}, nil
	case *model.Presentation:
		return v.Locators, nil
	case table.Source:
		return []*model.Locator{model.NewPayloadLocator(v.Name(), v)}, nil
	case []string:
		locs := make([]*model.Locator, 0, len(v))
		for _, s := range v {
			locs = append(locs, model.NewLocator(s))
		}
		return locs, nil
	case []any:
		var locs []*model.Locator
		for _, item := range v {
			nested, err := toLocators(item)
			if err != nil {
				return nil, err
			}
			locs = append(locs, nested...)
		}
		return locs, nil
	}
	return nil, fmt.Errorf("%w: locator %T", model.ErrUnsupportedInput, input)
}

// ToPresentation assembles an input (string, locator, presentation, table
// source, or a sequence of these) into a presentation, resolves its extent
// when none is given, and optionally applies the transmuter chain.
func (m *Manager) ToPresentation(input any, extent *model.Extent, applyTransmuters bool) (*model.Presentation, error) {
	var pres *model.Presentation
	if p, ok := input.(*model.Presentation); ok {
		pres = p
	} else {
		locs, err := toLocators(input)
		if err != nil {
			return nil, err
		}
		pres = model.NewPresentation(locs...)
	}

	if extent == nil {
		resolved, err := m.resolveExtent()
		if err != nil {
			return nil, err
		}
		pres.Extent = &resolved
	} else {
		pres.Extent = extent
	}

	if applyTransmuters {
		for _, t := range m.transmuters {
			if err := pres.ApplyTransmuter(t); err != nil {
				// release servers started by earlier transmuters
				pres.Deallocate()
				return nil, err
			}
		}
	}
	return pres, nil
}

// Show assembles and displays an input, releasing every resource the
// presentation owns even when validation or dispatch fails.
func (m *Manager) Show(input any, extent *model.Extent) (err error) {
	pres, err := m.ToPresentation(input, extent, true)
	if err != nil {
		return err
	}
	defer pres.Deallocate()

	if err := pres.Validate(); err != nil {
		return err
	}
	return m.dispatch(pres)
}

// WriteConfig prints the selected viewer backend, the display profiles,
// and the detected screen size.
func (m *Manager) WriteConfig(w io.Writer) error {
	fmt.Fprintf(w, "viewer: %s\n", m.Viewer().Name())
	for _, d := range m.Displays() {
		fmt.Fprintf(w, "%s:\n", d.Name)
		fmt.Fprintf(w, "  size: %s\n", d.Size)
		fmt.Fprintf(w, "  target: %s\n", d.Target)
	}
	screen, err := m.ScreenSize()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "current:\n  size: %s\n", screen)
	return nil
}
