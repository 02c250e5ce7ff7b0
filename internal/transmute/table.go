package transmute

import (
	"sync/atomic"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
	"github.com/plandes/rend/internal/table"
)

// PortAllocator hands out monotonically increasing ports from a base. It is
// owned by the pipeline driver and shared by every transmutation in a run;
// ports are never reused within a process lifetime.
type PortAllocator struct {
	next atomic.Int64
}

// NewPortAllocator creates an allocator starting at base
func NewPortAllocator(base int) *PortAllocator {
	a := &PortAllocator{}
	a.next.Store(int64(base))
	return a
}

// Next returns the next free port number
func (a *PortAllocator) Next() int {
	return int(a.next.Add(1)) - 1
}

// TableTransmuter replaces spreadsheet-like locators (CSV, TSV, Excel) and
// in-memory table payloads with URL locators served by ephemeral table
// servers, one per sheet.
type TableTransmuter struct {
	settings *config.Settings
	ports    *PortAllocator

	// RunServers is turned off by tests that only exercise the rewrite
	RunServers bool
}

// NewTableTransmuter creates a transmuter drawing ports from the driver's
// shared allocator.
func NewTableTransmuter(settings *config.Settings, ports *PortAllocator) *TableTransmuter {
	return &TableTransmuter{settings: settings, ports: ports, RunServers: true}
}

// Transmute replaces a matching locator with its served-table locators. A
// locator it does not own is left alone, so the transmuter is idempotent
// against its own output (served locators are plain URLs).
func (t *TableTransmuter) Transmute(loc *model.Locator) ([]*model.Locator, error) {
	var sources []table.Source
	if payload := loc.Payload(); payload != nil {
		source, ok := payload.(table.Source)
		if !ok {
			return nil, nil
		}
		sources = []table.Source{source}
	} else {
		if !loc.HasPath() {
			return nil, nil
		}
		path, err := loc.Path()
		if err != nil {
			return nil, err
		}
		if !table.IsSupportedPath(path) {
			return nil, nil
		}
		if sources, err = table.SourcesFromPath(path); err != nil {
			return nil, err
		}
	}
	return t.serve(sources)
}

func (t *TableTransmuter) serve(sources []table.Source) ([]*model.Locator, error) {
	locators := make([]*model.Locator, 0, len(sources))
	for _, source := range sources {
		layout := table.NewLayout(source, &t.settings.Table)
		srv := table.NewServer(layout, t.settings.Table.Host, t.ports.Next(),
			t.settings.SettleSleep(), t.settings.ShutdownTimeout())
		if t.RunServers {
			if err := srv.Start(); err != nil {
				// servers for earlier sheets are not owned by any
				// presentation yet, so release them here
				for _, started := range locators {
					started.Deallocate()
				}
				return nil, err
			}
		}
		served := model.NewURLLocator(srv.URL())
		served.BindRelease(srv.Shutdown)
		locators = append(locators, served)
	}
	return locators, nil
}
