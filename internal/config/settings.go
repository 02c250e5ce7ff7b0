package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/plandes/rend/internal/model"
)

// Config file location under the user config directory
const (
	ConfigDirName  = "rend"
	ConfigFileName = "rend.toml"
)

// Default values
const (
	DefaultDelimiter         = ","
	DefaultStartPort         = 8050
	DefaultHost              = "localhost"
	DefaultSettleSleepMS     = 1000
	DefaultShutdownTimeoutMS = 5000
	DefaultPageSize          = 100
	DefaultColumnWidthPx     = 90
	DefaultRowHeightPx       = 25
	DefaultDataFontSize      = 12
)

// DefaultWebExtensions are file extensions rendered by the URL viewer even
// when the locator is file backed
var DefaultWebExtensions = []string{"html", "htm", "svg"}

// TargetExtent is the configured window rectangle for a display profile
type TargetExtent struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DisplayProfile maps a detected monitor size to a target extent
type DisplayProfile struct {
	Width  int          `toml:"width"`
	Height int          `toml:"height"`
	Target TargetExtent `toml:"target"`
}

// TableSettings configures the ephemeral table servers and their page layout
type TableSettings struct {
	Host              string `toml:"host"`
	StartPort         int    `toml:"start_port"`
	SettleSleepMS     int    `toml:"settle_sleep_ms"`
	ShutdownTimeoutMS int    `toml:"shutdown_timeout_ms"`
	PageSize          int    `toml:"page_size"`
	CellWrap          bool   `toml:"cell_wrap"`
	ColumnDeletable   bool   `toml:"column_deletable"`
	ColumnSort        bool   `toml:"column_sort"`
	ColumnFilterable  bool   `toml:"column_filterable"`
	ColumnWidthPx     int    `toml:"column_width_px"`
	RowHeightPx       int    `toml:"row_height_px"`
	DataFontSize      int    `toml:"data_font_size"`
}

// DarwinSettings configures the macOS automation backend
type DarwinSettings struct {
	// UpdatePage re-selects the remembered page in Preview after a PDF
	// window refresh; Page overrides it with a fixed page number.
	UpdatePage    bool   `toml:"update_page"`
	Page          int    `toml:"page"`
	SwitchBackApp string `toml:"switch_back_app"`
	MangleURL     bool   `toml:"mangle_url"`
}

// Settings is the application configuration loaded from a TOML file
type Settings struct {
	// Browser overrides platform viewer selection when set
	Browser          string                    `toml:"browser"`
	Delimiter        string                    `toml:"delimiter"`
	WebExtensions    []string                  `toml:"web_extensions"`
	Displays         map[string]DisplayProfile `toml:"displays"`
	Table            TableSettings             `toml:"table"`
	Darwin           DarwinSettings            `toml:"darwin"`
	AutomationErrors map[string]string         `toml:"automation_errors"`
}

// Default returns settings with every default applied
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// DefaultPath returns the expected config file path under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, ConfigDirName, ConfigFileName), nil
}

// Load reads settings from path, applying defaults for anything unset. A
// missing file yields pure defaults.
func Load(path string) (*Settings, error) {
	s := &Settings{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.applyDefaults()
		return s, nil
	}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	s.applyDefaults()
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.Delimiter == "" {
		s.Delimiter = DefaultDelimiter
	}
	if len(s.WebExtensions) == 0 {
		s.WebExtensions = append([]string(nil), DefaultWebExtensions...)
	}
	if s.Table.Host == "" {
		s.Table.Host = DefaultHost
	}
	if s.Table.StartPort <= 0 {
		s.Table.StartPort = DefaultStartPort
	}
	if s.Table.SettleSleepMS < 0 {
		s.Table.SettleSleepMS = 0
	} else if s.Table.SettleSleepMS == 0 {
		s.Table.SettleSleepMS = DefaultSettleSleepMS
	}
	if s.Table.ShutdownTimeoutMS <= 0 {
		s.Table.ShutdownTimeoutMS = DefaultShutdownTimeoutMS
	}
	if s.Table.PageSize <= 0 {
		s.Table.PageSize = DefaultPageSize
	}
	if s.Table.ColumnWidthPx <= 0 {
		s.Table.ColumnWidthPx = DefaultColumnWidthPx
	}
	if s.Table.RowHeightPx <= 0 {
		s.Table.RowHeightPx = DefaultRowHeightPx
	}
	if s.Table.DataFontSize <= 0 {
		s.Table.DataFontSize = DefaultDataFontSize
	}
}

// SettleSleep is how long to wait after starting a table server before its
// URL is handed out.
func (s *Settings) SettleSleep() time.Duration {
	return time.Duration(s.Table.SettleSleepMS) * time.Millisecond
}

// ShutdownTimeout is how long to wait for a table page to report it
// rendered before the server is force-closed.
func (s *Settings) ShutdownTimeout() time.Duration {
	return time.Duration(s.Table.ShutdownTimeoutMS) * time.Millisecond
}

// DisplayProfiles converts the configured display sections to domain values
func (s *Settings) DisplayProfiles() []model.Display {
	displays := make([]model.Display, 0, len(s.Displays))
	for name, prof := range s.Displays {
		displays = append(displays, model.Display{
			Name: name,
			Size: model.Size{Width: prof.Width, Height: prof.Height},
			Target: model.Extent{
				Size: model.Size{Width: prof.Target.Width, Height: prof.Target.Height},
				X:    prof.Target.X,
				Y:    prof.Target.Y,
			},
		})
	}
	return displays
}

// IsWebExtension returns whether ext names a file type the URL viewer
// should render.
func (s *Settings) IsWebExtension(ext string) bool {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, webExt := range s.WebExtensions {
		if ext == webExt {
			return true
		}
	}
	return false
}

// ClassifyAutomationOutput matches viewer backend output against the
// configured failure table. Entries are tried in sorted key order so that
// output matching several substrings classifies the same way every run.
// Unmatched output is an error.
func (s *Settings) ClassifyAutomationOutput(output string) model.Severity {
	substrs := make([]string, 0, len(s.AutomationErrors))
	for substr := range s.AutomationErrors {
		substrs = append(substrs, substr)
	}
	sort.Strings(substrs)
	for _, substr := range substrs {
		if strings.Contains(output, substr) {
			switch model.Severity(s.AutomationErrors[substr]) {
			case model.SeverityIgnore:
				return model.SeverityIgnore
			case model.SeverityWarning:
				return model.SeverityWarning
			default:
				return model.SeverityError
			}
		}
	}
	return model.SeverityError
}
