package model

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// LocatorType identifies whether a locator points at a file or a URL
type LocatorType string

const (
	// LocatorTypeFile means the locator source is a filesystem path
	LocatorTypeFile LocatorType = "file"

	// LocatorTypeURL means the locator source is a URL
	LocatorTypeURL LocatorType = "url"
)

// String returns the string representation of LocatorType
func (lt LocatorType) String() string {
	return string(lt)
}

// IsFile returns whether the type is the file kind
func (lt LocatorType) IsFile() bool {
	return lt == LocatorTypeFile
}

// IsURL returns whether the type is the URL kind
func (lt LocatorType) IsURL() bool {
	return lt == LocatorTypeURL
}

// ParseLocatorType parses an explicit locator type override
func ParseLocatorType(s string) (LocatorType, error) {
	switch LocatorType(s) {
	case LocatorTypeFile:
		return LocatorTypeFile, nil
	case LocatorTypeURL:
		return LocatorTypeURL, nil
	}
	return "", fmt.Errorf("%w: locator type %q", ErrUnsupportedInput, s)
}

// Classify returns whether raw looks like a file or a URL. When raw is a
// file:// URL with a non-empty path, the decoded path is returned as the
// second value. The function is total: any parse failure falls back to the
// file type.
func Classify(raw string) (LocatorType, string) {
	u, err := url.Parse(raw)
	if err != nil {
		return LocatorTypeFile, ""
	}
	if u.Scheme == "file" && u.Path != "" {
		return LocatorTypeURL, u.Path
	}
	if u.Scheme != "" && u.Host != "" {
		return LocatorTypeURL, ""
	}
	return LocatorTypeFile, ""
}

// Locator is a classified reference to displayable content: a filesystem
// path or a URL. The URL and path projections are computed lazily and
// cached; Coerce invalidates them.
type Locator struct {
	source      string
	typ         LocatorType
	fileURLPath string

	urlCached  bool
	urlValue   string
	pathCached bool
	pathValue  string

	payload any
	release func()
}

// NewLocator classifies source and wraps it in a locator
func NewLocator(source string) *Locator {
	typ, furl := Classify(source)
	return &Locator{source: source, typ: typ, fileURLPath: furl}
}

// NewFileLocator wraps a known filesystem path, validating it exists
func NewFileLocator(path string) (*Locator, error) {
	loc := &Locator{source: path, typ: LocatorTypeFile}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

// NewURLLocator wraps a known URL without reclassifying it as a file
func NewURLLocator(raw string) *Locator {
	_, furl := Classify(raw)
	return &Locator{source: raw, typ: LocatorTypeURL, fileURLPath: furl}
}

// Source returns the raw source the locator was created from, updated when
// the locator is coerced between types
func (l *Locator) Source() string {
	return l.source
}

// Type returns the locator type
func (l *Locator) Type() LocatorType {
	return l.typ
}

// IsFileURL returns whether the locator is a URL that points at a file
func (l *Locator) IsFileURL() bool {
	return l.fileURLPath != ""
}

// HasPath returns whether Path will succeed
func (l *Locator) HasPath() bool {
	if l.payload != nil {
		return false
	}
	return l.typ.IsFile() || l.IsFileURL()
}

// URL returns the URL projection of the locator. File locators are
// converted to file:// URLs of their absolute path.
func (l *Locator) URL() string {
	if !l.urlCached {
		l.urlValue = l.source
		if l.typ.IsFile() {
			abs, err := filepath.Abs(l.source)
			if err != nil {
				abs = l.source
			}
			l.urlValue = "file://" + abs
		}
		l.urlCached = true
	}
	return l.urlValue
}

// Path returns the path projection of the locator: the source for file
// locators and the decoded path for file URLs. Plain web URLs have no path
// and return an error wrapping ErrUnsupportedInput.
func (l *Locator) Path() (string, error) {
	if !l.pathCached {
		switch {
		case l.typ.IsFile():
			l.pathValue = l.source
		case l.IsFileURL():
			l.pathValue = l.fileURLPath
		default:
			return "", fmt.Errorf("%w: not a path or file URL: %s",
				ErrUnsupportedInput, l.source)
		}
		l.pathCached = true
	}
	return l.pathValue, nil
}

// Validate confirms a path-backed locator points at an existing regular
// file. Plain web URLs always validate.
func (l *Locator) Validate() error {
	if !l.HasPath() {
		return nil
	}
	path, err := l.Path()
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return &NotFoundError{Path: path}
	}
	return nil
}

// Coerce changes the locator from a file to a URL or vice versa where
// possible. URL to file only succeeds for file URLs. Cached projections are
// invalidated even when the locator already has the target type.
func (l *Locator) Coerce(target LocatorType) {
	if target != l.typ {
		if target == LocatorTypeFile {
			if _, furl := Classify(l.source); furl != "" {
				l.typ = LocatorTypeFile
				l.source = furl
				l.fileURLPath = ""
			}
		} else {
			l.source = l.URL()
			l.typ = LocatorTypeURL
			_, l.fileURLPath = Classify(l.source)
		}
	}
	l.urlCached = false
	l.pathCached = false
}

// NewPayloadLocator wraps an in-memory value, such as loaded tabular data,
// under a display name. A payload locator has no path or URL of its own; a
// transmuter that owns the payload type replaces it with a served resource.
func NewPayloadLocator(name string, payload any) *Locator {
	return &Locator{source: name, typ: LocatorTypeFile, payload: payload}
}

// Payload returns the in-memory value the locator carries, or nil
func (l *Locator) Payload() any {
	return l.payload
}

// BindRelease attaches a hook that releases an external resource owned by
// this locator, such as an ephemeral table server. Deallocate runs it at
// most once.
func (l *Locator) BindRelease(f func()) {
	l.release = f
}

// Deallocate releases any resource owned by the locator
func (l *Locator) Deallocate() {
	if l.release != nil {
		l.release()
		l.release = nil
	}
}
