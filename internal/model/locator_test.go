package model

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw      string
		expected LocatorType
		path     string
	}{
		{"http://example.com", LocatorTypeURL, ""},
		{"https://example.com/page?q=1", LocatorTypeURL, ""},
		{"file:///somedir/file.txt", LocatorTypeURL, "/somedir/file.txt"},
		{"file:///a/b.txt", LocatorTypeURL, "/a/b.txt"},
		{"sample.pdf", LocatorTypeFile, ""},
		{"testdata/sample.pdf", LocatorTypeFile, ""},
		{"/abs/path/doc.pdf", LocatorTypeFile, ""},
		{"", LocatorTypeFile, ""},
		{"http://", LocatorTypeFile, ""},
		{"://bad url\x7f", LocatorTypeFile, ""},
	}

	for _, test := range tests {
		typ, path := Classify(test.raw)
		if typ != test.expected {
			t.Errorf("Classify(%q) type = %s, expected %s", test.raw, typ, test.expected)
		}
		if path != test.path {
			t.Errorf("Classify(%q) path = %q, expected %q", test.raw, path, test.path)
		}
	}
}

func TestLocatorType(t *testing.T) {
	loc := NewLocator("http://example.com")
	if err := loc.Validate(); err != nil {
		t.Fatalf("Validate() failed for URL locator: %v", err)
	}
	if loc.Type() != LocatorTypeURL {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeURL)
	}
	if loc.IsFileURL() {
		t.Error("IsFileURL() = true for plain web URL")
	}
	if _, err := loc.Path(); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Path() error = %v, expected ErrUnsupportedInput", err)
	}

	loc = NewLocator("sample.pdf")
	if loc.Type() != LocatorTypeFile {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeFile)
	}
	if loc.IsFileURL() {
		t.Error("IsFileURL() = true for plain file")
	}
	if path, err := loc.Path(); err != nil || path != "sample.pdf" {
		t.Errorf("Path() = %q, %v, expected sample.pdf", path, err)
	}

	loc = NewLocator("file:///somedir/file.txt")
	if loc.Type() != LocatorTypeURL {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeURL)
	}
	if !loc.IsFileURL() {
		t.Error("IsFileURL() = false for file URL")
	}
	if path, err := loc.Path(); err != nil || path != "/somedir/file.txt" {
		t.Errorf("Path() = %q, %v, expected /somedir/file.txt", path, err)
	}
}

func TestLocatorValidate(t *testing.T) {
	loc := NewLocator("testdata/sample.pdf")
	if err := loc.Validate(); err != nil {
		t.Fatalf("Validate() failed for existing file: %v", err)
	}

	loc = NewLocator("testdata/does-not-exist.pdf")
	err := loc.Validate()
	if err == nil {
		t.Fatal("Validate() succeeded for missing file")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Validate() error = %T, expected *NotFoundError", err)
	}
	if notFound.Path != "testdata/does-not-exist.pdf" {
		t.Errorf("NotFoundError.Path = %q, expected testdata/does-not-exist.pdf", notFound.Path)
	}

	// file URLs validate like files
	loc = NewLocator("file:///somedir/file.txt")
	if err := loc.Validate(); err == nil {
		t.Error("Validate() succeeded for missing file URL target")
	}
}

func TestNewFileLocator(t *testing.T) {
	loc, err := NewFileLocator("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("NewFileLocator() failed for existing file: %v", err)
	}
	if loc.Type() != LocatorTypeFile {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeFile)
	}

	// construction validates, unlike NewLocator
	var notFound *NotFoundError
	if _, err := NewFileLocator("testdata/missing.pdf"); !errors.As(err, &notFound) {
		t.Errorf("NewFileLocator() error = %v, expected *NotFoundError", err)
	}
}

func TestLocatorCoerceFileToURL(t *testing.T) {
	loc := NewLocator("testdata/sample.pdf")
	loc.Coerce(LocatorTypeURL)

	abs, err := filepath.Abs("testdata/sample.pdf")
	if err != nil {
		t.Fatalf("Abs() failed: %v", err)
	}
	expected := "file://" + abs

	if loc.Type() != LocatorTypeURL {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeURL)
	}
	if loc.Source() != expected {
		t.Errorf("Source() = %q, expected %q", loc.Source(), expected)
	}
	if loc.URL() != expected {
		t.Errorf("URL() = %q, expected %q", loc.URL(), expected)
	}
	if !loc.IsFileURL() {
		t.Error("IsFileURL() = false after coercing a file to a URL")
	}
}

func TestLocatorCoerceURLToFile(t *testing.T) {
	loc := NewLocator("file:///somedir/file.txt")
	loc.Coerce(LocatorTypeFile)

	if loc.Type() != LocatorTypeFile {
		t.Errorf("Type() = %s, expected %s", loc.Type(), LocatorTypeFile)
	}
	if loc.Source() != "/somedir/file.txt" {
		t.Errorf("Source() = %q, expected /somedir/file.txt", loc.Source())
	}
	if path, err := loc.Path(); err != nil || path != "/somedir/file.txt" {
		t.Errorf("Path() = %q, %v, expected /somedir/file.txt", path, err)
	}
	if loc.IsFileURL() {
		t.Error("IsFileURL() = true after coercing a file URL to a file")
	}
}

func TestLocatorCoerceInvalidatesCache(t *testing.T) {
	loc := NewLocator("testdata/sample.pdf")

	// populate the cached projections
	first := loc.URL()
	if _, err := loc.Path(); err != nil {
		t.Fatalf("Path() failed: %v", err)
	}

	loc.Coerce(LocatorTypeURL)
	if loc.URL() != first {
		t.Errorf("URL() changed after coerce: %q != %q", loc.URL(), first)
	}

	// a no-op coercion still recomputes projections afterwards
	loc.Coerce(LocatorTypeURL)
	if loc.URL() != first {
		t.Errorf("URL() = %q after no-op coerce, expected %q", loc.URL(), first)
	}

	loc.Coerce(LocatorTypeFile)
	path, err := loc.Path()
	if err != nil {
		t.Fatalf("Path() failed after coerce back: %v", err)
	}
	abs, _ := filepath.Abs("testdata/sample.pdf")
	if path != abs {
		t.Errorf("Path() = %q, expected %q", path, abs)
	}
}

func TestLocatorURLNotCoercible(t *testing.T) {
	// a plain web URL cannot become a file
	loc := NewLocator("http://example.com")
	loc.Coerce(LocatorTypeFile)
	if loc.Type() != LocatorTypeURL {
		t.Errorf("Type() = %s, expected web URL to stay a URL", loc.Type())
	}
}

func TestLocatorDeallocate(t *testing.T) {
	released := 0
	loc := NewURLLocator("http://localhost:8050")
	loc.BindRelease(func() { released++ })

	loc.Deallocate()
	loc.Deallocate()
	if released != 1 {
		t.Errorf("release hook ran %d times, expected 1", released)
	}
}

func TestParseLocatorType(t *testing.T) {
	tests := []struct {
		raw      string
		expected LocatorType
		ok       bool
	}{
		{"file", LocatorTypeFile, true},
		{"url", LocatorTypeURL, true},
		{"pdf", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		typ, err := ParseLocatorType(test.raw)
		if test.ok && (err != nil || typ != test.expected) {
			t.Errorf("ParseLocatorType(%q) = %s, %v, expected %s", test.raw, typ, err, test.expected)
		}
		if !test.ok && err == nil {
			t.Errorf("ParseLocatorType(%q) succeeded, expected error", test.raw)
		}
	}
}
