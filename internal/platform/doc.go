package platform

// Package platform contains the OS integration glue: viewer backends that
// drive native applications (Preview/Safari via AppleScript on macOS,
// xdg-open and friends on Linux, a plain web browser elsewhere) to display
// content and position their windows.
