package browser

// Package browser coordinates the display pipeline: it assembles inputs
// into presentations, resolves the target window extent from the configured
// display profiles, runs the transmuter chain, and dispatches the result to
// the platform viewer backend.
