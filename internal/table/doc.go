package table

// Package table renders tabular files as ephemeral local web pages. It
// reads CSV/TSV/Excel sources, lays them out as a single interactive page,
// and serves each one from its own short-lived HTTP server that the owning
// presentation tears down when it is released.
