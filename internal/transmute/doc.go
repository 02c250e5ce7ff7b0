package transmute

// Package transmute rewrites concrete locators into their ephemeral
// counterparts. The spreadsheet transmuter replaces a tabular file (or an
// in-memory table payload) with one served-table URL locator per sheet,
// starting a table server for each and binding its shutdown to the
// locator's release.
