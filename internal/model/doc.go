package model

// Package model defines domain data structures used across the app: content
// locators, screen geometry, and presentations. Locators carry lazily cached
// URL/path projections with explicit invalidation; presentations own the
// lifecycle of the locators they hold.
