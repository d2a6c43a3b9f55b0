// Package model defines the core data structures shared across the
// crawler, store, and search engine.
//
// The types here are plain data carriers with no behavior beyond
// size enforcement and convenience accessors. Keeping them free of
// dependencies on other internal packages avoids import cycles and
// makes them easy to use in tests.
package model
