// Package serverversion decides whether the Metals server version configured in
// the editor settings is older than the version this client ships with, and
// hands an upgrade prompt to the caller's presentation layer when it is.
//
// The package owns no state and never writes configuration itself: persistence
// and UI are injected as callbacks.
package serverversion
