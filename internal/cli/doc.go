// Package cli defines the Cobra command tree for the metals-client CLI. Each
// file registers one top-level command with the root command. Commands
// delegate to internal packages for the version check and settings storage
// and only handle flags, I/O formatting, and user interaction.
package cli
