// Package config manages the layered editor settings read by the client: a
// built-in default layer, a user-wide global layer stored at
// ~/.metals-client/settings.yaml, and a workspace layer stored at
// <workspace>/.metals-client/settings.yaml. Workspace values win over global
// values, which win over defaults.
package config
