package config

import (
	"fmt"
	"strings"
)

// Target is the scope at which a setting override is stored.
type Target int

const (
	// TargetGlobal is the user-wide settings file.
	TargetGlobal Target = iota + 1
	// TargetWorkspace is the settings file inside the current workspace.
	TargetWorkspace
)

func (t Target) String() string {
	switch t {
	case TargetGlobal:
		return "global"
	case TargetWorkspace:
		return "workspace"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget converts "global" or "workspace" into a Target.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "global":
		return TargetGlobal, nil
	case "workspace":
		return TargetWorkspace, nil
	}
	return 0, fmt.Errorf("unknown configuration target %q (want global or workspace)", s)
}

// Inspection holds the per-layer values of a single setting.
// An empty string means the layer does not set the key.
type Inspection struct {
	Key       string
	Default   string
	Global    string
	Workspace string
}

// Setting describes a known setting and its built-in default.
type Setting struct {
	Key         string
	Default     string
	Description string
}

// LatestServerVersion is the Metals server version this client ships with.
// It is the default of ServerVersion and therefore the version users are
// nudged towards.
const LatestServerVersion = "1.5.3"

// Known setting keys.
const (
	ServerVersion    = "metals.serverVersion"
	JavaHome         = "metals.javaHome"
	ServerProperties = "metals.serverProperties"
)

// Settings lists every setting the client knows a default for.
var Settings = []Setting{
	{Key: ServerVersion, Default: LatestServerVersion, Description: "Metals server version to launch"},
	{Key: JavaHome, Description: "JDK used to launch the server; empty means JAVA_HOME or PATH"},
	{Key: ServerProperties, Description: "Extra JVM properties passed to the server"},
}

// Lookup returns the known setting for key, comparing case-insensitively.
func Lookup(key string) (Setting, bool) {
	for _, s := range Settings {
		if strings.EqualFold(s.Key, key) {
			return s, true
		}
	}
	return Setting{}, false
}
