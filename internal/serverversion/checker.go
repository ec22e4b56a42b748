package serverversion

import (
	"fmt"

	"github.com/metals-labs/metals-client/internal/branding"
	"github.com/metals-labs/metals-client/internal/config"
)

// ConfigSection is the setting that holds the server version.
const ConfigSection = config.ServerVersion

// Configuration is the read side of the host's settings.
type Configuration interface {
	// Get returns the effective value of key after merging all layers.
	Get(key string) string
	// Inspect returns the value of key in each layer.
	Inspect(key string) config.Inspection
}

// VersionInfo is the input of a single version check.
type VersionInfo struct {
	ServerVersion       string
	LatestServerVersion string
	ConfigurationTarget config.Target
}

// UpdateConfigParams describes the settings write that upgrades the server.
type UpdateConfigParams struct {
	ConfigSection       string
	LatestServerVersion string
	ConfigurationTarget config.Target
}

// OutdatedNotice is handed to the presentation layer when the configured
// server version is older than the latest one.
type OutdatedNotice struct {
	Message            string
	UpgradeChoice      string
	OpenSettingsChoice string
	DismissChoice      string

	// Update is the settings write Upgrade performs.
	Update UpdateConfigParams
	// Upgrade applies Update through the updateConfig callback.
	Upgrade func()
}

// ServerVersionInfo reads the configured and latest server versions and
// resolves where an upgrade should be written.
func ServerVersionInfo(cfg Configuration) VersionInfo {
	in := cfg.Inspect(ConfigSection)
	return VersionInfo{
		ServerVersion:       cfg.Get(ConfigSection),
		LatestServerVersion: in.Default,
		ConfigurationTarget: ResolveTarget(in),
	}
}

// ResolveTarget picks the layer that overrides the default. A global override
// wins; with no override at all the workspace is used.
func ResolveTarget(in config.Inspection) config.Target {
	if in.Global != "" && in.Global != in.Default {
		return config.TargetGlobal
	}
	if in.Workspace != "" && in.Workspace != in.Default {
		return config.TargetWorkspace
	}
	return config.TargetWorkspace
}

// CheckServerVersion calls onOutdated with an upgrade prompt when the
// configured server version is older than the latest one, and does nothing
// otherwise. updateConfig is only called if the presentation layer invokes
// the notice's Upgrade.
func CheckServerVersion(cfg Configuration, updateConfig func(UpdateConfigParams), onOutdated func(OutdatedNotice)) {
	info := ServerVersionInfo(cfg)
	if !IsOutdated(info.ServerVersion, info.LatestServerVersion) {
		return
	}
	onOutdated(NewOutdatedNotice(info, updateConfig))
}

// NewOutdatedNotice builds the prompt for info. Upgrade calls updateConfig.
func NewOutdatedNotice(info VersionInfo, updateConfig func(UpdateConfigParams)) OutdatedNotice {
	params := UpdateConfigParams{
		ConfigSection:       ConfigSection,
		LatestServerVersion: info.LatestServerVersion,
		ConfigurationTarget: info.ConfigurationTarget,
	}
	return OutdatedNotice{
		Message: fmt.Sprintf(
			"You are running an out-of-date version of %s. The latest version is %s, but you have configured a custom server version %s",
			branding.DisplayName(), info.LatestServerVersion, info.ServerVersion),
		UpgradeChoice:      fmt.Sprintf("Upgrade to %s now", info.LatestServerVersion),
		OpenSettingsChoice: "Open settings",
		DismissChoice:      "Not now",
		Update:             params,
		Upgrade:            func() { updateConfig(params) },
	}
}
