package serverversion

import (
	"strings"
	"testing"

	"github.com/metals-labs/metals-client/internal/config"
)

// fakeConfig is an in-memory Configuration.
type fakeConfig struct {
	effective string
	in        config.Inspection
}

func (f fakeConfig) Get(key string) string { return f.effective }

func (f fakeConfig) Inspect(key string) config.Inspection {
	in := f.in
	in.Key = key
	return in
}

func newFakeConfig(current, latest string) fakeConfig {
	return fakeConfig{effective: current, in: config.Inspection{Default: latest}}
}

type recorder struct {
	updates []UpdateConfigParams
	notices []OutdatedNotice
}

func (r *recorder) updateConfig(p UpdateConfigParams) { r.updates = append(r.updates, p) }
func (r *recorder) onOutdated(n OutdatedNotice)       { r.notices = append(r.notices, n) }

func TestCheckServerVersion_Outdated(t *testing.T) {
	rec := &recorder{}
	CheckServerVersion(newFakeConfig("0.9.0", "1.0.0"), rec.updateConfig, rec.onOutdated)

	if len(rec.notices) != 1 {
		t.Fatalf("onOutdated called %d times, want 1", len(rec.notices))
	}
	if len(rec.updates) != 0 {
		t.Fatalf("updateConfig called %d times before upgrade, want 0", len(rec.updates))
	}

	n := rec.notices[0]
	if !strings.Contains(n.Message, "0.9.0") || !strings.Contains(n.Message, "1.0.0") {
		t.Errorf("message should name both versions: %q", n.Message)
	}
	if n.UpgradeChoice != "Upgrade to 1.0.0 now" {
		t.Errorf("UpgradeChoice = %q", n.UpgradeChoice)
	}
	if n.OpenSettingsChoice != "Open settings" {
		t.Errorf("OpenSettingsChoice = %q", n.OpenSettingsChoice)
	}
	if n.DismissChoice != "Not now" {
		t.Errorf("DismissChoice = %q", n.DismissChoice)
	}

	n.Upgrade()
	if len(rec.updates) != 1 {
		t.Fatalf("updateConfig called %d times after upgrade, want 1", len(rec.updates))
	}
	want := UpdateConfigParams{
		ConfigSection:       "metals.serverVersion",
		LatestServerVersion: "1.0.0",
		ConfigurationTarget: config.TargetWorkspace,
	}
	if rec.updates[0] != want {
		t.Errorf("updateConfig(%+v), want %+v", rec.updates[0], want)
	}
	if n.Update != want {
		t.Errorf("notice.Update = %+v, want %+v", n.Update, want)
	}
}

func TestCheckServerVersion_NotOutdated(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
	}{
		{"same version", "1.0.0", "1.0.0"},
		{"newer than latest", "1.1.0", "1.0.0"},
		{"nightly", "nightly", "1.0.0"},
		{"malformed latest", "0.9.0", "not-a-version"},
		{"equals prefix on latest", "0.9.0", "=1.0.0"},
		{"repeated v prefix", "vv0.9.0", "1.0.0"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			CheckServerVersion(newFakeConfig(tt.current, tt.latest), rec.updateConfig, rec.onOutdated)
			if len(rec.notices) != 0 || len(rec.updates) != 0 {
				t.Errorf("expected no callbacks, got %d notices and %d updates", len(rec.notices), len(rec.updates))
			}
		})
	}
}

func TestCheckServerVersion_UpgradeUsesResolvedTarget(t *testing.T) {
	cfg := fakeConfig{
		effective: "0.11.0",
		in:        config.Inspection{Default: "1.0.0", Global: "0.11.0"},
	}
	rec := &recorder{}
	CheckServerVersion(cfg, rec.updateConfig, rec.onOutdated)
	if len(rec.notices) != 1 {
		t.Fatalf("onOutdated called %d times, want 1", len(rec.notices))
	}
	rec.notices[0].Upgrade()
	if got := rec.updates[0].ConfigurationTarget; got != config.TargetGlobal {
		t.Errorf("ConfigurationTarget = %v, want %v", got, config.TargetGlobal)
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name     string
		in       config.Inspection
		expected config.Target
	}{
		{"global equals default, workspace overrides", config.Inspection{Default: "1.0", Global: "1.0", Workspace: "2.0"}, config.TargetWorkspace},
		{"global overrides", config.Inspection{Default: "1.0", Global: "2.0"}, config.TargetGlobal},
		{"global wins over workspace", config.Inspection{Default: "1.0", Global: "2.0", Workspace: "3.0"}, config.TargetGlobal},
		{"no overrides", config.Inspection{Default: "1.0"}, config.TargetWorkspace},
		{"overrides equal default", config.Inspection{Default: "1.0", Global: "1.0", Workspace: "1.0"}, config.TargetWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTarget(tt.in); got != tt.expected {
				t.Errorf("ResolveTarget(%+v) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestServerVersionInfo(t *testing.T) {
	cfg := fakeConfig{
		effective: "0.9.0",
		in:        config.Inspection{Default: "1.0.0", Workspace: "0.9.0"},
	}
	info := ServerVersionInfo(cfg)
	want := VersionInfo{
		ServerVersion:       "0.9.0",
		LatestServerVersion: "1.0.0",
		ConfigurationTarget: config.TargetWorkspace,
	}
	if info != want {
		t.Errorf("ServerVersionInfo = %+v, want %+v", info, want)
	}
}

func TestCheckServerVersion_WithStore(t *testing.T) {
	globalDir := t.TempDir()
	workspaceDir := t.TempDir()
	store, err := config.OpenDirs(globalDir, workspaceDir)
	if err != nil {
		t.Fatalf("OpenDirs: %v", err)
	}
	if err := store.Update(ConfigSection, "0.9.0", config.TargetGlobal); err != nil {
		t.Fatalf("Update: %v", err)
	}

	var notice *OutdatedNotice
	update := func(p UpdateConfigParams) {
		if err := store.Update(p.ConfigSection, p.LatestServerVersion, p.ConfigurationTarget); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	CheckServerVersion(store, update, func(n OutdatedNotice) { notice = &n })
	if notice == nil {
		t.Fatal("expected outdated notice")
	}

	notice.Upgrade()
	if got := store.Inspect(ConfigSection).Global; got != config.LatestServerVersion {
		t.Errorf("Global = %q, want %q", got, config.LatestServerVersion)
	}

	notice = nil
	CheckServerVersion(store, update, func(n OutdatedNotice) { notice = &n })
	if notice != nil {
		t.Error("expected no notice after upgrade")
	}
}
