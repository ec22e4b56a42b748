package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/metals-labs/metals-client/internal/config"
	"github.com/metals-labs/metals-client/internal/serverversion"
)

func testNotice(upgraded *int) serverversion.OutdatedNotice {
	info := serverversion.VersionInfo{
		ServerVersion:       "0.9.0",
		LatestServerVersion: "1.0.0",
		ConfigurationTarget: config.TargetWorkspace,
	}
	return serverversion.NewOutdatedNotice(info, func(serverversion.UpdateConfigParams) { *upgraded++ })
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expected     Choice
		wantUpgrades int
	}{
		{"upgrade", "1\n", ChoiceUpgrade, 1},
		{"open settings", "2\n", ChoiceOpenSettings, 0},
		{"dismiss", "3\n", ChoiceDismiss, 0},
		{"blank line dismisses", "\n", ChoiceDismiss, 0},
		{"end of input dismisses", "", ChoiceDismiss, 0},
		{"no trailing newline", "1", ChoiceUpgrade, 1},
		{"surrounding spaces", "  2  \n", ChoiceOpenSettings, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upgrades := 0
			var out bytes.Buffer
			got, err := Prompt(strings.NewReader(tt.input), &out, testNotice(&upgrades))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Prompt = %v, want %v", got, tt.expected)
			}
			if upgrades != tt.wantUpgrades {
				t.Errorf("upgrade ran %d times, want %d", upgrades, tt.wantUpgrades)
			}
		})
	}
}

func TestPrompt_RendersMenu(t *testing.T) {
	upgrades := 0
	var out bytes.Buffer
	if _, err := Prompt(strings.NewReader("3\n"), &out, testNotice(&upgrades)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"out-of-date version of Metals",
		"1) Upgrade to 1.0.0 now",
		"2) Open settings",
		"3) Not now",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrompt_InvalidSelection(t *testing.T) {
	for _, input := range []string{"0\n", "4\n", "yes\n"} {
		t.Run(strings.TrimSpace(input), func(t *testing.T) {
			upgrades := 0
			_, err := Prompt(strings.NewReader(input), &bytes.Buffer{}, testNotice(&upgrades))
			if err == nil {
				t.Error("expected error for invalid selection")
			}
			if upgrades != 0 {
				t.Errorf("upgrade ran %d times, want 0", upgrades)
			}
		})
	}
}

func TestPrintBanner(t *testing.T) {
	upgrades := 0
	var out bytes.Buffer
	PrintBanner(&out, testNotice(&upgrades))

	if !strings.Contains(out.String(), "configured a custom server version 0.9.0") {
		t.Errorf("banner missing message:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "metals-client check") {
		t.Errorf("banner missing command hint:\n%s", out.String())
	}
	if upgrades != 0 {
		t.Errorf("banner must not upgrade")
	}
}

func TestOpenInEditor_NoEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	if err := OpenInEditor("/nonexistent/settings.yaml"); err != nil {
		t.Errorf("expected no error without $EDITOR, got %v", err)
	}
}
