package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/metals-labs/metals-client/internal/branding"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	fileName = "settings"
	fileType = "yaml"

	// keyDelimiter replaces viper's "." so dotted setting names such as
	// "metals.serverVersion" stay flat keys instead of nested maps.
	keyDelimiter = "::"
)

// ErrInvalidSettings is returned when a settings file fails schema validation.
var ErrInvalidSettings = errors.New("invalid settings file")

// GlobalDir returns the directory holding the global settings file.
// METALS_CLIENT_HOME overrides the default of ~/.metals-client.
func GlobalDir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// WorkspaceDir returns the directory holding the workspace settings file.
func WorkspaceDir(workspace string) string {
	return filepath.Join(workspace, branding.HomeDir())
}

func settingsFile(dir string) string {
	return filepath.Join(dir, fileName+"."+fileType)
}

// layer is one settings file backed by its own viper instance.
type layer struct {
	path string
	v    *viper.Viper
}

func newViper(path string) *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	return v
}

// loadLayer reads and validates the settings file at path. A missing file is
// an empty layer.
func loadLayer(path string) (*layer, error) {
	l := &layer{path: path, v: newViper(path)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating settings %s: %w", path, err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("%w %s: %s", ErrInvalidSettings, path, strings.Join(msgs, "; "))
	}

	if err := l.v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("loading settings %s: %w", path, err)
	}
	return l, nil
}

func (l *layer) get(key string) string {
	if !l.v.InConfig(key) {
		return ""
	}
	return l.v.GetString(key)
}

func (l *layer) set(key, value string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", filepath.Dir(l.path), err)
	}

	// Stage the write on a copy so a failed write leaves l.v as loaded.
	w := newViper(l.path)
	if err := w.MergeConfigMap(l.v.AllSettings()); err != nil {
		return fmt.Errorf("copying settings %s: %w", l.path, err)
	}
	w.Set(key, value)
	if err := w.WriteConfigAs(l.path); err != nil {
		return fmt.Errorf("writing settings %s: %w", l.path, err)
	}
	return nil
}

func (l *layer) unset(key string) error {
	if !l.v.InConfig(key) {
		return nil
	}

	settings := l.v.AllSettings()
	delete(settings, strings.ToLower(key))

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("writing settings %s: %w", l.path, err)
	}
	return nil
}

// Store merges the default, global, and workspace settings layers.
type Store struct {
	mu        sync.RWMutex
	global    *layer
	workspace *layer
}

// Open loads the global settings and the settings of the workspace rooted at
// workspace. Missing files are treated as empty layers.
func Open(workspace string) (*Store, error) {
	return OpenDirs(GlobalDir(), WorkspaceDir(workspace))
}

// OpenDirs loads settings from explicit global and workspace directories.
func OpenDirs(globalDir, workspaceDir string) (*Store, error) {
	global, err := loadLayer(settingsFile(globalDir))
	if err != nil {
		return nil, err
	}
	workspace, err := loadLayer(settingsFile(workspaceDir))
	if err != nil {
		return nil, err
	}
	return &Store{global: global, workspace: workspace}, nil
}

// Path returns the settings file backing target.
func (s *Store) Path(target Target) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if target == TargetGlobal {
		return s.global.path
	}
	return s.workspace.path
}

// Get returns the effective value of key: workspace, then global, then the
// built-in default.
func (s *Store) Get(key string) string {
	in := s.Inspect(key)
	switch {
	case in.Workspace != "":
		return in.Workspace
	case in.Global != "":
		return in.Global
	default:
		return in.Default
	}
}

// Inspect returns the value of key in every layer.
func (s *Store) Inspect(key string) Inspection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in := Inspection{
		Key:       key,
		Global:    s.global.get(key),
		Workspace: s.workspace.get(key),
	}
	if setting, ok := Lookup(key); ok {
		in.Default = setting.Default
	}
	return in
}

// Update persists value for key in the target layer and reloads it.
func (s *Store) Update(key, value string, target Target) error {
	return s.modify(target, func(l *layer) error { return l.set(key, value) })
}

// Unset removes key from the target layer. Unsetting an absent key is a no-op.
func (s *Store) Unset(key string, target Target) error {
	return s.modify(target, func(l *layer) error { return l.unset(key) })
}

func (s *Store) modify(target Target, fn func(*layer) error) error {
	if target != TargetGlobal && target != TargetWorkspace {
		return fmt.Errorf("unknown configuration target %v", target)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.workspace
	if target == TargetGlobal {
		l = s.global
	}
	if err := fn(l); err != nil {
		return err
	}

	reloaded, err := loadLayer(l.path)
	if err != nil {
		return err
	}
	if target == TargetGlobal {
		s.global = reloaded
	} else {
		s.workspace = reloaded
	}
	return nil
}
