// Package settings persists the editor's user settings as YAML, with a
// semver schema gate so older builds refuse files written by a newer,
// incompatible schema instead of silently mangling them.
package settings

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub005/pkg/errors"
)

// SchemaVersion is the settings schema written by this build. Files with a
// newer major version are rejected; older files load with defaults filled
// in for fields they predate.
const SchemaVersion = "v1.2.0"

// Settings represents settings.yaml.
type Settings struct {
	Schema  string  `yaml:"schema"`
	Editor  Editor  `yaml:"editor"`
	Project Project `yaml:"project"`
}

// Editor contains UI-facing preferences.
type Editor struct {
	Theme           string   `yaml:"theme,omitempty"`
	AutosaveMinutes int      `yaml:"autosaveMinutes,omitempty"`
	RecentProjects  []string `yaml:"recentProjects,omitempty"`
}

// Project contains per-installation paths.
type Project struct {
	XPlaneRoot   string   `yaml:"xplaneRoot,omitempty"`
	TexturePaths []string `yaml:"texturePaths,omitempty"`
}

// Default returns the settings a fresh installation starts with.
func Default() *Settings {
	return &Settings{
		Schema: SchemaVersion,
		Editor: Editor{
			Theme:           "dark",
			AutosaveMinutes: 5,
		},
	}
}

// Load reads settings from path. A missing file yields defaults; a parse
// failure or an incompatible schema is reported and returned as an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, reportConfig("settings.Load", path, fmt.Errorf("read settings: %w", err))
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, reportConfig("settings.Load", path, fmt.Errorf("parse settings: %w", err))
	}

	if err := checkSchema(s.Schema); err != nil {
		return nil, reportConfig("settings.Load", path, err)
	}

	applyDefaults(&s)
	return &s, nil
}

// Save writes settings to path, stamping the current schema version and
// creating parent directories as needed.
func (s *Settings) Save(path string) error {
	out := *s
	out.Schema = SchemaVersion

	data, err := yaml.Marshal(&out)
	if err != nil {
		return reportConfig("settings.Save", path, fmt.Errorf("encode settings: %w", err))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return reportConfig("settings.Save", path, fmt.Errorf("create settings dir: %w", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return reportConfig("settings.Save", path, fmt.Errorf("write settings: %w", err))
	}
	return nil
}

// checkSchema accepts current and older schema versions and rejects files
// from a newer major schema.
func checkSchema(schema string) error {
	if schema == "" {
		// Pre-versioning file; load with defaults.
		return nil
	}
	if !semver.IsValid(schema) {
		return fmt.Errorf("invalid schema version %q", schema)
	}
	if semver.Compare(semver.Major(schema), semver.Major(SchemaVersion)) > 0 {
		return fmt.Errorf("settings schema %s is newer than supported %s", schema, SchemaVersion)
	}
	return nil
}

// applyDefaults fills fields that older schema files predate.
func applyDefaults(s *Settings) {
	def := Default()
	if s.Schema == "" || semver.Compare(s.Schema, SchemaVersion) < 0 {
		s.Schema = SchemaVersion
	}
	if s.Editor.Theme == "" {
		s.Editor.Theme = def.Editor.Theme
	}
	if s.Editor.AutosaveMinutes == 0 {
		s.Editor.AutosaveMinutes = def.Editor.AutosaveMinutes
	}
}

func reportConfig(op, path string, err error) error {
	errors.Report(&errors.EditorError{
		Op:    op,
		Kind:  errors.KindConfig,
		Asset: path,
		Err:   err,
	})
	return err
}
