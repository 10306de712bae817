package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnotes/internal/changelog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	// Keep the developer's real user config out of the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "absent.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "sections", cfg.Mode)
	assert.Equal(t, "Changelog", cfg.Title)
	assert.Equal(t, "CHANGELOG.md", cfg.Output)
	assert.Equal(t, 60, cfg.Timeout)
	assert.False(t, cfg.AllowBareTicket)
	assert.Empty(t, cfg.Sections)
}

func TestLoad_ProjectConfig(t *testing.T) {
	path := writeConfig(t, `
mode: references
base_url: https://tracker.example.com/browse
allow_bare_ticket: true
references:
  - name: User Stories
    pattern: US
    label: US
  - name: Bugs
    pattern: BUG
    label: BUG
`)

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "references", cfg.Mode)
	assert.Equal(t, "https://tracker.example.com/browse", cfg.BaseURL)
	assert.True(t, cfg.AllowBareTicket)
	require.Len(t, cfg.References, 2)
	assert.Equal(t, "User Stories", cfg.References[0].Name)
	assert.Equal(t, "US", cfg.References[0].Pattern)
}

func TestLoad_EnvOverridesProject(t *testing.T) {
	path := writeConfig(t, "mode: sections\n")
	t.Setenv("RELNOTES_MODE", "references")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)
	assert.Equal(t, "references", cfg.Mode)
}

func TestLoad_InvalidMode(t *testing.T) {
	path := writeConfig(t, "mode: bogus\n")

	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: -1\n")

	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestLoad_RuleShapeValidation(t *testing.T) {
	tests := map[string]string{
		"missing name": `
sections:
  - pattern: ^feat
    label: feat
`,
		"missing pattern": `
sections:
  - name: Features
    label: feat
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
			assert.Error(t, err)
		})
	}
}

func TestConfiguration_Rules(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg       Configuration
		wantNames []string
	}{
		"sections fallback to builtins": {
			cfg:       Configuration{Mode: "sections"},
			wantNames: []string{"Features", "Bug Fixes", "Other Changes"},
		},
		"references fallback to builtins": {
			cfg:       Configuration{Mode: "references"},
			wantNames: []string{"User Stories", "Bugs"},
		},
		"configured sections win": {
			cfg: Configuration{
				Mode:     "sections",
				Sections: []changelog.SectionRule{{Name: "Only", Pattern: "^only", Label: "o"}},
			},
			wantNames: []string{"Only"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rules := tt.cfg.Rules()
			names := make([]string, len(rules))
			for i, r := range rules {
				names[i] = r.Name
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestLoad_LegacyJSONWarning(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, os.WriteFile(LegacyProjectConfigPath(), []byte(`{"mode": "references"}`), 0o644))

	var warnings strings.Builder
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "references", cfg.Mode)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}
