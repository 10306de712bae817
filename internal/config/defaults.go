package config

// envPrefix namespaces the environment variable overrides.
const envPrefix = "RELNOTES_"

// Defaults returns the built-in configuration values. Section rule
// defaults live in the changelog package; an empty list here means
// "use the built-ins for the active mode".
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"mode":              "sections",
		"title":             "Changelog",
		"output":            "CHANGELOG.md",
		"base_url":          "",
		"allow_bare_ticket": false,
		"scan_revert_body":  false,
		"timeout":           60,
	}
}
