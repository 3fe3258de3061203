// Package config loads the optional project configuration that controls
// the front-end's language dialect, diagnostic strictness, and lexer
// quirks. Spec §6 deliberately keeps the CLI to a single positional file
// argument with no flag processing by the core, so everything here comes
// from an on-disk .cptoyc.kdl file merged over built-in defaults.
package config

import (
	"os"
	"path/filepath"
)

// Config is the fully-resolved configuration for one cptoyc run.
type Config struct {
	Version     int
	Lang        LangOptions
	Diagnostics DiagnosticsConfig
	Lexer       LexerConfig
}

// LangOptions holds the dialect settings read from .cptoyc.kdl (spec
// §4.3). Only C99 and Bool have an effect: the CLI passes them to the
// identifier table's AddKeywords, which gates keyword recognition. The
// other fields are parsed and stored but consulted by nothing.
type LangOptions struct {
	C99         bool // enables the inline and restrict keywords
	BCPLComment bool // not consulted; the lexer always recognizes // line comments
	Bool        bool // recognize _Bool as a keyword independent of C99
	HexFloats   bool // not consulted; the lexer always scans 0x1.8p3-style hexadecimal floating constants
	Digraphs    bool // not consulted; the lexer does not recognize <: :> <% %> %: spellings
}

// DiagnosticsConfig holds the diagnostics settings (spec §6/§7). The CLI
// driver acts on Quiet only, by not printing collected diagnostics;
// WarningsAsErrors and MaxErrors are parsed and validated but change
// neither what is reported nor when lexing stops.
type DiagnosticsConfig struct {
	WarningsAsErrors bool
	MaxErrors        int // must be non-negative (see Validator); lexing never stops early on errors
	Quiet            bool
}

// LexerConfig controls lexer behavior that isn't part of the language
// dialect proper.
type LexerConfig struct {
	KeepWhitespace bool // spec §4.6 "raw mode" whitespace-preserving tokens
	TabStop        int  // defaulted to 8 when zero; column numbers count bytes and do not expand tabs
}

// defaultConfig returns the built-in configuration used when no
// .cptoyc.kdl file is found anywhere in the search path.
func defaultConfig() *Config {
	return &Config{
		Version: 1,
		Lang: LangOptions{
			C99:         true,
			BCPLComment: true,
			Bool:        true,
			HexFloats:   true,
			Digraphs:    false,
		},
		Diagnostics: DiagnosticsConfig{
			WarningsAsErrors: false,
			MaxErrors:        20,
			Quiet:            false,
		},
		Lexer: LexerConfig{
			KeepWhitespace: false,
			TabStop:        8,
		},
	}
}

// Load resolves configuration for the file at path, searching path's
// directory (and the user's home directory as a fallback base) for
// .cptoyc.kdl.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, filepath.Dir(path))
}

// LoadWithRoot resolves configuration the way the teacher's two-step
// global-then-project scheme does: a base config from
// ~/.cptoyc.kdl (if present) is overridden by a project config from
// rootDir/.cptoyc.kdl (if present), falling back to built-in defaults
// when neither exists.
func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	projectConfig, err := LoadKDL(searchDir)
	if err != nil {
		return nil, err
	}

	switch {
	case baseConfig != nil && projectConfig != nil:
		return mergeConfigs(baseConfig, projectConfig), nil
	case projectConfig != nil:
		return projectConfig, nil
	case baseConfig != nil:
		return baseConfig, nil
	default:
		return defaultConfig(), nil
	}
}

// mergeConfigs overlays project onto base. Since this domain's config
// has no "unset" sentinel distinct from the zero value, the merge
// policy is simply "project wins entirely": base is ignored and no
// field falls back to it —
// matching the teacher's rule that project settings override base for
// everything except list-valued exclusions, which this config has none
// of.
func mergeConfigs(base, project *Config) *Config {
	merged := *project
	_ = base
	return &merged
}
