package config

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 Config describes one incremental conversion setup: which subtrees to
// mirror, where the mirror lives, and how the external fixer is invoked.
type Config struct {
	Source        string        // Source tree root
	BuildDir      string        // Output root; the mirror lives under BuildDir/Tag
	Tag           string        // Version tag, e.g. "py3.9"
	Subtrees      []string      // Named subtrees of Source to process
	CopyOnly      []string      // Subtree-relative dirs copied but never converted
	SourceExts    []string      // File extensions queued for conversion
	Ignore        []string      // Base-name globs never mirrored
	Fixers        []string      // Fixer allow-list passed on every tool call
	Tool          string        // External conversion command
	SlowThreshold time.Duration // Report slowest conversions above this
}

// 🏭 Default returns the built-in configuration. These are the values the
// tool was originally written around and what a missing config file means.
func Default() *Config {
	return &Config{
		Source:     ".",
		BuildDir:   "build",
		Tag:        "py3",
		Subtrees:   []string{"Bio", "BioSQL", "Tests", "Scripts", "Doc"},
		CopyOnly:   []string{"Bio/_py3k"},
		SourceExts: []string{".py"},
		Ignore:     []string{".*", "*~", "*.bak", "*.swp", "*.pyc", "*$py.class"},
		Fixers: []string{
			"basestring",
			"dict",
			"future",
			"has_key",
			"imports",
			"isinstance",
			"itertools",
			"itertools_imports",
			"nonzero",
			"raw_input",
			"unicode",
			"urllib",
			"xrange",
		},
		Tool:          "2to3",
		SlowThreshold: 2 * time.Second,
	}
}

// 🔄 applyDefaults fills unset fields from the built-in configuration
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Source == "" {
		cfg.Source = def.Source
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = def.BuildDir
	}
	if cfg.Tag == "" {
		cfg.Tag = def.Tag
	}
	if len(cfg.Subtrees) == 0 {
		cfg.Subtrees = def.Subtrees
	}
	if len(cfg.CopyOnly) == 0 {
		cfg.CopyOnly = def.CopyOnly
	}
	if len(cfg.SourceExts) == 0 {
		cfg.SourceExts = def.SourceExts
	}
	if len(cfg.Ignore) == 0 {
		cfg.Ignore = def.Ignore
	}
	if len(cfg.Fixers) == 0 {
		cfg.Fixers = def.Fixers
	}
	if cfg.Tool == "" {
		cfg.Tool = def.Tool
	}
	if cfg.SlowThreshold == 0 {
		cfg.SlowThreshold = def.SlowThreshold
	}
}

// 📝 Load reads and parses the config file at path. A missing file is not an
// error: the built-in defaults are returned so the tool runs unconfigured.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("no parser for config file %s", path)
	}

	cfg, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config file %s: %w", path, err)
	}

	applyDefaults(cfg)
	logger.Debug().Str("path", path).Strs("subtrees", cfg.Subtrees).Msg("loaded config")
	return cfg, nil
}
