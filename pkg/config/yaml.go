package config

import (
	"context"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	type yamlConfig struct {
		Source        string   `yaml:"source"`
		BuildDir      string   `yaml:"build_dir"`
		Tag           string   `yaml:"tag"`
		Subtrees      []string `yaml:"subtrees"`
		CopyOnly      []string `yaml:"copy_only"`
		SourceExts    []string `yaml:"source_exts"`
		Ignore        []string `yaml:"ignore"`
		Fixers        []string `yaml:"fixers"`
		Tool          string   `yaml:"tool"`
		SlowThreshold string   `yaml:"slow_threshold"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, errors.Errorf("unmarshaling YAML: %w", err)
	}

	cfg := &Config{
		Source:     yamlCfg.Source,
		BuildDir:   yamlCfg.BuildDir,
		Tag:        yamlCfg.Tag,
		Subtrees:   yamlCfg.Subtrees,
		CopyOnly:   yamlCfg.CopyOnly,
		SourceExts: yamlCfg.SourceExts,
		Ignore:     yamlCfg.Ignore,
		Fixers:     yamlCfg.Fixers,
		Tool:       yamlCfg.Tool,
	}

	if yamlCfg.SlowThreshold != "" {
		threshold, err := time.ParseDuration(yamlCfg.SlowThreshold)
		if err != nil {
			return nil, errors.Errorf("parsing slow_threshold: %w", err)
		}
		cfg.SlowThreshold = threshold
	}

	return cfg, nil
}
