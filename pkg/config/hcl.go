package config

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Source        string   `hcl:"source,optional"`
		BuildDir      string   `hcl:"build_dir,optional"`
		Tag           string   `hcl:"tag,optional"`
		Subtrees      []string `hcl:"subtrees,optional"`
		CopyOnly      []string `hcl:"copy_only,optional"`
		SourceExts    []string `hcl:"source_exts,optional"`
		Ignore        []string `hcl:"ignore,optional"`
		Fixers        []string `hcl:"fixers,optional"`
		Tool          string   `hcl:"tool,optional"`
		SlowThreshold string   `hcl:"slow_threshold,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Source:     hclCfg.Source,
		BuildDir:   hclCfg.BuildDir,
		Tag:        hclCfg.Tag,
		Subtrees:   hclCfg.Subtrees,
		CopyOnly:   hclCfg.CopyOnly,
		SourceExts: hclCfg.SourceExts,
		Ignore:     hclCfg.Ignore,
		Fixers:     hclCfg.Fixers,
		Tool:       hclCfg.Tool,
	}

	if hclCfg.SlowThreshold != "" {
		threshold, err := time.ParseDuration(hclCfg.SlowThreshold)
		if err != nil {
			return nil, errors.Errorf("parsing slow_threshold: %w", err)
		}
		cfg.SlowThreshold = threshold
	}

	return cfg, nil
}
