package plan

import (
	"fmt"

	"reflect-registry/internal/analyze"
	"reflect-registry/internal/config"
)

// FromConfigFile loads the config at path, analyzes its package and builds
// the plan, path checks included (see Plan.Paths). The error is only set when the plan could
// not be built at all; check Plan.Diagnostics for everything else.
func FromConfigFile(path string) (*Plan, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return FromConfig(cfg)
}

// FromConfig is FromConfigFile for an already loaded config.
func FromConfig(cfg *config.File) (*Plan, error) {
	if diags := config.Validate(cfg); diags.HasErrors() {
		p := &Plan{Config: cfg}
		p.Diagnostics.Merge(*diags)

		return p, nil
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Skip = []string{cfg.Filename}

	pkg, err := analyzer.LoadDir(cfg.PackageDir())
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", cfg.PackageDir(), err)
	}

	p := Build(cfg, pkg)
	p.checkOutput()
	p.Paths = p.CheckPaths()

	return p, nil
}

// checkOutput makes sure generated methods land in the analyzed package.
func (p *Plan) checkOutput() {
	if p.Config.Output == "" {
		return
	}

	mod, err := analyze.FindModule(p.Config.OutputDir())
	if err != nil {
		p.Diagnostics.AddError("output_outside_module", err.Error(), "", p.Config.Output)
		return
	}

	path, err := mod.ImportPath(p.Config.OutputDir())
	if err != nil {
		p.Diagnostics.AddError("output_outside_module", err.Error(), "", p.Config.Output)
		return
	}

	if path != p.Package.Path {
		p.Diagnostics.AddError("output_outside_package",
			fmt.Sprintf("output %s is package %s, methods must be declared in %s", p.Config.Output, path, p.Package.Path),
			"", p.Config.Output)
	}
}
