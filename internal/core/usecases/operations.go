package usecases

import (
	"context"
	"iter"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// Pipeline wires the six resolution stages and the plan generator into the
// three external operations spec §6 names. It is the sole entry point
// surrounding collaborators (the CLI, a future API) call into the core.
type Pipeline struct {
	loader      *Loader
	inheritance *InheritanceResolver
	themes      *ThemeOverlay
	templates   *TemplateResolver
	imports     *ImportResolver
	plans       *PlanGenerator
	logger      Logger
}

// WithLogger attaches a structured logger that receives an Info entry at
// each stage boundary and a Warn entry for every collected Warning (spec
// §10.2). A Pipeline with no logger attached (the zero value) skips
// logging entirely.
func (p *Pipeline) WithLogger(logger Logger) *Pipeline {
	p.logger = logger
	return p
}

func (p *Pipeline) logInfo(msg string, keysAndValues ...any) {
	if p.logger != nil {
		p.logger.Info(msg, keysAndValues...)
	}
}

func (p *Pipeline) logWarnings(warnings []entities.Warning) {
	if p.logger == nil {
		return
	}
	for _, w := range warnings {
		p.logger.Warn(string(w.Kind), "message", w.Message, "source", w.Source)
	}
}

// NewPipeline assembles a Pipeline from its collaborating adapters.
func NewPipeline(reader SourceReader, themeLoader ThemeLoader, rng RandomSource, maxInheritanceDepth, maxChunkDepth, maxImportDepth int) *Pipeline {
	loader := NewLoader(reader)
	inheritance := NewInheritanceResolver(loader, maxInheritanceDepth)
	expander := NewChunkExpander(inheritance, maxChunkDepth)

	return &Pipeline{
		loader:      loader,
		inheritance: inheritance,
		themes:      NewThemeOverlay(themeLoader),
		templates:   NewTemplateResolver(expander),
		imports:     NewImportResolver(loader, maxImportDepth),
		plans:       NewPlanGenerator(rng),
	}
}

// LoadAndResolve is external operation 1 (spec §6.1): it runs stages 1
// through 5 for templatePath and returns the resulting ResolvedConfig and
// ResolvedContext, or a typed resolution error.
func (p *Pipeline) LoadAndResolve(ctx context.Context, templatePath, theme, themeFile, style string) (*entities.ResolvedConfig, *entities.ResolvedContext, []entities.Warning, error) {
	p.logInfo("resolving inheritance chain", "template", templatePath)
	merged, warnings, err := p.inheritance.Resolve(ctx, templatePath)
	if err != nil {
		return nil, nil, nil, err
	}

	if merged.Kind == entities.SourceKindPrompt {
		if theme == "" {
			theme = merged.Theme
		}
		if themeFile == "" {
			themeFile = merged.ThemeFile
		}
		if style == "" {
			style = merged.Style
		}
	}

	p.logInfo("applying theme overlay", "theme", theme, "theme_file", themeFile, "style", style)
	merged, err = p.themes.Apply(merged, theme, themeFile, style)
	if err != nil {
		return nil, nil, nil, err
	}

	p.logInfo("resolving templates and expanding chunks", "template", templatePath)
	rc, names, expandWarnings, err := p.templates.Resolve(ctx, merged)
	if err != nil {
		return nil, nil, nil, err
	}
	warnings = append(warnings, expandWarnings...)

	p.logInfo("resolving imports", "style", style)
	resolvedContext, importWarnings, err := p.imports.Resolve(ctx, style, merged.Imports, merged.Removed, names)
	if err != nil {
		return nil, nil, nil, err
	}
	warnings = append(warnings, importWarnings...)

	if err := resolvedContext.Validate(rc.References); err != nil {
		return nil, nil, nil, err
	}

	p.logWarnings(warnings)
	p.logInfo("load_and_resolve complete", "template", templatePath, "warning_count", len(warnings))

	return rc, resolvedContext, warnings, nil
}

// ApplyOverrides is external operation 2 (spec §6.2): it packages the
// consumer's fixed-value and seed-list overrides into PlanOptions. Per spec
// §4.6.3, unknown fixed-value keys are only validated once enumeration
// begins building its cross-product axes, since that is where the resolved
// variation sets are consulted; this operation's job is solely to carry the
// overrides through unchanged.
func (p *Pipeline) ApplyOverrides(resolvedContext *entities.ResolvedContext, fixedValues map[string]string, seeds []int64, maxImages int) (*entities.ResolvedContext, *entities.PlanOptions) {
	p.logInfo("applying overrides", "fixed_values", len(fixedValues), "seeds", len(seeds), "max_images", maxImages)
	opts := &entities.PlanOptions{
		FixedValues: fixedValues,
		Seeds:       seeds,
		MaxImages:   maxImages,
	}
	return resolvedContext, opts
}

// EnumeratePlan is external operation 3 (spec §6.3): it enumerates rc/ctx
// under opts into a lazy, finite sequence of RenderedItem values.
func (p *Pipeline) EnumeratePlan(rc *entities.ResolvedConfig, resolvedContext *entities.ResolvedContext, opts *entities.PlanOptions) (iter.Seq[entities.RenderedItem], error) {
	if opts == nil {
		opts = &entities.PlanOptions{}
	}
	p.logInfo("enumerating plan", "max_images", opts.MaxImages)
	return p.plans.Enumerate(rc, resolvedContext, opts)
}
