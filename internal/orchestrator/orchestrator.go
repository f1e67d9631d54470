// Package orchestrator sequences one JSP pre-compilation run: locate the
// tools archive, invoke the translator, copy compiled classes and merge the
// generated web fragment into the deployment descriptor.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/jspcgo/internal/config"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/descriptor"
	"github.com/vk/jspcgo/internal/fsutil"
	"github.com/vk/jspcgo/internal/invoker"
	"github.com/vk/jspcgo/internal/jspcargs"
	"github.com/vk/jspcgo/internal/project"
	"github.com/vk/jspcgo/internal/toollocator"
)

// Report summarizes a run.
type Report struct {
	Skipped         bool
	FileCount       int
	Elapsed         time.Duration
	CopiedArtifacts int
	Merge           *descriptor.MergeResult
	SourceRoot      string
}

// Orchestrator owns the collaborators for one run.
type Orchestrator struct {
	cfg     *config.JSPC
	project *project.Model
	locator *toollocator.Locator
	invoker *invoker.Invoker
	merger  *descriptor.Merger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLocator replaces the default tools archive locator.
func WithLocator(l *toollocator.Locator) Option {
	return func(o *Orchestrator) { o.locator = l }
}

// WithInvoker replaces the invoker built around the translator.
func WithInvoker(inv *invoker.Invoker) Option {
	return func(o *Orchestrator) { o.invoker = inv }
}

// WithMerger replaces the default descriptor merger.
func WithMerger(m *descriptor.Merger) Option {
	return func(o *Orchestrator) { o.merger = m }
}

// New builds an Orchestrator for cfg acting on proj. cfg must already be
// resolved.
func New(cfg *config.JSPC, proj *project.Model, t invoker.Translator, opts ...Option) *Orchestrator {
	merger := descriptor.NewMerger()
	merger.PlatformEncoding = cfg.DefaultEncoding

	o := &Orchestrator{
		cfg:     cfg,
		project: proj,
		locator: toollocator.New(),
		invoker: invoker.New(t),
		merger:  merger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the pipeline. The first failing step aborts the rest.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := o.cfg

	if cfg.Skip {
		logger.Info("JSP compilation skipped.")
		return &Report{Skipped: true}, nil
	}

	isWar := o.project.IsWar()
	if !isWar || !cfg.IncludeInProject {
		logger.Warn("Compiled JSPs will not be added to the project and web.xml will " +
			"not be modified, either because include_in_project is set to false or " +
			"because the project's packaging is not 'war'.")
	}

	logger.Debug("Source directory.", "path", cfg.SourceDirectory)
	logger.Debug("Classpath.", "entries", cfg.Classpath)
	logger.Debug("Output directory.", "path", cfg.WorkingDirectory)

	sources, err := fsutil.FindFilesByExtension(cfg.SourceDirectory, cfg.SourceExtensions...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan JSP sources in %s: %w", cfg.SourceDirectory, err)
	}

	req, err := jspcargs.NewRequest(jspcargs.Request{
		SourceRoot:   cfg.SourceDirectory,
		OutputDir:    cfg.WorkingDirectory,
		Encoding:     cfg.JavaEncoding,
		PackageName:  cfg.PackageName,
		Classpath:    cfg.Classpath,
		FragmentPath: cfg.WebFragmentFile,
		ShowSuccess:  cfg.ShowSuccess,
		ListErrors:   cfg.ListErrors,
		Sources:      sources,
	})
	if err != nil {
		return nil, err
	}
	args, err := jspcargs.Assemble(req)
	if err != nil {
		return nil, err
	}
	logger.Debug("Jspc args.", "args", args.Tokens)

	for _, dir := range []string{cfg.WorkingDirectory, o.project.BuildDir, o.project.OutputDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	tool, err := o.locator.Locate(ctx, cfg.RuntimeHome)
	if err != nil {
		return nil, err
	}

	res, err := o.invoker.Invoke(ctx, args, tool, cfg.WorkingDirectory)
	if err != nil {
		return nil, err
	}
	report := &Report{FileCount: res.FileCount, Elapsed: res.Elapsed}

	if cfg.Compile && isWar {
		n, err := fsutil.CopyByExtension(cfg.WorkingDirectory, o.project.OutputDir, ".class")
		if err != nil {
			return nil, fmt.Errorf("failed to copy compiled classes: %w", err)
		}
		report.CopiedArtifacts = n
		logger.Debug("Copied compiled classes.", "count", n, "to", o.project.OutputDir)
	}

	if isWar && cfg.IncludeInProject {
		merged, err := o.merger.Merge(ctx, descriptor.MergeRequest{
			DescriptorPath: cfg.InputWebXML,
			FragmentPath:   cfg.WebFragmentFile,
			OutputPath:     cfg.OutputWebXML,
			Marker:         cfg.InjectString,
			Filtering:      cfg.Filtering,
			Properties:     o.project.Properties,
		})
		if err != nil {
			return nil, err
		}
		report.Merge = merged

		o.project.AddCompileSourceRoot(cfg.WorkingDirectory)
		report.SourceRoot = cfg.WorkingDirectory
		logger.Debug("Registered compile source root.", "path", cfg.WorkingDirectory)
	}

	return report, nil
}
