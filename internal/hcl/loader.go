package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/jspcgo/internal/config"
	"github.com/vk/jspcgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL file at path and overlays every attribute it sets onto
// config.Default().
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx := newEvalContext()
	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := config.Default()
	if root.JSPC != nil {
		applyJSPC(&model.JSPC, root.JSPC)
	}
	if root.Project != nil {
		props, err := decodeProperties(ctx, root.Project.Properties, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("invalid properties in %s: %w", path, err)
		}
		applyProject(&model.Project, root.Project, props)
	}
	if root.Translator != nil {
		set(&model.Translator.Command, root.Translator.Command)
		if root.Translator.Args != nil {
			model.Translator.Args = root.Translator.Args
		}
	}

	logger.Debug("HCL loading complete.",
		"jspc_block", root.JSPC != nil,
		"project_block", root.Project != nil,
		"translator_block", root.Translator != nil,
		"properties", len(model.Project.Properties),
	)
	return model, nil
}

func applyJSPC(dst *config.JSPC, b *jspcBlock) {
	set(&dst.Skip, b.Skip)
	set(&dst.WorkingDirectory, b.WorkingDirectory)
	set(&dst.SourceDirectory, b.SourceDirectory)
	if b.SourceExtensions != nil {
		dst.SourceExtensions = b.SourceExtensions
	}
	set(&dst.WebFragmentFile, b.WebFragmentFile)
	set(&dst.InputWebXML, b.InputWebXML)
	set(&dst.OutputWebXML, b.OutputWebXML)
	set(&dst.JavaEncoding, b.JavaEncoding)
	set(&dst.PackageName, b.PackageName)
	if b.Classpath != nil {
		dst.Classpath = b.Classpath
	}
	set(&dst.Verbose, b.Verbose)
	set(&dst.ShowSuccess, b.ShowSuccess)
	set(&dst.ListErrors, b.ListErrors)
	set(&dst.SmapDumped, b.SmapDumped)
	set(&dst.SmapSuppressed, b.SmapSuppressed)
	set(&dst.ValidateXML, b.ValidateXML)
	set(&dst.TrimSpaces, b.TrimSpaces)
	set(&dst.ErrorOnUseBeanInvalidClassAttribute, b.ErrorOnUseBeanInvalidClassAttribute)
	set(&dst.Source, b.Source)
	set(&dst.Target, b.Target)
	set(&dst.InjectString, b.InjectString)
	set(&dst.Filtering, b.Filtering)
	set(&dst.Compile, b.Compile)
	set(&dst.IncludeInProject, b.IncludeInProject)
	set(&dst.RuntimeHome, b.RuntimeHome)
	set(&dst.DefaultEncoding, b.DefaultEncoding)
}

func applyProject(dst *config.Project, b *projectBlock, props map[string]string) {
	set(&dst.Packaging, b.Packaging)
	set(&dst.BaseDirectory, b.BaseDirectory)
	set(&dst.BuildDirectory, b.BuildDirectory)
	set(&dst.OutputDirectory, b.OutputDirectory)
	for k, v := range props {
		dst.Properties[k] = v
	}
	if b.PropertiesFiles != nil {
		dst.PropertiesFiles = b.PropertiesFiles
	}
}

// set copies *src into *dst when src was provided.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
