// Package yamlconfig implements config.Loader for YAML files, the same
// `jspc`, `project` and `translator` sections as the HCL front end with
// snake_case keys.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/jspcgo/internal/config"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/properties"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	JSPC       *jspcSection       `yaml:"jspc"`
	Project    *projectSection    `yaml:"project"`
	Translator *translatorSection `yaml:"translator"`
}

type jspcSection struct {
	Skip *bool `yaml:"skip"`

	WorkingDirectory *string  `yaml:"working_directory"`
	SourceDirectory  *string  `yaml:"source_directory"`
	SourceExtensions []string `yaml:"source_extensions"`
	WebFragmentFile  *string  `yaml:"web_fragment_file"`
	InputWebXML      *string  `yaml:"input_web_xml"`
	OutputWebXML     *string  `yaml:"output_web_xml"`

	JavaEncoding *string  `yaml:"java_encoding"`
	PackageName  *string  `yaml:"package_name"`
	Classpath    []string `yaml:"classpath"`

	Verbose                             *int    `yaml:"verbose"`
	ShowSuccess                         *bool   `yaml:"show_success"`
	ListErrors                          *bool   `yaml:"list_errors"`
	SmapDumped                          *bool   `yaml:"smap_dumped"`
	SmapSuppressed                      *bool   `yaml:"smap_suppressed"`
	ValidateXML                         *bool   `yaml:"validate_xml"`
	TrimSpaces                          *bool   `yaml:"trim_spaces"`
	ErrorOnUseBeanInvalidClassAttribute *bool   `yaml:"error_on_use_bean_invalid_class_attribute"`
	Source                              *string `yaml:"source"`
	Target                              *string `yaml:"target"`

	InjectString     *string `yaml:"inject_string"`
	Filtering        *bool   `yaml:"filtering"`
	Compile          *bool   `yaml:"compile"`
	IncludeInProject *bool   `yaml:"include_in_project"`

	RuntimeHome     *string `yaml:"runtime_home"`
	DefaultEncoding *string `yaml:"default_encoding"`
}

type projectSection struct {
	Packaging       *string        `yaml:"packaging"`
	BaseDirectory   *string        `yaml:"base_directory"`
	BuildDirectory  *string        `yaml:"build_directory"`
	OutputDirectory *string        `yaml:"output_directory"`
	Properties      map[string]any `yaml:"properties"`
	PropertiesFiles []string       `yaml:"properties_files"`
}

type translatorSection struct {
	Command *string  `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the YAML file at path. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	model := config.Default()
	if s := root.JSPC; s != nil {
		j := &model.JSPC
		set(&j.Skip, s.Skip)
		set(&j.WorkingDirectory, s.WorkingDirectory)
		set(&j.SourceDirectory, s.SourceDirectory)
		if s.SourceExtensions != nil {
			j.SourceExtensions = s.SourceExtensions
		}
		set(&j.WebFragmentFile, s.WebFragmentFile)
		set(&j.InputWebXML, s.InputWebXML)
		set(&j.OutputWebXML, s.OutputWebXML)
		set(&j.JavaEncoding, s.JavaEncoding)
		set(&j.PackageName, s.PackageName)
		if s.Classpath != nil {
			j.Classpath = s.Classpath
		}
		set(&j.Verbose, s.Verbose)
		set(&j.ShowSuccess, s.ShowSuccess)
		set(&j.ListErrors, s.ListErrors)
		set(&j.SmapDumped, s.SmapDumped)
		set(&j.SmapSuppressed, s.SmapSuppressed)
		set(&j.ValidateXML, s.ValidateXML)
		set(&j.TrimSpaces, s.TrimSpaces)
		set(&j.ErrorOnUseBeanInvalidClassAttribute, s.ErrorOnUseBeanInvalidClassAttribute)
		set(&j.Source, s.Source)
		set(&j.Target, s.Target)
		set(&j.InjectString, s.InjectString)
		set(&j.Filtering, s.Filtering)
		set(&j.Compile, s.Compile)
		set(&j.IncludeInProject, s.IncludeInProject)
		set(&j.RuntimeHome, s.RuntimeHome)
		set(&j.DefaultEncoding, s.DefaultEncoding)
	}
	if s := root.Project; s != nil {
		p := &model.Project
		set(&p.Packaging, s.Packaging)
		set(&p.BaseDirectory, s.BaseDirectory)
		set(&p.BuildDirectory, s.BuildDirectory)
		set(&p.OutputDirectory, s.OutputDirectory)
		props, err := properties.Stringify(s.Properties)
		if err != nil {
			return nil, fmt.Errorf("invalid properties in %s: %w", path, err)
		}
		for k, v := range props {
			p.Properties[k] = v
		}
		if s.PropertiesFiles != nil {
			p.PropertiesFiles = s.PropertiesFiles
		}
	}
	if s := root.Translator; s != nil {
		set(&model.Translator.Command, s.Command)
		if s.Args != nil {
			model.Translator.Args = s.Args
		}
	}

	logger.Debug("YAML loading complete.", "properties", len(model.Project.Properties))
	return model, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
