package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/jspcgo/internal/descriptor"
	"github.com/vk/jspcgo/internal/project"
	"github.com/vk/jspcgo/internal/translator"
)

// Model is the unified representation of one pre-compilation run.
type Model struct {
	JSPC       JSPC
	Project    Project
	Translator Translator
}

// JSPC holds the compilation and merge options.
type JSPC struct {
	Skip bool

	WorkingDirectory string
	SourceDirectory  string
	SourceExtensions []string
	WebFragmentFile  string
	InputWebXML      string
	OutputWebXML     string

	JavaEncoding string
	PackageName  string
	Classpath    []string

	Verbose                             int
	ShowSuccess                         bool
	ListErrors                          bool
	SmapDumped                          bool
	SmapSuppressed                      bool
	ValidateXML                         bool
	TrimSpaces                          bool
	ErrorOnUseBeanInvalidClassAttribute bool
	Source                              string
	Target                              string

	InjectString     string
	Filtering        bool
	Compile          bool
	IncludeInProject bool

	RuntimeHome     string
	DefaultEncoding string
}

// Project describes the host project.
type Project struct {
	Packaging       string
	BaseDirectory   string
	BuildDirectory  string
	OutputDirectory string
	Properties      map[string]string
	PropertiesFiles []string
}

// Translator selects the external compiler command.
type Translator struct {
	Command string
	Args    []string
}

// Default returns a Model with every option at its documented default.
func Default() *Model {
	return &Model{
		JSPC: JSPC{
			SourceExtensions:                    []string{".jsp", ".jspx"},
			PackageName:                         "jsp",
			ShowSuccess:                         true,
			ListErrors:                          true,
			TrimSpaces:                          true,
			ErrorOnUseBeanInvalidClassAttribute: true,
			InjectString:                        descriptor.DefaultMarker,
			Filtering:                           true,
			Compile:                             true,
			IncludeInProject:                    true,
			DefaultEncoding:                     descriptor.DefaultEncoding,
		},
		Project: Project{
			Packaging:      project.WarPackaging,
			BuildDirectory: "target",
			Properties:     map[string]string{},
		},
		Translator: Translator{Command: "jspc"},
	}
}

// Resolve fills in path defaults derived from other settings and makes
// relative paths absolute against the project base directory. configDir is
// used as base directory when none is configured.
func (m *Model) Resolve(configDir string) error {
	p := &m.Project
	if p.BaseDirectory == "" {
		p.BaseDirectory = configDir
	}
	if p.BaseDirectory == "" {
		p.BaseDirectory = "."
	}
	base, err := filepath.Abs(p.BaseDirectory)
	if err != nil {
		return err
	}
	p.BaseDirectory = base

	abs := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(base, path)
	}

	p.BuildDirectory = abs(p.BuildDirectory)
	if p.OutputDirectory == "" {
		p.OutputDirectory = filepath.Join(p.BuildDirectory, "classes")
	}
	p.OutputDirectory = abs(p.OutputDirectory)
	for i, f := range p.PropertiesFiles {
		p.PropertiesFiles[i] = abs(f)
	}

	j := &m.JSPC
	if j.WorkingDirectory == "" {
		j.WorkingDirectory = filepath.Join(p.BuildDirectory, "jsp-source")
	}
	if j.SourceDirectory == "" {
		j.SourceDirectory = filepath.Join(base, "src", "main", "webapp")
	}
	if j.WebFragmentFile == "" {
		j.WebFragmentFile = filepath.Join(p.BuildDirectory, "web-fragment.xml")
	}
	if j.InputWebXML == "" {
		j.InputWebXML = filepath.Join(base, "src", "main", "webapp", "WEB-INF", "web.xml")
	}
	if j.OutputWebXML == "" {
		j.OutputWebXML = filepath.Join(p.BuildDirectory, "jspweb.xml")
	}
	if j.RuntimeHome == "" {
		j.RuntimeHome = os.Getenv("JAVA_HOME")
	}
	if len(j.SourceExtensions) == 0 {
		j.SourceExtensions = Default().JSPC.SourceExtensions
	}
	if j.InjectString == "" {
		j.InjectString = descriptor.DefaultMarker
	}
	if j.DefaultEncoding == "" {
		j.DefaultEncoding = descriptor.DefaultEncoding
	}

	j.WorkingDirectory = abs(j.WorkingDirectory)
	j.SourceDirectory = abs(j.SourceDirectory)
	j.WebFragmentFile = abs(j.WebFragmentFile)
	j.InputWebXML = abs(j.InputWebXML)
	j.OutputWebXML = abs(j.OutputWebXML)
	for i, e := range j.Classpath {
		j.Classpath[i] = abs(e)
	}
	for i, ext := range j.SourceExtensions {
		if !strings.HasPrefix(ext, ".") {
			j.SourceExtensions[i] = "." + ext
		}
	}
	return nil
}

// Settings returns the translator settings carried by the model.
func (m *Model) Settings() translator.Settings {
	j := m.JSPC
	return translator.Settings{
		Verbose:                             j.Verbose,
		SmapDumped:                          j.SmapDumped,
		SmapSuppressed:                      j.SmapSuppressed,
		Compile:                             j.Compile,
		ValidateXML:                         j.ValidateXML,
		TrimSpaces:                          j.TrimSpaces,
		ErrorOnUseBeanInvalidClassAttribute: j.ErrorOnUseBeanInvalidClassAttribute,
		SourceVM:                            j.Source,
		TargetVM:                            j.Target,
	}
}

// ProjectModel builds the project model the orchestrator updates. extra
// properties override file and config values.
func (m *Model) ProjectModel(extra map[string]string) *project.Model {
	props := make(map[string]string, len(m.Project.Properties)+len(extra))
	for k, v := range m.Project.Properties {
		props[k] = v
	}
	for k, v := range extra {
		props[k] = v
	}
	return &project.Model{
		Packaging:  m.Project.Packaging,
		BaseDir:    m.Project.BaseDirectory,
		BuildDir:   m.Project.BuildDirectory,
		OutputDir:  m.Project.OutputDirectory,
		Properties: props,
	}
}
