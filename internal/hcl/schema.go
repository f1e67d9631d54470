package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a configuration file. Every
// attribute is optional; pointer fields distinguish "unset" from a zero
// value so defaults survive.
type fileRoot struct {
	JSPC       *jspcBlock       `hcl:"jspc,block"`
	Project    *projectBlock    `hcl:"project,block"`
	Translator *translatorBlock `hcl:"translator,block"`
}

type jspcBlock struct {
	Skip *bool `hcl:"skip,optional"`

	WorkingDirectory *string  `hcl:"working_directory,optional"`
	SourceDirectory  *string  `hcl:"source_directory,optional"`
	SourceExtensions []string `hcl:"source_extensions,optional"`
	WebFragmentFile  *string  `hcl:"web_fragment_file,optional"`
	InputWebXML      *string  `hcl:"input_web_xml,optional"`
	OutputWebXML     *string  `hcl:"output_web_xml,optional"`

	JavaEncoding *string  `hcl:"java_encoding,optional"`
	PackageName  *string  `hcl:"package_name,optional"`
	Classpath    []string `hcl:"classpath,optional"`

	Verbose                             *int    `hcl:"verbose,optional"`
	ShowSuccess                         *bool   `hcl:"show_success,optional"`
	ListErrors                          *bool   `hcl:"list_errors,optional"`
	SmapDumped                          *bool   `hcl:"smap_dumped,optional"`
	SmapSuppressed                      *bool   `hcl:"smap_suppressed,optional"`
	ValidateXML                         *bool   `hcl:"validate_xml,optional"`
	TrimSpaces                          *bool   `hcl:"trim_spaces,optional"`
	ErrorOnUseBeanInvalidClassAttribute *bool   `hcl:"error_on_use_bean_invalid_class_attribute,optional"`
	Source                              *string `hcl:"source,optional"`
	Target                              *string `hcl:"target,optional"`

	InjectString     *string `hcl:"inject_string,optional"`
	Filtering        *bool   `hcl:"filtering,optional"`
	Compile          *bool   `hcl:"compile,optional"`
	IncludeInProject *bool   `hcl:"include_in_project,optional"`

	RuntimeHome     *string `hcl:"runtime_home,optional"`
	DefaultEncoding *string `hcl:"default_encoding,optional"`
}

type projectBlock struct {
	Packaging       *string        `hcl:"packaging,optional"`
	BaseDirectory   *string        `hcl:"base_directory,optional"`
	BuildDirectory  *string        `hcl:"build_directory,optional"`
	OutputDirectory *string        `hcl:"output_directory,optional"`
	Properties      hcl.Expression `hcl:"properties,optional"`
	PropertiesFiles []string       `hcl:"properties_files,optional"`
}

type translatorBlock struct {
	Command *string  `hcl:"command,optional"`
	Args    []string `hcl:"args,optional"`
}
