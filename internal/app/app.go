package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vk/jspcgo/internal/config"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/hcl"
	"github.com/vk/jspcgo/internal/invoker"
	"github.com/vk/jspcgo/internal/properties"
	"github.com/vk/jspcgo/internal/translator"
	"github.com/vk/jspcgo/internal/yamlconfig"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *config.Model
	properties map[string]string
	translator invoker.Translator
}

// Option customizes an App.
type Option func(*App)

// WithTranslator replaces the external compiler command built from the
// configuration file.
func WithTranslator(t invoker.Translator) Option {
	return func(a *App) { a.translator = t }
}

// LoaderFor picks the configuration loader for path by its extension. HCL is
// the default format.
func LoaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlconfig.NewLoader()
	default:
		return hcl.NewLoader()
	}
}

// NewApp is the constructor for the main application. It loads and resolves
// the configuration and merges project properties from properties files,
// the configuration file and appConfig.Defines, later sources winning.
// A nil loader selects one with LoaderFor.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = LoaderFor(appConfig.ConfigPath)
	}
	model, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into unified model.")

	if appConfig.Skip != nil {
		model.JSPC.Skip = *appConfig.Skip
	}
	if appConfig.RuntimeHome != "" {
		model.JSPC.RuntimeHome = appConfig.RuntimeHome
	}

	configDir, err := filepath.Abs(filepath.Dir(appConfig.ConfigPath))
	if err != nil {
		return nil, err
	}
	if err := model.Resolve(configDir); err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}
	logger.Debug("Configuration resolved.", "base_dir", model.Project.BaseDirectory)

	props, err := properties.LoadFiles(model.Project.PropertiesFiles...)
	if err != nil {
		return nil, err
	}
	for k, v := range model.Project.Properties {
		props[k] = v
	}
	for k, v := range appConfig.Defines {
		props[k] = v
	}
	logger.Debug("Project properties merged.",
		"files", len(model.Project.PropertiesFiles),
		"defines", len(appConfig.Defines),
		"total", len(props),
	)

	a := &App{
		outW:       outW,
		logger:     logger,
		config:     model,
		properties: props,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.translator == nil {
		a.translator = &translator.Command{
			Path:     model.Translator.Command,
			Prefix:   model.Translator.Args,
			Settings: model.Settings(),
			Dir:      model.Project.BaseDirectory,
			Stdout:   outW,
			Stderr:   outW,
		}
	}
	return a, nil
}

// Config returns the resolved configuration model. This is primarily for testing.
func (a *App) Config() *config.Model {
	return a.config
}
