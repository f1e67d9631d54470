package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and overlays its values onto
	// Default(). The result is not yet resolved.
	Load(ctx context.Context, path string) (*Model, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Model, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) (*Model, error) {
	return f(ctx, path)
}
