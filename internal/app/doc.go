// Package app contains the core application logic. It loads the
// configuration file, resolves the project model and runs one
// pre-compilation through the orchestrator, decoupled from any specific
// entrypoint like a CLI.
package app
