// Package descriptor merges a translator-generated web fragment into a
// deployment descriptor by plain text injection.
//
// The merge never parses XML. It detects the descriptor's declared charset,
// replaces the configured marker with the fragment text, optionally expands
// property references and writes the result in the descriptor's charset.
package descriptor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/interpolate"
)

// Descriptor is the original deployment descriptor as read from disk.
type Descriptor struct {
	Path     string
	Text     string
	Encoding string
	Marker   string
}

// Fragment is the translator-produced partial descriptor.
type Fragment struct {
	Path string
	Text string
}

// MergeRequest names the files and options for one merge.
type MergeRequest struct {
	DescriptorPath string
	FragmentPath   string
	OutputPath     string
	// Marker defaults to DefaultMarker when empty.
	Marker     string
	Filtering  bool
	Properties map[string]string
}

// MergeResult is what was written.
type MergeResult struct {
	Path         string
	Text         string
	Encoding     string
	Replacements int
	BytesWritten int
}

// Merger performs descriptor merges.
type Merger struct {
	// PlatformEncoding is the charset used for the initial descriptor read
	// and for the fragment. Defaults to UTF-8.
	PlatformEncoding string
	Splicer          Splicer
}

// NewMerger returns a Merger using UTF-8 as platform encoding and
// MarkerSplicer.
func NewMerger() *Merger {
	return &Merger{PlatformEncoding: DefaultEncoding, Splicer: MarkerSplicer{}}
}

func (m *Merger) platformEncoding() string {
	if m.PlatformEncoding == "" {
		return DefaultEncoding
	}
	return m.PlatformEncoding
}

// ReadDescriptor reads path, detects its declared encoding and, when that
// differs from the platform encoding, decodes it again with the detected one.
func (m *Merger) ReadDescriptor(ctx context.Context, path, marker string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	platform := m.platformEncoding()
	text, err := decode(raw, platform)
	if err != nil {
		return nil, &EncodingError{Path: path, Encoding: platform, Err: err}
	}

	enc := DetectEncoding(text)
	if !SameEncoding(enc, platform) {
		logger.Debug("Descriptor encoding differs from platform encoding, re-reading.", "path", path, "encoding", enc, "platform_encoding", platform)
		text, err = decode(raw, enc)
		if err != nil {
			return nil, &EncodingError{Path: path, Encoding: enc, Err: err}
		}
	}

	return &Descriptor{Path: path, Text: text, Encoding: enc, Marker: marker}, nil
}

// ReadFragment reads the fragment with the platform encoding. Its charset is
// not detected.
func (m *Merger) ReadFragment(path string) (*Fragment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	platform := m.platformEncoding()
	text, err := decode(raw, platform)
	if err != nil {
		return nil, &EncodingError{Path: path, Encoding: platform, Err: err}
	}
	return &Fragment{Path: path, Text: text}, nil
}

// Merge runs the full read, splice, filter and write sequence. Nothing is
// written unless every earlier step succeeded.
func (m *Merger) Merge(ctx context.Context, req MergeRequest) (*MergeResult, error) {
	logger := ctxlog.FromContext(ctx)

	marker := req.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	splicer := m.Splicer
	if splicer == nil {
		splicer = MarkerSplicer{}
	}

	desc, err := m.ReadDescriptor(ctx, req.DescriptorPath, marker)
	if err != nil {
		return nil, err
	}
	logger.Debug("Descriptor read.", "path", desc.Path, "encoding", desc.Encoding)

	frag, err := m.ReadFragment(req.FragmentPath)
	if err != nil {
		return nil, err
	}

	merged, replaced, found := splicer.Splice(desc.Text, frag.Text, desc.Marker)
	if !found {
		return nil, &MissingMarkerError{Path: desc.Path, Marker: desc.Marker}
	}
	logger.Debug("Fragment injected.", "marker", desc.Marker, "occurrences", replaced)

	if req.Filtering {
		merged = interpolate.Filter(merged, req.Properties)
		logger.Debug("Descriptor filtered.", "properties", len(req.Properties))
	}

	out, err := encode(merged, desc.Encoding)
	if err != nil {
		return nil, &EncodingError{Path: req.OutputPath, Encoding: desc.Encoding, Err: err}
	}
	if err := writeFile(req.OutputPath, out); err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Wrote merged descriptor %s (%s)", req.OutputPath, humanize.Bytes(uint64(len(out)))), "encoding", desc.Encoding)
	return &MergeResult{
		Path:         req.OutputPath,
		Text:         merged,
		Encoding:     desc.Encoding,
		Replacements: replaced,
		BytesWritten: len(out),
	}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
