// Package properties loads filtering properties from side files. YAML,
// JSON-with-comments and key=value .properties files are understood; nested
// maps are flattened into dotted keys.
package properties

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	javaprops "github.com/magiconair/properties"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// LoadFile reads path and returns its properties. The format is chosen by
// extension.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties file %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode YAML properties %s: %w", path, err)
		}
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode JSON properties %s: %w", path, err)
		}
	case ".properties":
		props, err := parseKeyValue(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode properties file %s: %w", path, err)
		}
		return props, nil
	default:
		return nil, fmt.Errorf("unsupported properties file type %q: %s", filepath.Ext(path), path)
	}

	props, err := Stringify(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return props, nil
}

// LoadFiles merges the given files in order; later files win.
func LoadFiles(paths ...string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range paths {
		props, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		for k, v := range props {
			out[k] = v
		}
	}
	return out, nil
}

// Stringify converts decoded values to strings. Nested maps become dotted
// keys; lists are rejected.
func Stringify(in map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(in))
	if err := flatten("", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) error {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := in[k].(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case int:
			out[key] = strconv.Itoa(v)
		case int64:
			out[key] = strconv.FormatInt(v, 10)
		case uint64:
			out[key] = strconv.FormatUint(v, 10)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			out[key] = v.String()
		case map[string]any:
			if err := flatten(key, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("property %q has unsupported type %T", key, v)
		}
	}
	return nil
}

// parseKeyValue reads a Java .properties document the way
// java.util.Properties.load does: ISO-8859-1 bytes, \uXXXX escapes, line
// continuations and whitespace separators. ${...} references are kept
// verbatim for descriptor filtering.
func parseKeyValue(data []byte) (map[string]string, error) {
	loader := &javaprops.Loader{Encoding: javaprops.ISO_8859_1, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}
