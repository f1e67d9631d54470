// Package interpolate substitutes property references in text.
package interpolate

import "strings"

// Delimiters is a begin/end token pair, e.g. "${" and "}".
type Delimiters struct {
	Begin string
	End   string
}

var (
	// Braces matches ${key}.
	Braces = Delimiters{Begin: "${", End: "}"}
	// At matches @key@.
	At = Delimiters{Begin: "@", End: "@"}
)

// Filter runs a ${key} pass and then an @key@ pass over text, one line at a
// time. Lines are rejoined with "\n", so CRLF and CR endings are normalized
// and a trailing line terminator is dropped.
func Filter(text string, props map[string]string) string {
	lines := splitLines(text)
	for i, line := range lines {
		line = Replace(line, props, Braces)
		lines[i] = Replace(line, props, At)
	}
	return strings.Join(lines, "\n")
}

// Replace substitutes every delimited key found in props. Unknown keys are
// left as written. Substituted values are not scanned again.
func Replace(s string, props map[string]string, d Delimiters) string {
	if d.Begin == "" || d.End == "" || !strings.Contains(s, d.Begin) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, d.Begin)
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		rest := s[start+len(d.Begin):]
		end := strings.Index(rest, d.End)
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}

		key := rest[:end]
		if value, ok := props[key]; ok && key != "" {
			b.WriteString(s[:start])
			b.WriteString(value)
			s = rest[end+len(d.End):]
			continue
		}

		// Not a known key: emit the begin token and rescan from just after
		// it, so its end token may still open a following reference.
		b.WriteString(s[:start+len(d.Begin)])
		s = rest
	}
}

// splitLines splits on \r\n, \r and \n. A terminator at the very end does
// not produce an empty final line.
func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
