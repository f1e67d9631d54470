package descriptor

import "strings"

// DefaultMarker is the closing tag of a web.xml document.
const DefaultMarker = "</web-app>"

// Splicer injects a fragment into descriptor text.
type Splicer interface {
	// Splice returns the merged text and how many injection points were
	// used. found is false when the descriptor has no injection point.
	Splice(descriptor, fragment, marker string) (merged string, replaced int, found bool)
}

// MarkerSplicer replaces every occurrence of the marker with the fragment.
// When the marker is DefaultMarker the closing tag is appended once at the
// end, since the replacement consumed it.
type MarkerSplicer struct{}

// Splice implements Splicer.
func (MarkerSplicer) Splice(descriptor, fragment, marker string) (string, int, bool) {
	if marker == "" {
		return descriptor, 0, false
	}
	n := strings.Count(descriptor, marker)
	if n == 0 {
		return descriptor, 0, false
	}

	merged := strings.ReplaceAll(descriptor, marker, fragment)
	if marker == DefaultMarker {
		merged += DefaultMarker
	}
	return merged, n, true
}
