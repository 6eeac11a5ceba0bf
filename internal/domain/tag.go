package domain

// Tag labels are what clients display; tag paths are the slugs stored in the
// travels collection. The mapping is fixed and bidirectional.
var tagTypeToTagPath = map[string]string{
	"Food":     "food",
	"Culture":  "culture",
	"Healing":  "healing",
	"Nature":   "nature",
	"Sports":   "sports",
	"Festival": "festival",
	"K-POP":    "kpop",
	"K-DRAMA":  "kdrama",
	"JEJU":     "jeju",
	"etc.":     "etc",
}

var tagPathToTagType = func() map[string]string {
	m := make(map[string]string, len(tagTypeToTagPath))
	for label, path := range tagTypeToTagPath {
		m[path] = label
	}
	return m
}()

// TagPath converts a display label to its storage slug.
// The second return is false for unknown labels.
func TagPath(label string) (string, bool) {
	path, ok := tagTypeToTagPath[label]
	return path, ok
}

// TagLabel converts a storage slug back to its display label.
func TagLabel(path string) (string, bool) {
	label, ok := tagPathToTagType[path]
	return label, ok
}

// TagPaths converts labels to slugs, dropping unknown entries.
func TagPaths(labels []string) []string {
	paths := make([]string, 0, len(labels))
	for _, l := range labels {
		if p, ok := tagTypeToTagPath[l]; ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// TagLabels converts stored slugs to display labels, dropping unknown entries.
func TagLabels(paths []string) []string {
	labels := make([]string, 0, len(paths))
	for _, p := range paths {
		if l, ok := tagPathToTagType[p]; ok {
			labels = append(labels, l)
		}
	}
	return labels
}

// ValidTagLabels reports whether every label is a known tag.
func ValidTagLabels(labels []string) bool {
	for _, l := range labels {
		if _, ok := tagTypeToTagPath[l]; !ok {
			return false
		}
	}
	return true
}
