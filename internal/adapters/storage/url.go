package storage

import "strings"

// DownloadURL builds the public download URL of a document from the
// endpoint path template. The path segment "id", "[id]" or "{id}" is
// replaced by id.
func DownloadURL(appURL string, pathSegments []string, id string) string {
	parts := make([]string, len(pathSegments))
	for i, segment := range pathSegments {
		switch segment {
		case "id", "[id]", "{id}":
			parts[i] = id
		default:
			parts[i] = segment
		}
	}
	return strings.TrimRight(appURL, "/") + "/api/" + strings.Join(parts, "/")
}
